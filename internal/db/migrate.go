package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBookingsLeadScoreNew(db); err != nil {
		return fmt.Errorf("migrating bookings lead_score constraint: %w", err)
	}
	if err := migrateBackfillScoreLabels(db); err != nil {
		return fmt.Errorf("backfilling lead score labels: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS bookings (
		id                TEXT PRIMARY KEY,
		full_name         TEXT NOT NULL,
		email             TEXT NOT NULL,
		vehicle           TEXT NOT NULL DEFAULT '',
		current_vehicle   TEXT NOT NULL DEFAULT '',
		booking_date      TEXT NOT NULL DEFAULT '',
		location          TEXT NOT NULL DEFAULT '',
		lead_score        TEXT NOT NULL DEFAULT 'New'
		                  CHECK(lead_score IN ('Hot','Warm','Cold','New')),
		action_status     TEXT NOT NULL DEFAULT 'New Lead'
		                  CHECK(action_status IN ('New Lead','Call Scheduled','Follow Up Required','Lost','Converted')),
		sales_notes       TEXT NOT NULL DEFAULT '',
		booking_timestamp TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_bookings_location ON bookings(location)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_timestamp ON bookings(booking_timestamp)`,

	`CREATE TABLE IF NOT EXISTS email_log (
		id         TEXT PRIMARY KEY,
		booking_id TEXT NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		recipient  TEXT NOT NULL,
		email_type TEXT NOT NULL,
		subject    TEXT NOT NULL,
		body       TEXT NOT NULL DEFAULT '',
		sent_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_email_log_booking ON email_log(booking_id)`,
	`CREATE INDEX IF NOT EXISTS idx_email_log_sent ON email_log(sent_at)`,

	// Add purchase time frame captured by the booking form
	`ALTER TABLE bookings ADD COLUMN time_frame TEXT NOT NULL DEFAULT ''`,

	// Add AI assessment reporting fields
	`ALTER TABLE bookings ADD COLUMN lead_score_label TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE bookings ADD COLUMN numeric_lead_score INTEGER NOT NULL DEFAULT 0`,
}

// migrateBookingsLeadScoreNew widens the lead_score CHECK constraint to accept
// 'New'. Databases created before manual lead entry only allowed the three
// AI-assessed scores; SQLite cannot alter a CHECK in place, so rebuild the
// table when the constraint predates the new value.
func migrateBookingsLeadScoreNew(db *sql.DB) error {
	ctx := context.Background()
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring db connection: %w", err)
	}
	defer conn.Close()

	var createSQL string
	if err := conn.QueryRowContext(ctx, `SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'bookings'`).Scan(&createSQL); err != nil {
		return fmt.Errorf("loading bookings schema: %w", err)
	}
	if strings.Contains(strings.ToLower(createSQL), "'new'") {
		return nil
	}

	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
		return fmt.Errorf("disabling foreign keys: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`)
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS bookings_new`); err != nil {
		return fmt.Errorf("dropping stale bookings_new: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `CREATE TABLE bookings_new (
		id                 TEXT PRIMARY KEY,
		full_name          TEXT NOT NULL,
		email              TEXT NOT NULL,
		vehicle            TEXT NOT NULL DEFAULT '',
		current_vehicle    TEXT NOT NULL DEFAULT '',
		booking_date       TEXT NOT NULL DEFAULT '',
		location           TEXT NOT NULL DEFAULT '',
		lead_score         TEXT NOT NULL DEFAULT 'New'
		                   CHECK(lead_score IN ('Hot','Warm','Cold','New')),
		action_status      TEXT NOT NULL DEFAULT 'New Lead'
		                   CHECK(action_status IN ('New Lead','Call Scheduled','Follow Up Required','Lost','Converted')),
		sales_notes        TEXT NOT NULL DEFAULT '',
		booking_timestamp  TEXT NOT NULL DEFAULT '',
		time_frame         TEXT NOT NULL DEFAULT '',
		lead_score_label   TEXT NOT NULL DEFAULT '',
		numeric_lead_score INTEGER NOT NULL DEFAULT 0
	)`); err != nil {
		return fmt.Errorf("creating bookings_new: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO bookings_new (
		id, full_name, email, vehicle, current_vehicle, booking_date, location,
		lead_score, action_status, sales_notes, booking_timestamp,
		time_frame, lead_score_label, numeric_lead_score
	) SELECT
		id, full_name, email, vehicle, current_vehicle, booking_date, location,
		lead_score, action_status, sales_notes, booking_timestamp,
		time_frame, lead_score_label, numeric_lead_score
	FROM bookings`); err != nil {
		return fmt.Errorf("copying bookings data: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DROP TABLE bookings`); err != nil {
		return fmt.Errorf("dropping old bookings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `ALTER TABLE bookings_new RENAME TO bookings`); err != nil {
		return fmt.Errorf("renaming bookings_new: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_bookings_location ON bookings(location)`); err != nil {
		return fmt.Errorf("recreating idx_bookings_location: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_bookings_timestamp ON bookings(booking_timestamp)`); err != nil {
		return fmt.Errorf("recreating idx_bookings_timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing bookings migration: %w", err)
	}
	committed = true

	return nil
}

// migrateBackfillScoreLabels fills the display label for rows imported before
// the reporting fields existed. Idempotent: only touches empty labels.
func migrateBackfillScoreLabels(db *sql.DB) error {
	ctx := context.Background()

	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE lead_score_label = ''`).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking lead score labels: %w", err)
	}
	if count == 0 {
		return nil // nothing to backfill
	}

	if _, err := db.ExecContext(ctx,
		`UPDATE bookings SET lead_score_label = lead_score || ' Lead' WHERE lead_score_label = ''`); err != nil {
		return fmt.Errorf("updating lead score labels: %w", err)
	}
	return nil
}

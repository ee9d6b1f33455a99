package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time — should succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"bookings", "email_log"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_bookings_location",
		"idx_bookings_timestamp",
		"idx_email_log_booking",
		"idx_email_log_sent",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite uses "memory" journal mode; WAL only applies to file DBs.
	// This test verifies OpenSQLite issues the PRAGMA (a no-op for :memory:).
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	// In-memory DB reports "memory" — that's expected.
	assert.Equal(t, "memory", mode)
}

func TestMigrate_BookingsLeadScoreCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	// Invalid score should fail.
	_, err := db.Exec(`INSERT INTO bookings (id, full_name, email, lead_score)
		VALUES ('b1', 'Jane Doe', 'jane@example.com', 'Scorching')`)
	assert.Error(t, err, "invalid lead score should be rejected by CHECK constraint")

	// Each valid score should succeed.
	for i, score := range []string{"Hot", "Warm", "Cold", "New"} {
		_, err = db.Exec(`INSERT INTO bookings (id, full_name, email, lead_score)
			VALUES (?, 'Jane Doe', 'jane@example.com', ?)`, string(rune('a'+i)), score)
		assert.NoError(t, err, "score %s should be accepted", score)
	}
}

func TestMigrate_BookingsActionStatusCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO bookings (id, full_name, email, action_status)
		VALUES ('b1', 'Jane Doe', 'jane@example.com', 'Ghosted')`)
	assert.Error(t, err, "invalid action status should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO bookings (id, full_name, email, action_status)
		VALUES ('b1', 'Jane Doe', 'jane@example.com', 'Call Scheduled')`)
	assert.NoError(t, err)
}

func TestMigrate_BookingsDefaults(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO bookings (id, full_name, email)
		VALUES ('b1', 'Jane Doe', 'jane@example.com')`)
	require.NoError(t, err)

	var score, status, timeFrame string
	var numeric int
	err = db.QueryRow(`SELECT lead_score, action_status, time_frame, numeric_lead_score
		FROM bookings WHERE id = 'b1'`).Scan(&score, &status, &timeFrame, &numeric)
	require.NoError(t, err)
	assert.Equal(t, "New", score)
	assert.Equal(t, "New Lead", status)
	assert.Equal(t, "", timeFrame)
	assert.Equal(t, 0, numeric)
}

func TestMigrate_EmailLogCascadeDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO bookings (id, full_name, email)
		VALUES ('b1', 'Jane Doe', 'jane@example.com')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO email_log (id, booking_id, recipient, email_type, subject, sent_at)
		VALUES ('e1', 'b1', 'jane@example.com', 'followup', 'Hello', '2025-06-01T10:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM bookings WHERE id = 'b1'`)
	require.NoError(t, err)

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM email_log WHERE booking_id = 'b1'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "email log rows should cascade on booking delete")
}

func TestMigrate_EmailLogRequiresBooking(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO email_log (id, booking_id, recipient, email_type, subject, sent_at)
		VALUES ('e1', 'missing', 'x@example.com', 'followup', 'Hello', '2025-06-01T10:00:00Z')`)
	assert.Error(t, err, "email log without a booking should violate the foreign key")
}

func TestMigrate_BookingsLeadScoreNew_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Already-migrated table should not error on re-run.
	err := migrateBookingsLeadScoreNew(db)
	require.NoError(t, err)
}

func TestMigrate_BackfillScoreLabels(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO bookings (id, full_name, email, lead_score, lead_score_label)
		VALUES ('b1', 'Jane Doe', 'jane@example.com', 'Hot', '')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO bookings (id, full_name, email, lead_score, lead_score_label)
		VALUES ('b2', 'John Roe', 'john@example.com', 'Warm', 'Custom Label')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var label1, label2 string
	require.NoError(t, db.QueryRow(`SELECT lead_score_label FROM bookings WHERE id = 'b1'`).Scan(&label1))
	require.NoError(t, db.QueryRow(`SELECT lead_score_label FROM bookings WHERE id = 'b2'`).Scan(&label2))
	assert.Equal(t, "Hot Lead", label1, "empty label should be backfilled from the score")
	assert.Equal(t, "Custom Label", label2, "existing labels should be left alone")
}

func TestMigrateBookingsLeadScoreNew_UpgradesLegacySchema(t *testing.T) {
	legacyDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { legacyDB.Close() })

	_, err = legacyDB.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	// Schema from before manual lead entry: only the three AI scores allowed.
	_, err = legacyDB.Exec(`CREATE TABLE bookings (
		id                 TEXT PRIMARY KEY,
		full_name          TEXT NOT NULL,
		email              TEXT NOT NULL,
		vehicle            TEXT NOT NULL DEFAULT '',
		current_vehicle    TEXT NOT NULL DEFAULT '',
		booking_date       TEXT NOT NULL DEFAULT '',
		location           TEXT NOT NULL DEFAULT '',
		lead_score         TEXT NOT NULL DEFAULT 'Cold'
		                   CHECK(lead_score IN ('Hot','Warm','Cold')),
		action_status      TEXT NOT NULL DEFAULT 'Call Scheduled'
		                   CHECK(action_status IN ('Call Scheduled','Follow Up Required','Lost','Converted')),
		sales_notes        TEXT NOT NULL DEFAULT '',
		booking_timestamp  TEXT NOT NULL DEFAULT '',
		time_frame         TEXT NOT NULL DEFAULT '',
		lead_score_label   TEXT NOT NULL DEFAULT '',
		numeric_lead_score INTEGER NOT NULL DEFAULT 0
	)`)
	require.NoError(t, err)
	_, err = legacyDB.Exec(`CREATE INDEX idx_bookings_location ON bookings(location)`)
	require.NoError(t, err)
	_, err = legacyDB.Exec(`CREATE INDEX idx_bookings_timestamp ON bookings(booking_timestamp)`)
	require.NoError(t, err)

	_, err = legacyDB.Exec(`INSERT INTO bookings (id, full_name, email, vehicle, location, lead_score, booking_timestamp)
		VALUES ('b1', 'Legacy Customer', 'legacy@example.com', 'AOE Apex', 'Chicago', 'Hot', '2025-03-01T09:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, migrateBookingsLeadScoreNew(legacyDB))

	var createSQL string
	err = legacyDB.QueryRow(`SELECT sql FROM sqlite_master WHERE type='table' AND name='bookings'`).Scan(&createSQL)
	require.NoError(t, err)
	assert.Contains(t, createSQL, "'New'")

	var name, vehicle, score string
	err = legacyDB.QueryRow(`SELECT full_name, vehicle, lead_score FROM bookings WHERE id = 'b1'`).Scan(&name, &vehicle, &score)
	require.NoError(t, err)
	assert.Equal(t, "Legacy Customer", name)
	assert.Equal(t, "AOE Apex", vehicle)
	assert.Equal(t, "Hot", score)

	// 'New' should now be accepted.
	_, err = legacyDB.Exec(`INSERT INTO bookings (id, full_name, email, lead_score)
		VALUES ('b2', 'Walk In', 'walkin@example.com', 'New')`)
	require.NoError(t, err)
}

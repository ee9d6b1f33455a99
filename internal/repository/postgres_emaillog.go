package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aoemotors/leaddesk/internal/db"
	"github.com/aoemotors/leaddesk/internal/domain"
)

// PostgresEmailLogRepo implements EmailLogRepository against Postgres.
type PostgresEmailLogRepo struct {
	db db.DBTX
}

// NewPostgresEmailLogRepo creates a new PostgresEmailLogRepo. conn may be a
// *sql.DB or a transaction-scoped DBTX.
func NewPostgresEmailLogRepo(conn db.DBTX) *PostgresEmailLogRepo {
	return &PostgresEmailLogRepo{db: conn}
}

func (r *PostgresEmailLogRepo) Create(ctx context.Context, e *domain.EmailLog) error {
	query := `INSERT INTO email_log (id, booking_id, recipient, email_type, subject, body, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.BookingID,
		e.Recipient,
		e.EmailType,
		e.Subject,
		e.Body,
		e.SentAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting email log: %w", err)
	}
	return nil
}

func (r *PostgresEmailLogRepo) ListByBooking(ctx context.Context, bookingID string) ([]domain.EmailLog, error) {
	query := `SELECT ` + emailLogColumns + ` FROM email_log WHERE booking_id = $1 ORDER BY sent_at DESC`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("listing email log for booking: %w", err)
	}
	defer rows.Close()
	return r.scanEmailLogs(rows)
}

func (r *PostgresEmailLogRepo) ListRecent(ctx context.Context, limit int) ([]domain.EmailLog, error) {
	query := `SELECT ` + emailLogColumns + ` FROM email_log ORDER BY sent_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent email log: %w", err)
	}
	defer rows.Close()
	return r.scanEmailLogs(rows)
}

func (r *PostgresEmailLogRepo) scanEmailLogs(rows *sql.Rows) ([]domain.EmailLog, error) {
	var entries []domain.EmailLog
	for rows.Next() {
		var e domain.EmailLog
		var sentAt sql.NullTime
		if err := rows.Scan(&e.ID, &e.BookingID, &e.Recipient, &e.EmailType, &e.Subject, &e.Body, &sentAt); err != nil {
			return nil, fmt.Errorf("scanning email log row: %w", err)
		}
		if sentAt.Valid {
			e.SentAt = sentAt.Time.UTC()
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating email log: %w", err)
	}
	return entries, nil
}

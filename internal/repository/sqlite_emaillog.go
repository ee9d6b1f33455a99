package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aoemotors/leaddesk/internal/db"
	"github.com/aoemotors/leaddesk/internal/domain"
)

const emailLogColumns = `id, booking_id, recipient, email_type, subject, body, sent_at`

// SQLiteEmailLogRepo implements EmailLogRepository using a SQLite database.
type SQLiteEmailLogRepo struct {
	db db.DBTX
}

// NewSQLiteEmailLogRepo creates a new SQLiteEmailLogRepo. conn may be a
// *sql.DB or a transaction-scoped DBTX.
func NewSQLiteEmailLogRepo(conn db.DBTX) *SQLiteEmailLogRepo {
	return &SQLiteEmailLogRepo{db: conn}
}

func (r *SQLiteEmailLogRepo) Create(ctx context.Context, e *domain.EmailLog) error {
	query := `INSERT INTO email_log (id, booking_id, recipient, email_type, subject, body, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.BookingID,
		e.Recipient,
		e.EmailType,
		e.Subject,
		e.Body,
		e.SentAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting email log: %w", err)
	}
	return nil
}

func (r *SQLiteEmailLogRepo) ListByBooking(ctx context.Context, bookingID string) ([]domain.EmailLog, error) {
	query := `SELECT ` + emailLogColumns + ` FROM email_log WHERE booking_id = ? ORDER BY sent_at DESC`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("listing email log for booking: %w", err)
	}
	defer rows.Close()
	return r.scanEmailLogs(rows)
}

func (r *SQLiteEmailLogRepo) ListRecent(ctx context.Context, limit int) ([]domain.EmailLog, error) {
	query := `SELECT ` + emailLogColumns + ` FROM email_log ORDER BY sent_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent email log: %w", err)
	}
	defer rows.Close()
	return r.scanEmailLogs(rows)
}

func (r *SQLiteEmailLogRepo) scanEmailLogs(rows *sql.Rows) ([]domain.EmailLog, error) {
	var entries []domain.EmailLog
	for rows.Next() {
		var e domain.EmailLog
		var sentAtStr string
		if err := rows.Scan(&e.ID, &e.BookingID, &e.Recipient, &e.EmailType, &e.Subject, &e.Body, &sentAtStr); err != nil {
			return nil, fmt.Errorf("scanning email log row: %w", err)
		}
		e.SentAt = domain.ParseTimestamp(sentAtStr)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating email log: %w", err)
	}
	return entries, nil
}

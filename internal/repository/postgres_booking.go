package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aoemotors/leaddesk/internal/db"
	"github.com/aoemotors/leaddesk/internal/domain"
)

// PostgresBookingRepo implements BookingRepository against Postgres. It runs
// the same queries as the SQLite implementation with numbered placeholders
// and a native timestamptz column.
type PostgresBookingRepo struct {
	db db.DBTX
}

// NewPostgresBookingRepo creates a new PostgresBookingRepo. conn may be a
// *sql.DB or a transaction-scoped DBTX.
func NewPostgresBookingRepo(conn db.DBTX) *PostgresBookingRepo {
	return &PostgresBookingRepo{db: conn}
}

// pgTimestamp converts a time.Time to a timestamptz parameter. The zero time
// is stored as NULL.
func pgTimestamp(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

func (r *PostgresBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (id, full_name, email, vehicle, current_vehicle, booking_date,
		location, time_frame, lead_score, action_status, sales_notes,
		lead_score_label, numeric_lead_score, booking_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.FullName,
		b.Email,
		b.Vehicle,
		b.CurrentVehicle,
		b.BookingDate,
		b.Location,
		b.TimeFrame,
		string(b.LeadScore),
		string(b.ActionStatus),
		b.SalesNotes,
		b.LeadScoreLabel,
		b.NumericLeadScore,
		pgTimestamp(b.BookingTimestamp),
	)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}
	return nil
}

func (r *PostgresBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanBooking(row)
}

func (r *PostgresBookingRepo) List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var conds []string
	var args []any

	if filter.Location != "" {
		args = append(args, filter.Location)
		conds = append(conds, fmt.Sprintf(`location = $%d`, len(args)))
	}
	if filter.From != nil || filter.To != nil {
		// Rows without a usable timestamp never match a bounded filter.
		conds = append(conds, `booking_timestamp IS NOT NULL`)
	}
	if filter.From != nil {
		args = append(args, filter.From.UTC())
		conds = append(conds, fmt.Sprintf(`booking_timestamp >= $%d`, len(args)))
	}
	if filter.To != nil {
		args = append(args, filter.To.UTC())
		conds = append(conds, fmt.Sprintf(`booking_timestamp < $%d`, len(args)))
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY booking_timestamp DESC NULLS LAST`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()
	return r.scanBookings(rows)
}

func (r *PostgresBookingRepo) UpdateField(ctx context.Context, id, field, value string) error {
	if !editableBookingColumns[field] {
		return fmt.Errorf("column %q is not editable", field)
	}
	query := fmt.Sprintf(`UPDATE bookings SET %s = $1 WHERE id = $2`, field)
	res, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("updating booking %s: %w", field, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *PostgresBookingRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting bookings: %w", err)
	}
	return n, nil
}

func (r *PostgresBookingRepo) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var b domain.Booking
	var scoreStr, statusStr string
	var ts sql.NullTime

	err := row.Scan(
		&b.ID, &b.FullName, &b.Email, &b.Vehicle, &b.CurrentVehicle, &b.BookingDate,
		&b.Location, &b.TimeFrame, &scoreStr, &statusStr, &b.SalesNotes,
		&b.LeadScoreLabel, &b.NumericLeadScore, &ts,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("booking: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning booking: %w", err)
	}

	populateBookingPG(&b, scoreStr, statusStr, ts)
	return &b, nil
}

func (r *PostgresBookingRepo) scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var scoreStr, statusStr string
		var ts sql.NullTime

		err := rows.Scan(
			&b.ID, &b.FullName, &b.Email, &b.Vehicle, &b.CurrentVehicle, &b.BookingDate,
			&b.Location, &b.TimeFrame, &scoreStr, &statusStr, &b.SalesNotes,
			&b.LeadScoreLabel, &b.NumericLeadScore, &ts,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning booking row: %w", err)
		}

		populateBookingPG(&b, scoreStr, statusStr, ts)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookings: %w", err)
	}
	return bookings, nil
}

// populateBookingPG fills in typed fields after scanning raw values. A NULL
// timestamptz becomes the zero time.
func populateBookingPG(b *domain.Booking, scoreStr, statusStr string, ts sql.NullTime) {
	b.LeadScore = domain.LeadScore(scoreStr)
	b.ActionStatus = domain.ActionStatus(statusStr)
	if ts.Valid {
		b.BookingTimestamp = ts.Time.UTC()
	}
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aoemotors/leaddesk/internal/db"
	"github.com/aoemotors/leaddesk/internal/domain"
)

// bookingColumns is the canonical SELECT column list for bookings.
const bookingColumns = `id, full_name, email, vehicle, current_vehicle, booking_date,
		location, time_frame, lead_score, action_status, sales_notes,
		lead_score_label, numeric_lead_score, booking_timestamp`

// SQLiteBookingRepo implements BookingRepository using a SQLite database.
type SQLiteBookingRepo struct {
	db db.DBTX
}

// NewSQLiteBookingRepo creates a new SQLiteBookingRepo. conn may be a *sql.DB
// or a transaction-scoped DBTX.
func NewSQLiteBookingRepo(conn db.DBTX) *SQLiteBookingRepo {
	return &SQLiteBookingRepo{db: conn}
}

func (r *SQLiteBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (id, full_name, email, vehicle, current_vehicle, booking_date,
		location, time_frame, lead_score, action_status, sales_notes,
		lead_score_label, numeric_lead_score, booking_timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
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
		formatTimestamp(b.BookingTimestamp),
	)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}
	return nil
}

func (r *SQLiteBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanBooking(row)
}

func (r *SQLiteBookingRepo) List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var conds []string
	var args []any

	if filter.Location != "" {
		conds = append(conds, `location = ?`)
		args = append(args, filter.Location)
	}
	if filter.From != nil || filter.To != nil {
		// Rows without a usable timestamp never match a bounded filter.
		conds = append(conds, `booking_timestamp != ''`)
	}
	if filter.From != nil {
		conds = append(conds, `booking_timestamp >= ?`)
		args = append(args, formatTimestamp(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, `booking_timestamp < ?`)
		args = append(args, formatTimestamp(*filter.To))
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY booking_timestamp DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()
	return r.scanBookings(rows)
}

func (r *SQLiteBookingRepo) UpdateField(ctx context.Context, id, field, value string) error {
	if !editableBookingColumns[field] {
		return fmt.Errorf("column %q is not editable", field)
	}
	query := fmt.Sprintf(`UPDATE bookings SET %s = ? WHERE id = ?`, field)
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

func (r *SQLiteBookingRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting bookings: %w", err)
	}
	return n, nil
}

// scanBooking scans a single booking from a *sql.Row.
func (r *SQLiteBookingRepo) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var b domain.Booking
	var scoreStr, statusStr, timestampStr string

	err := row.Scan(
		&b.ID, &b.FullName, &b.Email, &b.Vehicle, &b.CurrentVehicle, &b.BookingDate,
		&b.Location, &b.TimeFrame, &scoreStr, &statusStr, &b.SalesNotes,
		&b.LeadScoreLabel, &b.NumericLeadScore, &timestampStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("booking: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning booking: %w", err)
	}

	populateBooking(&b, scoreStr, statusStr, timestampStr)
	return &b, nil
}

// scanBookings scans multiple bookings from *sql.Rows.
func (r *SQLiteBookingRepo) scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var scoreStr, statusStr, timestampStr string

		err := rows.Scan(
			&b.ID, &b.FullName, &b.Email, &b.Vehicle, &b.CurrentVehicle, &b.BookingDate,
			&b.Location, &b.TimeFrame, &scoreStr, &statusStr, &b.SalesNotes,
			&b.LeadScoreLabel, &b.NumericLeadScore, &timestampStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning booking row: %w", err)
		}

		populateBooking(&b, scoreStr, statusStr, timestampStr)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookings: %w", err)
	}
	return bookings, nil
}

// populateBooking fills in typed fields after scanning raw values. A stored
// timestamp that fails to parse becomes the zero time rather than failing
// the whole read.
func populateBooking(b *domain.Booking, scoreStr, statusStr, timestampStr string) {
	b.LeadScore = domain.LeadScore(scoreStr)
	b.ActionStatus = domain.ActionStatus(statusStr)
	b.BookingTimestamp = domain.ParseTimestamp(timestampStr)
}

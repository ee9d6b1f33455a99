package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/aoemotors/leaddesk/internal/db"
	"github.com/aoemotors/leaddesk/internal/domain"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewUnitOfWork(database)
}

// SeedBookings inserts bookings with a direct statement rather than through
// the repository layer, so repository tests can seed without importing
// their own package back.
func SeedBookings(t *testing.T, database *sql.DB, bookings ...*domain.Booking) {
	t.Helper()
	const query = `INSERT INTO bookings (id, full_name, email, vehicle, current_vehicle, booking_date,
		location, time_frame, lead_score, action_status, sales_notes,
		lead_score_label, numeric_lead_score, booking_timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, b := range bookings {
		ts := ""
		if !b.BookingTimestamp.IsZero() {
			ts = b.BookingTimestamp.UTC().Format(time.RFC3339)
		}
		_, err := database.Exec(query,
			b.ID, b.FullName, b.Email, b.Vehicle, b.CurrentVehicle, b.BookingDate,
			b.Location, b.TimeFrame, string(b.LeadScore), string(b.ActionStatus), b.SalesNotes,
			b.LeadScoreLabel, b.NumericLeadScore, ts,
		)
		if err != nil {
			t.Fatalf("seeding booking %s: %v", b.ID, err)
		}
	}
}

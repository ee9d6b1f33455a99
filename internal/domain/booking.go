package domain

import (
	"fmt"
	"time"
)

// Booking is one test-drive lead. BookingTimestamp is the instant every
// time-window query filters on; it is normalized to UTC once, at the
// ingestion boundary, and is the zero time when the source value could not
// be parsed.
type Booking struct {
	ID             string
	FullName       string
	Email          string
	Vehicle        string
	CurrentVehicle string
	BookingDate    string
	Location       string
	TimeFrame      string
	LeadScore      LeadScore
	ActionStatus   ActionStatus
	SalesNotes     string

	// Reporting fields carried through from the scoring pipeline.
	LeadScoreLabel   string
	NumericLeadScore int

	BookingTimestamp time.Time
}

// HasTimestamp reports whether the booking carries a usable instant.
// Bookings without one are excluded from time-windowed counts.
func (b *Booking) HasTimestamp() bool {
	return !b.BookingTimestamp.IsZero()
}

// CanMoveTo reports whether the booking's lead score permits the given
// pipeline stage.
func (b *Booking) CanMoveTo(status ActionStatus) bool {
	for _, s := range AllowedStatuses(b.LeadScore) {
		if s == status {
			return true
		}
	}
	return false
}

// MoveTo transitions the booking to the given stage, enforcing the
// per-score stage set.
func (b *Booking) MoveTo(status ActionStatus) error {
	if !ValidActionStatuses[status] {
		return fmt.Errorf("unknown action status %q", status)
	}
	if !b.CanMoveTo(status) {
		return fmt.Errorf("%s leads cannot move to %q", b.LeadScore, status)
	}
	b.ActionStatus = status
	return nil
}

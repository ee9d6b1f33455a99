package testutil

import (
	"strings"
	"time"

	"github.com/aoemotors/leaddesk/internal/domain"
	"github.com/google/uuid"
)

// Booking options
type BookingOption func(*domain.Booking)

func WithLeadScore(s domain.LeadScore) BookingOption {
	return func(b *domain.Booking) {
		b.LeadScore = s
	}
}

func WithActionStatus(s domain.ActionStatus) BookingOption {
	return func(b *domain.Booking) {
		b.ActionStatus = s
	}
}

func WithLocation(loc string) BookingOption {
	return func(b *domain.Booking) {
		b.Location = loc
	}
}

func WithVehicle(v string) BookingOption {
	return func(b *domain.Booking) {
		b.Vehicle = v
	}
}

func WithTimestamp(t time.Time) BookingOption {
	return func(b *domain.Booking) {
		b.BookingTimestamp = t.UTC()
	}
}

// WithoutTimestamp clears the booking timestamp, simulating a legacy row.
func WithoutTimestamp() BookingOption {
	return func(b *domain.Booking) {
		b.BookingTimestamp = time.Time{}
	}
}

func WithSalesNotes(n string) BookingOption {
	return func(b *domain.Booking) {
		b.SalesNotes = n
	}
}

func WithTimeFrame(tf string) BookingOption {
	return func(b *domain.Booking) {
		b.TimeFrame = tf
	}
}

func WithEmail(e string) BookingOption {
	return func(b *domain.Booking) {
		b.Email = e
	}
}

func testEmail(name string) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return local + "@example.com"
}

func NewTestBooking(name string, opts ...BookingOption) *domain.Booking {
	now := time.Now().UTC()
	b := &domain.Booking{
		ID:               uuid.New().String(),
		FullName:         name,
		Email:            testEmail(name),
		Vehicle:          "AOE Apex",
		BookingDate:      now.Format("2006-01-02"),
		Location:         "New York",
		TimeFrame:        "Within a month",
		LeadScore:        domain.LeadNew,
		ActionStatus:     domain.StatusNewLead,
		BookingTimestamp: now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// EmailLog options
type EmailLogOption func(*domain.EmailLog)

func WithSentAt(t time.Time) EmailLogOption {
	return func(e *domain.EmailLog) {
		e.SentAt = t.UTC()
	}
}

func WithEmailType(typ string) EmailLogOption {
	return func(e *domain.EmailLog) {
		e.EmailType = typ
	}
}

func NewTestEmailLog(bookingID, recipient string, opts ...EmailLogOption) *domain.EmailLog {
	e := &domain.EmailLog{
		ID:        uuid.New().String(),
		BookingID: bookingID,
		Recipient: recipient,
		EmailType: "followup",
		Subject:   "Follow-up on your AOE Apex Test Drive",
		Body:      "Hi,\n\nThanks for coming in.",
		SentAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

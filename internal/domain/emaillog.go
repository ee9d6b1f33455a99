package domain

import "time"

// EmailLog records one outbound email tied to a booking.
type EmailLog struct {
	ID        string
	BookingID string
	Recipient string
	EmailType string
	Subject   string
	Body      string
	SentAt    time.Time
}

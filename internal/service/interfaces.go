package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/aoemotors/leaddesk/internal/domain"
	"github.com/aoemotors/leaddesk/internal/ingest"
	"github.com/aoemotors/leaddesk/internal/outreach"
)

// ErrInvalidInput marks a rejected request value. HTTP handlers map it to a
// client error; everything else surfaces as a server-side failure.
var ErrInvalidInput = errors.New("invalid input")

// ListBookingsRequest narrows the booking list. An empty location or the
// "All Locations" sentinel means no location constraint; From and To bound
// booking_timestamp as the half-open interval [From, To).
type ListBookingsRequest struct {
	Location string
	From     *time.Time
	To       *time.Time
}

type BookingService interface {
	ListBookings(ctx context.Context, req ListBookingsRequest) ([]domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	UpdateField(ctx context.Context, id, field, value string) error
	ImportFile(ctx context.Context, r io.Reader, filename string) (*ingest.ImportResult, error)
	ExportRows(ctx context.Context, location string) ([][]string, error)
}

// AskRequest carries one analytics question. Now, when set, overrides the
// clock used to resolve relative time windows.
type AskRequest struct {
	Question       string
	ActiveLocation string
	Now            *time.Time
}

type AskResponse struct {
	Answer string
}

type AnalyticsService interface {
	Ask(ctx context.Context, req AskRequest) (*AskResponse, error)
}

// SendEmailResult reports what an outreach send did. StatusUpdated is true
// when a welcome email moved the booking to Converted.
type SendEmailResult struct {
	Draft         outreach.Draft
	Recipient     string
	StatusUpdated bool
}

// NotesAnalysis is the classification of a booking's sales notes.
type NotesAnalysis struct {
	Sentiment string
	Relevance string
}

type OutreachService interface {
	DraftEmail(ctx context.Context, bookingID, emailType string) (outreach.Draft, error)
	SendEmail(ctx context.Context, bookingID, emailType string) (*SendEmailResult, error)
	SendTestEmail(ctx context.Context, to string) error
	AnalyzeNotes(ctx context.Context, bookingID string) (*NotesAnalysis, error)
}

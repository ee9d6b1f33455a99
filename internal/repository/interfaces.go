package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aoemotors/leaddesk/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
// Implementations wrap it with entity context; callers test with errors.Is.
var ErrNotFound = errors.New("not found")

// BookingFilter narrows List results. Zero values mean no constraint.
// From and To bound booking_timestamp as the half-open interval [From, To);
// bookings without a usable timestamp never match a bounded filter.
type BookingFilter struct {
	Location string
	From     *time.Time
	To       *time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	UpdateField(ctx context.Context, id, field, value string) error
	Count(ctx context.Context) (int, error)
}

type EmailLogRepository interface {
	Create(ctx context.Context, e *domain.EmailLog) error
	ListByBooking(ctx context.Context, bookingID string) ([]domain.EmailLog, error)
	ListRecent(ctx context.Context, limit int) ([]domain.EmailLog, error)
}

package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aoemotors/leaddesk/internal/db"
	"github.com/aoemotors/leaddesk/internal/domain"
	"github.com/aoemotors/leaddesk/internal/ingest"
	"github.com/aoemotors/leaddesk/internal/repository"
)

// editableFields are the booking columns the dashboard may change after
// ingestion.
var editableFields = map[string]bool{
	"action_status": true,
	"sales_notes":   true,
	"lead_score":    true,
}

// exportHeader matches the ingest package's canonical column names, so an
// exported file re-imports cleanly.
var exportHeader = []string{
	"request_id", "full_name", "email", "vehicle", "current_vehicle",
	"booking_date", "location", "time_frame", "lead_score", "action_status",
	"sales_notes", "lead_score_label", "numeric_lead_score", "booking_timestamp",
}

type bookingService struct {
	bookings repository.BookingRepository
	repos    repository.Factory
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewBookingService(
	bookings repository.BookingRepository,
	repos repository.Factory,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) BookingService {
	return &bookingService{
		bookings: bookings,
		repos:    repos,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *bookingService) ListBookings(ctx context.Context, req ListBookingsRequest) (bookings []domain.Booking, err error) {
	start := time.Now()
	defer func() { s.observer.OnUseCase("bookings.list", time.Since(start).Milliseconds(), err) }()

	filter := repository.BookingFilter{From: req.From, To: req.To}
	if req.Location != "" && !strings.EqualFold(req.Location, domain.AllLocations) {
		filter.Location = req.Location
	}
	return s.bookings.List(ctx, filter)
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *bookingService) UpdateField(ctx context.Context, id, field, value string) (err error) {
	start := time.Now()
	defer func() { s.observer.OnUseCase("bookings.update_field", time.Since(start).Milliseconds(), err) }()

	if !editableFields[field] {
		return fmt.Errorf("%w: field %q is not editable", ErrInvalidInput, field)
	}

	switch field {
	case "action_status":
		status, ok := domain.ParseActionStatus(value)
		if !ok {
			return fmt.Errorf("%w: unknown action status %q", ErrInvalidInput, value)
		}
		booking, getErr := s.bookings.GetByID(ctx, id)
		if getErr != nil {
			return getErr
		}
		// Validate the transition against the lead's score before writing.
		if moveErr := booking.MoveTo(status); moveErr != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, moveErr)
		}
		value = string(status)
	case "lead_score":
		score, ok := domain.ParseLeadScore(value)
		if !ok {
			return fmt.Errorf("%w: unknown lead score %q", ErrInvalidInput, value)
		}
		value = string(score)
	}

	return s.bookings.UpdateField(ctx, id, field, value)
}

// ImportFile parses an uploaded spreadsheet and inserts every valid row in
// one transaction. Rows the parser rejected are reported, not inserted; a
// storage failure rolls the whole file back.
func (s *bookingService) ImportFile(ctx context.Context, r io.Reader, filename string) (result *ingest.ImportResult, err error) {
	start := time.Now()
	defer func() { s.observer.OnUseCase("bookings.import", time.Since(start).Milliseconds(), err) }()

	parsed, err := ingest.ParseFile(r, filename)
	if err != nil {
		// A file we cannot read at all is the caller's mistake, not ours.
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBookings := s.repos.Bookings(tx)
		for i := range parsed.Bookings {
			if createErr := txBookings.Create(ctx, &parsed.Bookings[i]); createErr != nil {
				return fmt.Errorf("inserting booking %s: %w", parsed.Bookings[i].ID, createErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ingest.ImportResult{
		Inserted:  len(parsed.Bookings),
		Skipped:   len(parsed.RowErrors),
		RowErrors: parsed.RowErrors,
	}, nil
}

// ExportRows renders the header plus one row per booking, as strings ready
// for a spreadsheet writer.
func (s *bookingService) ExportRows(ctx context.Context, location string) (rows [][]string, err error) {
	start := time.Now()
	defer func() { s.observer.OnUseCase("bookings.export", time.Since(start).Milliseconds(), err) }()

	filter := repository.BookingFilter{}
	if location != "" && !strings.EqualFold(location, domain.AllLocations) {
		filter.Location = location
	}
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows = make([][]string, 0, len(bookings)+1)
	rows = append(rows, exportHeader)
	for i := range bookings {
		b := &bookings[i]
		ts := ""
		if b.HasTimestamp() {
			ts = b.BookingTimestamp.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			b.ID, b.FullName, b.Email, b.Vehicle, b.CurrentVehicle,
			b.BookingDate, b.Location, b.TimeFrame, string(b.LeadScore), string(b.ActionStatus),
			b.SalesNotes, b.LeadScoreLabel, strconv.Itoa(b.NumericLeadScore), ts,
		})
	}
	return rows, nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aoemotors/leaddesk/internal/db"
	"github.com/aoemotors/leaddesk/internal/domain"
	"github.com/aoemotors/leaddesk/internal/mail"
	"github.com/aoemotors/leaddesk/internal/outreach"
	"github.com/aoemotors/leaddesk/internal/repository"
)

const (
	testEmailSubject = "AOE Dashboard Test Email"
	testEmailBody    = "Test"
)

type outreachService struct {
	bookings repository.BookingRepository
	repos    repository.Factory
	uow      db.UnitOfWork
	sender   mail.Sender
	notes    *outreach.NotesAnalyzer
	observer UseCaseObserver
}

func NewOutreachService(
	bookings repository.BookingRepository,
	repos repository.Factory,
	uow db.UnitOfWork,
	sender mail.Sender,
	notes *outreach.NotesAnalyzer,
	observers ...UseCaseObserver,
) OutreachService {
	if notes == nil {
		notes = outreach.NewNotesAnalyzer(nil)
	}
	return &outreachService{
		bookings: bookings,
		repos:    repos,
		uow:      uow,
		sender:   sender,
		notes:    notes,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *outreachService) DraftEmail(ctx context.Context, bookingID, emailType string) (outreach.Draft, error) {
	typ, ok := outreach.ParseEmailType(emailType)
	if !ok {
		return outreach.Draft{}, fmt.Errorf("%w: unknown email type %q", ErrInvalidInput, emailType)
	}
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return outreach.Draft{}, err
	}
	return outreach.Compose(typ, booking)
}

// SendEmail drafts, delivers, and records an outreach email. The email-log
// insert and the welcome-email status update commit in one transaction, so
// a recorded send and its side effect never disagree.
func (s *outreachService) SendEmail(ctx context.Context, bookingID, emailType string) (result *SendEmailResult, err error) {
	start := time.Now()
	defer func() { s.observer.OnUseCase("outreach.send", time.Since(start).Milliseconds(), err) }()

	typ, ok := outreach.ParseEmailType(emailType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown email type %q", ErrInvalidInput, emailType)
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	draft, err := outreach.Compose(typ, booking)
	if err != nil {
		return nil, err
	}

	if err = s.sender.Send(ctx, booking.Email, draft.Subject, draft.Body); err != nil {
		return nil, fmt.Errorf("sending %s email: %w", typ, err)
	}

	statusUpdated := false
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		entry := &domain.EmailLog{
			ID:        uuid.New().String(),
			BookingID: booking.ID,
			Recipient: booking.Email,
			EmailType: string(typ),
			Subject:   draft.Subject,
			Body:      draft.Body,
			SentAt:    time.Now().UTC(),
		}
		if logErr := s.repos.EmailLogs(tx).Create(ctx, entry); logErr != nil {
			return logErr
		}
		if typ == outreach.EmailWelcome && booking.ActionStatus != domain.StatusConverted {
			if upErr := s.repos.Bookings(tx).UpdateField(ctx, booking.ID, "action_status", string(domain.StatusConverted)); upErr != nil {
				return upErr
			}
			statusUpdated = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("recording %s email: %w", typ, err)
	}

	return &SendEmailResult{Draft: draft, Recipient: booking.Email, StatusUpdated: statusUpdated}, nil
}

func (s *outreachService) SendTestEmail(ctx context.Context, to string) (err error) {
	start := time.Now()
	defer func() { s.observer.OnUseCase("outreach.test_send", time.Since(start).Milliseconds(), err) }()

	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidInput)
	}
	return s.sender.Send(ctx, to, testEmailSubject, testEmailBody)
}

func (s *outreachService) AnalyzeNotes(ctx context.Context, bookingID string) (analysis *NotesAnalysis, err error) {
	start := time.Now()
	defer func() { s.observer.OnUseCase("outreach.analyze_notes", time.Since(start).Milliseconds(), err) }()

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &NotesAnalysis{
		Sentiment: s.notes.Sentiment(ctx, booking.SalesNotes),
		Relevance: s.notes.Relevance(ctx, booking.SalesNotes),
	}, nil
}

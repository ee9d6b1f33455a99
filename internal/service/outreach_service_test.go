package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoemotors/leaddesk/internal/db"
	"github.com/aoemotors/leaddesk/internal/domain"
	"github.com/aoemotors/leaddesk/internal/repository"
	"github.com/aoemotors/leaddesk/internal/testutil"
)

// stubSender captures outgoing mail instead of delivering it.
type stubSender struct {
	mu       sync.Mutex
	sent     []sentMail
	failWith error
}

type sentMail struct {
	to, subject, body string
}

func (s *stubSender) Send(_ context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (s *stubSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *stubSender) last() sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent[len(s.sent)-1]
}

type outreachFixture struct {
	svc       OutreachService
	sender    *stubSender
	database  *sql.DB
	bookings  repository.BookingRepository
	emailLogs repository.EmailLogRepository
}

func newOutreachFixture(t *testing.T, uow db.UnitOfWork) *outreachFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	if uow == nil {
		uow = testutil.NewTestUoW(database)
	}
	sender := &stubSender{}
	bookings := repository.NewSQLiteBookingRepo(database)
	return &outreachFixture{
		svc:       NewOutreachService(bookings, repository.SQLiteFactory{}, uow, sender, nil),
		sender:    sender,
		database:  database,
		bookings:  bookings,
		emailLogs: repository.NewSQLiteEmailLogRepo(database),
	}
}

func TestDraftEmail_RendersWithoutSending(t *testing.T) {
	fx := newOutreachFixture(t, nil)
	ctx := context.Background()

	b := testutil.NewTestBooking("Ava Chen", testutil.WithVehicle("AOE Volt"))
	testutil.SeedBookings(t, fx.database, b)

	draft, err := fx.svc.DraftEmail(ctx, b.ID, "followup")

	require.NoError(t, err)
	assert.Equal(t, "Follow-up on your AOE Volt Test Drive", draft.Subject)
	assert.Contains(t, draft.Body, "Ava Chen")
	assert.Zero(t, fx.sender.count(), "drafting must not send")
}

func TestDraftEmail_UnknownType(t *testing.T) {
	fx := newOutreachFixture(t, nil)

	_, err := fx.svc.DraftEmail(context.Background(), "any", "newsletter")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDraftEmail_UnknownBooking(t *testing.T) {
	fx := newOutreachFixture(t, nil)

	_, err := fx.svc.DraftEmail(context.Background(), "no-such-id", "followup")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSendEmail_DeliversAndLogs(t *testing.T) {
	fx := newOutreachFixture(t, nil)
	ctx := context.Background()

	b := testutil.NewTestBooking("Ava Chen", testutil.WithLeadScore(domain.LeadHot))
	testutil.SeedBookings(t, fx.database, b)

	result, err := fx.svc.SendEmail(ctx, b.ID, "followup")

	require.NoError(t, err)
	assert.Equal(t, b.Email, result.Recipient)
	assert.False(t, result.StatusUpdated)
	require.Equal(t, 1, fx.sender.count())
	assert.Equal(t, b.Email, fx.sender.last().to)

	logs, err := fx.emailLogs.ListByBooking(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "followup", logs[0].EmailType)
	assert.Equal(t, result.Draft.Subject, logs[0].Subject)

	got, err := fx.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNewLead, got.ActionStatus, "follow-up must not touch the pipeline stage")
}

func TestSendEmail_WelcomeConvertsBooking(t *testing.T) {
	fx := newOutreachFixture(t, nil)
	ctx := context.Background()

	b := testutil.NewTestBooking("Ava Chen", testutil.WithLeadScore(domain.LeadWarm))
	testutil.SeedBookings(t, fx.database, b)

	result, err := fx.svc.SendEmail(ctx, b.ID, "welcome")

	require.NoError(t, err)
	assert.True(t, result.StatusUpdated)

	got, err := fx.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConverted, got.ActionStatus)

	logs, err := fx.emailLogs.ListByBooking(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "welcome", logs[0].EmailType)
}

func TestSendEmail_WelcomeToConvertedBookingOnlyLogs(t *testing.T) {
	fx := newOutreachFixture(t, nil)
	ctx := context.Background()

	b := testutil.NewTestBooking("Ava Chen", testutil.WithActionStatus(domain.StatusConverted))
	testutil.SeedBookings(t, fx.database, b)

	result, err := fx.svc.SendEmail(ctx, b.ID, "welcome")

	require.NoError(t, err)
	assert.False(t, result.StatusUpdated)

	logs, err := fx.emailLogs.ListByBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestSendEmail_SenderFailureLeavesNoTrace(t *testing.T) {
	fx := newOutreachFixture(t, nil)
	fx.sender.failWith = errors.New("smtp down")
	ctx := context.Background()

	b := testutil.NewTestBooking("Ava Chen")
	testutil.SeedBookings(t, fx.database, b)

	_, err := fx.svc.SendEmail(ctx, b.ID, "welcome")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")

	logs, err := fx.emailLogs.ListByBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)

	got, err := fx.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNewLead, got.ActionStatus)
}

func TestSendEmail_LogAndStatusCommitTogether(t *testing.T) {
	database := testutil.NewTestDB(t)
	// Exec calls inside the tx: #1 = email log insert, #2 = status update.
	// Failing #2 must roll back #1 as well.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    fmt.Errorf("injected status update failure"),
	}
	sender := &stubSender{}
	bookings := repository.NewSQLiteBookingRepo(database)
	emailLogs := repository.NewSQLiteEmailLogRepo(database)
	svc := NewOutreachService(bookings, repository.SQLiteFactory{}, failUoW, sender, nil)
	ctx := context.Background()

	b := testutil.NewTestBooking("Ava Chen")
	testutil.SeedBookings(t, database, b)

	_, err := svc.SendEmail(ctx, b.ID, "welcome")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected status update failure")

	logs, err := emailLogs.ListByBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, logs, "the log insert must roll back with the status update")

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNewLead, got.ActionStatus)
}

func TestSendEmail_UnknownType(t *testing.T) {
	fx := newOutreachFixture(t, nil)

	_, err := fx.svc.SendEmail(context.Background(), "any", "spam")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, fx.sender.count())
}

func TestSendTestEmail(t *testing.T) {
	fx := newOutreachFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, fx.svc.SendTestEmail(ctx, "owner@example.com"))

	require.Equal(t, 1, fx.sender.count())
	got := fx.sender.last()
	assert.Equal(t, "owner@example.com", got.to)
	assert.Equal(t, "AOE Dashboard Test Email", got.subject)
	assert.Equal(t, "Test", got.body)
}

func TestSendTestEmail_RequiresRecipient(t *testing.T) {
	fx := newOutreachFixture(t, nil)

	err := fx.svc.SendTestEmail(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, fx.sender.count())
}

func TestAnalyzeNotes_DefaultsWithoutClassifier(t *testing.T) {
	fx := newOutreachFixture(t, nil)
	ctx := context.Background()

	b := testutil.NewTestBooking("Ava Chen", testutil.WithSalesNotes("very keen, wants financing"))
	testutil.SeedBookings(t, fx.database, b)

	analysis, err := fx.svc.AnalyzeNotes(ctx, b.ID)

	require.NoError(t, err)
	assert.Equal(t, "NEUTRAL", analysis.Sentiment)
	assert.Equal(t, "RELEVANT", analysis.Relevance)
}

func TestAnalyzeNotes_UnknownBooking(t *testing.T) {
	fx := newOutreachFixture(t, nil)

	_, err := fx.svc.AnalyzeNotes(context.Background(), "no-such-id")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aoemotors/leaddesk/internal/analytics"
	"github.com/aoemotors/leaddesk/internal/repository"
)

type analyticsService struct {
	bookings repository.BookingRepository
	strategy analytics.Strategy
	vocab    analytics.Vocabulary
	observer UseCaseObserver
}

// NewAnalyticsService answers questions with the given intent strategy over
// the current booking snapshot.
func NewAnalyticsService(
	bookings repository.BookingRepository,
	strategy analytics.Strategy,
	observers ...UseCaseObserver,
) AnalyticsService {
	return &analyticsService{
		bookings: bookings,
		strategy: strategy,
		vocab:    analytics.DefaultVocabulary(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *analyticsService) Ask(ctx context.Context, req AskRequest) (resp *AskResponse, err error) {
	start := time.Now()
	defer func() { s.observer.OnUseCase("analytics.ask", time.Since(start).Milliseconds(), err) }()

	// The interpreter sees the whole snapshot: a location named in the
	// question must be able to override the caller's active filter.
	records, err := s.bookings.List(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading bookings: %w", err)
	}

	var opts []analytics.Option
	if req.Now != nil {
		at := req.Now.UTC()
		opts = append(opts, analytics.WithClock(func() time.Time { return at }))
	}
	interp := analytics.NewInterpreter(s.strategy, s.vocab, opts...)

	return &AskResponse{Answer: interp.Interpret(ctx, req.Question, records, req.ActiveLocation)}, nil
}

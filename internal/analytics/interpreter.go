package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/aoemotors/leaddesk/internal/domain"
)

// Interpreter answers natural-language analytics questions over an
// in-memory booking snapshot. It never mutates the snapshot and always
// returns a display string; questions it cannot understand get
// FallbackMessage rather than an error or a made-up count.
type Interpreter struct {
	strategy Strategy
	vocab    Vocabulary
	now      func() time.Time
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock overrides the time source used to resolve time windows.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.now = now }
}

// NewInterpreter creates an Interpreter that extracts intents with strategy
// and resolves metric keys through vocab.
func NewInterpreter(strategy Strategy, vocab Vocabulary, opts ...Option) *Interpreter {
	interp := &Interpreter{strategy: strategy, vocab: vocab, now: time.Now}
	for _, opt := range opts {
		opt(interp)
	}
	return interp
}

// Interpret answers question over records. activeLocation is the caller's
// current location filter; a location named in the question overrides it,
// and the AllLocations sentinel from either side lifts the constraint.
func (i *Interpreter) Interpret(ctx context.Context, question string, records []domain.Booking, activeLocation string) string {
	if strings.TrimSpace(question) == "" {
		return FallbackMessage
	}

	intent, ok := i.strategy.Extract(ctx, question)
	if !ok {
		return FallbackMessage
	}

	location := intent.Location
	if location == "" {
		location = activeLocation
	}

	count := i.count(records, intent, location)
	return ComposeAnswer(count, i.vocab.DescriptionFor(intent.Metric), intent.Window)
}

// count intersects the metric, window, and location predicates over
// records. The predicates commute; a booking is counted only when it
// passes all three.
func (i *Interpreter) count(records []domain.Booking, intent QueryIntent, location string) int {
	rule, _ := i.vocab.RuleFor(intent.Metric) // the zero rule counts everything
	start, end, bounded := intent.Window.Bounds(i.now())
	byLocation := location != "" && !strings.EqualFold(location, domain.AllLocations)

	n := 0
	for idx := range records {
		b := &records[idx]
		if !matchesRule(b, rule) {
			continue
		}
		if bounded {
			// Bookings without a usable timestamp stay out of windowed
			// counts; all-time counts keep them.
			if !b.HasTimestamp() {
				continue
			}
			if b.BookingTimestamp.Before(start) || !b.BookingTimestamp.Before(end) {
				continue
			}
		}
		if byLocation && !strings.EqualFold(b.Location, location) {
			continue
		}
		n++
	}
	return n
}

func matchesRule(b *domain.Booking, rule MetricRule) bool {
	switch rule.Field {
	case FieldLeadScore:
		return string(b.LeadScore) == rule.Value
	case FieldActionStatus:
		return string(b.ActionStatus) == rule.Value
	default:
		return true
	}
}

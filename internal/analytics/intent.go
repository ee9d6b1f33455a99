package analytics

import (
	"context"
	"time"
)

// WindowKind classifies the time constraint extracted from a question.
type WindowKind string

const (
	WindowAllTime    WindowKind = "all_time"
	WindowToday      WindowKind = "today"
	WindowYesterday  WindowKind = "yesterday"
	WindowLastDays   WindowKind = "last_days"
	WindowLastWeeks  WindowKind = "last_weeks"
	WindowLastMonths WindowKind = "last_months"
)

// TimeWindow is a symbolic time constraint. It stays symbolic until
// aggregation so the same intent resolves correctly under any clock.
type TimeWindow struct {
	Kind WindowKind
	N    int // count for the last-N kinds, unused otherwise
}

// Bounds resolves the window against now into concrete UTC instants. The
// range is half-open: a timestamp t is inside when start <= t < end. Weeks
// count as 7 days and months as a fixed 30. bounded is false for all-time,
// which applies no constraint.
func (w TimeWindow) Bounds(now time.Time) (start, end time.Time, bounded bool) {
	now = now.UTC()
	switch w.Kind {
	case WindowToday:
		return startOfDay(now), now, true
	case WindowYesterday:
		today := startOfDay(now)
		return today.AddDate(0, 0, -1), today, true
	case WindowLastDays:
		return now.AddDate(0, 0, -w.N), now, true
	case WindowLastWeeks:
		return now.AddDate(0, 0, -7*w.N), now, true
	case WindowLastMonths:
		return now.AddDate(0, 0, -30*w.N), now, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// QueryIntent is the structured reading of one question. It lives for a
// single Interpret call and is never persisted.
type QueryIntent struct {
	Metric   string
	Window   TimeWindow
	Location string // canonical location name, "" when none was named
}

// Strategy turns a raw question into a QueryIntent. ok is false when the
// question could not be understood; callers then fall back to a fixed
// message rather than answering with a made-up count.
type Strategy interface {
	Extract(ctx context.Context, question string) (QueryIntent, bool)
}

package analytics

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// RuleStrategy extracts query intents with deterministic keyword and
// pattern matching. It performs no I/O and ignores its context, so it is
// safe on any request path and trivially testable.
type RuleStrategy struct {
	vocab Vocabulary
}

// NewRuleStrategy creates a RuleStrategy over the given vocabulary.
func NewRuleStrategy(vocab Vocabulary) *RuleStrategy {
	return &RuleStrategy{vocab: vocab}
}

var (
	reLastDays   = regexp.MustCompile(`last\s+(\d+)\s+days?`)
	reLastWeeks  = regexp.MustCompile(`last\s+(\d+)\s+weeks?`)
	reLastMonths = regexp.MustCompile(`last\s+(\d+)\s+months?`)
)

// Extract scans question for a metric keyword, a timeframe, and a location.
// A question yielding none of the three is unrecognized; one yielding any
// of them defaults the rest (metric total, all-time, no location).
func (s *RuleStrategy) Extract(_ context.Context, question string) (QueryIntent, bool) {
	text := strings.ToLower(strings.TrimSpace(question))
	if text == "" {
		return QueryIntent{}, false
	}

	metric, metricFound := s.matchMetric(text)
	window, windowFound := matchWindow(text)
	location := s.matchLocation(text)

	if !metricFound && !windowFound && location == "" {
		return QueryIntent{}, false
	}

	return QueryIntent{Metric: metric, Window: window, Location: location}, true
}

// matchMetric walks the vocabulary in table order; the first keyword found
// anywhere in the text wins. Table order, not position in the text, breaks
// ties between keywords.
func (s *RuleStrategy) matchMetric(text string) (string, bool) {
	for _, rule := range s.vocab.Metrics {
		if strings.Contains(text, rule.Keyword) {
			return rule.Metric, true
		}
	}
	return MetricTotal, false
}

// matchWindow applies the timeframe patterns in precedence order: today,
// yesterday, then the relative last-N forms. The first match wins and the
// rest of the text is ignored.
func matchWindow(text string) (TimeWindow, bool) {
	switch {
	case strings.Contains(text, "today"):
		return TimeWindow{Kind: WindowToday}, true
	case strings.Contains(text, "yesterday"):
		return TimeWindow{Kind: WindowYesterday}, true
	}
	if m := reLastDays.FindStringSubmatch(text); m != nil {
		return TimeWindow{Kind: WindowLastDays, N: windowCount(m[1])}, true
	}
	if m := reLastWeeks.FindStringSubmatch(text); m != nil {
		return TimeWindow{Kind: WindowLastWeeks, N: windowCount(m[1])}, true
	}
	if m := reLastMonths.FindStringSubmatch(text); m != nil {
		return TimeWindow{Kind: WindowLastMonths, N: windowCount(m[1])}, true
	}
	return TimeWindow{Kind: WindowAllTime}, false
}

// windowCount parses the digits captured by a last-N pattern. Counts too
// large for an int collapse to zero, giving an empty window instead of
// arithmetic around garbage bounds.
func windowCount(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

func (s *RuleStrategy) matchLocation(text string) string {
	for _, loc := range s.vocab.Locations {
		if strings.Contains(text, strings.ToLower(loc)) {
			return loc
		}
	}
	return ""
}

package analytics

import (
	"strings"

	"github.com/aoemotors/leaddesk/internal/domain"
)

// Canonical metric keys. These are the only values a Strategy may put in
// QueryIntent.Metric.
const (
	MetricTotal     = "total"
	MetricHot       = "hot"
	MetricWarm      = "warm"
	MetricCold      = "cold"
	MetricLost      = "lost"
	MetricConverted = "converted"
	MetricFollowUp  = "follow up"
)

// MetricField names the booking field a metric rule filters on. FieldNone
// counts every booking.
type MetricField string

const (
	FieldNone         MetricField = ""
	FieldLeadScore    MetricField = "lead_score"
	FieldActionStatus MetricField = "action_status"
)

// MetricRule maps one question keyword to a countable booking subset.
type MetricRule struct {
	Keyword     string      // substring that triggers this rule
	Metric      string      // canonical metric key
	Field       MetricField // booking field the rule filters on
	Value       string      // required field value
	Description string      // noun phrase used in answers
}

// Vocabulary is the interpreter's configuration table: the metric rules in
// priority order and the known dealership locations. Extending what the
// interpreter understands means editing this table, not the matching code.
type Vocabulary struct {
	// Metrics is scanned in order; the first rule whose keyword appears
	// anywhere in the question wins, regardless of keyword position.
	Metrics []MetricRule

	// Locations holds the recognizable location names, the AllLocations
	// sentinel included. Matching is case-insensitive containment.
	Locations []string
}

// DefaultVocabulary returns the dashboard's standard table. Category rules
// outrank the total aliases so that "total leads lost" reads as a lost-lead
// count rather than a grand total.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Metrics: []MetricRule{
			{Keyword: "hot", Metric: MetricHot, Field: FieldLeadScore, Value: string(domain.LeadHot), Description: "hot leads"},
			{Keyword: "warm", Metric: MetricWarm, Field: FieldLeadScore, Value: string(domain.LeadWarm), Description: "warm leads"},
			{Keyword: "cold", Metric: MetricCold, Field: FieldLeadScore, Value: string(domain.LeadCold), Description: "cold leads"},
			{Keyword: "lost", Metric: MetricLost, Field: FieldActionStatus, Value: string(domain.StatusLost), Description: "lost leads"},
			{Keyword: "converted", Metric: MetricConverted, Field: FieldActionStatus, Value: string(domain.StatusConverted), Description: "converted leads"},
			{Keyword: "follow up", Metric: MetricFollowUp, Field: FieldActionStatus, Value: string(domain.StatusFollowUp), Description: "leads requiring follow-up"},
			{Keyword: "total", Metric: MetricTotal, Field: FieldNone, Description: "leads"},
			{Keyword: "leads", Metric: MetricTotal, Field: FieldNone, Description: "leads"},
			{Keyword: "bookings", Metric: MetricTotal, Field: FieldNone, Description: "leads"},
			{Keyword: "how many", Metric: MetricTotal, Field: FieldNone, Description: "leads"},
		},
		Locations: append([]string{domain.AllLocations}, domain.Locations...),
	}
}

// RuleFor returns the first rule carrying the given metric key.
func (v Vocabulary) RuleFor(metric string) (MetricRule, bool) {
	for _, rule := range v.Metrics {
		if rule.Metric == metric {
			return rule, true
		}
	}
	return MetricRule{}, false
}

// DescriptionFor returns the answer noun phrase for a metric key, falling
// back to the total phrase for unknown keys.
func (v Vocabulary) DescriptionFor(metric string) string {
	if rule, ok := v.RuleFor(metric); ok {
		return rule.Description
	}
	return "leads"
}

// ValidMetric reports whether metric is a key in the table.
func (v Vocabulary) ValidMetric(metric string) bool {
	_, ok := v.RuleFor(metric)
	return ok
}

// MetricKeys returns the distinct metric keys in table order.
func (v Vocabulary) MetricKeys() []string {
	seen := make(map[string]bool, len(v.Metrics))
	keys := make([]string, 0, len(v.Metrics))
	for _, rule := range v.Metrics {
		if seen[rule.Metric] {
			continue
		}
		seen[rule.Metric] = true
		keys = append(keys, rule.Metric)
	}
	return keys
}

// CanonicalLocation resolves name against the known locations without
// case sensitivity and returns the canonical spelling.
func (v Vocabulary) CanonicalLocation(name string) (string, bool) {
	for _, loc := range v.Locations {
		if strings.EqualFold(loc, name) {
			return loc, true
		}
	}
	return "", false
}

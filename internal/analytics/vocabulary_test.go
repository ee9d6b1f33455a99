package analytics

import (
	"testing"

	"github.com/aoemotors/leaddesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabulary_CategoryRulesOutrankTotalAliases(t *testing.T) {
	vocab := DefaultVocabulary()

	firstTotal := -1
	lastCategory := -1
	for i, rule := range vocab.Metrics {
		if rule.Metric == MetricTotal && firstTotal == -1 {
			firstTotal = i
		}
		if rule.Metric != MetricTotal {
			lastCategory = i
		}
	}

	require.NotEqual(t, -1, firstTotal)
	require.NotEqual(t, -1, lastCategory)
	assert.Greater(t, firstTotal, lastCategory,
		"every category rule must precede the total aliases")
}

func TestDefaultVocabulary_RuleFor(t *testing.T) {
	vocab := DefaultVocabulary()

	rule, ok := vocab.RuleFor(MetricHot)
	require.True(t, ok)
	assert.Equal(t, FieldLeadScore, rule.Field)
	assert.Equal(t, string(domain.LeadHot), rule.Value)
	assert.Equal(t, "hot leads", rule.Description)

	rule, ok = vocab.RuleFor(MetricFollowUp)
	require.True(t, ok)
	assert.Equal(t, FieldActionStatus, rule.Field)
	assert.Equal(t, string(domain.StatusFollowUp), rule.Value)
	assert.Equal(t, "leads requiring follow-up", rule.Description)

	rule, ok = vocab.RuleFor(MetricTotal)
	require.True(t, ok)
	assert.Equal(t, FieldNone, rule.Field)

	_, ok = vocab.RuleFor("velocity")
	assert.False(t, ok)
}

func TestDefaultVocabulary_DescriptionFor(t *testing.T) {
	vocab := DefaultVocabulary()

	assert.Equal(t, "converted leads", vocab.DescriptionFor(MetricConverted))
	assert.Equal(t, "leads", vocab.DescriptionFor(MetricTotal))
	assert.Equal(t, "leads", vocab.DescriptionFor("velocity"), "unknown keys fall back to the total phrase")
}

func TestDefaultVocabulary_MetricKeysDistinctInTableOrder(t *testing.T) {
	keys := DefaultVocabulary().MetricKeys()

	assert.Equal(t, []string{
		MetricHot, MetricWarm, MetricCold,
		MetricLost, MetricConverted, MetricFollowUp,
		MetricTotal,
	}, keys, "total aliases collapse to one key")
}

func TestDefaultVocabulary_CanonicalLocation(t *testing.T) {
	vocab := DefaultVocabulary()

	loc, ok := vocab.CanonicalLocation("chicago")
	require.True(t, ok)
	assert.Equal(t, "Chicago", loc)

	loc, ok = vocab.CanonicalLocation("ALL LOCATIONS")
	require.True(t, ok)
	assert.Equal(t, domain.AllLocations, loc)

	_, ok = vocab.CanonicalLocation("Boston")
	assert.False(t, ok)
}

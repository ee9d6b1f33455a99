package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/aoemotors/leaddesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences for stripping before comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestScorePill(t *testing.T) {
	tests := []struct {
		score domain.LeadScore
		want  string
	}{
		{domain.LeadHot, "● Hot"},
		{domain.LeadWarm, "● Warm"},
		{domain.LeadCold, "● Cold"},
		{domain.LeadNew, "● New"},
		{domain.LeadScore("Tepid"), "Tepid"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripANSI(ScorePill(tt.score)))
	}
}

func TestStatusPill(t *testing.T) {
	tests := []struct {
		status domain.ActionStatus
		want   string
	}{
		{domain.StatusNewLead, "○ New Lead"},
		{domain.StatusCallScheduled, "◷ Call Scheduled"},
		{domain.StatusFollowUp, "● Follow Up Required"},
		{domain.StatusConverted, "✔ Converted"},
		{domain.StatusLost, "✖ Lost"},
		{domain.ActionStatus("Paused"), "Paused"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripANSI(StatusPill(tt.status)))
	}
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "deadbeef", stripANSI(TruncID("deadbeef-0000-1111-2222-333344445555")))
	assert.Equal(t, "short", stripANSI(TruncID("short")))
}

func TestBookedStamp(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "--", stripANSI(BookedStamp(time.Time{})))
	assert.Equal(t, "Just now", BookedStamp(now.Add(-10*time.Second)))
	assert.Equal(t, "5m ago", BookedStamp(now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", BookedStamp(now.Add(-3*time.Hour)))

	old := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 9, 2024", BookedStamp(old))
}

func TestHeader(t *testing.T) {
	got := stripANSI(Header("Draft"))
	assert.Equal(t, "DRAFT\n─────", got)
}

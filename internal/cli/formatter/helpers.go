package formatter

import (
	"fmt"
	"time"

	"github.com/aoemotors/leaddesk/internal/domain"
)

// ScorePill returns a colored lead-score indicator such as "● Hot".
func ScorePill(score domain.LeadScore) string {
	switch score {
	case domain.LeadHot:
		return StyleRed.Render("● Hot")
	case domain.LeadWarm:
		return StyleYellow.Render("● Warm")
	case domain.LeadCold:
		return StyleBlue.Render("● Cold")
	case domain.LeadNew:
		return StylePurple.Render("● New")
	default:
		return StyleDim.Render(string(score))
	}
}

// StatusPill returns a colored pipeline-stage indicator for a booking.
func StatusPill(status domain.ActionStatus) string {
	switch status {
	case domain.StatusNewLead:
		return StyleBlue.Render("○ New Lead")
	case domain.StatusCallScheduled:
		return StyleYellow.Render("◷ Call Scheduled")
	case domain.StatusFollowUp:
		return StyleYellow.Render("● Follow Up Required")
	case domain.StatusConverted:
		return StyleGreen.Render("✔ Converted")
	case domain.StatusLost:
		return StyleDim.Render("✖ Lost")
	default:
		return StyleDim.Render(string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// BookedStamp renders a booking timestamp for table display. Legacy rows
// without a usable instant render as a dimmed placeholder.
func BookedStamp(t time.Time) string {
	if t.IsZero() {
		return StyleDim.Render("--")
	}
	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return HumanDate(t)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDate(t)
	}
}

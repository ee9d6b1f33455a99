package repository

import "time"

// formatTimestamp converts a time.Time to its stored SQLite form. The zero
// time is stored as the empty string so legacy rows and failed parses round
// trip unchanged.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// editableBookingColumns is the set of booking columns the dashboard may
// update in place. Everything else is written once at ingestion.
var editableBookingColumns = map[string]bool{
	"action_status": true,
	"sales_notes":   true,
	"lead_score":    true,
}

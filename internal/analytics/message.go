package analytics

import "fmt"

// FallbackMessage is returned verbatim for any question the interpreter
// cannot understand, including LLM extraction failures. It suggests shapes
// of question that are known to work.
const FallbackMessage = "Sorry, I couldn't understand that question. Try asking about hot leads, converted leads, or bookings in the last 7 days."

// ComposeAnswer formats the dashboard answer line for a resolved count.
func ComposeAnswer(count int, description string, window TimeWindow) string {
	return fmt.Sprintf("📊 You have **%d** %s%s.", count, description, timePhrase(window))
}

// timePhrase renders the window suffix. The last-N forms keep the plural
// unit word whatever N is.
func timePhrase(w TimeWindow) string {
	switch w.Kind {
	case WindowToday:
		return " today"
	case WindowYesterday:
		return " yesterday"
	case WindowLastDays:
		return fmt.Sprintf(" in the last %d days", w.N)
	case WindowLastWeeks:
		return fmt.Sprintf(" in the last %d weeks", w.N)
	case WindowLastMonths:
		return fmt.Sprintf(" in the last %d months", w.N)
	default:
		return " of all time"
	}
}

package analytics

import (
	"fmt"
	"strconv"
	"strings"
)

// intentSystemPromptTemplate instructs the LLM to classify one analytics
// question into the interpreter's JSON shape. The allowed metric and
// location lists are rendered from the vocabulary so the model can only
// answer in terms the interpreter accepts.
const intentSystemPromptTemplate = `You are a query parser for a car dealership sales-lead dashboard.
Your task is to convert one analytics question into a structured JSON object.

You must output ONLY a JSON object with these exact fields:
- metric: one of [%s] ("total" when no specific lead category is asked about)
- time_unit: one of ["", "today", "yesterday", "day", "week", "month"] ("" when the question names no timeframe)
- time_n: integer count for the "day", "week", and "month" units ("in the last 3 weeks" is time_unit "week", time_n 3); 0 otherwise
- location: one of [%s], or "" when the question names no location
- confidence: number 0 to 1 (how sure you are)
- recognized: boolean (false when the question is not about counting leads or bookings)

CRITICAL RULES:
1. Never invent metrics or locations outside the allowed lists
2. recognized MUST be false for greetings, gibberish, and questions unrelated to leads or bookings
3. Use strict JSON numeric literals (e.g., 0.85, never .85)
4. Output ONLY the JSON object, no markdown, no explanation`

// buildIntentSystemPrompt renders the instruction sent with every question.
func buildIntentSystemPrompt(vocab Vocabulary) string {
	return fmt.Sprintf(intentSystemPromptTemplate,
		quoteList(vocab.MetricKeys()),
		quoteList(vocab.Locations))
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return strings.Join(quoted, ", ")
}

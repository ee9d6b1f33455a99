package analytics

import (
	"context"
	"fmt"

	"github.com/aoemotors/leaddesk/internal/llm"
)

// llmIntent is the JSON shape the model must return.
type llmIntent struct {
	Metric     string  `json:"metric"`
	TimeUnit   string  `json:"time_unit"`
	TimeN      int     `json:"time_n"`
	Location   string  `json:"location"`
	Confidence float64 `json:"confidence"`
	Recognized bool    `json:"recognized"`
}

// DefaultConfidenceThreshold is the confidence floor below which a model
// parse is discarded.
const DefaultConfidenceThreshold = 0.5

// LLMStrategy extracts query intents by asking a chat-completion model to
// classify the question against the vocabulary. Remote failures, malformed
// output, off-vocabulary values, and low-confidence parses all read as
// "not understood"; the caller then answers with its fixed fallback message
// and the user never sees an error.
type LLMStrategy struct {
	client    llm.Client
	vocab     Vocabulary
	threshold float64
}

// NewLLMStrategy creates an LLMStrategy. Parses whose confidence falls
// below threshold are discarded.
func NewLLMStrategy(client llm.Client, vocab Vocabulary, threshold float64) *LLMStrategy {
	return &LLMStrategy{client: client, vocab: vocab, threshold: threshold}
}

// Extract sends question to the model and validates the reply against the
// vocabulary before trusting it.
func (s *LLMStrategy) Extract(ctx context.Context, question string) (QueryIntent, bool) {
	resp, err := s.client.Complete(ctx, llm.CompletionRequest{
		Task:         llm.TaskIntent,
		SystemPrompt: buildIntentSystemPrompt(s.vocab),
		UserPrompt:   question,
	})
	if err != nil {
		return QueryIntent{}, false
	}

	parsed, err := llm.ExtractJSON[llmIntent](resp.Text, s.validate)
	if err != nil {
		return QueryIntent{}, false
	}
	if !parsed.Recognized || parsed.Confidence < s.threshold {
		return QueryIntent{}, false
	}

	return s.toQueryIntent(parsed), true
}

// validate rejects model output that strays from the vocabulary. An empty
// metric or location is allowed; a wrong one is not.
func (s *LLMStrategy) validate(p llmIntent) error {
	if p.Metric != "" && !s.vocab.ValidMetric(p.Metric) {
		return fmt.Errorf("unknown metric %q", p.Metric)
	}
	switch p.TimeUnit {
	case "", "today", "yesterday":
	case "day", "week", "month":
		if p.TimeN < 1 {
			return fmt.Errorf("time_n must be positive for unit %q, got %d", p.TimeUnit, p.TimeN)
		}
	default:
		return fmt.Errorf("unknown time_unit %q", p.TimeUnit)
	}
	if p.Location != "" {
		if _, ok := s.vocab.CanonicalLocation(p.Location); !ok {
			return fmt.Errorf("unknown location %q", p.Location)
		}
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("confidence must be in [0,1], got %f", p.Confidence)
	}
	return nil
}

func (s *LLMStrategy) toQueryIntent(p llmIntent) QueryIntent {
	intent := QueryIntent{
		Metric: p.Metric,
		Window: TimeWindow{Kind: WindowAllTime},
	}
	if intent.Metric == "" {
		intent.Metric = MetricTotal
	}

	switch p.TimeUnit {
	case "today":
		intent.Window.Kind = WindowToday
	case "yesterday":
		intent.Window.Kind = WindowYesterday
	case "day":
		intent.Window = TimeWindow{Kind: WindowLastDays, N: p.TimeN}
	case "week":
		intent.Window = TimeWindow{Kind: WindowLastWeeks, N: p.TimeN}
	case "month":
		intent.Window = TimeWindow{Kind: WindowLastMonths, N: p.TimeN}
	}

	if p.Location != "" {
		// Validation guarantees the lookup succeeds.
		canonical, _ := s.vocab.CanonicalLocation(p.Location)
		intent.Location = canonical
	}

	return intent
}

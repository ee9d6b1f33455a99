package llm

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskIntent    TaskType = "intent"
	TaskSentiment TaskType = "sentiment"
	TaskRelevance TaskType = "relevance"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the completion client.
type Config struct {
	LogCalls            bool
	BaseURL             string
	APIKey              string
	Model               string
	TimeoutMs           int
	MaxRetries          int
	ConfidenceThreshold float64
	Tasks               map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults. The global timeout
// matches the longest call observed against hosted endpoints; intent
// extraction gets low temperature so the output stays parseable.
func DefaultConfig() Config {
	return Config{
		LogCalls:            false,
		BaseURL:             "",
		Model:               "gpt-4o-mini",
		TimeoutMs:           60000,
		MaxRetries:          1,
		ConfidenceThreshold: 0.5,
		Tasks: map[TaskType]TaskConfig{
			TaskIntent:    {Temperature: 0.0, MaxTokens: 256, TimeoutMs: 60000},
			TaskSentiment: {Temperature: 0.0, MaxTokens: 64, TimeoutMs: 15000},
			TaskRelevance: {Temperature: 0.0, MaxTokens: 64, TimeoutMs: 15000},
		},
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

package outreach

import (
	"context"
	"strings"

	"github.com/aoemotors/leaddesk/internal/llm"
)

// Sentiment labels for sales notes.
const (
	SentimentPositive = "POSITIVE"
	SentimentNeutral  = "NEUTRAL"
	SentimentNegative = "NEGATIVE"
)

// Relevance labels for sales notes.
const (
	RelevanceRelevant   = "RELEVANT"
	RelevanceIrrelevant = "IRRELEVANT"
)

const sentimentSystemPrompt = `You classify one sales note from a car dealership.
Respond with exactly one word: POSITIVE, NEUTRAL, or NEGATIVE.
No punctuation, no explanation.`

const relevanceSystemPrompt = `You decide whether one sales note says anything useful about the customer's buying intent.
Respond with exactly one word: RELEVANT or IRRELEVANT.
No punctuation, no explanation.`

// NotesAnalyzer classifies sales notes through the completion client.
// Classification only ever tunes email tone, so every failure mode (no
// client, timeout, junk output) resolves to the safe default label and the
// caller proceeds.
type NotesAnalyzer struct {
	client llm.Client
}

// NewNotesAnalyzer creates a NotesAnalyzer. client may be nil, in which
// case every call returns its default label.
func NewNotesAnalyzer(client llm.Client) *NotesAnalyzer {
	return &NotesAnalyzer{client: client}
}

// Sentiment classifies notes as POSITIVE, NEUTRAL, or NEGATIVE, defaulting
// to NEUTRAL.
func (a *NotesAnalyzer) Sentiment(ctx context.Context, notes string) string {
	return a.classify(ctx, llm.TaskSentiment, sentimentSystemPrompt, notes,
		[]string{SentimentPositive, SentimentNegative, SentimentNeutral}, SentimentNeutral)
}

// Relevance classifies notes as RELEVANT or IRRELEVANT, defaulting to
// RELEVANT.
func (a *NotesAnalyzer) Relevance(ctx context.Context, notes string) string {
	return a.classify(ctx, llm.TaskRelevance, relevanceSystemPrompt, notes,
		[]string{RelevanceIrrelevant, RelevanceRelevant}, RelevanceRelevant)
}

func (a *NotesAnalyzer) classify(ctx context.Context, task llm.TaskType, systemPrompt, notes string, labels []string, fallback string) string {
	if a.client == nil || strings.TrimSpace(notes) == "" {
		return fallback
	}

	resp, err := a.client.Complete(ctx, llm.CompletionRequest{
		Task:         task,
		SystemPrompt: systemPrompt,
		UserPrompt:   notes,
	})
	if err != nil {
		return fallback
	}

	return matchLabel(resp.Text, labels, fallback)
}

// matchLabel finds the first label in the reply. Longer labels must come
// first in labels when one is a substring of another (IRRELEVANT contains
// RELEVANT).
func matchLabel(text string, labels []string, fallback string) string {
	upper := strings.ToUpper(text)
	for _, label := range labels {
		if strings.Contains(upper, label) {
			return label
		}
	}
	return fallback
}

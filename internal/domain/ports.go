package domain

import "context"

// Prompt is everything the generation backend needs for one turn.
type Prompt struct {
	SystemInstruction string
	Transcript        string // flattened prior conversation, may be empty
	NewMessage        string
}

// LLMClient is one call against one named candidate model.
type LLMClient interface {
	GenerateText(ctx context.Context, model string, prompt string) (string, error)
}

// Generator turns a prompt into reply text, hiding the candidate fallback.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// TopicStore persists the bounded, most-recent-first topic collection.
// Every mutation rewrites the whole collection and returns the new one.
type TopicStore interface {
	Load() ([]*Topic, error)
	Upsert(topic *Topic) ([]*Topic, error)
	Remove(id TopicID) ([]*Topic, error)
}

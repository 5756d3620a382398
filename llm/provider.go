package llm

import (
	"context"
	"time"
)

// Provider is the generation surface the agents program against. Both the
// OpenAI and Gemini implementations satisfy it, so an agent never knows
// which vendor answered.
type Provider interface {
	Name() string
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)
}

// OutputSchema pins model output to a named JSON schema. Providers without
// native schema support approximate it through the system prompt.
type OutputSchema struct {
	Name   string
	Schema map[string]any
}

// GenerationRequest is a provider-neutral generation request. InputArray
// items are {"role": ..., "content": ...} maps; invalid items are skipped.
type GenerationRequest struct {
	Model           string
	InputArray      []map[string]any
	SystemPrompt    string
	ReasoningMode   string
	OutputSchema    *OutputSchema
	MaxOutputTokens int64
}

// Usage is provider-neutral token accounting.
type Usage struct {
	InputTokens     int64 `json:"input_tokens"`
	OutputTokens    int64 `json:"output_tokens"`
	ReasoningTokens int64 `json:"reasoning_tokens"`
	TotalTokens     int64 `json:"total_tokens"`
}

// GenerationResponse carries the cleaned text output of one generation.
type GenerationResponse struct {
	RawOutput string
	Usage     *Usage
	Duration  time.Duration
}

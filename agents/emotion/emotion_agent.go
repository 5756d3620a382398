// Package emotion classifies free-form text into a single emotion word.
package emotion

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Conceptual-Machines/moodtunes-agents-go/config"
	"github.com/Conceptual-Machines/moodtunes-agents-go/llm"
	"github.com/Conceptual-Machines/moodtunes-agents-go/metrics"
	"github.com/Conceptual-Machines/moodtunes-agents-go/mood"
	"github.com/Conceptual-Machines/moodtunes-agents-go/prompt"
)

const (
	// The reply is one word; anything longer is the model rambling.
	classifierMaxTokens = 64

	defaultOpenAIModel = "gpt-4.1-mini"
	defaultGeminiModel = "gemini-2.0-flash"

	maxInputLogChars = 60
)

// EmotionAgent asks an LLM which emotion a piece of text carries. It never
// fails the caller: anything that goes wrong comes back as "neutral".
type EmotionAgent struct {
	provider     llm.Provider
	systemPrompt string
	model        string
	metrics      *metrics.SentryMetrics
}

// NewEmotionAgent creates an emotion agent using the configured provider.
func NewEmotionAgent(cfg *config.Config) *EmotionAgent {
	factory := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey, cfg.LLMProvider)
	provider, err := factory.GetProvider(context.Background(), "", cfg.LLMProvider)
	if err != nil {
		log.Printf("⚠️  LLM provider unavailable (%v), classification will answer neutral", err)
		provider = nil
	}
	return NewEmotionAgentWithProvider(cfg, provider)
}

// NewEmotionAgentWithProvider creates an emotion agent with a specific LLM
// provider. If provider is nil, OpenAI is used as default.
func NewEmotionAgentWithProvider(cfg *config.Config, provider llm.Provider) *EmotionAgent {
	if provider == nil {
		provider = llm.NewOpenAIProvider(cfg.OpenAIAPIKey)
	}

	promptBuilder := prompt.NewEmotionPromptBuilder()
	systemPrompt, err := promptBuilder.BuildPrompt()
	if err != nil {
		log.Fatal("Failed to build classifier prompt:", err)
	}

	model := defaultOpenAIModel
	if provider.Name() == "gemini" {
		model = defaultGeminiModel
	}

	agent := &EmotionAgent{
		provider:     provider,
		systemPrompt: systemPrompt,
		model:        model,
		metrics:      metrics.NewSentryMetrics(),
	}

	log.Printf("🎭 EMOTION AGENT INITIALIZED:")
	log.Printf("   Provider: %s", provider.Name())
	log.Printf("   Model: %s", model)

	return agent
}

// Classify returns the dominant emotion of the text. Empty input and every
// provider failure answer "neutral" with a nil error; mood playback should
// never die because a classifier hiccuped.
func (a *EmotionAgent) Classify(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "neutral", nil
	}

	startTime := time.Now()

	transaction := sentry.StartTransaction(ctx, "emotion.classify")
	defer transaction.Finish()
	transaction.SetTag("model", a.model)

	request := &llm.GenerationRequest{
		Model:           a.model,
		InputArray:      []map[string]any{{"role": "user", "content": text}},
		SystemPrompt:    a.systemPrompt,
		ReasoningMode:   "none",
		MaxOutputTokens: classifierMaxTokens,
		OutputSchema: &llm.OutputSchema{
			Name: "emotion",
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"emotion": map[string]any{"type": "string"},
				},
				"required":             []string{"emotion"},
				"additionalProperties": false,
			},
		},
	}

	resp, err := a.provider.Generate(ctx, request)
	if err != nil {
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		log.Printf("⚠️  Emotion classification failed, answering neutral: %v", err)
		a.metrics.RecordGenerationDuration(ctx, time.Since(startTime), false)
		return "neutral", nil
	}

	result := parseEmotionReply(resp.RawOutput)
	if result == "" {
		result = "neutral"
	}

	transaction.SetTag("success", "true")
	transaction.SetTag("emotion", result)

	a.metrics.RecordGenerationDuration(ctx, time.Since(startTime), true)
	if resp.Usage != nil {
		a.metrics.RecordTokenUsage(ctx, a.model,
			int(resp.Usage.TotalTokens),
			int(resp.Usage.InputTokens),
			int(resp.Usage.OutputTokens),
			int(resp.Usage.ReasoningTokens))
	}

	log.Printf("🎯 EMOTION: %q → %s", truncate(text, maxInputLogChars), result)

	return result, nil
}

// parseEmotionReply accepts either the schema reply {"emotion": "x"} or a
// bare word, keeps the first word of multi-word answers, and folds it onto
// the canonical vocabulary.
func parseEmotionReply(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	var structured struct {
		Emotion string `json:"emotion"`
	}
	if err := json.Unmarshal([]byte(raw), &structured); err == nil && structured.Emotion != "" {
		raw = structured.Emotion
	}

	if fields := strings.Fields(raw); len(fields) > 0 {
		raw = fields[0]
	}

	return mood.Normalize(raw)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

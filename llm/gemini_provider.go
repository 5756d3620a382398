package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const providerNameGemini = "gemini"

// GeminiProvider implements the Provider interface using Google's genai SDK.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Generate implements generation through a single-turn Gemini chat.
//
// The chat surface has no JSON-schema parameter, so when an OutputSchema is
// set it is appended to the system instruction and the model is told to
// answer with that JSON shape only.
func (p *GeminiProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Printf("🎵 GEMINI GENERATION REQUEST STARTED (Model: %s)", request.Model)

	transaction := sentry.StartTransaction(ctx, "gemini.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameGemini)
	transaction.SetTag("schema", fmt.Sprintf("%t", request.OutputSchema != nil))

	systemPrompt := p.buildSystemInstruction(request)

	chatConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(systemPrompt)},
		},
	}
	if request.MaxOutputTokens > 0 {
		chatConfig.MaxOutputTokens = int32(request.MaxOutputTokens)
	}

	chat, err := p.client.Chats.Create(ctx, request.Model, chatConfig, []*genai.Content{})
	if err != nil {
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, fmt.Errorf("failed to create gemini chat: %w", err)
	}

	parts := p.buildParts(request)
	if len(parts) == 0 {
		return nil, fmt.Errorf("gemini request has no usable input items")
	}

	span := transaction.StartChild("gemini.api_call")
	apiStartTime := time.Now()
	resp, err := chat.SendMessage(ctx, parts...)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		log.Printf("❌ GEMINI REQUEST FAILED after %v: %v", apiDuration, truncate(err.Error(), maxErrorPreviewChars))
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	log.Printf("⏱️  GEMINI API CALL completed in %v", apiDuration)

	textOutput := p.extractText(resp)
	if textOutput == "" {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("gemini response did not include any output text")
	}

	usage := p.extractUsage(resp)
	if usage != nil {
		log.Printf("📊 USAGE: input=%d, output=%d, total=%d",
			usage.InputTokens, usage.OutputTokens, usage.TotalTokens)
	}

	totalDuration := time.Since(startTime)
	log.Printf("✅ GEMINI GENERATION COMPLETED in %v", totalDuration)
	transaction.SetTag("success", "true")

	return &GenerationResponse{
		RawOutput: textOutput,
		Usage:     usage,
		Duration:  totalDuration,
	}, nil
}

// buildSystemInstruction folds the output schema into the system prompt.
func (p *GeminiProvider) buildSystemInstruction(request *GenerationRequest) string {
	if request.OutputSchema == nil {
		return request.SystemPrompt
	}
	schemaJSON, err := json.Marshal(request.OutputSchema.Schema)
	if err != nil {
		log.Printf("⚠️  Could not marshal output schema %q, sending prompt without it: %v", request.OutputSchema.Name, err)
		return request.SystemPrompt
	}
	return request.SystemPrompt + "\n\nAnswer with a single JSON object matching this schema, and nothing else:\n" + string(schemaJSON)
}

// buildParts converts the request input items to Gemini parts.
func (p *GeminiProvider) buildParts(request *GenerationRequest) []genai.Part {
	parts := make([]genai.Part, 0, len(request.InputArray))
	for _, item := range request.InputArray {
		content, ok := item["content"].(string)
		if !ok || content == "" {
			log.Printf("⚠️  Skipping invalid input item (missing content): %v", item)
			continue
		}
		parts = append(parts, *genai.NewPartFromText(content))
	}
	return parts
}

// extractText collects the text parts of the first candidate, with the same
// markdown-fence cleanup the OpenAI path applies.
func (p *GeminiProvider) extractText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}

	cleaned := strings.TrimPrefix(sb.String(), "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func (p *GeminiProvider) extractUsage(resp *genai.GenerateContentResponse) *Usage {
	if resp.UsageMetadata == nil {
		return nil
	}
	return &Usage{
		InputTokens:  int64(resp.UsageMetadata.PromptTokenCount),
		OutputTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:  int64(resp.UsageMetadata.TotalTokenCount),
	}
}

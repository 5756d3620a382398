package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestGeminiBuildSystemInstruction(t *testing.T) {
	p := &GeminiProvider{}

	plain := p.buildSystemInstruction(&GenerationRequest{SystemPrompt: "You classify emotions."})
	assert.Equal(t, "You classify emotions.", plain)

	withSchema := p.buildSystemInstruction(&GenerationRequest{
		SystemPrompt: "You classify emotions.",
		OutputSchema: &OutputSchema{
			Name: "emotion",
			Schema: map[string]any{
				"type": "object",
			},
		},
	})
	assert.Contains(t, withSchema, "You classify emotions.")
	assert.Contains(t, withSchema, "single JSON object")
	assert.Contains(t, withSchema, `"type":"object"`)
}

func TestGeminiBuildParts(t *testing.T) {
	p := &GeminiProvider{}

	parts := p.buildParts(&GenerationRequest{
		InputArray: []map[string]any{
			{"role": "user", "content": "first"},
			{"role": "user"}, // no content, skipped
			{"role": "user", "content": ""},
			{"role": "user", "content": "second"},
		},
	})

	assert.Len(t, parts, 2)
	assert.Equal(t, "first", parts[0].Text)
	assert.Equal(t, "second", parts[1].Text)
}

func TestGeminiExtractText(t *testing.T) {
	p := &GeminiProvider{}

	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{
			name: "no candidates",
			resp: &genai.GenerateContentResponse{},
			want: "",
		},
		{
			name: "plain text",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{{Text: "happy"}}}},
				},
			},
			want: "happy",
		},
		{
			name: "json fences stripped",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{{Text: "```json\n{\"emotion\": \"sad\"}\n```"}}}},
				},
			},
			want: "{\"emotion\": \"sad\"}",
		},
		{
			name: "parts concatenated",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{{Text: "ha"}, {Text: "ppy"}}}},
				},
			},
			want: "happy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.extractText(tt.resp))
		})
	}
}

func TestGeminiExtractUsage(t *testing.T) {
	p := &GeminiProvider{}

	assert.Nil(t, p.extractUsage(&genai.GenerateContentResponse{}))

	usage := p.extractUsage(&genai.GenerateContentResponse{
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     12,
			CandidatesTokenCount: 7,
			TotalTokenCount:      19,
		},
	})
	assert.Equal(t, int64(12), usage.InputTokens)
	assert.Equal(t, int64(7), usage.OutputTokens)
	assert.Equal(t, int64(19), usage.TotalTokens)
}

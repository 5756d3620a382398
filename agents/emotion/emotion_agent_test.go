package emotion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/moodtunes-agents-go/config"
	"github.com/Conceptual-Machines/moodtunes-agents-go/llm"
)

type fakeProvider struct {
	reply string
	err   error

	calls       int
	lastRequest *llm.GenerationRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, request *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	f.calls++
	f.lastRequest = request
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerationResponse{RawOutput: f.reply}, nil
}

func newTestAgent(provider llm.Provider) *EmotionAgent {
	return NewEmotionAgentWithProvider(&config.Config{}, provider)
}

func TestClassifyEmptyTextSkipsProvider(t *testing.T) {
	provider := &fakeProvider{reply: "happy"}
	agent := newTestAgent(provider)

	for _, text := range []string{"", "   ", "\t\n"} {
		got, err := agent.Classify(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, "neutral", got)
	}
	assert.Zero(t, provider.calls, "blank input must never reach the provider")
}

func TestClassifyNormalizesReplies(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"joy alias", "joy", "happy"},
		{"trailing period", "Happy.", "happy"},
		{"shouted noun", "SADNESS", "sad"},
		{"schema reply", `{"emotion": "anger"}`, "angry"},
		{"multi word keeps first", "happy vibes all around", "happy"},
		{"already canonical", "energetic", "energetic"},
		{"unknown word passes through", "wistful", "wistful"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := newTestAgent(&fakeProvider{reply: tt.reply})

			got, err := agent.Classify(context.Background(), "I feel amazing and joyful today")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyProviderErrorAnswersNeutral(t *testing.T) {
	agent := newTestAgent(&fakeProvider{err: errors.New("rate limited")})

	got, err := agent.Classify(context.Background(), "today was rough")
	require.NoError(t, err, "provider trouble must not surface as an error")
	assert.Equal(t, "neutral", got)
}

func TestClassifyEmptyReplyAnswersNeutral(t *testing.T) {
	agent := newTestAgent(&fakeProvider{reply: "   "})

	got, err := agent.Classify(context.Background(), "hmm")
	require.NoError(t, err)
	assert.Equal(t, "neutral", got)
}

func TestClassifyRequestShape(t *testing.T) {
	provider := &fakeProvider{reply: "calm"}
	agent := newTestAgent(provider)

	_, err := agent.Classify(context.Background(), "sitting by the lake")
	require.NoError(t, err)

	request := provider.lastRequest
	require.NotNil(t, request)
	assert.Equal(t, "none", request.ReasoningMode)
	assert.NotZero(t, request.MaxOutputTokens)
	assert.Contains(t, request.SystemPrompt, "emotion")
	require.NotNil(t, request.OutputSchema)
	assert.Equal(t, "emotion", request.OutputSchema.Name)
	require.Len(t, request.InputArray, 1)
	assert.Equal(t, "sitting by the lake", request.InputArray[0]["content"])
}

func TestDefaultProviderIsOpenAI(t *testing.T) {
	agent := NewEmotionAgentWithProvider(&config.Config{}, nil)
	assert.Equal(t, "openai", agent.provider.Name())
}

package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/curator"
	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/emotion"
	weatheragent "github.com/Conceptual-Machines/moodtunes-agents-go/agents/weather"
	"github.com/Conceptual-Machines/moodtunes-agents-go/config"
	"github.com/Conceptual-Machines/moodtunes-agents-go/llm"
	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
)

type fakeProvider struct {
	reply string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(context.Context, *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	return &llm.GenerationResponse{RawOutput: f.reply}, nil
}

type fakeConditions struct {
	report models.WeatherReport
}

func (f *fakeConditions) Current(context.Context, string) (models.WeatherReport, error) {
	return f.report, nil
}

func newTestPipeline(reply string, report models.WeatherReport) *Pipeline {
	return NewPipeline(
		emotion.NewEmotionAgentWithProvider(&config.Config{}, &fakeProvider{reply: reply}),
		weatheragent.NewWeatherAgentWithSource(&fakeConditions{report: report}),
		curator.NewCuratorAgentWithCatalog(nil),
	)
}

func TestPipelineClassify(t *testing.T) {
	p := newTestPipeline("joy", models.WeatherReport{})

	got, err := p.Classify(context.Background(), "I feel amazing and joyful today")
	require.NoError(t, err)
	assert.Equal(t, "happy", got)
}

func TestPipelineSearchDefaultsLimit(t *testing.T) {
	p := newTestPipeline("joy", models.WeatherReport{})

	rec, err := p.SearchByMood(context.Background(), "sad", 0)
	require.NoError(t, err)
	assert.Len(t, rec.Tracks, DefaultTrackLimit)
	assert.True(t, rec.Degraded)
}

func TestPipelineResolveWeather(t *testing.T) {
	p := newTestPipeline("joy", models.WeatherReport{Location: "Oslo", Condition: "Thunderstorm"})

	got, err := p.ResolveWeather(context.Background(), "Oslo")
	require.NoError(t, err)
	assert.Equal(t, "intense", got.Emotion)
	assert.Equal(t, "Oslo", got.Location)
}

func TestPipelineResolveWeatherRequiresLocation(t *testing.T) {
	p := newTestPipeline("joy", models.WeatherReport{})

	for _, location := range []string{"", "   "} {
		_, err := p.ResolveWeather(context.Background(), location)
		assert.ErrorContains(t, err, "location is required")
	}
}

func TestPipelineCreatePlaylistWithoutSession(t *testing.T) {
	p := newTestPipeline("joy", models.WeatherReport{})

	_, err := p.CreatePlaylist(context.Background(), nil, PlaylistRequest{Emotion: "happy", TrackIDs: []string{"real-1"}})
	assert.Error(t, err)
}

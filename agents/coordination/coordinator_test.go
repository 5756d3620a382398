package coordination

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/curator"
	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/emotion"
	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/memory"
	weatheragent "github.com/Conceptual-Machines/moodtunes-agents-go/agents/weather"
	"github.com/Conceptual-Machines/moodtunes-agents-go/config"
	"github.com/Conceptual-Machines/moodtunes-agents-go/llm"
	"github.com/Conceptual-Machines/moodtunes-agents-go/memorystore"
	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
	"github.com/Conceptual-Machines/moodtunes-agents-go/recommend"
)

type fakeProvider struct {
	reply string
	err   error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, _ *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerationResponse{RawOutput: f.reply}, nil
}

type fakeConditions struct {
	report models.WeatherReport
	err    error
}

func (f fakeConditions) Current(_ context.Context, _ string) (models.WeatherReport, error) {
	return f.report, f.err
}

// newTestCoordinator wires a started coordinator from a canned classifier
// reply and a canned weather report. The curator runs without a live
// catalog, so every track comes from the fallback banks.
func newTestCoordinator(t *testing.T, reply string, report models.WeatherReport) *Coordinator {
	t.Helper()

	emotionAgent := emotion.NewEmotionAgentWithProvider(&config.Config{}, &fakeProvider{reply: reply})
	weatherAgent := weatheragent.NewWeatherAgentWithSource(fakeConditions{report: report})
	curatorAgent := curator.NewCuratorAgentWithCatalog(nil)
	pipeline := recommend.NewPipeline(emotionAgent, weatherAgent, curatorAgent)
	memoryAgent := memory.NewMemoryAgent(memorystore.NewStore(t.TempDir()))

	c := NewCoordinator(pipeline, curatorAgent, memoryAgent)
	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(c.Close)
	return c
}

func waitForHistory(t *testing.T, c *Coordinator, userID string, want int) []models.Interaction {
	t.Helper()

	require.Eventually(t, func() bool {
		history, err := c.History(context.Background(), userID)
		return err == nil && len(history) == want
	}, time.Second, 10*time.Millisecond)

	history, err := c.History(context.Background(), userID)
	require.NoError(t, err)
	return history
}

func TestMoodFlowEndToEnd(t *testing.T) {
	c := newTestCoordinator(t, `{"emotion": "joy"}`, models.WeatherReport{})

	result, err := c.HandleMood(context.Background(), "user-1", "I feel amazing and joyful today", 10)
	require.NoError(t, err)

	assert.Equal(t, "happy", result.Emotion)
	assert.True(t, result.Recommendation.Degraded)
	require.Len(t, result.Recommendation.Tracks, 10)
	for _, track := range result.Recommendation.Tracks {
		assert.NotEmpty(t, track.Name)
		assert.NotEmpty(t, track.Artist)
	}

	history := waitForHistory(t, c, "user-1", 1)
	row := history[0]
	assert.Equal(t, "mood", row.Kind)
	assert.Equal(t, "I feel amazing and joyful today", row.Input)
	assert.Equal(t, "happy", row.Emotion)
	assert.Equal(t, 10, row.TrackCount)
	assert.True(t, row.Degraded)
	assert.False(t, row.At.IsZero())
}

func TestWeatherFlowEndToEnd(t *testing.T) {
	report := models.WeatherReport{
		Location:    "Oslo",
		Condition:   "Thunderstorm",
		Description: "thunderstorm with rain",
		TempC:       4,
	}
	c := newTestCoordinator(t, "neutral", report)

	result, err := c.HandleWeather(context.Background(), "user-2", "oslo", 5)
	require.NoError(t, err)

	assert.Equal(t, models.WeatherMood{Location: "Oslo", Condition: "Thunderstorm", Emotion: "intense"}, result.Weather)
	require.Len(t, result.Recommendation.Tracks, 5)

	history := waitForHistory(t, c, "user-2", 1)
	row := history[0]
	assert.Equal(t, "weather", row.Kind)
	assert.Equal(t, "oslo", row.Input)
	assert.Equal(t, "intense", row.Emotion)
	assert.Equal(t, 5, row.TrackCount)
}

func TestWeatherFlowRequiresLocation(t *testing.T) {
	c := newTestCoordinator(t, "neutral", models.WeatherReport{})

	for _, location := range []string{"", "   ", "\t"} {
		_, err := c.HandleWeather(context.Background(), "user-1", location, 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "location is required")
	}

	history, err := c.History(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHandleRoutesOperations(t *testing.T) {
	report := models.WeatherReport{Location: "Berlin", Condition: "Clouds"}
	c := newTestCoordinator(t, "excited", report)

	reply, err := c.Handle(context.Background(), OpClassify, ClassifyRequest{Text: "let's go"})
	require.NoError(t, err)
	assert.Equal(t, "excited", reply)

	reply, err = c.Handle(context.Background(), OpResolve, ResolveRequest{Location: "berlin"})
	require.NoError(t, err)
	weather, ok := reply.(models.WeatherMood)
	require.True(t, ok)
	assert.Equal(t, "calm", weather.Emotion)

	reply, err = c.Handle(context.Background(), OpSearch, TracksRequest{Emotion: "calm", Limit: 3})
	require.NoError(t, err)
	rec, ok := reply.(models.Recommendation)
	require.True(t, ok)
	assert.Len(t, rec.Tracks, 3)
}

func TestHandleRecommendDefaultsLimit(t *testing.T) {
	c := newTestCoordinator(t, "neutral", models.WeatherReport{})

	reply, err := c.Handle(context.Background(), OpRecommend, TracksRequest{Emotion: "calm"})
	require.NoError(t, err)

	rec, ok := reply.(models.Recommendation)
	require.True(t, ok)
	assert.Len(t, rec.Tracks, recommend.DefaultTrackLimit)
	assert.True(t, rec.Degraded)
}

func TestHandleRejectsUnknownOperation(t *testing.T) {
	c := newTestCoordinator(t, "neutral", models.WeatherReport{})

	_, err := c.Handle(context.Background(), "transcribe", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid operation "transcribe"`)
}

func TestWorkerRejectsWrongPayload(t *testing.T) {
	c := newTestCoordinator(t, "neutral", models.WeatherReport{})

	_, err := c.Handle(context.Background(), OpClassify, TracksRequest{Emotion: "happy"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected payload")
}

func TestCreatePlaylistWithoutCredentials(t *testing.T) {
	c := newTestCoordinator(t, "neutral", models.WeatherReport{})

	_, err := c.CreatePlaylist(context.Background(), "user-1", nil, recommend.PlaylistRequest{
		Name:     "Morning Focus",
		TrackIDs: []string{"track-1"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spotify credentials not configured")
}

func TestHistoryUnknownUserIsEmpty(t *testing.T) {
	c := newTestCoordinator(t, "neutral", models.WeatherReport{})

	history, err := c.History(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestStartTwiceFails(t *testing.T) {
	c := newTestCoordinator(t, "neutral", models.WeatherReport{})

	err := c.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

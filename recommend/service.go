// Package recommend is the single seam between transports and the agents:
// the bus workers and the HTTP handlers both program against Service, so
// each capability has exactly one implementation.
package recommend

import (
	"context"
	"errors"
	"strings"

	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/curator"
	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/emotion"
	weatheragent "github.com/Conceptual-Machines/moodtunes-agents-go/agents/weather"
	"github.com/Conceptual-Machines/moodtunes-agents-go/catalog"
	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
)

// DefaultTrackLimit is used when a caller does not say how many tracks it
// wants.
const DefaultTrackLimit = 20

// Service is every capability the app offers, transport-free.
type Service interface {
	Classify(ctx context.Context, text string) (string, error)
	SearchByMood(ctx context.Context, mood string, limit int) (models.Recommendation, error)
	ResolveWeather(ctx context.Context, location string) (models.WeatherMood, error)
	CreatePlaylist(ctx context.Context, sess *SpotifySession, req PlaylistRequest) (*models.Playlist, error)
}

// SpotifySession carries a user's Spotify authorization for playlist
// writes. A session without a client has not completed the OAuth flow.
type SpotifySession struct {
	Client catalog.PlaylistCreator
}

// PlaylistRequest names what to create. An empty Name falls back to
// "Playlist based on <emotion>".
type PlaylistRequest struct {
	Name        string
	Emotion     string
	TrackIDs    []string
	Description string
}

// Pipeline wires the agents into one Service implementation.
type Pipeline struct {
	emotion *emotion.EmotionAgent
	weather *weatheragent.WeatherAgent
	curator *curator.CuratorAgent
}

var _ Service = (*Pipeline)(nil)

func NewPipeline(emotionAgent *emotion.EmotionAgent, weatherAgent *weatheragent.WeatherAgent, curatorAgent *curator.CuratorAgent) *Pipeline {
	return &Pipeline{
		emotion: emotionAgent,
		weather: weatherAgent,
		curator: curatorAgent,
	}
}

func (p *Pipeline) Classify(ctx context.Context, text string) (string, error) {
	return p.emotion.Classify(ctx, text)
}

func (p *Pipeline) SearchByMood(ctx context.Context, emotion string, limit int) (models.Recommendation, error) {
	if limit <= 0 {
		limit = DefaultTrackLimit
	}
	return p.curator.TracksForMood(ctx, emotion, limit), nil
}

func (p *Pipeline) ResolveWeather(ctx context.Context, location string) (models.WeatherMood, error) {
	if strings.TrimSpace(location) == "" {
		return models.WeatherMood{}, errors.New("location is required")
	}
	return p.weather.Resolve(ctx, location), nil
}

func (p *Pipeline) CreatePlaylist(ctx context.Context, sess *SpotifySession, req PlaylistRequest) (*models.Playlist, error) {
	var client catalog.PlaylistCreator
	if sess != nil {
		client = sess.Client
	}
	return p.curator.CreatePlaylist(ctx, client, req.Name, req.Emotion, req.TrackIDs, req.Description)
}

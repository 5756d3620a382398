// Package curator turns an emotion into tracks and playlists through the
// Spotify catalog, falling back to the curated banks when Spotify is out
// of reach.
package curator

import (
	"context"
	"fmt"
	"log"

	"github.com/getsentry/sentry-go"

	"github.com/Conceptual-Machines/moodtunes-agents-go/catalog"
	"github.com/Conceptual-Machines/moodtunes-agents-go/config"
	"github.com/Conceptual-Machines/moodtunes-agents-go/metrics"
	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
	"github.com/Conceptual-Machines/moodtunes-agents-go/mood"
)

// CuratorAgent answers track requests. catalog may be nil when Spotify
// credentials are missing; every operation then serves the curated banks.
type CuratorAgent struct {
	catalog *catalog.Service
	metrics *metrics.SentryMetrics
}

// NewCuratorAgent creates a curator agent from Spotify app credentials.
func NewCuratorAgent(cfg *config.Config) *CuratorAgent {
	svc, err := catalog.NewService(context.Background(), cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	if err != nil {
		log.Printf("⚠️  Spotify catalog unavailable (%v), serving curated fallbacks only", err)
		svc = nil
	}
	return NewCuratorAgentWithCatalog(svc)
}

// NewCuratorAgentWithCatalog creates a curator agent over a specific
// catalog service. nil means no live catalog at all.
func NewCuratorAgentWithCatalog(svc *catalog.Service) *CuratorAgent {
	log.Printf("🎚️  CURATOR AGENT INITIALIZED:")
	log.Printf("   Live catalog: %t", svc != nil)

	return &CuratorAgent{
		catalog: svc,
		metrics: metrics.NewSentryMetrics(),
	}
}

// TracksForMood returns tracks matching an emotion via the staged search
// chain. The result always has tracks; Degraded says how honest they are.
func (a *CuratorAgent) TracksForMood(ctx context.Context, emotion string, limit int) models.Recommendation {
	transaction := sentry.StartTransaction(ctx, "curator.search")
	defer transaction.Finish()
	transaction.SetTag("emotion", emotion)
	transaction.SetTag("limit", fmt.Sprintf("%d", limit))

	var rec models.Recommendation
	if a.catalog == nil {
		rec = catalog.FallbackRecommendation(emotion, limit)
	} else {
		rec = a.catalog.SearchByMood(ctx, emotion, limit)
	}

	a.record(ctx, emotion, rec)
	transaction.SetTag("degraded", fmt.Sprintf("%t", rec.Degraded))
	return rec
}

// Discover returns tracks steered by the emotion's audio-feature targets,
// falling through the search chain when seeded recommendation fails.
func (a *CuratorAgent) Discover(ctx context.Context, emotion string, limit int) models.Recommendation {
	transaction := sentry.StartTransaction(ctx, "curator.recommend")
	defer transaction.Finish()
	transaction.SetTag("emotion", emotion)

	var rec models.Recommendation
	if a.catalog == nil {
		rec = catalog.FallbackRecommendation(emotion, limit)
	} else {
		rec = a.catalog.Recommend(ctx, emotion, limit)
	}

	a.record(ctx, emotion, rec)
	transaction.SetTag("degraded", fmt.Sprintf("%t", rec.Degraded))
	return rec
}

// CreatePlaylist builds a playlist from the given tracks on the user's
// Spotify account. An empty name falls back to "Playlist based on
// <emotion>".
func (a *CuratorAgent) CreatePlaylist(ctx context.Context, client catalog.PlaylistCreator, name, emotion string, trackIDs []string, description string) (*models.Playlist, error) {
	transaction := sentry.StartTransaction(ctx, "curator.create_playlist")
	defer transaction.Finish()

	if name == "" {
		e := mood.Normalize(emotion)
		if e == "" {
			e = "neutral"
		}
		name = fmt.Sprintf("Playlist based on %s", e)
	}
	transaction.SetTag("playlist_name", name)

	if a.catalog == nil {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("spotify credentials not configured")
	}

	playlist, err := a.catalog.CreatePlaylist(ctx, client, name, trackIDs, description)
	if err != nil {
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, err
	}

	transaction.SetTag("success", "true")
	transaction.SetTag("track_count", fmt.Sprintf("%d", playlist.TracksCount))
	return playlist, nil
}

// record reports where the batch came from: the live catalog, the mock
// banks, or a mix.
func (a *CuratorAgent) record(ctx context.Context, emotion string, rec models.Recommendation) {
	mockCount := 0
	for _, track := range rec.Tracks {
		if catalog.IsMockID(track.ID) {
			mockCount++
		}
	}

	source := "spotify"
	switch {
	case len(rec.Tracks) == 0:
		source = "empty"
	case mockCount == len(rec.Tracks):
		source = "fallback"
	case mockCount > 0:
		source = "mixed"
	}

	a.metrics.RecordTrackSource(ctx, emotion, source, len(rec.Tracks), mockCount)
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/zmb3/spotify/v2"

	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
	"github.com/Conceptual-Machines/moodtunes-agents-go/mood"
)

const maxRecommendLimit = 100

// Seed tracks the recommendations endpoint is known to accept, tried one
// at a time when genre seeding is rejected.
var popularSeedTracks = []spotify.ID{
	"4aebBr4xhwYSRkASzCuHGP", // Adele - Hello
	"3DK6m7It6Pw857FcQftMds", // Bad Bunny - Tití Me Preguntó
	"7KXjTSCq5nL1LoYtL7XAwS", // BLACKPINK - Pink Venom
	"0V3wPSX9ygBnCm8psDIegu", // Taylor Swift - Anti-Hero
	"2LBqCSwhJGcFQeTHMVGwy3", // The Weeknd - Blinding Lights
}

// Recommend asks the recommendations endpoint for tracks steered toward an
// emotion's audio profile. The endpoint is restricted for newer API
// applications, so rejection is expected: genre seeds first, then curated
// seed tracks, then a new-release artist seed, and finally the mood search
// chain, which cannot fail.
func (s *Service) Recommend(ctx context.Context, emotion string, limit int) models.Recommendation {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	normalized := mood.Normalize(emotion)
	features := mood.FeaturesFor(normalized)
	genres := mood.GenresFor(normalized)

	if rec, ok := s.RecommendWithTargets(ctx, genres, features.Valence, features.Energy, limit); ok {
		return rec
	}

	log.Printf("⚠️  All recommendation seeds failed for %q, falling back to mood search", normalized)
	return s.SearchByMood(ctx, normalized, limit)
}

// RecommendWithTargets drives the recommendations endpoint directly with
// genre seeds and target audio features, both clamped to what the API
// accepts. ok=false means every seeding strategy was rejected.
func (s *Service) RecommendWithTargets(ctx context.Context, genres []string, valence, energy float64, limit int) (models.Recommendation, bool) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxRecommendLimit {
		limit = maxRecommendLimit
	}
	genres = mood.FilterGenres(genres)

	attrs := spotify.NewTrackAttributes().
		TargetValence(clamp01(valence)).
		TargetEnergy(clamp01(energy))

	log.Printf("🎯 RECOMMENDATIONS: genres=%v valence=%.1f energy=%.1f limit=%d", genres, valence, energy, limit)

	if tracks := s.recommendPage(ctx, spotify.Seeds{Genres: genres}, attrs, limit); len(tracks) > 0 {
		return models.Recommendation{Tracks: tracks}, true
	}

	// Genre seeds rejected; retry with seed tracks the endpoint still takes.
	for _, seedID := range popularSeedTracks {
		if ctx.Err() != nil {
			return models.Recommendation{}, false
		}
		log.Printf("🎯 Retrying recommendations with seed track %s", seedID)
		if tracks := s.recommendPage(ctx, spotify.Seeds{Tracks: []spotify.ID{seedID}}, attrs, limit); len(tracks) > 0 {
			return models.Recommendation{Tracks: tracks}, true
		}
	}

	// Last seed attempt before giving up on the endpoint entirely.
	if artistID, err := s.NewReleaseSeed(ctx); err == nil {
		log.Printf("🎯 Retrying recommendations with new-release artist %s", artistID)
		if tracks := s.recommendPage(ctx, spotify.Seeds{Artists: []spotify.ID{spotify.ID(artistID)}}, attrs, limit); len(tracks) > 0 {
			return models.Recommendation{Tracks: tracks}, true
		}
	}

	return models.Recommendation{}, false
}

func (s *Service) recommendPage(ctx context.Context, seeds spotify.Seeds, attrs *spotify.TrackAttributes, limit int) []models.Track {
	recs, err := s.api.GetRecommendations(ctx, seeds, attrs, spotify.Limit(limit), spotify.Market("US"))
	if err != nil {
		log.Printf("⚠️  Recommendations request failed: %v", err)
		return nil
	}
	if recs == nil || len(recs.Tracks) == 0 {
		return nil
	}
	tracks := make([]models.Track, 0, len(recs.Tracks))
	for _, t := range recs.Tracks {
		tracks = append(tracks, trackFromSimple(t))
	}
	return tracks
}

// NewReleaseSeed returns the lead artist ID of the newest release, usable
// as a recommendation seed when the curated ones stop working.
func (s *Service) NewReleaseSeed(ctx context.Context) (string, error) {
	albums, err := s.api.NewReleases(ctx, spotify.Limit(1))
	if err != nil {
		return "", fmt.Errorf("fetching new releases: %w", err)
	}
	if albums == nil || len(albums.Albums) == 0 || len(albums.Albums[0].Artists) == 0 {
		return "", errors.New("new releases feed is empty")
	}
	return string(albums.Albums[0].Artists[0].ID), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package catalog

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
)

const defaultTrackSearchLimit = 10

// SearchTracks runs a plain text track search. Unlike the mood search it
// does not pad the result, and API errors surface to the caller.
func (s *Service) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if limit <= 0 {
		limit = defaultTrackSearchLimit
	}
	result, err := s.api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("searching tracks for %q: %w", query, err)
	}
	if result == nil || result.Tracks == nil {
		return nil, nil
	}
	tracks := make([]models.Track, 0, len(result.Tracks.Tracks))
	for _, item := range result.Tracks.Tracks {
		tracks = append(tracks, trackFromFull(item))
	}
	return tracks, nil
}

// TrackInfo fetches details for a single track.
func (s *Service) TrackInfo(ctx context.Context, id string) (*models.TrackDetail, error) {
	track, err := s.api.GetTrack(ctx, spotify.ID(id))
	if err != nil {
		return nil, fmt.Errorf("fetching track %s: %w", id, err)
	}
	return &models.TrackDetail{
		Track:      trackFromFull(*track),
		Popularity: int(track.Popularity),
		DurationMS: int(track.Duration),
	}, nil
}

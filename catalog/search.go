package catalog

import (
	"context"
	"fmt"
	"log"

	"github.com/zmb3/spotify/v2"

	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
	"github.com/Conceptual-Machines/moodtunes-agents-go/mood"
)

const (
	defaultSearchLimit = 20
	maxSearchPageSize  = 50
)

var searchYears = []string{"2020", "2019", "2018", "2021", "2022", "2023"}

// SearchByMood finds tracks matching an emotion through a chain of search
// queries of decreasing specificity, then pads with the curated mock bank.
// The result always holds exactly limit tracks; it never fails, it degrades.
func (s *Service) SearchByMood(ctx context.Context, emotion string, limit int) models.Recommendation {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	normalized := mood.Normalize(emotion)

	keywords := mood.KeywordsFor(normalized)
	genres := mood.GenresFor(normalized)
	s.shuffle(keywords)
	s.shuffle(genres)

	log.Printf("🔎 MOOD SEARCH for %q (limit=%d, keywords=%d, genres=%d)", normalized, limit, len(keywords), len(genres))

	seen := make(map[string]bool)
	var tracks []models.Track
	collect := func(items []spotify.FullTrack) {
		for _, item := range items {
			if len(tracks) >= limit {
				return
			}
			id := string(item.ID)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			tracks = append(tracks, trackFromFull(item))
		}
	}

	// Keyword-by-genre queries, varied so the titles don't all echo the mood.
	for i, keyword := range keywords {
		if i >= 3 || len(tracks) >= limit {
			break
		}
		query := fmt.Sprintf("%s genre:%s", keyword, s.pick(genres))
		if s.chance(0.5) {
			query += " NOT " + normalized
		}
		collect(s.searchPage(ctx, query, min(maxSearchPageSize, limit)))
	}

	// Artist-targeted queries against the mood's closest artist bank.
	if len(tracks) < limit {
		bank := mood.MatchArtistBank(s.pick(genres))
		artists := mood.ArtistsForGenre(bank)
		s.shuffle(artists)
		for i, artist := range artists {
			if i >= 2 || len(tracks) >= limit {
				break
			}
			query := fmt.Sprintf("%s artist:%s", s.pick(keywords), artist)
			collect(s.searchPage(ctx, query, min(maxSearchPageSize, limit-len(tracks))))
		}
	}

	// One year-scoped query.
	if len(tracks) < limit {
		query := fmt.Sprintf("%s year:%s", s.pick(keywords), s.pick(searchYears))
		collect(s.searchPage(ctx, query, min(maxSearchPageSize, limit-len(tracks))))
	}

	// Bare mood query as the last live attempt.
	if len(tracks) < limit {
		collect(s.searchPage(ctx, normalized, min(maxSearchPageSize, limit-len(tracks))))
	}

	if len(tracks) >= limit {
		log.Printf("✅ MOOD SEARCH found %d live tracks for %q", len(tracks), normalized)
		return models.Recommendation{Tracks: tracks}
	}

	live := len(tracks)
	log.Printf("⚠️  MOOD SEARCH found only %d of %d tracks for %q, padding with curated fallbacks", live, limit, normalized)
	tracks = padWithMocks(tracks, normalized, limit)

	reason := fmt.Sprintf("spotify search found only %d of %d tracks, padded with curated fallbacks", live, limit)
	if live == 0 {
		reason = "spotify search unavailable, serving curated fallback tracks"
	}
	return models.Recommendation{Tracks: tracks, Degraded: true, Reason: reason}
}

func (s *Service) searchPage(ctx context.Context, query string, pageSize int) []spotify.FullTrack {
	if pageSize <= 0 {
		return nil
	}
	result, err := s.api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(pageSize), spotify.Market("US"))
	if err != nil {
		log.Printf("⚠️  Search %q failed: %v", query, err)
		return nil
	}
	if result == nil || result.Tracks == nil {
		return nil
	}
	log.Printf("🔎 Search %q returned %d tracks", query, len(result.Tracks.Tracks))
	return result.Tracks.Tracks
}

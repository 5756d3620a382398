package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"
)

func fakeSimpleTrack(id, name string) spotify.SimpleTrack {
	return spotify.SimpleTrack{
		ID:           spotify.ID(id),
		Name:         name,
		Artists:      []spotify.SimpleArtist{{Name: "Artist " + id}},
		Album:        spotify.SimpleAlbum{Name: "Album " + id},
		ExternalURLs: map[string]string{"spotify": "https://open.spotify.com/track/" + id},
	}
}

func TestRecommendWithTargetsGenreSeeds(t *testing.T) {
	fake := &fakeSpotifyAPI{recommendFn: func(seeds spotify.Seeds) (*spotify.Recommendations, error) {
		require.NotEmpty(t, seeds.Genres)
		return &spotify.Recommendations{Tracks: []spotify.SimpleTrack{
			fakeSimpleTrack("r1", "Rec One"),
			fakeSimpleTrack("r2", "Rec Two"),
		}}, nil
	}}

	rec, ok := newTestService(fake).RecommendWithTargets(context.Background(), []string{"pop", "dance"}, 0.8, 0.8, 10)

	require.True(t, ok)
	assert.False(t, rec.Degraded)
	require.Len(t, rec.Tracks, 2)
	assert.Equal(t, "Rec One", rec.Tracks[0].Name)

	require.Len(t, fake.recSeeds, 1)
	assert.Equal(t, []string{"pop", "dance"}, fake.recSeeds[0].Genres)
}

func TestRecommendWithTargetsFiltersInvalidGenres(t *testing.T) {
	fake := &fakeSpotifyAPI{recommendFn: func(seeds spotify.Seeds) (*spotify.Recommendations, error) {
		return &spotify.Recommendations{Tracks: []spotify.SimpleTrack{fakeSimpleTrack("r1", "Rec One")}}, nil
	}}

	_, ok := newTestService(fake).RecommendWithTargets(context.Background(), []string{"pop", "wubstep"}, 0.5, 0.5, 5)

	require.True(t, ok)
	require.Len(t, fake.recSeeds, 1)
	assert.Equal(t, []string{"pop"}, fake.recSeeds[0].Genres)
}

func TestRecommendWithTargetsSeedTrackFallback(t *testing.T) {
	fake := &fakeSpotifyAPI{recommendFn: func(seeds spotify.Seeds) (*spotify.Recommendations, error) {
		if len(seeds.Genres) > 0 {
			return nil, errors.New("genre seeds not allowed for this application")
		}
		if len(seeds.Tracks) > 0 {
			return &spotify.Recommendations{Tracks: []spotify.SimpleTrack{fakeSimpleTrack("seeded", "Seeded Rec")}}, nil
		}
		return nil, errors.New("unexpected seeds")
	}}

	rec, ok := newTestService(fake).RecommendWithTargets(context.Background(), []string{"pop"}, 0.5, 0.5, 5)

	require.True(t, ok)
	require.Len(t, rec.Tracks, 1)
	assert.Equal(t, "Seeded Rec", rec.Tracks[0].Name)

	// One genre attempt, then the first curated seed track succeeded.
	require.Len(t, fake.recSeeds, 2)
	assert.Equal(t, popularSeedTracks[0], fake.recSeeds[1].Tracks[0])
}

func TestRecommendWithTargetsNewReleaseArtistFallback(t *testing.T) {
	fake := &fakeSpotifyAPI{
		recommendFn: func(seeds spotify.Seeds) (*spotify.Recommendations, error) {
			if len(seeds.Artists) > 0 {
				return &spotify.Recommendations{Tracks: []spotify.SimpleTrack{fakeSimpleTrack("fresh", "Fresh Rec")}}, nil
			}
			return nil, errors.New("recommendations restricted")
		},
		newReleasesFn: func() (*spotify.SimpleAlbumPage, error) {
			return &spotify.SimpleAlbumPage{Albums: []spotify.SimpleAlbum{
				{Name: "New Album", Artists: []spotify.SimpleArtist{{ID: "artist-123", Name: "New Artist"}}},
			}}, nil
		},
	}

	rec, ok := newTestService(fake).RecommendWithTargets(context.Background(), []string{"pop"}, 0.5, 0.5, 5)

	require.True(t, ok)
	require.Len(t, rec.Tracks, 1)
	assert.Equal(t, "Fresh Rec", rec.Tracks[0].Name)

	last := fake.recSeeds[len(fake.recSeeds)-1]
	assert.Equal(t, []spotify.ID{"artist-123"}, last.Artists)
}

func TestRecommendWithTargetsAllSeedsRejected(t *testing.T) {
	fake := &fakeSpotifyAPI{recommendFn: func(spotify.Seeds) (*spotify.Recommendations, error) {
		return nil, errors.New("recommendations restricted")
	}}

	_, ok := newTestService(fake).RecommendWithTargets(context.Background(), []string{"pop"}, 0.5, 0.5, 5)

	assert.False(t, ok)
	// 1 genre attempt + 5 curated seed tracks; new releases was not stubbed.
	assert.Len(t, fake.recSeeds, 6)
}

func TestRecommendFallsBackToMoodSearch(t *testing.T) {
	fake := &fakeSpotifyAPI{
		recommendFn: func(spotify.Seeds) (*spotify.Recommendations, error) {
			return nil, errors.New("recommendations restricted")
		},
		searchFn: func(string) (*spotify.SearchResult, error) {
			return nil, errors.New("search down too")
		},
	}

	rec := newTestService(fake).Recommend(context.Background(), "happy", 5)

	require.Len(t, rec.Tracks, 5)
	assert.True(t, rec.Degraded)
	for _, tr := range rec.Tracks {
		assert.True(t, IsMockID(tr.ID))
	}
}

func TestNewReleaseSeed(t *testing.T) {
	fake := &fakeSpotifyAPI{newReleasesFn: func() (*spotify.SimpleAlbumPage, error) {
		return &spotify.SimpleAlbumPage{Albums: []spotify.SimpleAlbum{
			{Name: "Latest", Artists: []spotify.SimpleArtist{{ID: "lead-artist"}}},
		}}, nil
	}}

	id, err := newTestService(fake).NewReleaseSeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "lead-artist", id)
}

func TestNewReleaseSeedEmptyFeed(t *testing.T) {
	fake := &fakeSpotifyAPI{newReleasesFn: func() (*spotify.SimpleAlbumPage, error) {
		return &spotify.SimpleAlbumPage{}, nil
	}}

	_, err := newTestService(fake).NewReleaseSeed(context.Background())
	assert.ErrorContains(t, err, "empty")
}

func TestTrackInfo(t *testing.T) {
	fake := &fakeSpotifyAPI{trackFn: func(id spotify.ID) (*spotify.FullTrack, error) {
		track := fakeFullTrack(string(id), "Detailed Track")
		track.Popularity = 77
		track.Duration = 215000
		return &track, nil
	}}

	detail, err := newTestService(fake).TrackInfo(context.Background(), "some-id")
	require.NoError(t, err)

	assert.Equal(t, "some-id", detail.ID)
	assert.Equal(t, "Detailed Track", detail.Name)
	assert.Equal(t, 77, detail.Popularity)
	assert.Equal(t, 215000, detail.DurationMS)
}

func TestSearchTracksSurfacesErrors(t *testing.T) {
	fake := &fakeSpotifyAPI{searchFn: func(string) (*spotify.SearchResult, error) {
		return nil, errors.New("rate limited")
	}}

	_, err := newTestService(fake).SearchTracks(context.Background(), "query", 10)
	assert.ErrorContains(t, err, "rate limited")
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.3))
	assert.Equal(t, 1.0, clamp01(1.7))
	assert.Equal(t, 0.5, clamp01(0.5))
}

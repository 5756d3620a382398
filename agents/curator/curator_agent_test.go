package curator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"

	"github.com/Conceptual-Machines/moodtunes-agents-go/catalog"
)

// stubAPI satisfies the catalog's Spotify surface with nothing behind it,
// so every live stage comes up empty.
type stubAPI struct{}

func (stubAPI) Search(context.Context, string, spotify.SearchType, ...spotify.RequestOption) (*spotify.SearchResult, error) {
	return &spotify.SearchResult{}, nil
}

func (stubAPI) GetRecommendations(context.Context, spotify.Seeds, *spotify.TrackAttributes, ...spotify.RequestOption) (*spotify.Recommendations, error) {
	return nil, errors.New("recommendations down")
}

func (stubAPI) GetTrack(context.Context, spotify.ID, ...spotify.RequestOption) (*spotify.FullTrack, error) {
	return nil, errors.New("tracks down")
}

func (stubAPI) NewReleases(context.Context, ...spotify.RequestOption) (*spotify.SimpleAlbumPage, error) {
	return nil, errors.New("releases down")
}

type fakeCreator struct {
	createdName string
	createdDesc string
}

func (f *fakeCreator) CurrentUser(context.Context) (*spotify.PrivateUser, error) {
	return &spotify.PrivateUser{User: spotify.User{ID: "user-1"}}, nil
}

func (f *fakeCreator) CreatePlaylistForUser(_ context.Context, _, playlistName, description string, _ bool, _ bool) (*spotify.FullPlaylist, error) {
	f.createdName = playlistName
	f.createdDesc = description
	return &spotify.FullPlaylist{SimplePlaylist: spotify.SimplePlaylist{
		ID:           "pl-9",
		Name:         playlistName,
		ExternalURLs: map[string]string{"spotify": "https://open.spotify.com/playlist/pl-9"},
	}}, nil
}

func (f *fakeCreator) AddTracksToPlaylist(context.Context, spotify.ID, ...spotify.ID) (string, error) {
	return "snapshot", nil
}

func TestTracksForMoodWithoutCatalog(t *testing.T) {
	agent := NewCuratorAgentWithCatalog(nil)

	rec := agent.TracksForMood(context.Background(), "sad", 5)

	require.Len(t, rec.Tracks, 5)
	assert.True(t, rec.Degraded)
	assert.Contains(t, rec.Reason, "curated fallback")
	for _, track := range rec.Tracks {
		assert.True(t, strings.HasPrefix(track.ID, "mock-sad-"), track.ID)
	}
}

func TestTracksForMoodEmptyCatalogPadsWithMocks(t *testing.T) {
	agent := NewCuratorAgentWithCatalog(catalog.NewServiceWithAPI(stubAPI{}))

	rec := agent.TracksForMood(context.Background(), "happy", 8)

	require.Len(t, rec.Tracks, 8)
	assert.True(t, rec.Degraded)
	for _, track := range rec.Tracks {
		assert.True(t, catalog.IsMockID(track.ID), track.ID)
	}
}

func TestDiscoverWithoutCatalog(t *testing.T) {
	agent := NewCuratorAgentWithCatalog(nil)

	rec := agent.Discover(context.Background(), "energetic", 3)

	require.Len(t, rec.Tracks, 3)
	assert.True(t, rec.Degraded)
}

func TestCreatePlaylistDefaultName(t *testing.T) {
	creator := &fakeCreator{}
	agent := NewCuratorAgentWithCatalog(catalog.NewServiceWithAPI(stubAPI{}))

	playlist, err := agent.CreatePlaylist(context.Background(), creator, "", "Joy", []string{"real-1"}, "")
	require.NoError(t, err)

	assert.Equal(t, "Playlist based on happy", creator.createdName)
	assert.Equal(t, "Playlist based on happy", playlist.Name)
}

func TestCreatePlaylistKeepsGivenName(t *testing.T) {
	creator := &fakeCreator{}
	agent := NewCuratorAgentWithCatalog(catalog.NewServiceWithAPI(stubAPI{}))

	_, err := agent.CreatePlaylist(context.Background(), creator, "Friday night", "sad", []string{"real-1"}, "late shift tracks")
	require.NoError(t, err)

	assert.Equal(t, "Friday night", creator.createdName)
	assert.Equal(t, "late shift tracks", creator.createdDesc)
}

func TestCreatePlaylistWithoutCatalog(t *testing.T) {
	agent := NewCuratorAgentWithCatalog(nil)

	_, err := agent.CreatePlaylist(context.Background(), &fakeCreator{}, "name", "happy", []string{"real-1"}, "")
	assert.ErrorContains(t, err, "spotify credentials not configured")
}

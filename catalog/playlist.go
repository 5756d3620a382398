package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/zmb3/spotify/v2"

	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
)

const (
	defaultPlaylistDescription = "Created by Mood & Weather Playlist Creator"
	playlistAddBatchSize       = 100
)

// PlaylistCreator is the slice of the user-auth Spotify API playlist
// creation needs. The concrete client comes out of the OAuth flow.
type PlaylistCreator interface {
	CurrentUser(ctx context.Context) (*spotify.PrivateUser, error)
	CreatePlaylistForUser(ctx context.Context, userID, playlistName, description string, public bool, collaborative bool) (*spotify.FullPlaylist, error)
	AddTracksToPlaylist(ctx context.Context, playlistID spotify.ID, trackIDs ...spotify.ID) (string, error)
}

var _ PlaylistCreator = (*spotify.Client)(nil)

// CreatePlaylist builds a public playlist for the logged-in user and fills
// it with the given tracks. Mock IDs are dropped first. There is no
// rollback: if adding tracks fails, the created playlist survives empty
// and the error surfaces.
func (s *Service) CreatePlaylist(ctx context.Context, client PlaylistCreator, name string, trackIDs []string, description string) (*models.Playlist, error) {
	if client == nil {
		return nil, errors.New("spotify login required")
	}

	ids := make([]spotify.ID, 0, len(trackIDs))
	for _, id := range trackIDs {
		if id == "" || IsMockID(id) {
			continue
		}
		ids = append(ids, spotify.ID(id))
	}
	if len(ids) == 0 {
		return nil, errors.New("no playable track IDs to add")
	}
	if description == "" {
		description = defaultPlaylistDescription
	}

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching spotify profile: %w", err)
	}

	playlist, err := client.CreatePlaylistForUser(ctx, user.ID, name, description, true, false)
	if err != nil {
		return nil, fmt.Errorf("creating playlist %q: %w", name, err)
	}

	for start := 0; start < len(ids); start += playlistAddBatchSize {
		end := min(start+playlistAddBatchSize, len(ids))
		if _, err := client.AddTracksToPlaylist(ctx, playlist.ID, ids[start:end]...); err != nil {
			return nil, fmt.Errorf("adding tracks %d-%d to playlist %s: %w", start+1, end, playlist.ID, err)
		}
	}

	log.Printf("✅ PLAYLIST %q created with %d tracks", playlist.Name, len(ids))

	return &models.Playlist{
		ID:          string(playlist.ID),
		Name:        playlist.Name,
		URL:         playlist.ExternalURLs["spotify"],
		TracksCount: len(ids),
	}, nil
}

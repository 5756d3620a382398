// Package catalog talks to the Spotify Web API: mood-driven track search
// with curated fallbacks, feature-steered recommendations, and playlist
// creation for logged-in users.
package catalog

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
)

// spotifyAPI is the slice of the Spotify Web API the catalog calls.
type spotifyAPI interface {
	Search(ctx context.Context, query string, t spotify.SearchType, opts ...spotify.RequestOption) (*spotify.SearchResult, error)
	GetRecommendations(ctx context.Context, seeds spotify.Seeds, trackAttributes *spotify.TrackAttributes, opts ...spotify.RequestOption) (*spotify.Recommendations, error)
	GetTrack(ctx context.Context, id spotify.ID, opts ...spotify.RequestOption) (*spotify.FullTrack, error)
	NewReleases(ctx context.Context, opts ...spotify.RequestOption) (*spotify.SimpleAlbumPage, error)
}

var _ spotifyAPI = (*spotify.Client)(nil)

// Service answers track queries against Spotify, degrading to curated
// mock banks when the API is unavailable or returns too little.
type Service struct {
	api          spotifyAPI
	clientID     string
	clientSecret string

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewService builds a Service backed by an app-auth Spotify client.
func NewService(ctx context.Context, clientID, clientSecret string) (*Service, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("spotify credentials not configured")
	}
	svc := NewServiceWithAPI(NewSearchClient(ctx, clientID, clientSecret))
	svc.clientID = clientID
	svc.clientSecret = clientSecret
	return svc, nil
}

// NewServiceWithAPI builds a Service over any API implementation.
func NewServiceWithAPI(api spotifyAPI) *Service {
	return &Service{
		api: api,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSearchClient creates a client-credentials Spotify client. It covers
// every endpoint that does not act on behalf of a user.
func NewSearchClient(ctx context.Context, clientID, clientSecret string) *spotify.Client {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	return spotify.New(config.Client(ctx))
}

// Authenticator builds the OAuth authenticator for user-level actions
// such as playlist creation.
func Authenticator(clientID, clientSecret, redirectURI string) *spotifyauth.Authenticator {
	return spotifyauth.New(
		spotifyauth.WithClientID(clientID),
		spotifyauth.WithClientSecret(clientSecret),
		spotifyauth.WithRedirectURL(redirectURI),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserLibraryRead,
			spotifyauth.ScopePlaylistModifyPublic,
			spotifyauth.ScopeUserTopRead,
		),
	)
}

func trackFromFull(t spotify.FullTrack) models.Track {
	return trackFromSimple(t.SimpleTrack)
}

func trackFromSimple(t spotify.SimpleTrack) models.Track {
	track := models.Track{
		ID:          string(t.ID),
		Name:        t.Name,
		Artist:      "Unknown Artist",
		Album:       t.Album.Name,
		PreviewURL:  t.PreviewURL,
		ExternalURL: t.ExternalURLs["spotify"],
	}
	if len(t.Artists) > 0 {
		track.Artist = t.Artists[0].Name
	}
	if track.Album == "" {
		track.Album = "Unknown Album"
	}
	if len(t.Album.Images) > 0 {
		track.ImageURL = t.Album.Images[0].URL
	}
	if track.ExternalURL == "" {
		track.ExternalURL = "https://spotify.com"
	}
	return track
}

func (s *Service) shuffle(items []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}

func (s *Service) pick(items []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return items[s.rng.Intn(len(items))]
}

func (s *Service) chance(p float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < p
}

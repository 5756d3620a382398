// Package server is the HTTP front end: a single demo page plus the JSON
// API the page talks to. All music logic lives behind the coordinator; the
// handlers only translate HTTP to coordinator calls.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"github.com/Conceptual-Machines/moodtunes-agents-go/catalog"
	"github.com/Conceptual-Machines/moodtunes-agents-go/config"
	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
	"github.com/Conceptual-Machines/moodtunes-agents-go/recommend"
)

// Recommender is the coordinator surface the handlers call.
type Recommender interface {
	HandleMood(ctx context.Context, userID, text string, limit int) (*models.MoodResult, error)
	HandleWeather(ctx context.Context, userID, location string, limit int) (*models.WeatherResult, error)
	CreatePlaylist(ctx context.Context, userID string, sess *recommend.SpotifySession, req recommend.PlaylistRequest) (*models.Playlist, error)
	History(ctx context.Context, userID string) ([]models.Interaction, error)
}

// Server serves the demo page and the JSON API.
type Server struct {
	recommender Recommender
	catalog     *catalog.Service
	auth        *spotifyauth.Authenticator
	sessions    *sessionStore
	httpServer  *http.Server
}

// NewServer wires the HTTP layer. catalogService may be nil when Spotify
// credentials are not configured; the server then serves fallback tracks
// and disables login and playlist creation.
func NewServer(cfg *config.Config, recommender Recommender, catalogService *catalog.Service) *Server {
	s := &Server{
		recommender: recommender,
		catalog:     catalogService,
		sessions:    newSessionStore(),
	}
	if cfg.SpotifyClientID != "" && cfg.SpotifyClientSecret != "" {
		s.auth = catalog.Authenticator(cfg.SpotifyClientID, cfg.SpotifyClientSecret, cfg.SpotifyRedirectURI)
	} else {
		log.Printf("⚠️ Spotify credentials not set, login and playlist creation disabled")
	}
	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(s.withUser)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/auth/login", s.handleLogin)
	r.Get("/callback", s.handleCallback)

	r.Route("/api", func(r chi.Router) {
		r.Post("/mood", s.handleMood)
		r.Post("/weather", s.handleWeather)
		r.Post("/playlist", s.handlePlaylist)
		r.Get("/history", s.handleHistory)
	})

	return r
}

// ListenAndServe blocks until the server stops. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	log.Printf("🌐 MOODTUNES LISTENING on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Printf("🌐 %s %s → %d (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}

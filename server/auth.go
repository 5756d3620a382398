package server

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// userCookie identifies a browser across visits. Its UUID value is also the
// memory-store user ID and the OAuth state parameter.
const userCookie = "mt_user"

type contextKey string

const userIDKey contextKey = "moodtunes.user"

// sessionStore keeps Spotify tokens per browser session, in memory only. A
// restart logs everyone out, which is fine for a demo.
type sessionStore struct {
	mu     sync.Mutex
	tokens map[string]*oauth2.Token
}

func newSessionStore() *sessionStore {
	return &sessionStore{tokens: make(map[string]*oauth2.Token)}
}

func (s *sessionStore) put(userID string, token *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = token
}

func (s *sessionStore) token(userID string) *oauth2.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[userID]
}

// withUser guarantees every request carries a valid session UUID, minting
// one on first visit. Tampered cookie values are replaced.
func (s *Server) withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(userCookie); err == nil {
			if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
				id = cookie.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     userCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, id)))
	})
}

// userID returns the session UUID stashed by withUser.
func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.auth == nil {
		writeError(w, http.StatusServiceUnavailable, "spotify credentials not configured")
		return
	}
	http.Redirect(w, r, s.auth.AuthURL(userID(r)), http.StatusFound)
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if s.auth == nil {
		writeError(w, http.StatusServiceUnavailable, "spotify credentials not configured")
		return
	}
	token, err := s.auth.Token(r.Context(), userID(r), r)
	if err != nil {
		log.Printf("⚠️ Spotify authorization failed for %s: %v", userID(r), err)
		writeError(w, http.StatusForbidden, "spotify authorization failed")
		return
	}
	s.sessions.put(userID(r), token)
	log.Printf("🔐 SPOTIFY LOGIN COMPLETE for %s", userID(r))
	http.Redirect(w, r, "/", http.StatusFound)
}

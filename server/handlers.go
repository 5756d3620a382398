package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/zmb3/spotify/v2"

	"github.com/Conceptual-Machines/moodtunes-agents-go/catalog"
	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
	"github.com/Conceptual-Machines/moodtunes-agents-go/recommend"
)

type moodRequest struct {
	Text  string `json:"text"`
	Limit int    `json:"limit"`
}

type weatherRequest struct {
	Location string `json:"location"`
	Limit    int    `json:"limit"`
}

type playlistRequest struct {
	Name        string   `json:"name"`
	Emotion     string   `json:"emotion"`
	TrackIDs    []string `json:"track_ids"`
	Description string   `json:"description"`
}

type moodResponse struct {
	Emotion  string         `json:"emotion"`
	Tracks   []models.Track `json:"tracks"`
	Degraded bool           `json:"degraded"`
	Reason   string         `json:"reason,omitempty"`
}

type weatherResponse struct {
	Location  string         `json:"location"`
	Condition string         `json:"condition"`
	Emotion   string         `json:"emotion"`
	Tracks    []models.Track `json:"tracks"`
	Degraded  bool           `json:"degraded"`
	Reason    string         `json:"reason,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleMood(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	result, err := s.recommender.HandleMood(r.Context(), userID(r), req.Text, req.Limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, moodResponse{
		Emotion:  result.Emotion,
		Tracks:   result.Recommendation.Tracks,
		Degraded: result.Recommendation.Degraded,
		Reason:   result.Recommendation.Reason,
	})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	var req weatherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Location) == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}

	result, err := s.recommender.HandleWeather(r.Context(), userID(r), req.Location, req.Limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, weatherResponse{
		Location:  result.Weather.Location,
		Condition: result.Weather.Condition,
		Emotion:   result.Weather.Emotion,
		Tracks:    result.Recommendation.Tracks,
		Degraded:  result.Recommendation.Degraded,
		Reason:    result.Recommendation.Reason,
	})
}

func (s *Server) handlePlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.TrackIDs) == 0 {
		writeError(w, http.StatusBadRequest, "track_ids is required")
		return
	}

	// Fallback tracks are not real Spotify IDs and can never be added.
	playable := make([]string, 0, len(req.TrackIDs))
	for _, id := range req.TrackIDs {
		if id != "" && !catalog.IsMockID(id) {
			playable = append(playable, id)
		}
	}
	if len(playable) == 0 {
		writeError(w, http.StatusBadRequest, "no playable track IDs, fallback tracks cannot be saved")
		return
	}

	token := s.sessions.token(userID(r))
	if token == nil || s.auth == nil {
		writeError(w, http.StatusUnauthorized, "spotify login required")
		return
	}

	client := spotify.New(s.auth.Client(r.Context(), token))
	playlist, err := s.recommender.CreatePlaylist(r.Context(), userID(r), &recommend.SpotifySession{Client: client}, recommend.PlaylistRequest{
		Name:        req.Name,
		Emotion:     req.Emotion,
		TrackIDs:    playable,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, playlist)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.recommender.History(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if history == nil {
		history = []models.Interaction{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	var report models.HealthReport
	if s.catalog == nil {
		report = models.HealthReport{
			Healthy: false,
			Checks: []models.HealthCheck{
				{Name: "spotify.credentials", OK: false, Detail: "not configured"},
			},
		}
	} else {
		report = s.catalog.Health(r.Context())
	}

	status := http.StatusOK
	if !report.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️ Writing JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

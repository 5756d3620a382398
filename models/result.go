package models

import "time"

// Recommendation is a track set plus its provenance. Degraded means at least
// one track came from the fallback banks instead of the live catalog.
type Recommendation struct {
	Tracks   []Track `json:"tracks"`
	Degraded bool    `json:"degraded"`
	Reason   string  `json:"reason,omitempty"`
}

// WeatherReport is the raw answer from the weather provider.
type WeatherReport struct {
	Location    string  `json:"location"`
	Condition   string  `json:"condition"`
	Description string  `json:"description,omitempty"`
	TempC       float64 `json:"temp_c,omitempty"`
}

// WeatherMood is a resolved location: the observed condition and the emotion
// it maps to.
type WeatherMood struct {
	Location  string `json:"location"`
	Condition string `json:"weather_condition"`
	Emotion   string `json:"emotion"`
}

// MoodResult is the full answer for a text request.
type MoodResult struct {
	Emotion        string         `json:"emotion"`
	Recommendation Recommendation `json:"recommendation"`
}

// WeatherResult is the full answer for a location request.
type WeatherResult struct {
	Weather        WeatherMood    `json:"weather"`
	Recommendation Recommendation `json:"recommendation"`
}

// Interaction is one row of a user's history log.
type Interaction struct {
	Kind        string    `json:"kind"`
	Input       string    `json:"input"`
	Emotion     string    `json:"emotion,omitempty"`
	TrackCount  int       `json:"track_count,omitempty"`
	Degraded    bool      `json:"degraded,omitempty"`
	PlaylistURL string    `json:"playlist_url,omitempty"`
	At          time.Time `json:"at"`
}

// HealthCheck is a single probe result in a HealthReport.
type HealthCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// HealthReport summarizes catalog connectivity.
type HealthReport struct {
	Healthy bool          `json:"healthy"`
	Checks  []HealthCheck `json:"checks"`
}

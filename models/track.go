package models

// Track is the wire shape for a single recommended track.
type Track struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	ImageURL    string `json:"image_url,omitempty"`
	PreviewURL  string `json:"preview_url,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
}

// TrackDetail extends Track with the fields only returned by a direct lookup.
type TrackDetail struct {
	Track
	Popularity int `json:"popularity"`
	DurationMS int `json:"duration_ms"`
}

// Playlist describes a playlist created on the user's account.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	TracksCount int    `json:"tracks_count"`
}

package config

import "os"

// Config contains configuration for the MoodTunes agents
type Config struct {
	OpenAIAPIKey        string // OpenAI API key for LLM provider
	GeminiAPIKey        string // Google Gemini API key (optional)
	LLMProvider         string // provider used when a model name decides nothing
	SpotifyClientID     string // Spotify application client ID
	SpotifyClientSecret string // Spotify application client secret
	SpotifyRedirectURI  string // OAuth redirect URI registered with Spotify
	OpenWeatherAPIKey   string // OpenWeatherMap API key (optional)
	SentryDSN           string // Sentry DSN for tracing (optional)
	MemoryDir           string // directory holding per-user interaction history
	HTTPAddr            string // listen address for the web UI
}

// FromEnv builds a Config from environment variables, filling in defaults
// for the optional knobs.
func FromEnv() Config {
	return Config{
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		LLMProvider:         envOr("LLM_PROVIDER", "openai"),
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		SpotifyRedirectURI:  envOr("SPOTIFY_REDIRECT_URI", "http://localhost:8888/callback"),
		OpenWeatherAPIKey:   os.Getenv("OPENWEATHER_API_KEY"),
		SentryDSN:           os.Getenv("SENTRY_DSN"),
		MemoryDir:           envOr("MEMORY_DIR", "memory"),
		HTTPAddr:            envOr("HTTP_ADDR", ":8888"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

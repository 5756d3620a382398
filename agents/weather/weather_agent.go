// Package weather maps a location's current sky onto an emotion.
package weather

import (
	"context"
	"errors"
	"log"

	"github.com/getsentry/sentry-go"

	"github.com/Conceptual-Machines/moodtunes-agents-go/config"
	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
	"github.com/Conceptual-Machines/moodtunes-agents-go/mood"
	openweather "github.com/Conceptual-Machines/moodtunes-agents-go/weather"
)

// conditionSource is the slice of the weather client the agent needs.
type conditionSource interface {
	Current(ctx context.Context, location string) (models.WeatherReport, error)
}

var _ conditionSource = (*openweather.Client)(nil)

// WeatherAgent resolves a location to the emotion its weather suggests.
// Lookups that fail resolve to neutral instead of erroring; a broken
// weather feed should not take the playlist down with it.
type WeatherAgent struct {
	source conditionSource
}

// NewWeatherAgent creates a weather agent backed by OpenWeatherMap.
func NewWeatherAgent(cfg *config.Config) *WeatherAgent {
	if cfg.OpenWeatherAPIKey == "" {
		log.Printf("⚠️  OPENWEATHER_API_KEY not set, weather lookups will answer neutral")
	}
	return NewWeatherAgentWithSource(openweather.NewClient(cfg.OpenWeatherAPIKey))
}

// NewWeatherAgentWithSource creates a weather agent reading conditions from
// a specific source.
func NewWeatherAgentWithSource(source conditionSource) *WeatherAgent {
	log.Printf("🌦️  WEATHER AGENT INITIALIZED")
	return &WeatherAgent{source: source}
}

// Resolve fetches the current condition for a location and maps it onto an
// emotion. Failures come back as condition "Unknown" and emotion "neutral".
func (a *WeatherAgent) Resolve(ctx context.Context, location string) models.WeatherMood {
	transaction := sentry.StartTransaction(ctx, "weather.resolve")
	defer transaction.Finish()
	transaction.SetTag("location", location)

	report, err := a.source.Current(ctx, location)
	if err != nil {
		transaction.SetTag("success", "false")
		if !errors.Is(err, openweather.ErrNotFound) {
			sentry.CaptureException(err)
		}
		log.Printf("⚠️  Weather lookup for %q failed: %v", location, err)
		return models.WeatherMood{Location: location, Condition: "Unknown", Emotion: "neutral"}
	}

	emotion := mood.EmotionForWeather(report.Condition)

	transaction.SetTag("success", "true")
	transaction.SetTag("condition", report.Condition)
	transaction.SetTag("emotion", emotion)

	log.Printf("🌦️  WEATHER: %s → %s → %s", report.Location, report.Condition, emotion)

	return models.WeatherMood{
		Location:  report.Location,
		Condition: report.Condition,
		Emotion:   emotion,
	}
}

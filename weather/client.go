// Package weather looks up current conditions via the OpenWeatherMap API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// ErrNotFound is returned when OpenWeatherMap does not know the location.
var ErrNotFound = errors.New("location not found")

// Client queries the OpenWeatherMap current weather endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a weather client with the default API endpoint.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL, nil)
}

// NewClientWithBaseURL creates a weather client against a custom endpoint.
// A nil httpClient falls back to a client with a 10s timeout.
func NewClientWithBaseURL(apiKey, baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Current returns the current weather for a location. The location is either
// a US zip code (all digits) or a city name. A "Paris, France" style query
// that the API rejects is retried with the city part only.
func (c *Client) Current(ctx context.Context, location string) (models.WeatherReport, error) {
	report, err := c.fetch(ctx, location)
	if err == nil {
		return report, nil
	}

	if errors.Is(err, ErrNotFound) {
		if city, ok := cityBeforeComma(location); ok {
			log.Printf("⚠️  Location %q not found, retrying with %q", location, city)
			return c.fetch(ctx, city)
		}
	}
	return models.WeatherReport{}, err
}

func (c *Client) fetch(ctx context.Context, location string) (models.WeatherReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(location), nil)
	if err != nil {
		return models.WeatherReport{}, fmt.Errorf("building weather request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.WeatherReport{}, fmt.Errorf("calling openweathermap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.WeatherReport{}, fmt.Errorf("weather for %q: %w", location, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.WeatherReport{}, fmt.Errorf("openweathermap returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.WeatherReport{}, fmt.Errorf("decoding weather response: %w", err)
	}
	if len(payload.Weather) == 0 {
		return models.WeatherReport{}, fmt.Errorf("weather response for %q had no conditions", location)
	}

	log.Printf("🌦️  WEATHER LOOKUP for %q completed in %v (condition=%s)", location, time.Since(start), payload.Weather[0].Main)

	name := payload.Name
	if name == "" {
		name = location
	}

	return models.WeatherReport{
		Location:    name,
		Condition:   payload.Weather[0].Main,
		Description: payload.Weather[0].Description,
		TempC:       payload.Main.Temp,
	}, nil
}

func (c *Client) buildURL(location string) string {
	params := url.Values{}
	if isZipCode(location) {
		params.Set("zip", location+",us")
	} else {
		params.Set("q", location)
	}
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	return c.baseURL + "?" + params.Encode()
}

// isZipCode reports whether the location looks like a US zip code.
func isZipCode(location string) bool {
	if location == "" {
		return false
	}
	for _, r := range location {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func cityBeforeComma(location string) (string, bool) {
	idx := strings.Index(location, ",")
	if idx <= 0 {
		return "", false
	}
	city := strings.TrimSpace(location[:idx])
	if city == "" {
		return "", false
	}
	return city, true
}

type owmResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

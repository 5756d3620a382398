package catalog

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
)

// Health probes the API the way an operator would: credentials first, then
// a public catalog endpoint, then the recommendations endpoint. A failing
// recommendations probe does not flip the overall verdict, that endpoint
// is restricted for newer API applications and the search chain covers it.
func (s *Service) Health(ctx context.Context) models.HealthReport {
	report := models.HealthReport{Healthy: true}

	creds := models.HealthCheck{Name: "spotify.credentials", OK: s.clientID != "" && s.clientSecret != ""}
	if !creds.OK {
		creds.Detail = "client ID or secret missing"
		report.Healthy = false
	}
	report.Checks = append(report.Checks, creds)

	releases := models.HealthCheck{Name: "spotify.new_releases"}
	if albums, err := s.api.NewReleases(ctx, spotify.Limit(1)); err != nil {
		releases.Detail = err.Error()
		report.Healthy = false
	} else {
		releases.OK = true
		if albums != nil && len(albums.Albums) > 0 {
			releases.Detail = fmt.Sprintf("latest release: %s", albums.Albums[0].Name)
		}
	}
	report.Checks = append(report.Checks, releases)

	recs := models.HealthCheck{Name: "spotify.recommendations"}
	if _, err := s.api.GetRecommendations(ctx, spotify.Seeds{Genres: []string{"pop"}}, nil, spotify.Limit(1)); err != nil {
		recs.Detail = err.Error()
	} else {
		recs.OK = true
	}
	report.Checks = append(report.Checks, recs)

	return report
}

package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"studioflow/models"
	"studioflow/services/scheduling"
)

const metersPerMile = 1609.344

// directionsResponse is the slice of the Google Directions API response
// this client reads.
type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Distance struct {
				Value int `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// GoogleRouteProvider resolves driving distance and duration through the
// Google Directions API.
type GoogleRouteProvider struct {
	APIKey string
	Client *http.Client
}

// NewGoogleRouteProvider builds a provider with a bounded HTTP client.
func NewGoogleRouteProvider(apiKey string) *GoogleRouteProvider {
	return &GoogleRouteProvider{
		APIKey: apiKey,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Route fetches the first route's first leg between the two points.
// Errors here are expected to be swallowed by the travel estimator; a
// booking is never failed over a routing lookup.
func (p *GoogleRouteProvider) Route(ctx context.Context, origin, destination models.Coordinates) (scheduling.RouteLeg, error) {
	if p.APIKey == "" {
		return scheduling.RouteLeg{}, fmt.Errorf("routing: no API key configured")
	}

	url := fmt.Sprintf(
		"https://maps.googleapis.com/maps/api/directions/json?origin=%f,%f&destination=%f,%f&key=%s",
		origin.Lat, origin.Lng, destination.Lat, destination.Lng, p.APIKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return scheduling.RouteLeg{}, fmt.Errorf("routing: build request: %w", err)
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return scheduling.RouteLeg{}, fmt.Errorf("routing: directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var directions directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&directions); err != nil {
		return scheduling.RouteLeg{}, fmt.Errorf("routing: decode directions response: %w", err)
	}
	if directions.Status != "OK" || len(directions.Routes) == 0 || len(directions.Routes[0].Legs) == 0 {
		return scheduling.RouteLeg{}, fmt.Errorf("routing: no route found (status %s)", directions.Status)
	}

	leg := directions.Routes[0].Legs[0]
	return scheduling.RouteLeg{
		DistanceMiles:     float64(leg.Distance.Value) / metersPerMile,
		TravelTimeMinutes: (leg.Duration.Value + 59) / 60,
	}, nil
}

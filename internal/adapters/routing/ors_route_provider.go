package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/obs"
	"delivery-zone-service/internal/ports"
)

// ORSRouteProvider implements RouteProvider using the OpenRouteService
// directions endpoint.
//
// It handles request construction, API-key auth, and retry/backoff for
// transient failures. It deliberately does NOT fall back to a local
// estimate; that responsibility belongs to the route estimator so the
// fallback policy stays in one place.
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
}

func NewORSRouteProvider(apiKey string) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
	}

	return provider, nil
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance *float64 `json:"distance"`
			Duration *float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

// GetRoute fetches the driving distance and duration between two coordinates.
func (o *ORSRouteProvider) GetRoute(
	ctx context.Context,
	origin domain.Coordinate,
	destination domain.Coordinate,
) (_ ports.RouteLeg, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	if err := origin.Validate(); err != nil {
		return ports.RouteLeg{}, fmt.Errorf("get route: origin: %w", err)
	}
	if err := destination.Validate(); err != nil {
		return ports.RouteLeg{}, fmt.Errorf("get route: destination: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	bodyObj := directionsRequest{
		Coordinates: [][]float64{
			origin.CoordsToList(),
			destination.CoordsToList(),
		},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return ports.RouteLeg{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.postWithRetry(ctx, endpoint, payload)
	if err != nil {
		return ports.RouteLeg{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteLeg{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 {
		return ports.RouteLeg{}, errors.New("directions response contains no routes")
	}

	summary := dr.Routes[0].Summary
	if summary.Distance == nil || summary.Duration == nil {
		return ports.RouteLeg{}, errors.New("directions response is missing distance or duration")
	}

	// ORS reports meters and seconds; the domain works in km and minutes.
	return ports.RouteLeg{
		DistanceKm:      *summary.Distance / 1000,
		DurationMinutes: *summary.Duration / 60,
	}, nil
}

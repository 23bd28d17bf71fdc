package routing

import (
	"context"
	"fmt"

	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/ports"
)

type MockLeg struct {
	From, To domain.Coordinate
	Km       float64
	Minutes  float64
}

// MockRouteProvider serves scripted legs for tests. Lookups not present in
// the script fail, which exercises the estimator's fallback path.
type MockRouteProvider struct {
	m     map[string]ports.RouteLeg
	Calls int
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]ports.RouteLeg, len(legs))
	for _, l := range legs {
		m[legKey(l.From, l.To)] = ports.RouteLeg{DistanceKm: l.Km, DurationMinutes: l.Minutes}
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinate) (ports.RouteLeg, error) {
	p.Calls++
	r, ok := p.m[legKey(origin, destination)]
	if !ok {
		return ports.RouteLeg{}, fmt.Errorf("missing leg %v -> %v", origin, destination)
	}

	return r, nil
}

func legKey(a, b domain.Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", a.Lat, a.Lng, b.Lat, b.Lng)
}

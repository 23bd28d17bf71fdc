package ports

import (
	"context"

	"delivery-zone-service/internal/domain"
)

// Road distance and travel duration between two coordinates.
type RouteLeg struct {
	DistanceKm      float64
	DurationMinutes float64
}

// Contract for the external road-routing backend.
//
// Implementations may fail (timeout, 5xx, malformed response); the
// route estimator is responsible for masking those failures with a
// locally computed fallback.
type RouteProvider interface {
	// Return driving distance and estimated duration between two coordinates.
	GetRoute(ctx context.Context, origin, destination domain.Coordinate) (RouteLeg, error)
}

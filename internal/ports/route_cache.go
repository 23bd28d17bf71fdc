package ports

import (
	"context"

	"delivery-zone-service/internal/domain"
)

// Optional bounded-TTL cache for route legs keyed by warehouse and a
// rounded customer coordinate. Purely an optimization: a nil cache or a
// failing cache must never change observable behavior.
type RouteCache interface {
	// Get returns the cached leg and whether it was present.
	Get(ctx context.Context, warehouseID string, customer domain.Coordinate) (RouteLeg, bool, error)

	// Put stores a leg for the given warehouse/coordinate pair.
	Put(ctx context.Context, warehouseID string, customer domain.Coordinate, leg RouteLeg) error
}

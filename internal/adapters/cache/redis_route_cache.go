package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// RedisRouteCache is a bounded-TTL cache for route legs keyed by
// (warehouse id, rounded customer coordinate).
//
// Coordinates are rounded to 4 decimal places (~11m) so nearby requests
// share an entry. Entries expire on their own; there is no invalidation.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisRouteCache{client: client, ttl: ttl}
}

type cachedLeg struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
}

func routeKey(warehouseID string, c domain.Coordinate) string {
	return fmt.Sprintf("route:%s:%.4f,%.4f", warehouseID, c.Lat, c.Lng)
}

// Get returns the cached leg for the warehouse/coordinate pair, if present.
func (r *RedisRouteCache) Get(
	ctx context.Context,
	warehouseID string,
	customer domain.Coordinate,
) (ports.RouteLeg, bool, error) {
	if r.client == nil {
		return ports.RouteLeg{}, false, errors.New("route cache: client is nil")
	}

	raw, err := r.client.Get(ctx, routeKey(warehouseID, customer)).Result()
	if errors.Is(err, redis.Nil) {
		return ports.RouteLeg{}, false, nil
	}
	if err != nil {
		return ports.RouteLeg{}, false, fmt.Errorf("get route cache: %w", err)
	}

	var leg cachedLeg
	if err := json.Unmarshal([]byte(raw), &leg); err != nil {
		// Treat unreadable entries as misses; they will be overwritten.
		return ports.RouteLeg{}, false, nil
	}

	return ports.RouteLeg{
		DistanceKm:      leg.DistanceKm,
		DurationMinutes: leg.DurationMinutes,
	}, true, nil
}

// Put stores a leg for the warehouse/coordinate pair with the cache TTL.
func (r *RedisRouteCache) Put(
	ctx context.Context,
	warehouseID string,
	customer domain.Coordinate,
	leg ports.RouteLeg,
) error {
	if r.client == nil {
		return errors.New("route cache: client is nil")
	}

	payload, err := json.Marshal(cachedLeg{
		DistanceKm:      leg.DistanceKm,
		DurationMinutes: leg.DurationMinutes,
	})
	if err != nil {
		return fmt.Errorf("insert route cache: marshal leg: %w", err)
	}

	if err := r.client.Set(ctx, routeKey(warehouseID, customer), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	return nil
}

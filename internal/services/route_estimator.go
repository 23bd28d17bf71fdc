package services

import (
	"context"
	"log"
	"time"

	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/ports"
)

// Average road speed used to derive a duration from the straight-line
// fallback distance when the routing backend is unavailable.
const fallbackSpeedKmh = 40.0

const defaultRouteTimeout = 3 * time.Second

// RouteEstimator produces a driving distance/duration estimate between a
// warehouse and a customer coordinate.
//
// Estimate never fails: any provider error, timeout, or malformed response
// degrades to a deterministic great-circle estimate with Method=fallback.
// A single unreachable routing backend must not abort evaluation of all
// warehouses.
type RouteEstimator struct {
	provider ports.RouteProvider
	cache    ports.RouteCache
	timeout  time.Duration
}

// NewRouteEstimator wraps a routing provider with a per-call timeout and
// an optional route cache (nil disables caching).
func NewRouteEstimator(provider ports.RouteProvider, cache ports.RouteCache, timeout time.Duration) *RouteEstimator {
	if timeout <= 0 {
		timeout = defaultRouteTimeout
	}
	return &RouteEstimator{provider: provider, cache: cache, timeout: timeout}
}

// Estimate measures the route from the warehouse to the customer.
//
// On provider failure it emits a diagnostic log line carrying the
// warehouse identity and cause, then returns the fallback estimate.
func (e *RouteEstimator) Estimate(
	ctx context.Context,
	warehouse *domain.Warehouse,
	customer domain.Coordinate,
) domain.RouteResult {
	if e.cache != nil {
		leg, ok, err := e.cache.Get(ctx, warehouse.ID, customer)
		if err != nil {
			// Cache trouble is never fatal; re-measure.
			log.Printf("op=route_cache_get warehouse=%s err=%v", warehouse.ID, err)
		} else if ok {
			return domain.RouteResult{
				DistanceKm:      leg.DistanceKm,
				DurationMinutes: leg.DurationMinutes,
				Method:          domain.RouteMethodRouted,
			}
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	leg, err := e.provider.GetRoute(callCtx, warehouse.Location, customer)
	if err != nil {
		log.Printf(
			"op=route_fallback warehouse=%s warehouse_name=%q err=%v",
			warehouse.ID, warehouse.Name, err,
		)
		return e.fallback(warehouse.Location, customer)
	}

	if e.cache != nil {
		if err := e.cache.Put(ctx, warehouse.ID, customer, leg); err != nil {
			log.Printf("op=route_cache_put warehouse=%s err=%v", warehouse.ID, err)
		}
	}

	return domain.RouteResult{
		DistanceKm:      leg.DistanceKm,
		DurationMinutes: leg.DurationMinutes,
		Method:          domain.RouteMethodRouted,
	}
}

// fallback derives a deterministic estimate from the great-circle
// distance and a fixed average road speed.
func (e *RouteEstimator) fallback(origin, destination domain.Coordinate) domain.RouteResult {
	distanceKm := domain.HaversineKm(origin, destination)

	return domain.RouteResult{
		DistanceKm:      distanceKm,
		DurationMinutes: distanceKm / fallbackSpeedKmh * 60,
		Method:          domain.RouteMethodFallback,
		UsedFallback:    true,
	}
}

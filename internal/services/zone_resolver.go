package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/obs"
	"delivery-zone-service/internal/ports"
)

const defaultEvalConcurrency = 5

// ZoneResolution answers "could this location ever be served" across the
// active warehouse fleet.
type ZoneResolution struct {
	DeliveryAvailable bool
	Warehouses        []domain.WarehouseDeliveryOutcome
}

// DeliveryZoneResolver fans out route estimation and policy evaluation
// across the active warehouses for a single customer coordinate.
type DeliveryZoneResolver struct {
	Warehouses  ports.WarehouseRepository
	Estimator   *RouteEstimator
	Concurrency int
}

// Resolve evaluates every active warehouse against the customer location.
//
// The postal-code step is skipped here: this entry point performs the
// coarse area check, not the pincode-restricted one. Warehouses that
// cannot deliver are excluded from the returned list. Per-warehouse
// routing failures never fail the whole call; an empty or all-excluded
// result yields DeliveryAvailable=false, not an error.
func (r *DeliveryZoneResolver) Resolve(ctx context.Context, customer domain.Coordinate) (_ ZoneResolution, err error) {
	defer obs.Time(ctx, "zone.Resolve")(&err)

	if err := customer.Validate(); err != nil {
		return ZoneResolution{}, fmt.Errorf("resolve delivery zone: %w", err)
	}

	warehouses, err := r.Warehouses.ListActive(ctx)
	if err != nil {
		return ZoneResolution{}, fmt.Errorf("resolve delivery zone: list active warehouses: %w", err)
	}

	outcomes, err := evaluateWarehouses(ctx, r.Estimator, warehouses, customer, "", false, r.Concurrency)
	if err != nil {
		return ZoneResolution{}, fmt.Errorf("resolve delivery zone: %w", err)
	}

	deliverable := make([]domain.WarehouseDeliveryOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.CanDeliver {
			deliverable = append(deliverable, o)
		}
	}

	// Ordering is not part of the contract; nearest-first keeps responses
	// deterministic for clients that display the list as-is.
	slices.SortFunc(deliverable, func(a, b domain.WarehouseDeliveryOutcome) int {
		if a.DistanceKm < b.DistanceKm {
			return -1
		}
		if a.DistanceKm > b.DistanceKm {
			return 1
		}
		if a.WarehouseID < b.WarehouseID {
			return -1
		}
		if a.WarehouseID > b.WarehouseID {
			return 1
		}
		return 0
	})

	return ZoneResolution{
		DeliveryAvailable: len(deliverable) > 0,
		Warehouses:        deliverable,
	}, nil
}

// evaluateWarehouses runs route estimation followed by policy evaluation
// for each warehouse with bounded concurrency.
//
// Outcomes are computed independently and merged only through the result
// channel, so no locking is needed. Estimation never fails (fallback
// path), which means the only error out of here is caller cancellation:
// partially completed outcomes are then discarded, not returned.
func evaluateWarehouses(
	ctx context.Context,
	estimator *RouteEstimator,
	warehouses []*domain.Warehouse,
	customer domain.Coordinate,
	pincode string,
	enforcePincode bool,
	concurrency int,
) ([]domain.WarehouseDeliveryOutcome, error) {
	if len(warehouses) == 0 {
		return []domain.WarehouseDeliveryOutcome{}, nil
	}

	if concurrency <= 0 {
		concurrency = defaultEvalConcurrency
	}

	sem := make(chan struct{}, concurrency)
	resultsCh := make(chan domain.WarehouseDeliveryOutcome, len(warehouses))
	var wg sync.WaitGroup

	for _, w := range warehouses {
		wg.Add(1)
		go func(w *domain.Warehouse) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			route := estimator.Estimate(ctx, w, customer)
			decision := EvaluateWarehousePolicy(w, route, pincode, enforcePincode)

			resultsCh <- domain.WarehouseDeliveryOutcome{
				WarehouseID:        w.ID,
				WarehouseName:      w.Name,
				DistanceKm:         route.DistanceKm,
				DurationMinutes:    route.DurationMinutes,
				Method:             route.Method,
				CanDeliver:         decision.CanDeliver,
				IsFreeDeliveryZone: decision.IsFreeDeliveryZone,
				Reason:             decision.Reason,
			}
		}(w)
	}

	wg.Wait()
	close(resultsCh)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcomes := make([]domain.WarehouseDeliveryOutcome, 0, len(warehouses))
	for o := range resultsCh {
		outcomes = append(outcomes, o)
	}

	return outcomes, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/obs"
	"delivery-zone-service/internal/ports"
)

// ErrNoWarehouseAttribution marks a cart whose items reference no
// warehouse at all; such a cart cannot be validated.
var ErrNoWarehouseAttribution = errors.New("cart items carry no warehouse attribution")

// CartValidation classifies every cart item as deliverable or not for a
// given customer location and postal code.
type CartValidation struct {
	AllItemsDeliverable bool
	PerWarehouse        []domain.WarehouseDeliveryOutcome
	UndeliverableItems  []domain.UndeliverableItem
	DeliverableCount    int
	TotalCount          int
}

// CartDeliveryValidator evaluates warehouse eligibility per cart line
// item. Unlike the area check, the postal-code step is mandatory here
// for every non-24x7 warehouse.
type CartDeliveryValidator struct {
	Warehouses  ports.WarehouseRepository
	Estimator   *RouteEstimator
	Concurrency int
}

// Validate groups items by warehouse, evaluates each referenced
// warehouse, and tags every item of a failing warehouse with that
// step's reason. Policy rejections and routing fallbacks are outcomes,
// not errors; only malformed input (bad coordinate, cart with no
// warehouse attribution) is rejected at the request level.
//
// With zero items the call degrades to an address-availability probe:
// it succeeds as soon as any warehouse in scope can deliver, without
// enumerating items. Scope narrows the probe to the caller's assigned
// warehouses; empty scope means all active warehouses.
func (v *CartDeliveryValidator) Validate(
	ctx context.Context,
	customer domain.Coordinate,
	pincode string,
	items []domain.CartLineItem,
	scope []string,
) (_ CartValidation, err error) {
	defer obs.Time(ctx, "cart.Validate")(&err)

	if err := customer.Validate(); err != nil {
		return CartValidation{}, fmt.Errorf("validate cart delivery: %w", err)
	}

	if len(items) == 0 {
		return v.probe(ctx, customer, pincode, scope)
	}

	groups := domain.GroupItemsByWarehouse(items)
	if len(groups) == 0 {
		return CartValidation{}, fmt.Errorf("validate cart delivery: %w", ErrNoWarehouseAttribution)
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	found, err := v.Warehouses.FindByIDs(ctx, ids)
	if err != nil {
		return CartValidation{}, fmt.Errorf("validate cart delivery: find warehouses: %w", err)
	}

	// Only active warehouses with a location are evaluated; everything
	// else referenced by the cart counts as unavailable for its items.
	evaluable := make([]*domain.Warehouse, 0, len(found))
	names := make(map[string]string, len(found))
	for _, w := range found {
		names[w.ID] = w.Name
		if w.Status != domain.WarehouseStatusActive {
			continue
		}
		if err := w.Location.Validate(); err != nil {
			continue
		}
		evaluable = append(evaluable, w)
	}

	outcomes, err := evaluateWarehouses(ctx, v.Estimator, evaluable, customer, pincode, true, v.Concurrency)
	if err != nil {
		return CartValidation{}, fmt.Errorf("validate cart delivery: %w", err)
	}

	byWarehouse := make(map[string]domain.WarehouseDeliveryOutcome, len(outcomes))
	for _, o := range outcomes {
		byWarehouse[o.WarehouseID] = o
	}

	validation := CartValidation{
		PerWarehouse: make([]domain.WarehouseDeliveryOutcome, 0, len(ids)),
	}

	for _, id := range ids {
		outcome, evaluated := byWarehouse[id]
		if !evaluated {
			// Referenced by the cart but missing, inactive, or without a
			// usable location.
			outcome = domain.WarehouseDeliveryOutcome{
				WarehouseID:   id,
				WarehouseName: names[id],
				Reason:        ReasonWarehouseUnavailable,
			}
		}
		validation.PerWarehouse = append(validation.PerWarehouse, outcome)

		if outcome.CanDeliver {
			continue
		}
		for _, it := range groups[id] {
			validation.UndeliverableItems = append(validation.UndeliverableItems, domain.UndeliverableItem{
				CartLineItem:  it,
				WarehouseName: outcome.WarehouseName,
				Reason:        outcome.Reason,
			})
		}
	}

	// Items with no warehouse attribution at all ride along as
	// unavailable rather than poisoning the whole request.
	for _, it := range items {
		if it.WarehouseID == "" {
			validation.UndeliverableItems = append(validation.UndeliverableItems, domain.UndeliverableItem{
				CartLineItem: it,
				Reason:       ReasonWarehouseUnavailable,
			})
		}
	}

	validation.TotalCount = len(items)
	validation.DeliverableCount = validation.TotalCount - len(validation.UndeliverableItems)
	validation.AllItemsDeliverable = len(validation.UndeliverableItems) == 0

	return validation, nil
}

// probe answers the pre-checkout "can anything reach this address"
// question without enumerating items.
func (v *CartDeliveryValidator) probe(
	ctx context.Context,
	customer domain.Coordinate,
	pincode string,
	scope []string,
) (CartValidation, error) {
	var (
		warehouses []*domain.Warehouse
		err        error
	)

	if len(scope) > 0 {
		warehouses, err = v.Warehouses.FindByIDs(ctx, scope)
	} else {
		warehouses, err = v.Warehouses.ListActive(ctx)
	}
	if err != nil {
		return CartValidation{}, fmt.Errorf("validate cart delivery: load warehouses for probe: %w", err)
	}

	evaluable := make([]*domain.Warehouse, 0, len(warehouses))
	for _, w := range warehouses {
		if w.Status != domain.WarehouseStatusActive {
			continue
		}
		if err := w.Location.Validate(); err != nil {
			continue
		}
		evaluable = append(evaluable, w)
	}

	outcomes, err := evaluateWarehouses(ctx, v.Estimator, evaluable, customer, pincode, true, v.Concurrency)
	if err != nil {
		return CartValidation{}, fmt.Errorf("validate cart delivery: %w", err)
	}

	any := false
	for _, o := range outcomes {
		if o.CanDeliver {
			any = true
			break
		}
	}

	return CartValidation{
		AllItemsDeliverable: any,
		PerWarehouse:        outcomes,
	}, nil
}

package services

import (
	"fmt"

	"delivery-zone-service/internal/domain"
)

// Stable rejection reasons surfaced directly to end users. Handlers and
// clients match on these strings, so they must not change casually.
const (
	ReasonDeliveryDisabled     = "delivery disabled for this warehouse"
	ReasonPincodeRequired      = "postal code required"
	ReasonPincodeNotServed     = "postal code not served by this warehouse"
	ReasonWarehouseUnavailable = "warehouse unavailable"
)

// PolicyDecision is the outcome of evaluating one warehouse's delivery
// rules against a computed route and an optional postal code.
type PolicyDecision struct {
	CanDeliver         bool
	IsFreeDeliveryZone bool
	Reason             string
}

// EvaluateWarehousePolicy applies a warehouse's delivery rules in fixed
// precedence order. Each step short-circuits with its own reason:
//
//  1. delivery disabled
//  2. postal code allow-list (skipped for 24x7 warehouses, and skipped
//     entirely when enforcePincode is false — the coarse area check asks
//     "could this location ever be served", not "is this pincode served")
//  3. distance vs. max delivery radius
//
// The free-delivery flag is computed independently of steps 1-3; it is
// only meaningful when CanDeliver is true.
//
// This function is pure and performs no I/O.
func EvaluateWarehousePolicy(
	w *domain.Warehouse,
	route domain.RouteResult,
	pincode string,
	enforcePincode bool,
) PolicyDecision {
	settings := w.DeliverySettings

	decision := PolicyDecision{
		IsFreeDeliveryZone: route.DistanceKm <= settings.FreeDeliveryRadiusKm,
	}

	if !settings.IsDeliveryEnabled {
		decision.Reason = ReasonDeliveryDisabled
		return decision
	}

	if enforcePincode && !settings.Is24x7Delivery {
		if pincode == "" {
			decision.Reason = ReasonPincodeRequired
			return decision
		}
		if !settings.ServesPincode(pincode) {
			decision.Reason = ReasonPincodeNotServed
			return decision
		}
	}

	if route.DistanceKm > settings.MaxDeliveryRadiusKm {
		decision.Reason = fmt.Sprintf(
			"outside delivery radius (distance %.1f km exceeds max %.1f km)",
			route.DistanceKm, settings.MaxDeliveryRadiusKm,
		)
		return decision
	}

	decision.CanDeliver = true
	return decision
}

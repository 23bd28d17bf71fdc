package domain

// RouteMethod identifies how a route estimate was produced.
type RouteMethod string

const (
	// RouteMethodRouted means the external road-routing service answered.
	RouteMethodRouted RouteMethod = "routed"
	// RouteMethodFallback means a locally computed straight-line estimate
	// was used because the routing service failed or timed out.
	RouteMethodFallback RouteMethod = "fallback"
)

// Driving distance and duration estimate between two coordinates.
// Produced per (origin, destination) pair; never persisted.
type RouteResult struct {
	DistanceKm      float64
	DurationMinutes float64
	Method          RouteMethod
	UsedFallback    bool
}

// Evaluation result for one warehouse against a customer coordinate.
// Derived, not persisted.
type WarehouseDeliveryOutcome struct {
	WarehouseID        string
	WarehouseName      string
	DistanceKm         float64
	DurationMinutes    float64
	Method             RouteMethod
	CanDeliver         bool
	IsFreeDeliveryZone bool
	Reason             string
}

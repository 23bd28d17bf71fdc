package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"delivery-zone-service/internal/adapters/routing"
	"delivery-zone-service/internal/domain"
)

func TestValidateCartMixedDeliverability(t *testing.T) {
	near := testWarehouse()       // 24x7, radius 5
	pinbound := secondWarehouse() // pincodes ["560001"], radius 12

	customer := domain.Coordinate{Lat: 12.92, Lng: 77.6}

	provider := routing.NewMockRouteProvider([]routing.MockLeg{
		{From: near.Location, To: customer, Km: 3, Minutes: 9},
		{From: pinbound.Location, To: customer, Km: 7, Minutes: 18},
	})

	validator := &CartDeliveryValidator{
		Warehouses: &stubWarehouseRepo{warehouses: []*domain.Warehouse{near, pinbound}},
		Estimator:  NewRouteEstimator(provider, nil, time.Second),
	}

	items := []domain.CartLineItem{
		{ID: "i1", Name: "Rice 5kg", Quantity: 1, WarehouseID: near.ID},
		{ID: "i2", Name: "Detergent", Quantity: 2, WarehouseID: pinbound.ID},
	}

	// Pincode 560002 is within pinbound's radius but not on its allow-list.
	got, err := validator.Validate(context.Background(), customer, "560002", items, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.AllItemsDeliverable {
		t.Fatal("AllItemsDeliverable = true, want false")
	}
	if got.TotalCount != 2 || got.DeliverableCount != 1 {
		t.Fatalf("counts = (%d deliverable, %d total), want (1, 2)", got.DeliverableCount, got.TotalCount)
	}
	if len(got.UndeliverableItems) != 1 {
		t.Fatalf("expected 1 undeliverable item, got %d", len(got.UndeliverableItems))
	}

	bad := got.UndeliverableItems[0]
	if bad.ID != "i2" {
		t.Fatalf("undeliverable item = %q, want i2", bad.ID)
	}
	if bad.WarehouseName != pinbound.Name {
		t.Fatalf("warehouseName = %q, want %q", bad.WarehouseName, pinbound.Name)
	}
	if bad.Reason != ReasonPincodeNotServed {
		t.Fatalf("reason = %q, want %q", bad.Reason, ReasonPincodeNotServed)
	}

	if len(got.PerWarehouse) != 2 {
		t.Fatalf("expected 2 per-warehouse outcomes, got %d", len(got.PerWarehouse))
	}
}

func TestValidateCartNoWarehouseAttribution(t *testing.T) {
	validator := &CartDeliveryValidator{
		Warehouses: &stubWarehouseRepo{},
		Estimator:  NewRouteEstimator(&failingProvider{err: errors.New("unused")}, nil, time.Second),
	}

	items := []domain.CartLineItem{
		{ID: "i1", Name: "Rice 5kg", Quantity: 1},
		{ID: "i2", Name: "Detergent", Quantity: 2},
	}

	_, err := validator.Validate(context.Background(), domain.Coordinate{Lat: 12.9, Lng: 77.6}, "", items, nil)
	if !errors.Is(err, ErrNoWarehouseAttribution) {
		t.Fatalf("err = %v, want ErrNoWarehouseAttribution", err)
	}
}

func TestValidateCartInvalidCoordinate(t *testing.T) {
	validator := &CartDeliveryValidator{
		Warehouses: &stubWarehouseRepo{},
		Estimator:  NewRouteEstimator(&failingProvider{err: errors.New("unused")}, nil, time.Second),
	}

	_, err := validator.Validate(context.Background(), domain.Coordinate{Lat: 95, Lng: 0}, "", nil, nil)
	if !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Fatalf("err = %v, want ErrInvalidCoordinate", err)
	}
}

func TestValidateCartUnknownWarehouse(t *testing.T) {
	near := testWarehouse()
	customer := domain.Coordinate{Lat: 12.92, Lng: 77.6}

	provider := routing.NewMockRouteProvider([]routing.MockLeg{
		{From: near.Location, To: customer, Km: 3, Minutes: 9},
	})

	validator := &CartDeliveryValidator{
		Warehouses: &stubWarehouseRepo{warehouses: []*domain.Warehouse{near}},
		Estimator:  NewRouteEstimator(provider, nil, time.Second),
	}

	items := []domain.CartLineItem{
		{ID: "i1", WarehouseID: near.ID},
		{ID: "i2", WarehouseID: "wh-gone"},
	}

	got, err := validator.Validate(context.Background(), customer, "", items, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AllItemsDeliverable {
		t.Fatal("AllItemsDeliverable = true with a missing warehouse")
	}
	if len(got.UndeliverableItems) != 1 || got.UndeliverableItems[0].Reason != ReasonWarehouseUnavailable {
		t.Fatalf("unexpected undeliverable items: %+v", got.UndeliverableItems)
	}
	if got.DeliverableCount != 1 {
		t.Fatalf("DeliverableCount = %d, want 1", got.DeliverableCount)
	}
}

func TestValidateCartInactiveWarehouse(t *testing.T) {
	inactive := testWarehouse()
	inactive.Status = domain.WarehouseStatusInactive
	customer := domain.Coordinate{Lat: 12.92, Lng: 77.6}

	validator := &CartDeliveryValidator{
		Warehouses: &stubWarehouseRepo{warehouses: []*domain.Warehouse{inactive}},
		Estimator:  NewRouteEstimator(&failingProvider{err: errors.New("unused")}, nil, time.Second),
	}

	items := []domain.CartLineItem{{ID: "i1", WarehouseID: inactive.ID}}

	got, err := validator.Validate(context.Background(), customer, "", items, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.UndeliverableItems) != 1 {
		t.Fatalf("expected 1 undeliverable item, got %d", len(got.UndeliverableItems))
	}
	bad := got.UndeliverableItems[0]
	if bad.Reason != ReasonWarehouseUnavailable {
		t.Fatalf("reason = %q, want %q", bad.Reason, ReasonWarehouseUnavailable)
	}
	// The name is still known; the warehouse exists, it just cannot serve.
	if bad.WarehouseName != inactive.Name {
		t.Fatalf("warehouseName = %q, want %q", bad.WarehouseName, inactive.Name)
	}
}

func TestValidateCartWarehouseWithoutLocation(t *testing.T) {
	// The repository surfaces a NULL lat/lng row as an invalid coordinate.
	orphan := testWarehouse()
	orphan.Location = domain.Coordinate{Lat: math.NaN(), Lng: math.NaN()}

	validator := &CartDeliveryValidator{
		Warehouses: &stubWarehouseRepo{warehouses: []*domain.Warehouse{orphan}},
		Estimator:  NewRouteEstimator(&failingProvider{err: errors.New("unused")}, nil, time.Second),
	}

	items := []domain.CartLineItem{{ID: "i1", Name: "Rice 5kg", Quantity: 1, WarehouseID: orphan.ID}}

	got, err := validator.Validate(context.Background(), domain.Coordinate{Lat: 12.92, Lng: 77.6}, "", items, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AllItemsDeliverable {
		t.Fatal("AllItemsDeliverable = true for a warehouse without a location")
	}
	if len(got.UndeliverableItems) != 1 {
		t.Fatalf("expected 1 undeliverable item, got %d", len(got.UndeliverableItems))
	}

	bad := got.UndeliverableItems[0]
	if bad.Reason != ReasonWarehouseUnavailable {
		t.Fatalf("reason = %q, want %q", bad.Reason, ReasonWarehouseUnavailable)
	}
	// In particular, never a radius verdict measured from a bogus origin.
	if strings.Contains(bad.Reason, "radius") {
		t.Fatalf("reason %q leaks a distance computed without a location", bad.Reason)
	}
	if bad.WarehouseName != orphan.Name {
		t.Fatalf("warehouseName = %q, want %q", bad.WarehouseName, orphan.Name)
	}
}

func TestValidateCartZeroItemsProbe(t *testing.T) {
	near := testWarehouse()
	customer := domain.Coordinate{Lat: 12.92, Lng: 77.6}

	provider := routing.NewMockRouteProvider([]routing.MockLeg{
		{From: near.Location, To: customer, Km: 3, Minutes: 9},
	})

	validator := &CartDeliveryValidator{
		Warehouses: &stubWarehouseRepo{warehouses: []*domain.Warehouse{near}},
		Estimator:  NewRouteEstimator(provider, nil, time.Second),
	}

	got, err := validator.Validate(context.Background(), customer, "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.AllItemsDeliverable {
		t.Fatal("probe reported no deliverable warehouse")
	}
	if got.TotalCount != 0 {
		t.Fatalf("TotalCount = %d, want 0", got.TotalCount)
	}

	// Scoped to a warehouse that does not exist, the probe fails softly.
	got, err = validator.Validate(context.Background(), customer, "", nil, []string{"wh-gone"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AllItemsDeliverable {
		t.Fatal("probe succeeded for an empty scope result")
	}
}

package domain

import (
	"math"
	"testing"
)

func TestCoordinateValidate(t *testing.T) {
	valid := []Coordinate{
		{Lat: 12.9, Lng: 77.58},
		{Lat: -90, Lng: 180},
		{Lat: 0, Lng: 0},
	}
	for _, c := range valid {
		if err := c.Validate(); err != nil {
			t.Errorf("Validate(%v) = %v, want nil", c, err)
		}
	}

	invalid := []Coordinate{
		{Lat: math.NaN(), Lng: 77.58},
		{Lat: 12.9, Lng: math.Inf(1)},
		{Lat: 91, Lng: 0},
		{Lat: 0, Lng: -181},
	}
	for _, c := range invalid {
		if err := c.Validate(); err == nil {
			t.Errorf("Validate(%v) = nil, want error", c)
		}
	}
}

func TestHaversineKm(t *testing.T) {
	// Jayanagar to Shivajinagar, Bengaluru: roughly 8 km apart.
	a := Coordinate{Lat: 12.9, Lng: 77.58}
	b := Coordinate{Lat: 12.9719, Lng: 77.5937}

	got := HaversineKm(a, b)
	if got < 7.5 || got > 8.5 {
		t.Fatalf("HaversineKm = %.2f, want ~8", got)
	}

	if d := HaversineKm(a, a); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}

	if d1, d2 := HaversineKm(a, b), HaversineKm(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Fatalf("haversine not symmetric: %v vs %v", d1, d2)
	}
}

func TestGroupItemsByWarehouse(t *testing.T) {
	items := []CartLineItem{
		{ID: "i1", WarehouseID: "w1"},
		{ID: "i2", WarehouseID: "w2"},
		{ID: "i3", WarehouseID: "w1"},
		{ID: "i4", WarehouseID: ""},
	}

	groups := GroupItemsByWarehouse(items)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups["w1"]) != 2 {
		t.Fatalf("expected 2 items for w1, got %d", len(groups["w1"]))
	}
	if len(groups["w2"]) != 1 {
		t.Fatalf("expected 1 item for w2, got %d", len(groups["w2"]))
	}
}

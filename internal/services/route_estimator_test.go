package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"delivery-zone-service/internal/adapters/routing"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/ports"
)

type failingProvider struct {
	err   error
	delay time.Duration
}

func (p *failingProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinate) (ports.RouteLeg, error) {
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return ports.RouteLeg{}, ctx.Err()
		case <-time.After(p.delay):
		}
	}
	return ports.RouteLeg{}, p.err
}

func TestEstimateRouted(t *testing.T) {
	w := testWarehouse()
	customer := domain.Coordinate{Lat: 12.92, Lng: 77.6}

	provider := routing.NewMockRouteProvider([]routing.MockLeg{
		{From: w.Location, To: customer, Km: 3.2, Minutes: 11},
	})
	estimator := NewRouteEstimator(provider, nil, time.Second)

	got := estimator.Estimate(context.Background(), w, customer)
	if got.Method != domain.RouteMethodRouted || got.UsedFallback {
		t.Fatalf("got method=%s fallback=%v, want routed", got.Method, got.UsedFallback)
	}
	if got.DistanceKm != 3.2 || got.DurationMinutes != 11 {
		t.Fatalf("got (%.1f km, %.0f min), want (3.2, 11)", got.DistanceKm, got.DurationMinutes)
	}
}

func TestEstimateNeverFails(t *testing.T) {
	w := testWarehouse()
	customer := domain.Coordinate{Lat: 12.92, Lng: 77.6}

	provider := &failingProvider{err: errors.New("routing backend down")}
	estimator := NewRouteEstimator(provider, nil, time.Second)

	got := estimator.Estimate(context.Background(), w, customer)
	if got.Method != domain.RouteMethodFallback || !got.UsedFallback {
		t.Fatalf("got method=%s fallback=%v, want fallback", got.Method, got.UsedFallback)
	}

	wantKm := domain.HaversineKm(w.Location, customer)
	if got.DistanceKm != wantKm {
		t.Fatalf("fallback distance = %v, want great-circle %v", got.DistanceKm, wantKm)
	}
	if got.DurationMinutes <= 0 {
		t.Fatalf("fallback duration = %v, want > 0", got.DurationMinutes)
	}
}

func TestEstimateTimeoutTriggersFallback(t *testing.T) {
	w := testWarehouse()
	customer := domain.Coordinate{Lat: 12.92, Lng: 77.6}

	// Provider is slower than the per-call timeout.
	provider := &failingProvider{delay: 200 * time.Millisecond}
	estimator := NewRouteEstimator(provider, nil, 10*time.Millisecond)

	start := time.Now()
	got := estimator.Estimate(context.Background(), w, customer)
	if got.Method != domain.RouteMethodFallback {
		t.Fatalf("method = %s, want fallback", got.Method)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Fatalf("estimate took %v, timeout did not cut the call short", elapsed)
	}
}

func TestEstimateMethodIsAlwaysSet(t *testing.T) {
	w := testWarehouse()
	customer := domain.Coordinate{Lat: 12.92, Lng: 77.6}

	providers := []ports.RouteProvider{
		&failingProvider{err: errors.New("boom")},
		routing.NewMockRouteProvider([]routing.MockLeg{{From: w.Location, To: customer, Km: 1, Minutes: 2}}),
	}

	for _, p := range providers {
		got := NewRouteEstimator(p, nil, time.Second).Estimate(context.Background(), w, customer)
		if got.Method != domain.RouteMethodRouted && got.Method != domain.RouteMethodFallback {
			t.Fatalf("method = %q, want routed or fallback", got.Method)
		}
	}
}

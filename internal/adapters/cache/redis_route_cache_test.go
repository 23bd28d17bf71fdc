package cache

import (
	"context"
	"testing"
	"time"

	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisRouteCache(client, time.Minute), mr
}

func TestRouteCachePutGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	customer := domain.Coordinate{Lat: 12.9234, Lng: 77.6012}
	leg := ports.RouteLeg{DistanceKm: 3.2, DurationMinutes: 11}

	if _, ok, err := c.Get(ctx, "wh-1", customer); err != nil || ok {
		t.Fatalf("empty cache: got (ok=%v, err=%v), want miss", ok, err)
	}

	if err := c.Put(ctx, "wh-1", customer, leg); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, ok, err := c.Get(ctx, "wh-1", customer)
	if err != nil || !ok {
		t.Fatalf("get after put: (ok=%v, err=%v)", ok, err)
	}
	if got != leg {
		t.Fatalf("got %+v, want %+v", got, leg)
	}

	// A different warehouse at the same coordinate is a separate entry.
	if _, ok, _ := c.Get(ctx, "wh-2", customer); ok {
		t.Fatal("cache hit for a different warehouse")
	}
}

func TestRouteCacheRoundsCoordinates(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	leg := ports.RouteLeg{DistanceKm: 1, DurationMinutes: 2}
	if err := c.Put(ctx, "wh-1", domain.Coordinate{Lat: 12.92341, Lng: 77.60119}, leg); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	// ~5th decimal difference rounds to the same key.
	_, ok, err := c.Get(ctx, "wh-1", domain.Coordinate{Lat: 12.92339, Lng: 77.60121})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok {
		t.Fatal("nearby coordinate did not share the cache entry")
	}
}

func TestRouteCacheExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	customer := domain.Coordinate{Lat: 12.9, Lng: 77.58}
	if err := c.Put(ctx, "wh-1", customer, ports.RouteLeg{DistanceKm: 1, DurationMinutes: 2}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok, _ := c.Get(ctx, "wh-1", customer); ok {
		t.Fatal("entry survived past its TTL")
	}
}

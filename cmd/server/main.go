package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"delivery-zone-service/internal/adapters/cache"
	"delivery-zone-service/internal/adapters/repositories"
	"delivery-zone-service/internal/adapters/routing"
	"delivery-zone-service/internal/api"
	"delivery-zone-service/internal/config"
	"delivery-zone-service/internal/platform/db"
	"delivery-zone-service/internal/ports"
	"delivery-zone-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, ORS, Redis) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	port := config.Get("PORT", "8080")
	seedPath := config.Get("SEED_PATH", "data/seeds/warehouses.json")
	routeTimeout := config.GetDuration("ROUTE_TIMEOUT", 3*time.Second)

	pool, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// Initialize schema and seed demo warehouses on startup for local runs.
	if err := repositories.InitSchema(pool); err != nil {
		log.Fatal(err)
	}
	if err := repositories.SeedFromJSON(pool, seedPath); err != nil {
		log.Fatal(err)
	}

	provider, err := routing.NewORSRouteProvider(orsKey)
	if err != nil {
		log.Fatal(err)
	}

	// Route cache is optional: no REDIS_ADDR means every resolution
	// re-measures, which is the core contract anyway.
	var routeCache ports.RouteCache
	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		routeCache = cache.NewRedisRouteCache(client, config.GetDuration("ROUTE_CACHE_TTL", 5*time.Minute))
		log.Printf("route cache enabled addr=%s", addr)
	}

	estimator := services.NewRouteEstimator(provider, routeCache, routeTimeout)
	repo := repositories.NewPgWarehouseRepository(pool)

	resolver := &services.DeliveryZoneResolver{Warehouses: repo, Estimator: estimator}
	validator := &services.CartDeliveryValidator{Warehouses: repo, Estimator: estimator}

	router := api.NewRouter(repo, resolver, validator)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

package api

import (
	"net/http"

	"delivery-zone-service/internal/api/handlers"
	"delivery-zone-service/internal/ports"
	"delivery-zone-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware
// of concrete adapters).
func NewRouter(
	repo ports.WarehouseRepository,
	resolver *services.DeliveryZoneResolver,
	validator *services.CartDeliveryValidator,
) http.Handler {
	mux := http.NewServeMux()

	warehouseHandler := &handlers.WarehouseHandler{Repo: repo}
	deliveryHandler := &handlers.DeliveryHandler{
		Resolver:  resolver,
		Validator: validator,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/warehouses", warehouseHandler.List)
	mux.HandleFunc("/delivery/area-check", deliveryHandler.AreaCheck)
	mux.HandleFunc("/delivery/validate-cart", deliveryHandler.ValidateCart)

	return loggingMiddleware(mux)
}

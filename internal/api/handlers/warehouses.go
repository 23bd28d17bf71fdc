package handlers

import (
	"log"
	"net/http"

	"delivery-zone-service/internal/api/dto"
	"delivery-zone-service/internal/ports"
)

// WarehouseHandler exposes read-only warehouse retrieval endpoints.
type WarehouseHandler struct {
	Repo ports.WarehouseRepository
}

func (h *WarehouseHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	warehouses, err := h.Repo.ListActive(r.Context())
	if err != nil {
		log.Printf("list warehouses failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListWarehousesResponse{
		Warehouses: make([]dto.WarehouseResponse, 0, len(warehouses)),
	}
	for _, wh := range warehouses {
		res.Warehouses = append(res.Warehouses, dto.WarehouseResponse{
			ID:                   wh.ID,
			Name:                 wh.Name,
			Address:              wh.Address,
			Lat:                  wh.Location.Lat,
			Lng:                  wh.Location.Lng,
			IsDeliveryEnabled:    wh.DeliverySettings.IsDeliveryEnabled,
			Is24x7Delivery:       wh.DeliverySettings.Is24x7Delivery,
			DeliveryPincodes:     wh.DeliverySettings.DeliveryPincodes,
			MaxDeliveryRadiusKm:  wh.DeliverySettings.MaxDeliveryRadiusKm,
			FreeDeliveryRadiusKm: wh.DeliverySettings.FreeDeliveryRadiusKm,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

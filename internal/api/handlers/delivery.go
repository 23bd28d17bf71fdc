package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"delivery-zone-service/internal/api/dto"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/services"
)

// DeliveryHandler exposes the delivery-zone resolution endpoints.
type DeliveryHandler struct {
	Resolver  *services.DeliveryZoneResolver
	Validator *services.CartDeliveryValidator
}

// AreaCheck answers whether any warehouse could serve the given
// coordinate. A fully negative answer is still a 200; only malformed
// coordinates produce an error status.
func (h *DeliveryHandler) AreaCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil {
		writeError(w, r, http.StatusBadRequest, "lat and lng are required numeric query parameters")
		return
	}

	customer := domain.Coordinate{Lat: lat, Lng: lng}

	resolution, err := h.Resolver.Resolve(r.Context(), customer)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCoordinate) {
			writeError(w, r, http.StatusBadRequest, "invalid coordinates")
			return
		}
		log.Printf("area check failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.AreaCheckResponse{
		Success:             true,
		DeliveryAvailable:   resolution.DeliveryAvailable,
		AvailableWarehouses: make([]dto.AvailableWarehouse, 0, len(resolution.Warehouses)),
		Location:            dto.Location{Lat: lat, Lng: lng},
	}
	for _, o := range resolution.Warehouses {
		res.AvailableWarehouses = append(res.AvailableWarehouses, dto.AvailableWarehouse{
			WarehouseID:        o.WarehouseID,
			WarehouseName:      o.WarehouseName,
			Distance:           o.DistanceKm,
			Duration:           o.DurationMinutes,
			Method:             string(o.Method),
			CanDeliver:         o.CanDeliver,
			IsFreeDeliveryZone: o.IsFreeDeliveryZone,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// ValidateCart classifies every cart item as deliverable or not for the
// given customer location and postal code.
func (h *DeliveryHandler) ValidateCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ValidateCartRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.Lat == nil || req.Lng == nil {
		writeError(w, r, http.StatusBadRequest, "lat and lng are required")
		return
	}
	customer := domain.Coordinate{Lat: *req.Lat, Lng: *req.Lng}

	items := decodeItems(r, req)

	validation, err := h.Validator.Validate(r.Context(), customer, req.Pincode, items, req.WarehouseIds)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCoordinate):
			writeError(w, r, http.StatusBadRequest, "invalid coordinates")
		case errors.Is(err, services.ErrNoWarehouseAttribution):
			writeError(w, r, http.StatusBadRequest, "cart items carry no warehouse attribution")
		default:
			log.Printf("cart validation failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	res := dto.ValidateCartResponse{
		Success:              true,
		AllItemsDeliverable:  validation.AllItemsDeliverable,
		ValidationResults:    make([]dto.ValidationResult, 0, len(validation.PerWarehouse)),
		UndeliverableItems:   make([]dto.UndeliverableItem, 0, len(validation.UndeliverableItems)),
		DeliverableItemCount: validation.DeliverableCount,
		TotalItemCount:       validation.TotalCount,
	}
	for _, o := range validation.PerWarehouse {
		res.ValidationResults = append(res.ValidationResults, dto.ValidationResult{
			WarehouseID:        o.WarehouseID,
			WarehouseName:      o.WarehouseName,
			Distance:           o.DistanceKm,
			Duration:           o.DurationMinutes,
			Method:             string(o.Method),
			CanDeliver:         o.CanDeliver,
			IsFreeDeliveryZone: o.IsFreeDeliveryZone,
			Reason:             o.Reason,
		})
	}
	for _, it := range validation.UndeliverableItems {
		res.UndeliverableItems = append(res.UndeliverableItems, dto.UndeliverableItem{
			ID:            it.ID,
			Name:          it.Name,
			Quantity:      it.Quantity,
			WarehouseID:   it.WarehouseID,
			WarehouseName: it.WarehouseName,
			Reason:        it.Reason,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// decodeItems prefers the structured list; the serialized form field is
// parsed with fallback-to-empty so malformed carts degrade to the
// availability probe instead of a hard error.
func decodeItems(r *http.Request, req dto.ValidateCartRequest) []domain.CartLineItem {
	raw := req.Items
	if len(raw) == 0 && req.ItemsJSON != "" {
		if err := json.Unmarshal([]byte(req.ItemsJSON), &raw); err != nil {
			log.Printf("malformed itemsJson, treating as empty cart: path=%s err=%v", r.URL.Path, err)
			raw = nil
		}
	}

	items := make([]domain.CartLineItem, 0, len(raw))
	for _, it := range raw {
		items = append(items, domain.CartLineItem{
			ID:          it.ID,
			Name:        it.Name,
			Quantity:    it.Quantity,
			WarehouseID: it.WarehouseID,
		})
	}
	return items
}

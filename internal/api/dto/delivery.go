package dto

// Location echoes the customer coordinate a decision was made for.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AvailableWarehouse is one deliverable warehouse in an area check.
type AvailableWarehouse struct {
	WarehouseID        string  `json:"warehouseId"`
	WarehouseName      string  `json:"warehouseName"`
	Distance           float64 `json:"distance"`
	Duration           float64 `json:"duration"`
	Method             string  `json:"method"`
	CanDeliver         bool    `json:"canDeliver"`
	IsFreeDeliveryZone bool    `json:"isFreeDeliveryZone"`
}

type AreaCheckResponse struct {
	Success             bool                 `json:"success"`
	DeliveryAvailable   bool                 `json:"deliveryAvailable"`
	AvailableWarehouses []AvailableWarehouse `json:"availableWarehouses"`
	Location            Location             `json:"location"`
}

type CartItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	WarehouseID string `json:"warehouseId"`
}

// ValidateCartRequest carries the customer location, optional postal
// code, and the cart. Items arrive either structured (items) or as a
// serialized form field (itemsJson); the serialized path degrades to an
// empty cart when malformed. WarehouseIds narrows the zero-item
// availability probe to the caller's warehouse scope.
type ValidateCartRequest struct {
	Lat          *float64   `json:"lat"`
	Lng          *float64   `json:"lng"`
	Pincode      string     `json:"pincode"`
	Items        []CartItem `json:"items"`
	ItemsJSON    string     `json:"itemsJson"`
	WarehouseIds []string   `json:"warehouseIds"`
}

// ValidationResult is the per-warehouse outcome of a cart validation.
type ValidationResult struct {
	WarehouseID        string  `json:"warehouseId"`
	WarehouseName      string  `json:"warehouseName"`
	Distance           float64 `json:"distance"`
	Duration           float64 `json:"duration"`
	Method             string  `json:"method"`
	CanDeliver         bool    `json:"canDeliver"`
	IsFreeDeliveryZone bool    `json:"isFreeDeliveryZone"`
	Reason             string  `json:"reason,omitempty"`
}

type UndeliverableItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	WarehouseID   string `json:"warehouseId"`
	WarehouseName string `json:"warehouseName"`
	Reason        string `json:"reason"`
}

type ValidateCartResponse struct {
	Success              bool                `json:"success"`
	AllItemsDeliverable  bool                `json:"allItemsDeliverable"`
	ValidationResults    []ValidationResult  `json:"validationResults"`
	UndeliverableItems   []UndeliverableItem `json:"undeliverableItems"`
	DeliverableItemCount int                 `json:"deliverableItemCount"`
	TotalItemCount       int                 `json:"totalItemCount"`
}

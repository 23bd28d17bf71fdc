package dto

type WarehouseResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Address              string   `json:"address"`
	Lat                  float64  `json:"lat"`
	Lng                  float64  `json:"lng"`
	IsDeliveryEnabled    bool     `json:"isDeliveryEnabled"`
	Is24x7Delivery       bool     `json:"is24x7Delivery"`
	DeliveryPincodes     []string `json:"deliveryPincodes"`
	MaxDeliveryRadiusKm  float64  `json:"maxDeliveryRadiusKm"`
	FreeDeliveryRadiusKm float64  `json:"freeDeliveryRadiusKm"`
}

type ListWarehousesResponse struct {
	Warehouses []WarehouseResponse `json:"warehouses"`
}

package domain

// WarehouseStatus values as stored in the warehouse read model.
const (
	WarehouseStatusActive   = "active"
	WarehouseStatusInactive = "inactive"
)

// Per-warehouse delivery policy configuration.
//
// A 24x7 warehouse applies only its distance radius; all other warehouses
// additionally require the customer postal code to appear in DeliveryPincodes.
// FreeDeliveryRadiusKm <= MaxDeliveryRadiusKm is expected but not enforced
// here; warehouse configuration integrity is owned by the write side.
type DeliverySettings struct {
	IsDeliveryEnabled    bool
	Is24x7Delivery       bool
	DeliveryPincodes     []string
	MaxDeliveryRadiusKm  float64
	FreeDeliveryRadiusKm float64
}

// ServesPincode reports whether the allow-list contains the given postal
// code. Matching is exact string equality, not prefix or numeric.
func (s DeliverySettings) ServesPincode(pincode string) bool {
	for _, p := range s.DeliveryPincodes {
		if p == pincode {
			return true
		}
	}
	return false
}

// Read-only warehouse snapshot consumed by the delivery-zone subsystem.
type Warehouse struct {
	ID               string
	Name             string
	Address          string
	Status           string
	Location         Coordinate
	DeliverySettings DeliverySettings
}

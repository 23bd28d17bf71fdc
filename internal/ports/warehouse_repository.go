package ports

import (
	"context"

	"delivery-zone-service/internal/domain"
)

// Port: a boundary for retrieving Warehouse snapshots from the read model.
type WarehouseRepository interface {
	// Retrieve all active warehouses with a populated location.
	ListActive(ctx context.Context) ([]*domain.Warehouse, error)

	// Retrieve warehouses by id regardless of status. Unknown ids are
	// simply absent from the result, not an error.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Warehouse, error)
}

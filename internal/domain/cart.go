package domain

// A single cart line item, consumed read-only. WarehouseID attributes the
// item to the fulfillment warehouse expected to ship it.
type CartLineItem struct {
	ID          string
	Name        string
	Quantity    int
	WarehouseID string
}

// A cart line item whose assigned warehouse cannot serve the customer
// location. Reason is a stable, human-readable classification surfaced
// directly to end users, not a free-form error message.
type UndeliverableItem struct {
	CartLineItem
	WarehouseName string
	Reason        string
}

// GroupItemsByWarehouse buckets cart items by their warehouse attribution.
// Items with an empty WarehouseID are dropped; callers decide whether an
// all-empty cart is an error.
func GroupItemsByWarehouse(items []CartLineItem) map[string][]CartLineItem {
	groups := make(map[string][]CartLineItem)
	for _, it := range items {
		if it.WarehouseID == "" {
			continue
		}
		groups[it.WarehouseID] = append(groups[it.WarehouseID], it)
	}
	return groups
}

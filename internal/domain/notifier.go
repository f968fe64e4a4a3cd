package domain

// LowStockItem is the projection of an inventory item carried in a low-stock alert.
type LowStockItem struct {
	ID                string `json:"id"`
	SKU               string `json:"sku"`
	Name              string `json:"name"`
	QuantityAvailable int    `json:"quantityAvailable"`
	ReorderLevel      int    `json:"reorderLevel"`
}

// Notifier pushes advisory events to a tenant's connected clients.
// Delivery is best effort: calls never block on slow subscribers and
// never report failure back to the producer.
type Notifier interface {
	PublishOrderStatus(tenantID, orderID, status string)
	PublishLowStock(tenantID string, items []LowStockItem)
	PublishProductionStage(tenantID, orderID, stage string)
}

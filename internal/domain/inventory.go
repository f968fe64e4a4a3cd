package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type InventoryItem struct {
	ID                uuid.UUID
	TenantID          string
	SKU               string
	Name              string
	QuantityAvailable int
	ReorderLevel      int
	UnitPrice         float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BelowReorderLevel reports whether the item should appear in low-stock alerts.
func (i *InventoryItem) BelowReorderLevel() bool {
	return i.QuantityAvailable <= i.ReorderLevel
}

type InventoryRepository interface {
	Create(ctx context.Context, item *InventoryItem) error
	GetByID(ctx context.Context, tenantID string, itemID uuid.UUID) (*InventoryItem, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]InventoryItem, error)
	// AdjustQuantity applies a relative delta and returns the updated row.
	AdjustQuantity(ctx context.Context, tenantID string, itemID uuid.UUID, delta int) (*InventoryItem, error)
	// ListLowStock returns items at or below their reorder level.
	ListLowStock(ctx context.Context, tenantID string) ([]InventoryItem, error)
}

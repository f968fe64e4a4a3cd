package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danielsutton1/Jewelia-sub026/internal/domain"
)

// inventoryColumns must match the Scan order in scanItem.
const inventoryColumns = `id, tenant_id, sku, name, quantity_available, reorder_level, unit_price, created_at, updated_at`

// InventoryRepo implements domain.InventoryRepository backed by PostgreSQL.
type InventoryRepo struct {
	pool *pgxpool.Pool
}

func NewInventoryRepo(pool *pgxpool.Pool) *InventoryRepo {
	return &InventoryRepo{pool: pool}
}

func scanItem(row pgx.Row) (*domain.InventoryItem, error) {
	var i domain.InventoryItem
	err := row.Scan(&i.ID, &i.TenantID, &i.SKU, &i.Name, &i.QuantityAvailable, &i.ReorderLevel, &i.UnitPrice, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InventoryRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	query := `INSERT INTO inventory_items (id, tenant_id, sku, name, quantity_available, reorder_level, unit_price)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		item.ID, item.TenantID, item.SKU, item.Name, item.QuantityAvailable, item.ReorderLevel, item.UnitPrice,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, tenantID string, itemID uuid.UUID) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE tenant_id = $1 AND id = $2`
	item, err := scanItem(r.pool.QueryRow(ctx, query, tenantID, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return item, nil
}

func (r *InventoryRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items
	          WHERE tenant_id = $1
	          ORDER BY sku
	          LIMIT $2 OFFSET $3`
	return r.queryItems(ctx, query, tenantID, limit, offset)
}

func (r *InventoryRepo) AdjustQuantity(ctx context.Context, tenantID string, itemID uuid.UUID, delta int) (*domain.InventoryItem, error) {
	query := `UPDATE inventory_items
	          SET quantity_available = quantity_available + $3, updated_at = now()
	          WHERE tenant_id = $1 AND id = $2
	          RETURNING ` + inventoryColumns
	item, err := scanItem(r.pool.QueryRow(ctx, query, tenantID, itemID, delta))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to adjust quantity: %w", err)
	}
	return item, nil
}

func (r *InventoryRepo) ListLowStock(ctx context.Context, tenantID string) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items
	          WHERE tenant_id = $1 AND quantity_available <= reorder_level
	          ORDER BY sku`
	return r.queryItems(ctx, query, tenantID)
}

func (r *InventoryRepo) queryItems(ctx context.Context, query string, args ...any) ([]domain.InventoryItem, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory items: %w", err)
	}
	return items, nil
}

package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/danielsutton1/Jewelia-sub026/internal/domain"
)

// Service wires the CRM repositories to the realtime notifier.
type Service struct {
	orders     domain.OrderRepository
	inventory  domain.InventoryRepository
	production domain.ProductionRepository
	notifier   domain.Notifier
}

func NewService(orders domain.OrderRepository, inventory domain.InventoryRepository, production domain.ProductionRepository, notifier domain.Notifier) *Service {
	return &Service{
		orders:     orders,
		inventory:  inventory,
		production: production,
		notifier:   notifier,
	}
}

// --- Orders ---

func (s *Service) CreateOrder(ctx context.Context, tenantID, orderNumber string, customerID uuid.UUID, total float64) (*domain.Order, error) {
	order := &domain.Order{
		ID:          uuid.New(),
		TenantID:    tenantID,
		OrderNumber: orderNumber,
		CustomerID:  customerID,
		Status:      domain.OrderStatusPending,
		Total:       total,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, tenantID string, orderID uuid.UUID) (*domain.Order, error) {
	return s.orders.GetByID(ctx, tenantID, orderID)
}

func (s *Service) ListOrders(ctx context.Context, tenantID string, limit, offset int) ([]domain.Order, error) {
	return s.orders.ListByTenant(ctx, tenantID, limit, offset)
}

// UpdateOrderStatus persists the status change, then notifies the tenant's
// subscribers. The notification is best effort and cannot fail the update.
func (s *Service) UpdateOrderStatus(ctx context.Context, tenantID string, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.orders.UpdateStatus(ctx, tenantID, orderID, status)
	if err != nil {
		return nil, err
	}

	s.notifier.PublishOrderStatus(tenantID, order.ID.String(), string(order.Status))
	return order, nil
}

// --- Inventory ---

func (s *Service) CreateInventoryItem(ctx context.Context, item *domain.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return s.inventory.Create(ctx, item)
}

func (s *Service) GetInventoryItem(ctx context.Context, tenantID string, itemID uuid.UUID) (*domain.InventoryItem, error) {
	return s.inventory.GetByID(ctx, tenantID, itemID)
}

func (s *Service) ListInventory(ctx context.Context, tenantID string, limit, offset int) ([]domain.InventoryItem, error) {
	return s.inventory.ListByTenant(ctx, tenantID, limit, offset)
}

// AdjustInventory applies a quantity delta. If the item lands at or below its
// reorder level, the tenant's full low-stock list is broadcast so dashboards
// see a complete picture rather than a single item.
func (s *Service) AdjustInventory(ctx context.Context, tenantID string, itemID uuid.UUID, delta int) (*domain.InventoryItem, error) {
	item, err := s.inventory.AdjustQuantity(ctx, tenantID, itemID, delta)
	if err != nil {
		return nil, err
	}

	if item.BelowReorderLevel() {
		s.publishLowStock(ctx, tenantID)
	}
	return item, nil
}

func (s *Service) publishLowStock(ctx context.Context, tenantID string) {
	lowItems, err := s.inventory.ListLowStock(ctx, tenantID)
	if err != nil {
		slog.Error("Failed to gather low-stock items for notification", "tenant_id", tenantID, "error", err)
		return
	}
	if len(lowItems) == 0 {
		return
	}

	items := make([]domain.LowStockItem, 0, len(lowItems))
	for _, it := range lowItems {
		items = append(items, domain.LowStockItem{
			ID:                it.ID.String(),
			SKU:               it.SKU,
			Name:              it.Name,
			QuantityAvailable: it.QuantityAvailable,
			ReorderLevel:      it.ReorderLevel,
		})
	}
	s.notifier.PublishLowStock(tenantID, items)
}

// --- Production ---

func (s *Service) StartProduction(ctx context.Context, tenantID string, orderID uuid.UUID, notes string) (*domain.ProductionRecord, error) {
	if _, err := s.orders.GetByID(ctx, tenantID, orderID); err != nil {
		return nil, err
	}

	record := &domain.ProductionRecord{
		ID:       uuid.New(),
		TenantID: tenantID,
		OrderID:  orderID,
		Stage:    domain.StageDesign,
		Notes:    notes,
	}
	if err := s.production.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to start production: %w", err)
	}

	s.notifier.PublishProductionStage(tenantID, orderID.String(), string(record.Stage))
	return record, nil
}

func (s *Service) ListProduction(ctx context.Context, tenantID string, orderID uuid.UUID) ([]domain.ProductionRecord, error) {
	return s.production.ListByOrder(ctx, tenantID, orderID)
}

// AdvanceProduction persists the stage transition, then notifies the tenant's
// subscribers.
func (s *Service) AdvanceProduction(ctx context.Context, tenantID string, orderID uuid.UUID, stage domain.ProductionStage) (*domain.ProductionRecord, error) {
	if !stage.Valid() {
		return nil, domain.ErrInvalidStage
	}

	record, err := s.production.AdvanceStage(ctx, tenantID, orderID, stage)
	if err != nil {
		return nil, err
	}

	s.notifier.PublishProductionStage(tenantID, orderID.String(), string(record.Stage))
	return record, nil
}

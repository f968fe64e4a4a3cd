package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the closed set of states an order moves through.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInProgress,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          uuid.UUID
	TenantID    string
	OrderNumber string
	CustomerID  uuid.UUID
	Status      OrderStatus
	Total       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, tenantID string, orderID uuid.UUID) (*Order, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]Order, error)
	UpdateStatus(ctx context.Context, tenantID string, orderID uuid.UUID, status OrderStatus) (*Order, error)
}

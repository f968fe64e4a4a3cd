// Package httpserver exposes the CRM API and the realtime notification
// WebSocket endpoint over Echo.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/danielsutton1/Jewelia-sub026/internal/domain"
	"github.com/danielsutton1/Jewelia-sub026/internal/notify"
	"github.com/danielsutton1/Jewelia-sub026/internal/platform/config"
)

// appService is the slice of the application service the HTTP layer consumes.
type appService interface {
	CreateOrder(ctx context.Context, tenantID, orderNumber string, customerID uuid.UUID, total float64) (*domain.Order, error)
	GetOrder(ctx context.Context, tenantID string, orderID uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, tenantID string, limit, offset int) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, tenantID string, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error)

	CreateInventoryItem(ctx context.Context, item *domain.InventoryItem) error
	GetInventoryItem(ctx context.Context, tenantID string, itemID uuid.UUID) (*domain.InventoryItem, error)
	ListInventory(ctx context.Context, tenantID string, limit, offset int) ([]domain.InventoryItem, error)
	AdjustInventory(ctx context.Context, tenantID string, itemID uuid.UUID, delta int) (*domain.InventoryItem, error)

	StartProduction(ctx context.Context, tenantID string, orderID uuid.UUID, notes string) (*domain.ProductionRecord, error)
	ListProduction(ctx context.Context, tenantID string, orderID uuid.UUID) ([]domain.ProductionRecord, error)
	AdvanceProduction(ctx context.Context, tenantID string, orderID uuid.UUID, stage domain.ProductionStage) (*domain.ProductionRecord, error)
}

// HealthCheck is a named health check function.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app         appService
	hub         *notify.Hub
	connLimiter *ConnectionLimiter

	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, app appService, hub *notify.Hub, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          app,
		hub:          hub,
		connLimiter:  NewConnectionLimiter(int64(cfg.MaxWebSocketConnections)),
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

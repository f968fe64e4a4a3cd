package httpserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/danielsutton1/Jewelia-sub026/internal/domain"
	"github.com/danielsutton1/Jewelia-sub026/internal/errors"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// tenantID resolves the caller's tenant from the X-Tenant-ID header, falling
// back to the tenant query parameter. Session-based resolution lives outside
// this service.
func tenantID(c echo.Context) (string, error) {
	tenant := strings.TrimSpace(c.Request().Header.Get("X-Tenant-ID"))
	if tenant == "" {
		tenant = strings.TrimSpace(c.QueryParam("tenant"))
	}
	if tenant == "" {
		return "", errors.ValidationError("tenant identifier is required")
	}
	return tenant, nil
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ValidationError("invalid " + name).WithContext(name, c.Param(name))
	}
	return id, nil
}

func pagination(c echo.Context) (limit, offset int) {
	limit = defaultPageSize
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = min(v, maxPageSize)
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// --- Orders ---

type orderResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	CustomerID  string    `json:"customerId"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:          o.ID.String(),
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID.String(),
		Status:      string(o.Status),
		Total:       o.Total,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

type createOrderRequest struct {
	OrderNumber string  `json:"orderNumber"`
	CustomerID  string  `json:"customerId"`
	Total       float64 `json:"total"`
}

func (s *Server) handleCreateOrder(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError("invalid request body")
	}
	if req.OrderNumber == "" {
		return errors.ValidationError("orderNumber is required")
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return errors.ValidationError("invalid customerId")
	}

	order, err := s.app.CreateOrder(c.Request().Context(), tenant, req.OrderNumber, customerID, req.Total)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (s *Server) handleGetOrder(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	order, err := s.app.GetOrder(c.Request().Context(), tenant, orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

func (s *Server) handleListOrders(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)

	orders, err := s.app.ListOrders(c.Request().Context(), tenant, limit, offset)
	if err != nil {
		return err
	}

	responses := make([]orderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toOrderResponse(&orders[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"orders": responses, "limit": limit, "offset": offset})
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateOrderStatus(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError("invalid request body")
	}

	order, err := s.app.UpdateOrderStatus(c.Request().Context(), tenant, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// --- Inventory ---

type inventoryItemResponse struct {
	ID                string    `json:"id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	QuantityAvailable int       `json:"quantityAvailable"`
	ReorderLevel      int       `json:"reorderLevel"`
	UnitPrice         float64   `json:"unitPrice"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toInventoryItemResponse(i *domain.InventoryItem) inventoryItemResponse {
	return inventoryItemResponse{
		ID:                i.ID.String(),
		SKU:               i.SKU,
		Name:              i.Name,
		QuantityAvailable: i.QuantityAvailable,
		ReorderLevel:      i.ReorderLevel,
		UnitPrice:         i.UnitPrice,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

type createInventoryItemRequest struct {
	SKU               string  `json:"sku"`
	Name              string  `json:"name"`
	QuantityAvailable int     `json:"quantityAvailable"`
	ReorderLevel      int     `json:"reorderLevel"`
	UnitPrice         float64 `json:"unitPrice"`
}

func (s *Server) handleCreateInventoryItem(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	var req createInventoryItemRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError("invalid request body")
	}
	if req.SKU == "" || req.Name == "" {
		return errors.ValidationError("sku and name are required")
	}

	item := &domain.InventoryItem{
		TenantID:          tenant,
		SKU:               req.SKU,
		Name:              req.Name,
		QuantityAvailable: req.QuantityAvailable,
		ReorderLevel:      req.ReorderLevel,
		UnitPrice:         req.UnitPrice,
	}
	if err := s.app.CreateInventoryItem(c.Request().Context(), item); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toInventoryItemResponse(item))
}

func (s *Server) handleGetInventoryItem(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	itemID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	item, err := s.app.GetInventoryItem(c.Request().Context(), tenant, itemID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInventoryItemResponse(item))
}

func (s *Server) handleListInventory(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)

	items, err := s.app.ListInventory(c.Request().Context(), tenant, limit, offset)
	if err != nil {
		return err
	}

	responses := make([]inventoryItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toInventoryItemResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": responses, "limit": limit, "offset": offset})
}

type adjustInventoryRequest struct {
	Delta int `json:"delta"`
}

func (s *Server) handleAdjustInventory(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	itemID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req adjustInventoryRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError("invalid request body")
	}
	if req.Delta == 0 {
		return errors.ValidationError("delta must be non-zero")
	}

	item, err := s.app.AdjustInventory(c.Request().Context(), tenant, itemID, req.Delta)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInventoryItemResponse(item))
}

// --- Production ---

type productionRecordResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Stage     string    `json:"stage"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toProductionRecordResponse(p *domain.ProductionRecord) productionRecordResponse {
	return productionRecordResponse{
		ID:        p.ID.String(),
		OrderID:   p.OrderID.String(),
		Stage:     string(p.Stage),
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type startProductionRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) handleStartProduction(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req startProductionRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError("invalid request body")
	}

	record, err := s.app.StartProduction(c.Request().Context(), tenant, orderID, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductionRecordResponse(record))
}

func (s *Server) handleListProduction(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	records, err := s.app.ListProduction(c.Request().Context(), tenant, orderID)
	if err != nil {
		return err
	}

	responses := make([]productionRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toProductionRecordResponse(&records[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"records": responses})
}

type advanceProductionRequest struct {
	Stage string `json:"stage"`
}

func (s *Server) handleAdvanceProduction(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req advanceProductionRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError("invalid request body")
	}

	record, err := s.app.AdvanceProduction(c.Request().Context(), tenant, orderID, domain.ProductionStage(req.Stage))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductionRecordResponse(record))
}

package notify

import (
	"time"

	"github.com/danielsutton1/Jewelia-sub026/internal/domain"
)

// EventType identifies the kind of notification carried by an envelope.
type EventType string

const (
	EventOrderStatus     EventType = "order_status"
	EventLowStock        EventType = "low_stock"
	EventProductionStage EventType = "production_stage"
)

// envelope is the common wire header. Concrete events embed it so the
// type-specific fields are flattened into the same JSON object.
type envelope struct {
	Type      EventType `json:"type"`
	Timestamp string    `json:"timestamp"`
}

func newEnvelope(eventType EventType, now time.Time) envelope {
	return envelope{
		Type:      eventType,
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

type orderStatusEvent struct {
	envelope
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type lowStockEvent struct {
	envelope
	Items []domain.LowStockItem `json:"items"`
}

type productionStageEvent struct {
	envelope
	OrderID string `json:"orderId"`
	Stage   string `json:"stage"`
}

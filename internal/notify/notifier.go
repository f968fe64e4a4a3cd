package notify

import (
	"encoding/json"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/danielsutton1/Jewelia-sub026/internal/domain"
	"github.com/danielsutton1/Jewelia-sub026/internal/metrics"
)

// Notifier is the single entry point producer subsystems use to push events
// to a tenant's subscribers. It is stateless between calls: all durable state
// lives in the hub and the emission gate. There is no retry of a denied or
// partially failed broadcast; the next event of the same type tries again.
type Notifier struct {
	hub   *Hub
	gate  *EmissionGate
	clock clockwork.Clock
}

// NewNotifier wires a notifier to the given hub and emission gate.
func NewNotifier(hub *Hub, gate *EmissionGate, clock clockwork.Clock) *Notifier {
	return &Notifier{hub: hub, gate: gate, clock: clock}
}

var _ domain.Notifier = (*Notifier)(nil)

// PublishOrderStatus notifies a tenant's subscribers that an order changed status.
func (n *Notifier) PublishOrderStatus(tenantID, orderID, status string) {
	n.publish(tenantID, EventOrderStatus, func() any {
		return orderStatusEvent{
			envelope: newEnvelope(EventOrderStatus, n.clock.Now()),
			OrderID:  orderID,
			Status:   status,
		}
	})
}

// PublishLowStock notifies a tenant's subscribers about items at or below
// their reorder level.
func (n *Notifier) PublishLowStock(tenantID string, items []domain.LowStockItem) {
	n.publish(tenantID, EventLowStock, func() any {
		return lowStockEvent{
			envelope: newEnvelope(EventLowStock, n.clock.Now()),
			Items:    items,
		}
	})
}

// PublishProductionStage notifies a tenant's subscribers that an order moved
// to a new production stage.
func (n *Notifier) PublishProductionStage(tenantID, orderID, stage string) {
	n.publish(tenantID, EventProductionStage, func() any {
		return productionStageEvent{
			envelope: newEnvelope(EventProductionStage, n.clock.Now()),
			OrderID:  orderID,
			Stage:    stage,
		}
	})
}

// publish runs the shared emit path: gate check before any serialization or
// I/O, one marshal per permitted call, then fan-out via the hub. A denied
// emission is routine, not an error; it is counted and dropped silently.
func (n *Notifier) publish(tenantID string, eventType EventType, build func() any) {
	if tenantID == "" {
		return
	}

	if !n.gate.TryAcquire(tenantID) {
		metrics.NotificationsDroppedTotal.WithLabelValues(string(eventType)).Inc()
		slog.Debug("Notification rate limited", "tenant_id", tenantID, "type", string(eventType))
		return
	}

	data, err := json.Marshal(build())
	if err != nil {
		slog.Error("Failed to marshal notification", "tenant_id", tenantID, "type", string(eventType), "error", err)
		return
	}

	metrics.NotificationsSentTotal.WithLabelValues(string(eventType)).Inc()
	n.hub.Broadcast(tenantID, data)
}

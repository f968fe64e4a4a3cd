package notify

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/danielsutton1/Jewelia-sub026/internal/metrics"
)

const (
	commandTimeout = 5 * time.Second
	stopTimeout    = 10 * time.Second
)

type tenantClients map[*websocket.Conn]*clientWriter

// hubCmd is the command interface for the Hub actor.
type hubCmd interface{ isHubCmd() }

type baseHubCmd struct{}

func (baseHubCmd) isHubCmd() {}

type registerCmd struct {
	baseHubCmd
	tenantID     string
	connection   *websocket.Conn
	errorChannel chan error
}

type unregisterCmd struct {
	baseHubCmd
	tenantID   string
	connection *websocket.Conn
}

type broadcastCmd struct {
	baseHubCmd
	tenantID string
	data     []byte
}

type clientCountCmd struct {
	baseHubCmd
	tenantID     string
	replyChannel chan int
}

type stopCmd struct {
	baseHubCmd
}

// Hub tracks every live client connection and the tenant channel it belongs
// to. A single goroutine owns the membership maps and serializes all
// mutations and fan-outs, so broadcasts never race connection teardown.
type Hub struct {
	cmdCh               chan hubCmd
	clock               clockwork.Clock
	clients             map[string]tenantClients
	done                chan struct{}
	stopTimeout         time.Duration
	maxClientsPerTenant int
}

// NewHub creates a hub and starts its actor goroutine.
// maxClientsPerTenant bounds connections per tenant channel (prevents a
// single tenant from exhausting the instance).
func NewHub(clock clockwork.Clock, maxClientsPerTenant int) *Hub {
	h := &Hub{
		cmdCh:               make(chan hubCmd, 256),
		clock:               clock,
		clients:             make(map[string]tenantClients),
		done:                make(chan struct{}),
		stopTimeout:         stopTimeout,
		maxClientsPerTenant: maxClientsPerTenant,
	}
	go h.run()
	return h
}

// Register adds a connection to a tenant's channel. The connection stays in
// the channel until Unregister, a failed write, or hub shutdown.
// Returns an error if the tenant's channel is full.
func (h *Hub) Register(tenantID string, conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- registerCmd{tenantID: tenantID, connection: conn, errorChannel: errCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-timer.Chan():
		return fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes a connection from a tenant's channel. Idempotent: safe
// to call from both the read-pump close path and the failed-write path.
func (h *Hub) Unregister(tenantID string, conn *websocket.Conn) {
	h.cmdCh <- unregisterCmd{tenantID: tenantID, connection: conn}
}

// Broadcast queues data for delivery to every connection in the tenant's
// channel. Fire and forget: an unknown or empty tenant is a no-op.
func (h *Hub) Broadcast(tenantID string, data []byte) {
	h.cmdCh <- broadcastCmd{tenantID: tenantID, data: data}
}

// ClientCount returns the number of connections in a tenant's channel.
// Returns -1 if the command times out.
func (h *Hub) ClientCount(tenantID string) int {
	replyCh := make(chan int, 1)
	h.cmdCh <- clientCountCmd{tenantID: tenantID, replyChannel: replyCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case count := <-replyCh:
		return count
	case <-timer.Chan():
		slog.Warn("ClientCount timed out", "timeout", commandTimeout)
		return -1
	}
}

// Stop shuts the hub down, sending a close frame to every client.
// Blocks until the actor goroutine has exited or the stop timeout is reached.
func (h *Hub) Stop() {
	h.cmdCh <- stopCmd{}

	timeout := h.clock.NewTimer(h.stopTimeout)
	defer timeout.Stop()

	select {
	case <-h.done:
		slog.Info("Hub stopped gracefully")
	case <-timeout.Chan():
		slog.Warn("Hub stop timeout exceeded, forcing exit", "timeout", h.stopTimeout)
		metrics.HubStopTimeoutsTotal.Inc()
		close(h.done)
	}
}

func (h *Hub) run() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Hub panic recovered", "panic", r)
			h.closeAllClients(websocket.CloseInternalServerErr, "internal error")
		}
	}()
	defer close(h.done)

	depthTicker := h.clock.NewTicker(time.Second)
	defer depthTicker.Stop()

	for {
		select {
		case <-depthTicker.Chan():
			depth := len(h.cmdCh)
			metrics.HubCommandChannelDepth.Set(float64(depth))
			if depth > 200 { // 80% of 256
				slog.Warn("Hub command channel near capacity", "depth", depth, "capacity", cap(h.cmdCh))
			}

		case cmd := <-h.cmdCh:
			switch c := cmd.(type) {
			case registerCmd:
				h.handleRegister(c)
			case unregisterCmd:
				h.handleUnregister(c)
			case broadcastCmd:
				h.handleBroadcast(c)
			case clientCountCmd:
				c.replyChannel <- len(h.clients[c.tenantID])
			case stopCmd:
				h.handleStop()
				return
			default:
				slog.Warn("Hub received unknown command type", "command_type", fmt.Sprintf("%T", cmd))
			}
		}
	}
}

func (h *Hub) handleRegister(c registerCmd) {
	clients, exists := h.clients[c.tenantID]
	if !exists {
		clients = make(tenantClients)
		h.clients[c.tenantID] = clients
	}

	if len(clients) >= h.maxClientsPerTenant {
		slog.Warn("Rejecting client: tenant channel full", "tenant_id", c.tenantID, "max_clients", h.maxClientsPerTenant)
		c.connection.Close()
		c.errorChannel <- fmt.Errorf("max clients per tenant (%d) reached", h.maxClientsPerTenant)
		return
	}

	conn := c.connection
	tenantID := c.tenantID
	cw := newClientWriter(conn, h.clock, func() {
		h.Unregister(tenantID, conn)
	})
	clients[conn] = cw

	metrics.HubActiveTenants.Set(float64(len(h.clients)))
	metrics.HubConnectedClients.Inc()

	slog.Debug("Client registered", "tenant_id", c.tenantID, "total_clients", len(clients))
	c.errorChannel <- nil
}

func (h *Hub) handleUnregister(c unregisterCmd) {
	clients, exists := h.clients[c.tenantID]
	if !exists {
		return
	}

	cw, exists := clients[c.connection]
	if !exists {
		return
	}

	cw.stop()
	delete(clients, c.connection)
	metrics.HubConnectedClients.Dec()

	if len(clients) == 0 {
		delete(h.clients, c.tenantID)
		metrics.HubActiveTenants.Set(float64(len(h.clients)))
		slog.Info("Last client disconnected", "tenant_id", c.tenantID)
	} else {
		slog.Debug("Client unregistered", "tenant_id", c.tenantID, "remaining_clients", len(clients))
	}
}

func (h *Hub) handleBroadcast(c broadcastCmd) {
	clients, exists := h.clients[c.tenantID]
	if !exists {
		return
	}

	var slow []*websocket.Conn
	for conn, writer := range clients {
		select {
		case writer.sendCh <- c.data:
		default:
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		slog.Warn("Disconnecting slow client", "tenant_id", c.tenantID)
		metrics.HubSlowClientsEvicted.Inc()
		h.handleUnregister(unregisterCmd{tenantID: c.tenantID, connection: conn})
	}
}

func (h *Hub) handleStop() {
	totalClients := 0
	for _, clients := range h.clients {
		totalClients += len(clients)
	}
	slog.Info("Hub shutting down", "tenants", len(h.clients), "total_clients", totalClients)

	h.closeAllClients(websocket.CloseNormalClosure, "server shutting down")

	slog.Info("Hub shutdown complete", "disconnected_clients", totalClients)
}

func (h *Hub) closeAllClients(code int, reason string) {
	for tenantID, clients := range h.clients {
		for _, cw := range clients {
			cw.stopGraceful(code, reason)
		}
		delete(h.clients, tenantID)
	}
	metrics.HubActiveTenants.Set(0)
	metrics.HubConnectedClients.Set(0)
}

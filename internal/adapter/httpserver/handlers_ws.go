package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/danielsutton1/Jewelia-sub026/internal/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Tenant dashboards are embedded across customer domains
	},
}

const handshakeCloseDeadline = 5 * time.Second

// handleNotificationsSocket upgrades a client connection and subscribes it to
// its tenant's notification channel. The tenant identifier is mandatory: a
// connection without one is closed with a policy-violation code and never
// enters the hub.
func (s *Server) handleNotificationsSocket(c echo.Context) error {
	if !s.connLimiter.Acquire() {
		metrics.WebSocketConnectionsTotal.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "connection limit reached",
		})
	}
	defer s.connLimiter.Release()

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		metrics.WebSocketConnectionsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	tenantID := strings.TrimSpace(c.QueryParam("tenant"))
	if tenantID == "" {
		metrics.WebSocketConnectionsTotal.WithLabelValues("rejected").Inc()
		closeMsg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "tenant identifier required")
		_ = conn.SetWriteDeadline(time.Now().Add(handshakeCloseDeadline))
		_ = conn.WriteMessage(websocket.CloseMessage, closeMsg)
		_ = conn.Close()
		return nil
	}

	if err := s.hub.Register(tenantID, conn); err != nil {
		metrics.WebSocketConnectionsTotal.WithLabelValues("rejected").Inc()
		closeMsg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error())
		_ = conn.SetWriteDeadline(time.Now().Add(handshakeCloseDeadline))
		_ = conn.WriteMessage(websocket.CloseMessage, closeMsg)
		_ = conn.Close()
		return nil
	}
	metrics.WebSocketConnectionsTotal.WithLabelValues("success").Inc()

	// Read pump - blocks until the connection closes. Inbound frames are
	// ignored beyond keepalive handling; this is a push-only channel.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.hub.Unregister(tenantID, conn)

	return nil
}

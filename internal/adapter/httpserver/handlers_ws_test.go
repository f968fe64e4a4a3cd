package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsURL(ts *httptest.Server, query string) string {
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/notifications"
	if query != "" {
		url += "?" + query
	}
	return url
}

func dialNotifications(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, query), nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestNotificationsSocket_DeliversToSubscribedTenant(t *testing.T) {
	srv, ts := newTestServer(t, &stubApp{})

	conn := dialNotifications(t, ts, "tenant=T1")

	// Wait for registration to land in the hub before broadcasting.
	require.Eventually(t, func() bool {
		return srv.hub.ClientCount("T1") == 1
	}, time.Second, 5*time.Millisecond)

	srv.hub.Broadcast("T1", []byte(`{"type":"order_status"}`))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"order_status"}`, string(msg))
}

func TestNotificationsSocket_MissingTenantIsPolicyViolation(t *testing.T) {
	_, ts := newTestServer(t, &stubApp{})

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, ""), nil)
	require.NoError(t, err, "upgrade itself succeeds; rejection arrives as a close frame")
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation), "expected policy violation close, got: %v", err)
}

func TestNotificationsSocket_BlankTenantIsPolicyViolation(t *testing.T) {
	_, ts := newTestServer(t, &stubApp{})

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, "tenant=%20%20"), nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation))
}

func TestNotificationsSocket_DisconnectDeregisters(t *testing.T) {
	srv, ts := newTestServer(t, &stubApp{})

	conn := dialNotifications(t, ts, "tenant=T1")
	require.Eventually(t, func() bool {
		return srv.hub.ClientCount("T1") == 1
	}, time.Second, 5*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return srv.hub.ClientCount("T1") == 0
	}, time.Second, 5*time.Millisecond)
}

func TestNotificationsSocket_PerTenantClientLimit(t *testing.T) {
	srv, ts := newTestServer(t, &stubApp{})

	// Fill the tenant's slots (test hub allows 10).
	for range 10 {
		dialNotifications(t, ts, "tenant=T1")
	}
	require.Eventually(t, func() bool {
		return srv.hub.ClientCount("T1") == 10
	}, time.Second, 5*time.Millisecond)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, "tenant=T1"), nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseTryAgainLater), "expected try-again-later close, got: %v", err)
}

func TestNotificationsSocket_GlobalConnectionLimit(t *testing.T) {
	srv, ts := newTestServer(t, &stubApp{})
	srv.connLimiter = NewConnectionLimiter(0)

	resp, err := http.Get(ts.URL + "/ws/notifications?tenant=T1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

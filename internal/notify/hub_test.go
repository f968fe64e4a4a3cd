package notify

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForClientCount(h *Hub, tenantID string, expected int) bool {
	for range 100 {
		if h.ClientCount(tenantID) == expected {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

func readMessage(t *testing.T, conn *ws.Conn, timeout time.Duration) ([]byte, error) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(timeout))
	_, msg, err := conn.ReadMessage()
	return msg, err
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub(clockwork.NewRealClock(), 50)
	t.Cleanup(func() { hub.Stop() })

	server, client := newTestConnPair(t)
	require.NoError(t, hub.Register("T1", server))
	assert.Equal(t, 1, hub.ClientCount("T1"))

	hub.Broadcast("T1", []byte(`{"type":"order_status"}`))

	msg, err := readMessage(t, client, time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"order_status"}`, string(msg))
}

func TestHub_TenantIsolation(t *testing.T) {
	hub := NewHub(clockwork.NewRealClock(), 50)
	t.Cleanup(func() { hub.Stop() })

	serverA, clientA := newTestConnPair(t)
	serverB, clientB := newTestConnPair(t)
	require.NoError(t, hub.Register("T1", serverA))
	require.NoError(t, hub.Register("T2", serverB))

	hub.Broadcast("T1", []byte(`{"tenant":"T1"}`))

	msg, err := readMessage(t, clientA, time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tenant":"T1"}`, string(msg))

	// T2's client must receive nothing.
	_, err = readMessage(t, clientB, 200*time.Millisecond)
	assert.Error(t, err, "tenant T2 should not receive T1's broadcast")
}

func TestHub_NoCrossTenantLeakageUnderConcurrency(t *testing.T) {
	hub := NewHub(clockwork.NewRealClock(), 50)
	t.Cleanup(func() { hub.Stop() })

	const (
		tenantCount       = 8
		messagesPerTenant = 20
	)

	type subscription struct {
		tenant string
		client *ws.Conn
	}

	subs := make([]subscription, 0, tenantCount)
	regErrs := make(chan error, tenantCount)
	var registrations sync.WaitGroup
	for i := range tenantCount {
		tenant := fmt.Sprintf("tenant-%d", i)
		server, client := newTestConnPair(t)
		subs = append(subs, subscription{tenant: tenant, client: client})

		registrations.Add(1)
		go func() {
			defer registrations.Done()
			regErrs <- hub.Register(tenant, server)
		}()
	}
	registrations.Wait()
	close(regErrs)
	for err := range regErrs {
		require.NoError(t, err)
	}

	// Every tenant's stream is published from its own goroutine, racing the
	// others through the hub.
	var publishers sync.WaitGroup
	for _, sub := range subs {
		publishers.Add(1)
		go func() {
			defer publishers.Done()
			for n := range messagesPerTenant {
				hub.Broadcast(sub.tenant, []byte(fmt.Sprintf(`{"tenant":%q,"seq":%d}`, sub.tenant, n)))
			}
		}()
	}
	publishers.Wait()

	for _, sub := range subs {
		for n := range messagesPerTenant {
			sub.client.SetReadDeadline(time.Now().Add(2 * time.Second))
			_, msg, err := sub.client.ReadMessage()
			require.NoError(t, err)

			var got struct {
				Tenant string `json:"tenant"`
				Seq    int    `json:"seq"`
			}
			require.NoError(t, json.Unmarshal(msg, &got))
			assert.Equal(t, sub.tenant, got.Tenant, "client received another tenant's event")
			assert.Equal(t, n, got.Seq, "per-tenant delivery order must hold")
		}

		// Nothing beyond the tenant's own stream may arrive.
		sub.client.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		_, _, err := sub.client.ReadMessage()
		assert.Error(t, err, "client for %s received an extra frame", sub.tenant)
	}
}

func TestHub_BroadcastToUnknownTenantIsNoop(t *testing.T) {
	hub := NewHub(clockwork.NewRealClock(), 50)
	t.Cleanup(func() { hub.Stop() })

	// Must not panic or block.
	hub.Broadcast("nobody-home", []byte(`{}`))
	assert.Equal(t, 0, hub.ClientCount("nobody-home"))
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	hub := NewHub(clockwork.NewRealClock(), 50)
	t.Cleanup(func() { hub.Stop() })

	server, client := newTestConnPair(t)
	_ = client
	require.NoError(t, hub.Register("T1", server))

	hub.Unregister("T1", server)
	hub.Unregister("T1", server)
	hub.Unregister("T1", server)

	require.True(t, waitForClientCount(hub, "T1", 0))
}

func TestHub_FanOutSurvivesDeadConnection(t *testing.T) {
	hub := NewHub(clockwork.NewRealClock(), 50)
	t.Cleanup(func() { hub.Stop() })

	live := make([]*ws.Conn, 0, 2)
	serverDead, clientDead := newTestConnPair(t)
	require.NoError(t, hub.Register("T1", serverDead))

	for range 2 {
		server, client := newTestConnPair(t)
		require.NoError(t, hub.Register("T1", server))
		live = append(live, client)
	}
	require.Equal(t, 3, hub.ClientCount("T1"))

	// Kill one connection out from under the hub.
	clientDead.Close()
	serverDead.Close()

	hub.Broadcast("T1", []byte(`{"n":1}`))

	// Both live clients still receive the broadcast.
	for _, client := range live {
		msg, err := readMessage(t, client, time.Second)
		require.NoError(t, err)
		assert.JSONEq(t, `{"n":1}`, string(msg))
	}

	// The dead connection is eventually deregistered via the failed-write path.
	require.True(t, waitForClientCount(hub, "T1", 2))
}

func TestHub_MaxClientsPerTenant(t *testing.T) {
	const maxClients = 3
	hub := NewHub(clockwork.NewRealClock(), maxClients)
	t.Cleanup(func() { hub.Stop() })

	for i := range maxClients {
		server, client := newTestConnPair(t)
		_ = client
		require.NoError(t, hub.Register("T1", server), "client %d should register successfully", i)
	}

	server, client := newTestConnPair(t)
	_ = client
	err := hub.Register("T1", server)
	assert.Error(t, err, "client beyond max should be rejected")
	assert.Contains(t, err.Error(), "max clients per tenant")

	// The limit is per tenant: another tenant still has room.
	serverB, clientB := newTestConnPair(t)
	_ = clientB
	assert.NoError(t, hub.Register("T2", serverB))
}

func TestHub_StopClosesAllClients(t *testing.T) {
	hub := NewHub(clockwork.NewRealClock(), 50)

	server, client := newTestConnPair(t)
	require.NoError(t, hub.Register("T1", server))

	hub.Stop()

	client.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := client.ReadMessage()
	require.Error(t, err)
	assert.True(t, ws.IsCloseError(err, ws.CloseNormalClosure), "expected normal closure on shutdown, got: %v", err)
}

func TestHub_PerTenantDeliveryOrder(t *testing.T) {
	hub := NewHub(clockwork.NewRealClock(), 50)
	t.Cleanup(func() { hub.Stop() })

	server, client := newTestConnPair(t)
	require.NoError(t, hub.Register("T1", server))

	hub.Broadcast("T1", []byte(`{"seq":1}`))
	hub.Broadcast("T1", []byte(`{"seq":2}`))
	hub.Broadcast("T1", []byte(`{"seq":3}`))

	for i := 1; i <= 3; i++ {
		msg, err := readMessage(t, client, time.Second)
		require.NoError(t, err)
		assert.Contains(t, string(msg), `"seq":`+string(rune('0'+i)))
	}
}

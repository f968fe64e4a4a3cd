package notify

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultMinInterval is the minimum time between permitted emissions for a
// single tenant unless overridden via configuration.
const DefaultMinInterval = time.Second

// EmissionGate caps how often notifications may be emitted to a tenant's
// channel. The gate is per tenant, not per event type: a burst of low-stock
// alerts for one tenant must not starve that tenant's order updates, and must
// not affect other tenants at all. Excess emissions are dropped, not queued.
type EmissionGate struct {
	mu       sync.Mutex
	last     map[string]time.Time
	interval time.Duration
	clock    clockwork.Clock
}

// NewEmissionGate creates a gate with the given minimum inter-emission
// interval. A non-positive interval disables the gate.
func NewEmissionGate(interval time.Duration, clock clockwork.Clock) *EmissionGate {
	return &EmissionGate{
		last:     make(map[string]time.Time),
		interval: interval,
		clock:    clock,
	}
}

// TryAcquire reports whether an emission for tenantID is permitted now.
// On permit the tenant's last-emission timestamp advances to now; on denial
// it is left unchanged. The first call for a tenant always permits.
// Entries are never evicted: the map is bounded by tenant cardinality.
func (g *EmissionGate) TryAcquire(tenantID string) bool {
	if g.interval <= 0 {
		return true
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	last, seen := g.last[tenantID]
	if seen && now.Sub(last) < g.interval {
		return false
	}
	g.last[tenantID] = now
	return true
}

// Package notify implements the realtime notification core: a per-tenant
// WebSocket hub with actor-based connection management, a per-tenant
// emission gate, and the notifier that fans typed events out to subscribers.
package notify

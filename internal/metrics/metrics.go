// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Hub metrics
var (
	// HubActiveTenants tracks the number of tenant channels with at least one client
	HubActiveTenants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notify_hub_active_tenants",
			Help: "Number of tenant channels with at least one connected client",
		},
	)

	// HubConnectedClients tracks total connected WebSocket clients across all tenants
	HubConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notify_hub_connected_clients",
			Help: "Total number of connected WebSocket clients across all tenants",
		},
	)

	// HubSlowClientsEvicted tracks clients evicted because their send buffer filled
	HubSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_hub_slow_clients_evicted_total",
			Help: "Total slow WebSocket clients evicted due to full send buffer",
		},
	)

	// HubWriteFailures tracks per-connection write failures that triggered eviction
	HubWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_hub_write_failures_total",
			Help: "Total per-connection write failures that triggered deregistration",
		},
	)

	// HubCommandChannelDepth tracks the hub actor command channel depth
	HubCommandChannelDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notify_hub_command_channel_depth",
			Help: "Current hub command channel depth",
		},
	)

	// HubStopTimeoutsTotal tracks hub stops that exceeded the graceful timeout
	HubStopTimeoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_hub_stop_timeouts_total",
			Help: "Hub stops that exceeded the graceful shutdown timeout",
		},
	)
)

// Notifier metrics
var (
	// NotificationsSentTotal tracks broadcasts that passed the emission gate, by event type
	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_notifications_sent_total",
			Help: "Broadcasts that passed the emission gate, by event type",
		},
		[]string{"type"},
	)

	// NotificationsDroppedTotal tracks broadcasts dropped by the per-tenant emission gate
	NotificationsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_notifications_dropped_total",
			Help: "Broadcasts dropped by the per-tenant emission gate, by event type",
		},
		[]string{"type"},
	)
)

// WebSocket transport metrics
var (
	// WebSocketConnectionsTotal tracks connection attempts by result
	WebSocketConnectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_websocket_connections_total",
			Help: "Total WebSocket connection attempts by result (success/rejected/error)",
		},
		[]string{"result"},
	)

	// WebSocketMessageSendDuration tracks message send duration
	WebSocketMessageSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notify_websocket_message_send_duration_seconds",
			Help:    "WebSocket message send duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25},
		},
	)

	// WebSocketPingFailures tracks ping failures (client not responding)
	WebSocketPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_websocket_ping_failures_total",
			Help: "Total WebSocket ping failures (client not responding)",
		},
	)
)

// HTTP API metrics
var (
	// APIRateLimitedTotal tracks API requests rejected by the per-caller rate limiter
	APIRateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "api_rate_limited_total",
			Help: "Total API requests rejected by the per-caller rate limiter",
		},
	)

	// HTTPRequestDuration tracks request latency by route and status
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds by route and status",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"route", "status"},
	)
)

// Package metrics defines and registers all custom Prometheus metrics for the
// inventory API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts orders committed by the order engine.
// Label:
//   - result: "created" for new orders, "replayed" for idempotent replays
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed, by result (created/replayed).",
	},
	[]string{"result"},
)

// OrdersDeletedTotal counts deleted orders whose stock was restored.
var OrdersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_deleted_total",
		Help:      "Total number of orders deleted.",
	},
)

// UnitsSoldTotal counts product units moved from qty to sold by new orders.
var UnitsSoldTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "units_sold_total",
		Help:      "Total number of product units sold through orders.",
	},
)

// ── Access metrics ────────────────────────────────────────────────────────────

// AccessDeniedTotal counts requests rejected by the permission gate.
// Label:
//   - permission: the capability the route requires (e.g. "CREATE_ORDER")
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by the permission gate, by capability.",
	},
	[]string{"permission"},
)

// LoginFailuresTotal counts rejected login attempts.
var LoginFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of failed login attempts.",
	},
)

// Package metrics defines and registers all custom Prometheus metrics for the
// hotel management backend. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at import time
// via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "deactivated"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionReadsTotal counts session re-validations performed per request.
// Label:
//   - result: "hit" (live session, active user), "miss" (no session), or
//     "revoked" (session present but account gone or deactivated)
var SessionReadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_reads_total",
		Help:      "Total number of session lookups, by result.",
	},
	[]string{"result"},
)

// ── Website update metrics ────────────────────────────────────────────────────

// UpdateRunsTotal counts website update invocations.
// Label:
//   - result: "success", "failed", "busy", or "invalid_target"
var UpdateRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "update_runs_total",
		Help:      "Total number of website update triggers, by result.",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events accepted by the sink.
// Label:
//   - action: the audit action tag (e.g. "USER_LOGIN")
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events accepted, by action.",
	},
	[]string{"action"},
)

// AuditDroppedTotal counts audit events dropped because the buffer was full
// or the write failed. Audit is fire-and-forget: drops are counted, never
// surfaced to the triggering operation.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit events dropped instead of persisted.",
	},
)

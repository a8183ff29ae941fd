// Package metrics defines all custom Prometheus metrics for the referral
// ledger engine. It is the single source of truth for metric names, labels,
// and help strings; metrics register themselves with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "referral_ledger"

// ── Ledger metrics ────────────────────────────────────────────────────────────

// TransactionsAppliedTotal counts successfully applied balance transactions.
// Label:
//   - kind: "DEPOSIT", "WITHDRAW" or "WIN"
var TransactionsAppliedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_applied_total",
		Help:      "Total number of balance transactions applied, by kind.",
	},
	[]string{"kind"},
)

// TransactionsRejectedTotal counts rejected transactions.
// Label:
//   - reason: "invalid", "not_found", "insufficient_funds" or "store"
var TransactionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_rejected_total",
		Help:      "Total number of balance transactions rejected, by reason.",
	},
	[]string{"reason"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEntriesTrimmedTotal counts entries removed by the retention trim once
// the trail exceeds its capacity.
var AuditEntriesTrimmedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_trimmed_total",
		Help:      "Total number of audit entries removed by the retention trim.",
	},
)

// ── Sync metrics ──────────────────────────────────────────────────────────────

// SyncTicksTotal counts reconciliation ticks performed by session watchers.
var SyncTicksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_ticks_total",
		Help:      "Total number of session reconciliation ticks.",
	},
)

// SyncChangesTotal counts change signals emitted to watched sessions.
var SyncChangesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_changes_total",
		Help:      "Total number of user-data-changed signals emitted.",
	},
)

// SyncTerminationsTotal counts sessions terminated because the watched user
// vanished from the store.
var SyncTerminationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_terminations_total",
		Help:      "Total number of session-terminated signals emitted.",
	},
)

// ── Network metrics ───────────────────────────────────────────────────────────

// TreeBuildDuration measures how long one full referral tree rebuild takes.
// Label:
//   - mode: "user" or "global"
var TreeBuildDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tree_build_duration_seconds",
		Help:      "Duration of a full referral tree rebuild.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"mode"},
)

// ── Member metrics ────────────────────────────────────────────────────────────

// MembersCreatedTotal counts member accounts created.
// Label:
//   - status: initial account status ("pending" for registration, "active" for recruitment)
var MembersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "members_created_total",
		Help:      "Total number of member accounts created, by initial status.",
	},
	[]string{"status"},
)

// Package metrics defines the custom Prometheus metrics of the directory
// API. Metrics register with the default registry on package load and are
// exposed by the /metrics handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts created accounts.
// Label:
//   - channel: "gmail" or "mobile"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by channel.",
	},
	[]string{"channel"},
)

// LoginsTotal counts sign-in attempts.
// Labels:
//   - channel: "gmail" or "mobile"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of sign-in attempts, by channel and result.",
	},
	[]string{"channel", "result"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// SubmissionsTotal counts content entering review.
// Label:
//   - kind: "business", "meeting" or "achievement"
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of content submissions, by kind.",
	},
	[]string{"kind"},
)

// ReviewsTotal counts review decisions.
// Labels:
//   - kind: content kind
//   - decision: "approve", "reject" or "override"
var ReviewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_total",
		Help:      "Total number of review decisions, by kind and decision.",
	},
	[]string{"kind", "decision"},
)

// PublishedTotal counts items that reached the public listings.
// Label:
//   - kind: content kind
var PublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "published_total",
		Help:      "Total number of items published after their third approval.",
	},
	[]string{"kind"},
)

// ── Administration metrics ────────────────────────────────────────────────────

// RoleChangesTotal counts owner actions on accounts.
// Label:
//   - action: "promote", "demote" or "remove"
var RoleChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_changes_total",
		Help:      "Total number of owner actions on user accounts.",
	},
	[]string{"action"},
)

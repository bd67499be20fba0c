// Package metrics defines and registers the custom Prometheus metrics of the
// sports club portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init via
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts created accounts.
// Label:
//   - role: "student" or "admin"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "failure" or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationFailuresTotal counts rejected bearer tokens.
// Label:
//   - reason: "missing", "malformed", "bad_signature" or "expired"
var TokenVerificationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verification_failures_total",
		Help:      "Total number of requests rejected by the access guard, by reason.",
	},
	[]string{"reason"},
)

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsSubmittedTotal counts accepted submissions.
// Label:
//   - sport: the sport name
var RegistrationsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_submitted_total",
		Help:      "Total number of sport registrations submitted, by sport.",
	},
	[]string{"sport"},
)

// RegistrationStatusChangesTotal counts admin status decisions.
// Labels:
//   - from: previous status
//   - to: new status
var RegistrationStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registration_status_changes_total",
		Help:      "Total number of registration status changes, by transition.",
	},
	[]string{"from", "to"},
)

// Package metrics defines and registers all custom Prometheus metrics for the
// Tasko API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tasko"

// OTPIssuedTotal counts verification codes issued.
// Labels:
//   - flow: "signup" or "password_reset"
var OTPIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time verification codes issued, by flow.",
	},
	[]string{"flow"},
)

// OTPVerifiedTotal counts verification attempts.
// Labels:
//   - flow: "signup" or "password_reset"
//   - result: "ok", "invalid", or "expired"
var OTPVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verified_total",
		Help:      "Total number of one-time code verification attempts, by flow and result.",
	},
	[]string{"flow", "result"},
)

// SignupsCompletedTotal counts accounts successfully created.
var SignupsCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_completed_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", or "disabled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// EmailsSentTotal counts transactional emails handed to the SMTP server.
// Label:
//   - kind: template identifier (e.g. "signup_otp", "welcome")
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of transactional emails sent, by template kind.",
	},
	[]string{"kind"},
)

// EmailErrorsTotal counts failed email deliveries.
// Label:
//   - kind: template identifier
var EmailErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_errors_total",
		Help:      "Total number of transactional email delivery failures, by template kind.",
	},
	[]string{"kind"},
)

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: "high", "medium", or "low"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// NotificationQueueDepth tracks events waiting in each dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of task events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

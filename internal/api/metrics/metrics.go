// Package metrics defines and registers all custom Prometheus metrics for
// the expense system. It is the single source of truth for metric names,
// labels, and help strings. Collectors register with the default registry
// at init via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "expense_system"

// --- Expense metrics ---

// ExpensesSubmittedTotal counts created expenses.
// Label:
//   - submitter_role: "consultant" (self-submission) or "manager" (on behalf)
var ExpensesSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_submitted_total",
		Help:      "Total number of expenses submitted, by submitter role.",
	},
	[]string{"submitter_role"},
)

// ExpensesReviewedTotal counts settled reviews.
// Label:
//   - status: "approved" or "rejected"
var ExpensesReviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_reviewed_total",
		Help:      "Total number of expense reviews, by outcome.",
	},
	[]string{"status"},
)

// --- Project metrics ---

// ProjectsCreatedTotal counts created projects.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

// --- Rename propagation metrics ---

// RenamesTotal counts email rename propagations.
// Label:
//   - result: "completed" or "aborted" (identity provider refused)
var RenamesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_renames_total",
		Help:      "Total number of email rename propagations, by result.",
	},
	[]string{"result"},
)

// RenameRewritesTotal counts dependent records rewritten during renames.
// Label:
//   - kind: "project" or "expense"
var RenameRewritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_rename_rewrites_total",
		Help:      "Total number of records rewritten by rename propagation, by record kind.",
	},
	[]string{"kind"},
)

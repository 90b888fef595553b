// Package observability exposes Prometheus metrics for the feedback engine.
// Counters live here as package vars (promauto registers them on import) so
// any layer can increment without carrying a registry handle around.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Vote Metrics ───────────────────────────────────────────────────────────

// ProposalVotesToggled tracks proposal vote toggles by outcome.
var ProposalVotesToggled = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "civicpulse",
	Subsystem: "votes",
	Name:      "proposal_toggles_total",
	Help:      "Total proposal vote toggles by outcome (cast or withdrawn).",
}, []string{"outcome"})

// HelpfulVotesToggled tracks feedback helpful-mark toggles by outcome.
var HelpfulVotesToggled = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "civicpulse",
	Subsystem: "votes",
	Name:      "helpful_toggles_total",
	Help:      "Total feedback helpful-mark toggles by outcome (cast or withdrawn).",
}, []string{"outcome"})

// ProposalsPromoted tracks proposals promoted to UNDER_REVIEW.
var ProposalsPromoted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "civicpulse",
	Subsystem: "proposals",
	Name:      "promoted_total",
	Help:      "Total proposals promoted to UNDER_REVIEW.",
})

// ─── Feedback Metrics ───────────────────────────────────────────────────────

// FeedbackSubmitted tracks new feedback records by target type.
var FeedbackSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "civicpulse",
	Subsystem: "feedback",
	Name:      "submitted_total",
	Help:      "Total feedback records submitted by target type.",
}, []string{"type"})

// FeedbackHidden tracks moderation hide/unhide actions.
var FeedbackHidden = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "civicpulse",
	Subsystem: "feedback",
	Name:      "moderated_total",
	Help:      "Total feedback moderation actions (hidden or restored).",
}, []string{"action"})

// SummariesComputed tracks rating summary requests.
var SummariesComputed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "civicpulse",
	Subsystem: "feedback",
	Name:      "summaries_total",
	Help:      "Total rating summary computations.",
})

// ─── Escalation & Leaderboard Metrics ───────────────────────────────────────

// EscalationsComputed tracks escalation lookups by resolved tier.
var EscalationsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "civicpulse",
	Subsystem: "escalation",
	Name:      "computed_total",
	Help:      "Total escalation computations by resolved tier.",
}, []string{"tier"})

// LeaderboardRequests tracks leaderboard computations.
var LeaderboardRequests = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "civicpulse",
	Subsystem: "leaderboard",
	Name:      "requests_total",
	Help:      "Total leaderboard computations.",
})

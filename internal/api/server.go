// Package api provides the HTTP server for civicpulse.
// It exposes the feedback, proposal, escalation, and leaderboard operations
// to the request layer. Transport concerns (session issuance, origin
// policy) live upstream; handlers trust the already-resolved user identity
// in the X-User-ID header.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/civicpulse/civicpulse/internal/app/engine"
	"github.com/civicpulse/civicpulse/internal/domain"
)

// Server is the civicpulse HTTP API server.
type Server struct {
	feedback       *engine.FeedbackService
	ratings        *engine.RatingAggregator
	proposals      *engine.ProposalService
	escalation     *engine.EscalationTracker
	leaderboard    *engine.LeaderboardRanker
	metricsEnabled bool

	// Board width when the request carries no limit parameter.
	leaderboardLimit int
}

// NewServer creates a new API server over the engine services.
func NewServer(
	feedback *engine.FeedbackService,
	ratings *engine.RatingAggregator,
	proposals *engine.ProposalService,
	escalation *engine.EscalationTracker,
	leaderboard *engine.LeaderboardRanker,
) *Server {
	return &Server{
		feedback:         feedback,
		ratings:          ratings,
		proposals:        proposals,
		escalation:       escalation,
		leaderboard:      leaderboard,
		leaderboardLimit: engine.DefaultLeaderboardLimit,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetLeaderboardLimit overrides the default board width used when a
// leaderboard request carries no limit parameter.
func (s *Server) SetLeaderboardLimit(n int) {
	if n > 0 {
		s.leaderboardLimit = n
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/feedback", s.handleSubmitFeedback)
		r.Get("/feedback", s.handleListFeedback)
		r.Get("/feedback/summary", s.handleSummary)
		r.Post("/feedback/{id}/vote", s.handleHelpfulVote)
		r.Post("/feedback/{id}/hide", s.handleHideFeedback)
		r.Get("/feedback/{id}/complaint", s.handleComplaintContext)

		r.Post("/proposals", s.handleCreateProposal)
		r.Get("/proposals", s.handleListProposals)
		r.Post("/proposals/{id}/vote", s.handleProposalVote)

		r.Get("/escalation", s.handleEscalation)
		r.Get("/leaderboard", s.handleLeaderboard)
	})

	// Prometheus metrics endpoint (opt-in via config)
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// userID extracts the authenticated user resolved by the upstream auth
// collaborator. Empty means the request is anonymous.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// errorStatus maps the domain error taxonomy to HTTP status codes.
// Storage failures are 503 so clients know a retry is safe.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStorage):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps a domain error to the right status and body.
func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, errorStatus(err), err.Error())
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

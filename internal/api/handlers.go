package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/civicpulse/civicpulse/internal/domain"
	"github.com/civicpulse/civicpulse/internal/infra/observability"
)

// ─── Feedback Handlers ──────────────────────────────────────────────────────

// handleSubmitFeedback creates a feedback record.
// POST /api/feedback
func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req struct {
		Type     string   `json:"type"`
		TargetID string   `json:"target_id"`
		Rating   int      `json:"rating"`
		Comment  string   `json:"comment"`
		Tags     []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.feedback.Submit(r.Context(), domain.FeedbackRecord{
		Type:     domain.TargetType(req.Type),
		TargetID: req.TargetID,
		UserID:   user,
		Rating:   req.Rating,
		Comment:  req.Comment,
		Tags:     req.Tags,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	observability.FeedbackSubmitted.WithLabelValues(string(rec.Type)).Inc()
	writeJSON(w, http.StatusCreated, rec)
}

// handleListFeedback returns visible feedback for one target.
// GET /api/feedback?type=LINE&target=U4
func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	t := domain.TargetType(r.URL.Query().Get("type"))
	target := r.URL.Query().Get("target")

	recs, err := s.feedback.ListForTarget(r.Context(), t, target)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if recs == nil {
		recs = []domain.FeedbackRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"feedback": recs,
	})
}

// handleSummary returns average ratings per target.
// GET /api/feedback/summary?type=STOP&ids=a,b,c
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	t := domain.TargetType(r.URL.Query().Get("type"))

	var ids []string
	if raw := r.URL.Query().Get("ids"); raw != "" {
		ids = strings.Split(raw, ",")
	}

	summaries, err := s.ratings.Summarize(r.Context(), t, ids)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	observability.SummariesComputed.Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summaries": summaries,
	})
}

// handleHelpfulVote toggles the caller's helpful mark on a record.
// POST /api/feedback/{id}/vote
func (s *Server) handleHelpfulVote(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	res, err := s.feedback.ToggleHelpfulVote(r.Context(), chi.URLParam(r, "id"), user)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	observability.HelpfulVotesToggled.WithLabelValues(voteOutcome(res.Voted)).Inc()
	writeJSON(w, http.StatusOK, res)
}

// handleHideFeedback sets the moderation flag on a record.
// POST /api/feedback/{id}/hide
func (s *Server) handleHideFeedback(w http.ResponseWriter, r *http.Request) {
	if userID(r) == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req struct {
		Hidden bool `json:"hidden"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.feedback.Hide(r.Context(), chi.URLParam(r, "id"), req.Hidden); err != nil {
		writeDomainError(w, err)
		return
	}

	action := "restored"
	if req.Hidden {
		action = "hidden"
	}
	observability.FeedbackHidden.WithLabelValues(action).Inc()
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// handleComplaintContext renders the complaint-form summary for a record.
// GET /api/feedback/{id}/complaint
func (s *Server) handleComplaintContext(w http.ResponseWriter, r *http.Request) {
	text, err := s.feedback.ComplaintContext(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"context": text,
	})
}

// ─── Proposal Handlers ──────────────────────────────────────────────────────

// handleCreateProposal registers a new proposal.
// POST /api/proposals
func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.proposals.Create(r.Context(), req.Title, req.Description, user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// handleListProposals returns all proposals with vote counts.
// GET /api/proposals
func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	props, err := s.proposals.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if props == nil {
		props = []domain.Proposal{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"proposals": props,
	})
}

// handleProposalVote toggles the caller's upvote, then runs the promotion
// check against the fresh count.
// POST /api/proposals/{id}/vote
func (s *Server) handleProposalVote(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	res, err := s.proposals.RegisterVoteAndMaybePromote(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	observability.ProposalVotesToggled.WithLabelValues(voteOutcome(res.Voted)).Inc()
	writeJSON(w, http.StatusOK, res)
}

// ─── Escalation & Leaderboard Handlers ──────────────────────────────────────

// handleEscalation resolves a target's vote count to an escalation tier.
// The tier is a pure function of the count; type and target identify the
// subject and are echoed back for the complaint flow.
// GET /api/escalation?type=LINE&target=U4&votes=37
func (s *Server) handleEscalation(w http.ResponseWriter, r *http.Request) {
	t := domain.TargetType(r.URL.Query().Get("type"))
	if !t.Valid() {
		writeDomainError(w, domain.ErrInvalidTargetType)
		return
	}
	target := r.URL.Query().Get("target")
	if target == "" {
		writeDomainError(w, domain.ErrEmptyTargetID)
		return
	}
	votes, err := strconv.Atoi(r.URL.Query().Get("votes"))
	if err != nil || votes < 0 {
		writeError(w, http.StatusBadRequest, "invalid vote count")
		return
	}

	esc := s.escalation.Escalate(votes)
	observability.EscalationsComputed.WithLabelValues(strconv.Itoa(int(esc.Tier))).Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"type":       t,
		"target_id":  target,
		"tier":       esc.Tier,
		"portal_url": esc.PortalURL,
	})
}

// handleLeaderboard returns the ranked contributor board.
// GET /api/leaderboard?limit=50
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := s.leaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := s.leaderboard.TopContributors(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	observability.LeaderboardRequests.Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

func voteOutcome(voted bool) string {
	if voted {
		return "cast"
	}
	return "withdrawn"
}

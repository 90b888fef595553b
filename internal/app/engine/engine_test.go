package engine

import (
	"context"
	"sort"
	"time"

	"github.com/civicpulse/civicpulse/internal/domain"
)

// ─── In-Memory Fakes ────────────────────────────────────────────────────────
// Minimal implementations of the storage ports for engine tests. The sqlite
// package has its own tests for the real queries.

type memProposalStore struct {
	proposals map[string]*domain.Proposal
	votes     map[string]map[string]bool // proposalID → set of userIDs
	failWith  error                      // when set, every call fails
}

func newMemProposalStore() *memProposalStore {
	return &memProposalStore{
		proposals: make(map[string]*domain.Proposal),
		votes:     make(map[string]map[string]bool),
	}
}

func (m *memProposalStore) addProposal(id string, status domain.ProposalStatus) {
	m.proposals[id] = &domain.Proposal{ID: id, Title: id, Status: status}
	m.votes[id] = make(map[string]bool)
}

func (m *memProposalStore) InsertProposal(_ context.Context, p domain.Proposal) error {
	if m.failWith != nil {
		return m.failWith
	}
	cp := p
	m.proposals[p.ID] = &cp
	m.votes[p.ID] = make(map[string]bool)
	return nil
}

func (m *memProposalStore) GetProposal(_ context.Context, id string) (*domain.Proposal, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, ok := m.proposals[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.VoteCount = len(m.votes[id])
	return &cp, nil
}

func (m *memProposalStore) ListProposals(_ context.Context) ([]domain.Proposal, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []domain.Proposal
	for id := range m.proposals {
		p, _ := m.GetProposal(context.Background(), id)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProposalStore) ToggleProposalVote(_ context.Context, userID, proposalID string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	set := m.votes[proposalID]
	if set == nil {
		set = make(map[string]bool)
		m.votes[proposalID] = set
	}
	if set[userID] {
		delete(set, userID)
		return false, nil
	}
	set[userID] = true
	return true, nil
}

func (m *memProposalStore) CountProposalVotes(_ context.Context, proposalID string) (int, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	return len(m.votes[proposalID]), nil
}

func (m *memProposalStore) PromoteProposal(_ context.Context, id string, from, to domain.ProposalStatus) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	p, ok := m.proposals[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	return true, nil
}

type memFeedbackStore struct {
	records   map[string]*domain.FeedbackRecord
	votes     map[string]map[string]bool // feedbackID → set of userIDs
	summaries map[string]domain.RatingSummary
	activity  map[string]domain.ContributorActivity
	top       []domain.ContributorActivity

	queriedTargets []string // last RatingSummaries input, for shaping tests
	failWith       error
}

func newMemFeedbackStore() *memFeedbackStore {
	return &memFeedbackStore{
		records:   make(map[string]*domain.FeedbackRecord),
		votes:     make(map[string]map[string]bool),
		summaries: make(map[string]domain.RatingSummary),
		activity:  make(map[string]domain.ContributorActivity),
	}
}

func (m *memFeedbackStore) InsertFeedback(_ context.Context, rec domain.FeedbackRecord) error {
	if m.failWith != nil {
		return m.failWith
	}
	cp := rec
	m.records[rec.ID] = &cp
	m.votes[rec.ID] = make(map[string]bool)
	return nil
}

func (m *memFeedbackStore) GetFeedback(_ context.Context, id string) (*domain.FeedbackRecord, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	rec, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	cp.VoteCount = len(m.votes[id])
	return &cp, nil
}

func (m *memFeedbackStore) ListFeedback(_ context.Context, t domain.TargetType, targetID string) ([]domain.FeedbackRecord, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []domain.FeedbackRecord
	for id, rec := range m.records {
		if rec.Type == t && rec.TargetID == targetID && !rec.Hidden {
			cp := *rec
			cp.VoteCount = len(m.votes[id])
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memFeedbackStore) SetFeedbackHidden(_ context.Context, id string, hidden bool) error {
	if m.failWith != nil {
		return m.failWith
	}
	if rec, ok := m.records[id]; ok {
		rec.Hidden = hidden
	}
	return nil
}

func (m *memFeedbackStore) ToggleFeedbackVote(_ context.Context, feedbackID, userID string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	set := m.votes[feedbackID]
	if set == nil {
		set = make(map[string]bool)
		m.votes[feedbackID] = set
	}
	if set[userID] {
		delete(set, userID)
		return false, nil
	}
	set[userID] = true
	return true, nil
}

func (m *memFeedbackStore) CountFeedbackVotes(_ context.Context, feedbackID string) (int, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	return len(m.votes[feedbackID]), nil
}

func (m *memFeedbackStore) RatingSummaries(_ context.Context, _ domain.TargetType, targetIDs []string) (map[string]domain.RatingSummary, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	m.queriedTargets = targetIDs
	out := make(map[string]domain.RatingSummary)
	for _, id := range targetIDs {
		if s, ok := m.summaries[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (m *memFeedbackStore) ContributorActivity(_ context.Context, userIDs []string) (map[string]domain.ContributorActivity, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make(map[string]domain.ContributorActivity)
	for _, id := range userIDs {
		if a, ok := m.activity[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (m *memFeedbackStore) TopContributors(_ context.Context, limit int) ([]domain.ContributorActivity, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if limit < len(m.top) {
		return m.top[:limit], nil
	}
	return m.top, nil
}

// fixedClock returns a clock pinned to a specific day.
func fixedClock(year int, month time.Month, day int) func() time.Time {
	t := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

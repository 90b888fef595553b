package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/civicpulse/civicpulse/internal/domain"
	"github.com/civicpulse/civicpulse/internal/infra/observability"
)

// ─── Proposal Lifecycle ─────────────────────────────────────────────────────

// DefaultUnderReviewThreshold is the vote count at which an open proposal
// is promoted to UNDER_REVIEW.
const DefaultUnderReviewThreshold = 25

// ProposalService manages proposal creation and the vote-driven status
// machine: OPEN → UNDER_REVIEW, forward-only. Promotion is sticky — a
// proposal stays UNDER_REVIEW even if votes later drop below the threshold.
type ProposalService struct {
	store     domain.ProposalStore
	ledger    *VoteLedger
	threshold int

	// Injectable clock for testing.
	now func() time.Time
}

// NewProposalService creates a proposal service. A non-positive threshold
// falls back to DefaultUnderReviewThreshold.
func NewProposalService(store domain.ProposalStore, threshold int) *ProposalService {
	if threshold <= 0 {
		threshold = DefaultUnderReviewThreshold
	}
	return &ProposalService{
		store:     store,
		ledger:    NewVoteLedger(store),
		threshold: threshold,
		now:       time.Now,
	}
}

// Create registers a new proposal in the OPEN state.
func (s *ProposalService) Create(ctx context.Context, title, description, authorID string) (*domain.Proposal, error) {
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if authorID == "" {
		return nil, domain.ErrEmptyUserID
	}

	p := domain.Proposal{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		AuthorID:    authorID,
		Status:      domain.ProposalOpen,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.InsertProposal(ctx, p); err != nil {
		return nil, domain.StorageErr("insert proposal", err)
	}
	return &p, nil
}

// Get returns a proposal with its current vote count.
func (s *ProposalService) Get(ctx context.Context, id string) (*domain.Proposal, error) {
	if id == "" {
		return nil, domain.ErrEmptyProposalID
	}
	p, err := s.store.GetProposal(ctx, id)
	if err != nil {
		return nil, domain.StorageErr("get proposal", err)
	}
	if p == nil {
		return nil, domain.ErrProposalNotFound
	}
	return p, nil
}

// List returns all proposals, newest first, with vote counts attached.
func (s *ProposalService) List(ctx context.Context) ([]domain.Proposal, error) {
	props, err := s.store.ListProposals(ctx)
	if err != nil {
		return nil, domain.StorageErr("list proposals", err)
	}
	return props, nil
}

// RegisterVoteAndMaybePromote toggles the user's vote and promotes the
// proposal to UNDER_REVIEW when the resulting count reaches the threshold.
// The promotion is conditional on the status still being OPEN, so a vote
// withdrawn afterwards never reverses it and concurrent promotions collapse
// into one.
func (s *ProposalService) RegisterVoteAndMaybePromote(ctx context.Context, userID, proposalID string) (domain.VoteResult, error) {
	res, err := s.ledger.ToggleVote(ctx, userID, proposalID)
	if err != nil {
		return domain.VoteResult{}, err
	}

	if res.VoteCount >= s.threshold {
		promoted, err := s.store.PromoteProposal(ctx, proposalID, domain.ProposalOpen, domain.ProposalUnderReview)
		if err != nil {
			return domain.VoteResult{}, domain.StorageErr("promote proposal", err)
		}
		if promoted {
			observability.ProposalsPromoted.Inc()
		}
	}
	return res, nil
}

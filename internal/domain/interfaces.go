package domain

import "context"

// ─── Storage Ports ──────────────────────────────────────────────────────────
// These interfaces define the boundary between the engine and persistence.
// Infrastructure implements them; the application layer depends on them.
// All engine state lives behind these ports — the engine itself holds no
// in-process mutable state.

// FeedbackStore abstracts feedback rows, helpful votes, and the groupBy
// aggregates the engine derives summaries and rankings from.
type FeedbackStore interface {
	InsertFeedback(ctx context.Context, rec FeedbackRecord) error

	// GetFeedback returns (nil, nil) when no such record exists.
	GetFeedback(ctx context.Context, id string) (*FeedbackRecord, error)
	ListFeedback(ctx context.Context, t TargetType, targetID string) ([]FeedbackRecord, error)
	SetFeedbackHidden(ctx context.Context, id string, hidden bool) error

	// ToggleFeedbackVote atomically inserts a helpful mark if absent, else
	// deletes it. Returns whether a vote exists after the call.
	ToggleFeedbackVote(ctx context.Context, feedbackID, userID string) (bool, error)
	CountFeedbackVotes(ctx context.Context, feedbackID string) (int, error)

	// RatingSummaries returns AVG(rating) and COUNT(*) per target over
	// non-hidden rows. Targets with zero matching rows are absent.
	RatingSummaries(ctx context.Context, t TargetType, targetIDs []string) (map[string]RatingSummary, error)

	// ContributorActivity returns per-user aggregates over non-hidden
	// feedback. Users with no visible feedback are absent from the map.
	ContributorActivity(ctx context.Context, userIDs []string) (map[string]ContributorActivity, error)

	// TopContributors returns up to limit users ordered by review count
	// descending, votes received descending, then user ID ascending.
	TopContributors(ctx context.Context, limit int) ([]ContributorActivity, error)
}

// ProposalStore abstracts proposals and their upvote ledger.
type ProposalStore interface {
	InsertProposal(ctx context.Context, p Proposal) error

	// GetProposal returns (nil, nil) when no such proposal exists.
	GetProposal(ctx context.Context, id string) (*Proposal, error)
	ListProposals(ctx context.Context) ([]Proposal, error)

	// ToggleProposalVote atomically inserts a vote if absent for
	// (userID, proposalID), else deletes it. Returns whether a vote exists
	// after the call.
	ToggleProposalVote(ctx context.Context, userID, proposalID string) (bool, error)
	CountProposalVotes(ctx context.Context, proposalID string) (int, error)

	// PromoteProposal advances status from→to only when the current status
	// still equals from. Returns whether a transition happened.
	PromoteProposal(ctx context.Context, id string, from, to ProposalStatus) (bool, error)
}

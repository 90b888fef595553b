// Package engine implements the feedback aggregation and civic-escalation
// engine: the vote ledger, rating summaries, escalation tiers, the proposal
// lifecycle, badge derivation, and the contributor leaderboard.
//
// The engine holds no in-process mutable state — all state lives behind the
// storage ports in the domain package. Read paths tolerate eventually
// consistent snapshots; write paths re-derive truth from storage after every
// commit instead of trusting client-side counters.
package engine

import (
	"context"

	"github.com/civicpulse/civicpulse/internal/domain"
)

// ─── Vote Ledger ────────────────────────────────────────────────────────────

// VoteLedger provides exactly-once-per-user upvote toggling on proposals.
type VoteLedger struct {
	proposals domain.ProposalStore
}

// NewVoteLedger creates a vote ledger over the given proposal store.
func NewVoteLedger(store domain.ProposalStore) *VoteLedger {
	return &VoteLedger{proposals: store}
}

// ToggleVote casts the user's vote on a proposal if absent, or withdraws it
// if present. The returned count is re-read from storage after the toggle —
// never incremented from a cached value — so concurrent toggles by other
// users cannot drift it.
func (l *VoteLedger) ToggleVote(ctx context.Context, userID, proposalID string) (domain.VoteResult, error) {
	if userID == "" {
		return domain.VoteResult{}, domain.ErrEmptyUserID
	}
	if proposalID == "" {
		return domain.VoteResult{}, domain.ErrEmptyProposalID
	}

	prop, err := l.proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return domain.VoteResult{}, domain.StorageErr("get proposal", err)
	}
	if prop == nil {
		return domain.VoteResult{}, domain.ErrProposalNotFound
	}

	voted, err := l.proposals.ToggleProposalVote(ctx, userID, proposalID)
	if err != nil {
		return domain.VoteResult{}, domain.StorageErr("toggle vote", err)
	}

	count, err := l.proposals.CountProposalVotes(ctx, proposalID)
	if err != nil {
		return domain.VoteResult{}, domain.StorageErr("count votes", err)
	}

	return domain.VoteResult{Voted: voted, VoteCount: count}, nil
}

package domain

import "time"

// ─── Proposal Types ─────────────────────────────────────────────────────────

// ProposalStatus is the lifecycle state of an improvement proposal.
// Status only ever moves forward: once a proposal reaches UNDER_REVIEW it
// never regresses to OPEN, even if votes are later withdrawn.
type ProposalStatus string

const (
	ProposalOpen        ProposalStatus = "OPEN"
	ProposalUnderReview ProposalStatus = "UNDER_REVIEW"
)

// Proposal is a community-submitted improvement suggestion subject to
// upvoting.
type Proposal struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	AuthorID    string         `json:"author_id"`
	Status      ProposalStatus `json:"status"`
	VoteCount   int            `json:"vote_count"`
	CreatedAt   time.Time      `json:"created_at"`
}

// VoteResult is the outcome of a vote toggle: the caller's new vote state
// and the authoritative total after the toggle.
type VoteResult struct {
	Voted     bool `json:"voted"`
	VoteCount int  `json:"vote_count"`
}

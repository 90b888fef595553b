package domain

import "time"

// ─── Contributor & Leaderboard Types ────────────────────────────────────────

// ContributorActivity is a user's aggregate contribution snapshot.
// Badge predicates evaluate over exactly this — nothing else.
type ContributorActivity struct {
	UserID        string    `json:"user_id"`
	ReviewCount   int       `json:"review_count"`   // Non-hidden feedback authored
	VotesReceived int       `json:"votes_received"` // Helpful marks across that feedback
	FirstReviewAt time.Time `json:"first_review_at"`
}

// BadgeID names a badge definition in the static catalog.
type BadgeID string

// Badge is a reputation marker awarded from aggregate activity.
// The catalog of definitions is static configuration, not engine state.
type Badge struct {
	ID    BadgeID `json:"id"`
	Emoji string  `json:"emoji"`
	Label string  `json:"label"`
}

// LeaderboardEntry is one ranked row of the public contributor leaderboard.
// Derived, never persisted.
type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	UserID      string  `json:"user_id"`
	ReviewCount int     `json:"review_count"`
	TotalVotes  int     `json:"total_votes"`
	Badges      []Badge `json:"badges"`
}

// ─── Escalation Types ───────────────────────────────────────────────────────

// EscalationTier is a formal complaint channel unlocked once a target
// accumulates enough votes. Zero means no tier is unlocked.
type EscalationTier int

const (
	TierNone       EscalationTier = 0
	TierReputation EscalationTier = 2 // Public reputational channel
	TierFormal     EscalationTier = 3 // Legally-binding formal channel
)

// Escalation is the computed escalation state for one target.
type Escalation struct {
	Tier      EscalationTier `json:"tier"`
	PortalURL string         `json:"portal_url,omitempty"`
}

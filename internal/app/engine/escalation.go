package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/civicpulse/civicpulse/internal/domain"
)

// ─── Escalation Tracker ─────────────────────────────────────────────────────

// TierThreshold maps a vote-count floor (inclusive) to an escalation tier
// and its external complaint portal. Tiers are configuration data, not
// control flow — adding a tier means adding a row, not a branch.
type TierThreshold struct {
	Tier      domain.EscalationTier
	Threshold int
	PortalURL string
}

// DefaultTiers returns the standard two-tier escalation ladder:
// 25 confirmations unlock the public reputational channel, 50 unlock the
// legally-binding formal channel.
func DefaultTiers() []TierThreshold {
	return []TierThreshold{
		{Tier: domain.TierFormal, Threshold: 50, PortalURL: "https://www.transit-arbitration.example/complaint"},
		{Tier: domain.TierReputation, Threshold: 25, PortalURL: "https://www.city-services.example/transit/report"},
	}
}

// EscalationTracker resolves vote counts to escalation tiers.
// A tier is a pure function of the count — it is never stored, so it can
// never desynchronize from the votes that justify it.
type EscalationTracker struct {
	tiers []TierThreshold // sorted by threshold descending
}

// NewEscalationTracker creates a tracker over the given tier table.
// Thresholds are checked high-to-low regardless of the order supplied.
func NewEscalationTracker(tiers []TierThreshold) *EscalationTracker {
	sorted := make([]TierThreshold, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Threshold > sorted[j].Threshold })
	return &EscalationTracker{tiers: sorted}
}

// TierFor returns the highest tier whose threshold the count meets,
// or domain.TierNone when no threshold is reached.
func (t *EscalationTracker) TierFor(count int) domain.EscalationTier {
	for _, tier := range t.tiers {
		if count >= tier.Threshold {
			return tier.Tier
		}
	}
	return domain.TierNone
}

// Escalate returns the full escalation state for a count, including the
// portal URL of the unlocked channel.
func (t *EscalationTracker) Escalate(count int) domain.Escalation {
	for _, tier := range t.tiers {
		if count >= tier.Threshold {
			return domain.Escalation{Tier: tier.Tier, PortalURL: tier.PortalURL}
		}
	}
	return domain.Escalation{Tier: domain.TierNone}
}

// ─── Complaint Context ──────────────────────────────────────────────────────

// BuildComplaintContext renders a deterministic, human-readable summary of a
// feedback record for pasting into an external complaint form. The tags
// clause is omitted when no tags are set, the comment clause when no comment
// was left; the closing attribution sentence is always present.
func BuildComplaintContext(rec domain.FeedbackRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Complaint regarding %s %q: rated %d out of %d.",
		rec.Type.Label(), rec.TargetID, rec.Rating, domain.RatingMax)
	if len(rec.Tags) > 0 {
		fmt.Fprintf(&b, " Reported issues: %s.", strings.Join(rec.Tags, ", "))
	}
	if rec.Comment != "" {
		fmt.Fprintf(&b, " Resident comment: %q.", rec.Comment)
	}
	fmt.Fprintf(&b, " Submitted on %s and confirmed by %d other residents.",
		rec.CreatedAt.Format("02/01/2006"), rec.VoteCount)
	return b.String()
}

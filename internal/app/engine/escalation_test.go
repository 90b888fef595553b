package engine

import (
	"testing"
	"time"

	"github.com/civicpulse/civicpulse/internal/domain"
)

// ─── Escalation Tracker Tests ───────────────────────────────────────────────

func TestTierFor_Boundaries(t *testing.T) {
	tracker := NewEscalationTracker(DefaultTiers())

	tests := []struct {
		count int
		want  domain.EscalationTier
	}{
		{0, domain.TierNone},
		{24, domain.TierNone},
		{25, domain.TierReputation},
		{49, domain.TierReputation},
		{50, domain.TierFormal},
		{500, domain.TierFormal},
	}
	for _, tt := range tests {
		if got := tracker.TierFor(tt.count); got != tt.want {
			t.Errorf("TierFor(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestTierFor_UnsortedConfig(t *testing.T) {
	// Thresholds are checked high-to-low regardless of supplied order.
	tracker := NewEscalationTracker([]TierThreshold{
		{Tier: domain.TierReputation, Threshold: 25},
		{Tier: domain.TierFormal, Threshold: 50},
	})

	if got := tracker.TierFor(60); got != domain.TierFormal {
		t.Errorf("TierFor(60) = %d, want tier 3", got)
	}
}

func TestEscalate_CarriesPortalURL(t *testing.T) {
	tracker := NewEscalationTracker([]TierThreshold{
		{Tier: domain.TierFormal, Threshold: 50, PortalURL: "https://formal.example"},
		{Tier: domain.TierReputation, Threshold: 25, PortalURL: "https://public.example"},
	})

	esc := tracker.Escalate(30)
	if esc.Tier != domain.TierReputation {
		t.Errorf("tier = %d, want 2", esc.Tier)
	}
	if esc.PortalURL != "https://public.example" {
		t.Errorf("portalURL = %q, want public portal", esc.PortalURL)
	}

	esc = tracker.Escalate(10)
	if esc.Tier != domain.TierNone {
		t.Errorf("tier = %d, want none", esc.Tier)
	}
	if esc.PortalURL != "" {
		t.Errorf("portalURL = %q, want empty", esc.PortalURL)
	}
}

// ─── Complaint Context Tests ────────────────────────────────────────────────

func TestBuildComplaintContext_Full(t *testing.T) {
	rec := domain.FeedbackRecord{
		Type:      domain.TargetLine,
		TargetID:  "U4",
		Rating:    1,
		Comment:   "always crowded",
		Tags:      []string{"overcrowded", "delayed"},
		VoteCount: 12,
		CreatedAt: time.Date(2026, 1, 2, 8, 30, 0, 0, time.UTC),
	}

	got := BuildComplaintContext(rec)
	want := `Complaint regarding transit line "U4": rated 1 out of 5.` +
		` Reported issues: overcrowded, delayed.` +
		` Resident comment: "always crowded".` +
		` Submitted on 02/01/2026 and confirmed by 12 other residents.`
	if got != want {
		t.Errorf("BuildComplaintContext() =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildComplaintContext_OmitsEmptyClauses(t *testing.T) {
	rec := domain.FeedbackRecord{
		Type:      domain.TargetBikePark,
		TargetID:  "central-station",
		Rating:    2,
		CreatedAt: time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC),
	}

	got := BuildComplaintContext(rec)
	want := `Complaint regarding bike parking facility "central-station": rated 2 out of 5.` +
		` Submitted on 24/12/2025 and confirmed by 0 other residents.`
	if got != want {
		t.Errorf("BuildComplaintContext() =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildComplaintContext_Deterministic(t *testing.T) {
	rec := domain.FeedbackRecord{
		Type:      domain.TargetStop,
		TargetID:  "hbf",
		Rating:    3,
		Tags:      []string{"dirty"},
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if BuildComplaintContext(rec) != BuildComplaintContext(rec) {
		t.Error("repeated renders must be byte-identical")
	}
}

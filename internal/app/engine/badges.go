package engine

import (
	"context"
	"time"

	"github.com/civicpulse/civicpulse/internal/domain"
)

// ─── Badge Engine ───────────────────────────────────────────────────────────

// BadgeDef is one entry of the static badge catalog: identity plus a pure
// predicate over a contributor's aggregate activity. Predicates are
// evaluated independently — a user may hold any subset of the catalog.
type BadgeDef struct {
	ID        domain.BadgeID
	Emoji     string
	Label     string
	Predicate func(domain.ContributorActivity) bool
}

// VeteranTenure is how long a contributor must have been reporting for the
// veteran badge.
const VeteranTenure = 365 * 24 * time.Hour

// DefaultBadgeCatalog returns the standard badge definitions. The clock is
// injected so tenure badges stay testable.
func DefaultBadgeCatalog(now func() time.Time) []BadgeDef {
	return []BadgeDef{
		{
			ID: "first_report", Emoji: "📝", Label: "First report",
			Predicate: func(a domain.ContributorActivity) bool { return a.ReviewCount >= 1 },
		},
		{
			ID: "frequent_reporter", Emoji: "📣", Label: "Frequent reporter",
			Predicate: func(a domain.ContributorActivity) bool { return a.ReviewCount >= 10 },
		},
		{
			ID: "transit_expert", Emoji: "🚌", Label: "Transit expert",
			Predicate: func(a domain.ContributorActivity) bool { return a.ReviewCount >= 50 },
		},
		{
			ID: "community_voice", Emoji: "🤝", Label: "Community voice",
			Predicate: func(a domain.ContributorActivity) bool { return a.VotesReceived >= 25 },
		},
		{
			ID: "trusted_reporter", Emoji: "🏆", Label: "Trusted reporter",
			Predicate: func(a domain.ContributorActivity) bool { return a.VotesReceived >= 100 },
		},
		{
			ID: "veteran", Emoji: "🎖️", Label: "Veteran",
			Predicate: func(a domain.ContributorActivity) bool {
				return !a.FirstReviewAt.IsZero() && now().Sub(a.FirstReviewAt) >= VeteranTenure
			},
		},
	}
}

// FilterCatalog returns the subset of defs whose IDs appear in enabled,
// keeping catalog order. An empty enabled list means every badge stays on.
func FilterCatalog(defs []BadgeDef, enabled []domain.BadgeID) []BadgeDef {
	if len(enabled) == 0 {
		return defs
	}
	on := make(map[domain.BadgeID]bool, len(enabled))
	for _, id := range enabled {
		on[id] = true
	}
	out := make([]BadgeDef, 0, len(defs))
	for _, def := range defs {
		if on[def.ID] {
			out = append(out, def)
		}
	}
	return out
}

// BadgeEngine derives earned badges from aggregate activity, batched over
// many users so the underlying aggregate query runs once per call.
type BadgeEngine struct {
	store   domain.FeedbackStore
	catalog []BadgeDef
}

// NewBadgeEngine creates a badge engine with the given catalog.
func NewBadgeEngine(store domain.FeedbackStore, catalog []BadgeDef) *BadgeEngine {
	return &BadgeEngine{store: store, catalog: catalog}
}

// ComputeBadges returns the earned badges per user, ordered by catalog
// definition order. Repeated calls with unchanged data return identical
// results. Users with no activity get an empty badge set, never an error.
func (e *BadgeEngine) ComputeBadges(ctx context.Context, userIDs []string) (map[string][]domain.Badge, error) {
	activity, err := e.store.ContributorActivity(ctx, userIDs)
	if err != nil {
		return nil, domain.StorageErr("contributor activity", err)
	}

	out := make(map[string][]domain.Badge, len(userIDs))
	for _, userID := range userIDs {
		act := activity[userID] // zero snapshot for users with no activity
		act.UserID = userID
		out[userID] = e.evaluate(act)
	}
	return out, nil
}

// evaluate runs every catalog predicate against one activity snapshot.
func (e *BadgeEngine) evaluate(act domain.ContributorActivity) []domain.Badge {
	badges := make([]domain.Badge, 0, len(e.catalog))
	for _, def := range e.catalog {
		if def.Predicate(act) {
			badges = append(badges, domain.Badge{ID: def.ID, Emoji: def.Emoji, Label: def.Label})
		}
	}
	return badges
}

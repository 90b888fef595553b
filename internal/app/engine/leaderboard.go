package engine

import (
	"context"

	"github.com/civicpulse/civicpulse/internal/domain"
)

// ─── Leaderboard Ranker ─────────────────────────────────────────────────────

// DefaultLeaderboardLimit is the leaderboard width when the caller does not
// ask for one.
const DefaultLeaderboardLimit = 50

// LeaderboardRanker orders contributors by visible review count and attaches
// their badges. Ties are broken by total votes received descending, then by
// user ID ascending, so the ordering is fully deterministic.
type LeaderboardRanker struct {
	store  domain.FeedbackStore
	badges *BadgeEngine
}

// NewLeaderboardRanker creates a ranker over the given store and badge engine.
func NewLeaderboardRanker(store domain.FeedbackStore, badges *BadgeEngine) *LeaderboardRanker {
	return &LeaderboardRanker{store: store, badges: badges}
}

// TopContributors returns up to limit ranked entries. Hidden feedback is
// excluded before counting, so moderated rows never inflate a rank. With no
// visible feedback in the system the result is empty, which is success.
func (r *LeaderboardRanker) TopContributors(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	rows, err := r.store.TopContributors(ctx, limit)
	if err != nil {
		return nil, domain.StorageErr("top contributors", err)
	}
	if len(rows) == 0 {
		return []domain.LeaderboardEntry{}, nil
	}

	userIDs := make([]string, len(rows))
	for i, row := range rows {
		userIDs[i] = row.UserID
	}

	// One batched badge computation for the whole board.
	badgeSets, err := r.badges.ComputeBadges(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.LeaderboardEntry{
			Rank:        i + 1,
			UserID:      row.UserID,
			ReviewCount: row.ReviewCount,
			TotalVotes:  row.VotesReceived,
			Badges:      badgeSets[row.UserID],
		}
	}
	return entries, nil
}

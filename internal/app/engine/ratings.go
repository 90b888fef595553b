package engine

import (
	"context"
	"math"

	"github.com/civicpulse/civicpulse/internal/domain"
)

// ─── Rating Aggregator ──────────────────────────────────────────────────────

const (
	// MaxSummaryTargets caps one summary lookup. Batches beyond this are a
	// caller error, not data to truncate silently.
	MaxSummaryTargets = 100

	// maxTargetIDLen drops malformed IDs before they reach storage.
	maxTargetIDLen = 100
)

// RatingAggregator computes average ratings per target from non-hidden
// feedback rows. Read-only; requires no coordination with writers.
type RatingAggregator struct {
	feedback domain.FeedbackStore
}

// NewRatingAggregator creates an aggregator over the given feedback store.
func NewRatingAggregator(store domain.FeedbackStore) *RatingAggregator {
	return &RatingAggregator{feedback: store}
}

// Summarize returns the average rating and row count per target, over
// non-hidden feedback only. Targets with zero matching rows are absent from
// the result, never present with a zero count. Averages are rounded
// half-away-from-zero to one decimal.
func (a *RatingAggregator) Summarize(ctx context.Context, t domain.TargetType, targetIDs []string) (map[string]domain.RatingSummary, error) {
	if !t.Valid() {
		return nil, domain.ErrInvalidTargetType
	}
	if len(targetIDs) > MaxSummaryTargets {
		return nil, domain.ErrTooManyTargets
	}

	ids := shapeTargetIDs(targetIDs)
	if len(ids) == 0 {
		return map[string]domain.RatingSummary{}, nil
	}

	raw, err := a.feedback.RatingSummaries(ctx, t, ids)
	if err != nil {
		return nil, domain.StorageErr("rating summaries", err)
	}

	out := make(map[string]domain.RatingSummary, len(raw))
	for targetID, s := range raw {
		s.Avg = roundTenth(s.Avg)
		out[targetID] = s
	}
	return out, nil
}

// shapeTargetIDs drops empty and oversized entries. Defensive input shaping
// of malformed IDs, not truncation of valid data.
func shapeTargetIDs(targetIDs []string) []string {
	ids := make([]string, 0, len(targetIDs))
	for _, id := range targetIDs {
		if id == "" || len(id) > maxTargetIDLen {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// roundTenth rounds half-away-from-zero at the 0.1 boundary.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

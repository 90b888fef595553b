package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/civicpulse/civicpulse/internal/domain"
)

// ─── Feedback Service ───────────────────────────────────────────────────────

// FeedbackService manages feedback records and their "helpful" vote ledger.
type FeedbackService struct {
	store domain.FeedbackStore

	// Injectable clock for testing.
	now func() time.Time
}

// NewFeedbackService creates a feedback service over the given store.
func NewFeedbackService(store domain.FeedbackStore) *FeedbackService {
	return &FeedbackService{store: store, now: time.Now}
}

// Submit creates a new feedback record. The rating value is immutable after
// this point; only moderation mutates the record, and only the hidden flag.
func (s *FeedbackService) Submit(ctx context.Context, rec domain.FeedbackRecord) (*domain.FeedbackRecord, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	rec.ID = uuid.NewString()
	rec.Hidden = false
	rec.VoteCount = 0
	rec.CreatedAt = s.now().UTC()

	if err := s.store.InsertFeedback(ctx, rec); err != nil {
		return nil, domain.StorageErr("insert feedback", err)
	}
	return &rec, nil
}

// Get returns a feedback record with its helpful-vote count.
func (s *FeedbackService) Get(ctx context.Context, id string) (*domain.FeedbackRecord, error) {
	if id == "" {
		return nil, domain.ErrEmptyTargetID
	}
	rec, err := s.store.GetFeedback(ctx, id)
	if err != nil {
		return nil, domain.StorageErr("get feedback", err)
	}
	if rec == nil {
		return nil, domain.ErrFeedbackNotFound
	}
	return rec, nil
}

// ListForTarget returns visible feedback for one target, newest first.
func (s *FeedbackService) ListForTarget(ctx context.Context, t domain.TargetType, targetID string) ([]domain.FeedbackRecord, error) {
	if !t.Valid() {
		return nil, domain.ErrInvalidTargetType
	}
	if targetID == "" {
		return nil, domain.ErrEmptyTargetID
	}
	recs, err := s.store.ListFeedback(ctx, t, targetID)
	if err != nil {
		return nil, domain.StorageErr("list feedback", err)
	}
	return recs, nil
}

// ToggleHelpfulVote marks a feedback record as helpful for the user, or
// withdraws the mark if already set. Same ledger semantics as proposal
// votes: atomic toggle, then an authoritative recount.
func (s *FeedbackService) ToggleHelpfulVote(ctx context.Context, feedbackID, userID string) (domain.VoteResult, error) {
	if userID == "" {
		return domain.VoteResult{}, domain.ErrEmptyUserID
	}
	rec, err := s.Get(ctx, feedbackID)
	if err != nil {
		return domain.VoteResult{}, err
	}

	voted, err := s.store.ToggleFeedbackVote(ctx, rec.ID, userID)
	if err != nil {
		return domain.VoteResult{}, domain.StorageErr("toggle helpful vote", err)
	}
	count, err := s.store.CountFeedbackVotes(ctx, rec.ID)
	if err != nil {
		return domain.VoteResult{}, domain.StorageErr("count helpful votes", err)
	}
	return domain.VoteResult{Voted: voted, VoteCount: count}, nil
}

// Hide sets the moderation flag on a record. Hidden feedback is excluded
// from every aggregate the engine computes.
func (s *FeedbackService) Hide(ctx context.Context, id string, hidden bool) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.SetFeedbackHidden(ctx, rec.ID, hidden); err != nil {
		return domain.StorageErr("set hidden", err)
	}
	return nil
}

// ComplaintContext renders the complaint-form summary for a record.
func (s *FeedbackService) ComplaintContext(ctx context.Context, id string) (string, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return BuildComplaintContext(*rec), nil
}

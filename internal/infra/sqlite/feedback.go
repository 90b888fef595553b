package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/civicpulse/civicpulse/internal/domain"
)

// ─── Record Operations ──────────────────────────────────────────────────────

// InsertFeedback stores a new feedback record.
func (db *DB) InsertFeedback(ctx context.Context, rec domain.FeedbackRecord) error {
	tags, err := json.Marshal(rec.Tags)
	if err != nil {
		return err
	}
	hidden := 0
	if rec.Hidden {
		hidden = 1
	}
	_, err = db.db.ExecContext(ctx, `
		INSERT INTO feedback (id, type, target_id, user_id, rating, comment, tags_json, hidden, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, string(rec.Type), rec.TargetID, rec.UserID, rec.Rating, rec.Comment, string(tags), hidden, rec.CreatedAt.Format(time.RFC3339))
	return err
}

// GetFeedback retrieves one record with its helpful-vote count.
// Returns (nil, nil) when no such record exists.
func (db *DB) GetFeedback(ctx context.Context, id string) (*domain.FeedbackRecord, error) {
	row := db.db.QueryRowContext(ctx, `
		SELECT f.id, f.type, f.target_id, f.user_id, f.rating, f.comment, f.tags_json, f.hidden, f.created_at,
		       (SELECT COUNT(*) FROM feedback_votes v WHERE v.feedback_id = f.id)
		FROM feedback f WHERE f.id = ?
	`, id)

	rec, err := scanFeedback(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListFeedback returns visible feedback for one target, newest first.
func (db *DB) ListFeedback(ctx context.Context, t domain.TargetType, targetID string) ([]domain.FeedbackRecord, error) {
	rows, err := db.db.QueryContext(ctx, `
		SELECT f.id, f.type, f.target_id, f.user_id, f.rating, f.comment, f.tags_json, f.hidden, f.created_at,
		       (SELECT COUNT(*) FROM feedback_votes v WHERE v.feedback_id = f.id)
		FROM feedback f
		WHERE f.type = ? AND f.target_id = ? AND f.hidden = 0
		ORDER BY f.created_at DESC, f.id
	`, string(t), targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FeedbackRecord
	for rows.Next() {
		rec, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	return result, rows.Err()
}

// SetFeedbackHidden flips the moderation flag.
func (db *DB) SetFeedbackHidden(ctx context.Context, id string, hidden bool) error {
	h := 0
	if hidden {
		h = 1
	}
	_, err := db.db.ExecContext(ctx, `UPDATE feedback SET hidden = ? WHERE id = ?`, h, id)
	return err
}

// scanTarget abstracts sql.Row and sql.Rows for scanFeedback.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanFeedback(s scanTarget) (*domain.FeedbackRecord, error) {
	var rec domain.FeedbackRecord
	var typ, tagsJSON, createdStr string
	var hidden int
	if err := s.Scan(&rec.ID, &typ, &rec.TargetID, &rec.UserID, &rec.Rating, &rec.Comment, &tagsJSON, &hidden, &createdStr, &rec.VoteCount); err != nil {
		return nil, err
	}
	rec.Type = domain.TargetType(typ)
	rec.Hidden = hidden == 1
	created, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = created
	if err := json.Unmarshal([]byte(tagsJSON), &rec.Tags); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ─── Helpful Vote Operations ────────────────────────────────────────────────

// ToggleFeedbackVote atomically removes the user's helpful mark if present,
// else inserts it. One transaction, so concurrent toggles for the same pair
// serialize instead of both observing "no existing vote".
func (db *DB) ToggleFeedbackVote(ctx context.Context, feedbackID, userID string) (bool, error) {
	return db.toggleVote(ctx, `DELETE FROM feedback_votes WHERE feedback_id = ? AND user_id = ?`,
		`INSERT INTO feedback_votes (id, feedback_id, user_id) VALUES (?, ?, ?)`,
		feedbackID, userID)
}

// CountFeedbackVotes returns the authoritative helpful-vote count.
func (db *DB) CountFeedbackVotes(ctx context.Context, feedbackID string) (int, error) {
	var count int
	err := db.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM feedback_votes WHERE feedback_id = ?
	`, feedbackID).Scan(&count)
	return count, err
}

// toggleVote is the shared delete-or-insert transaction for both vote
// ledgers. The two key columns feed the delete in order and the insert after
// a generated row ID.
func (db *DB) toggleVote(ctx context.Context, deleteSQL, insertSQL, keyA, keyB string) (voted bool, err error) {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, deleteSQL, keyA, keyB)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if deleted == 0 {
		if _, err := tx.ExecContext(ctx, insertSQL, uuid.NewString(), keyA, keyB); err != nil {
			return false, err
		}
		voted = true
	}
	return voted, tx.Commit()
}

// ─── Aggregate Operations ───────────────────────────────────────────────────

// RatingSummaries returns AVG(rating) and COUNT(*) per target over visible
// rows. Targets with no matching rows are absent from the map.
func (db *DB) RatingSummaries(ctx context.Context, t domain.TargetType, targetIDs []string) (map[string]domain.RatingSummary, error) {
	if len(targetIDs) == 0 {
		return map[string]domain.RatingSummary{}, nil
	}

	args := []any{string(t)}
	for _, id := range targetIDs {
		args = append(args, id)
	}
	q := `
		SELECT target_id, AVG(rating), COUNT(*)
		FROM feedback
		WHERE type = ? AND hidden = 0 AND target_id IN (` + placeholders(len(targetIDs)) + `)
		GROUP BY target_id
	`

	rows, err := db.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]domain.RatingSummary)
	for rows.Next() {
		var targetID string
		var s domain.RatingSummary
		if err := rows.Scan(&targetID, &s.Avg, &s.Count); err != nil {
			return nil, err
		}
		result[targetID] = s
	}
	return result, rows.Err()
}

// ContributorActivity returns per-user aggregates over visible feedback:
// review count, helpful votes received, and first review time.
func (db *DB) ContributorActivity(ctx context.Context, userIDs []string) (map[string]domain.ContributorActivity, error) {
	if len(userIDs) == 0 {
		return map[string]domain.ContributorActivity{}, nil
	}

	args := make([]any, len(userIDs))
	for i, id := range userIDs {
		args[i] = id
	}
	q := `
		SELECT f.user_id, COUNT(DISTINCT f.id), COUNT(v.id), MIN(f.created_at)
		FROM feedback f
		LEFT JOIN feedback_votes v ON v.feedback_id = f.id
		WHERE f.hidden = 0 AND f.user_id IN (` + placeholders(len(userIDs)) + `)
		GROUP BY f.user_id
	`

	rows, err := db.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]domain.ContributorActivity)
	for rows.Next() {
		var act domain.ContributorActivity
		var firstStr string
		if err := rows.Scan(&act.UserID, &act.ReviewCount, &act.VotesReceived, &firstStr); err != nil {
			return nil, err
		}
		first, err := time.Parse(time.RFC3339, firstStr)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		act.FirstReviewAt = first
		result[act.UserID] = act
	}
	return result, rows.Err()
}

// TopContributors returns up to limit users ordered by review count
// descending, votes received descending, then user ID ascending.
func (db *DB) TopContributors(ctx context.Context, limit int) ([]domain.ContributorActivity, error) {
	rows, err := db.db.QueryContext(ctx, `
		SELECT f.user_id, COUNT(DISTINCT f.id) AS reviews, COUNT(v.id) AS votes, MIN(f.created_at)
		FROM feedback f
		LEFT JOIN feedback_votes v ON v.feedback_id = f.id
		WHERE f.hidden = 0
		GROUP BY f.user_id
		ORDER BY reviews DESC, votes DESC, f.user_id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ContributorActivity
	for rows.Next() {
		var act domain.ContributorActivity
		var firstStr string
		if err := rows.Scan(&act.UserID, &act.ReviewCount, &act.VotesReceived, &firstStr); err != nil {
			return nil, err
		}
		first, err := time.Parse(time.RFC3339, firstStr)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		act.FirstReviewAt = first
		result = append(result, act)
	}
	return result, rows.Err()
}

// placeholders returns "?, ?, ..." with n slots.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/civicpulse/civicpulse/internal/domain"
)

// ─── Proposal Operations ────────────────────────────────────────────────────

// InsertProposal stores a new proposal.
func (db *DB) InsertProposal(ctx context.Context, p domain.Proposal) error {
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO proposals (id, title, description, author_id, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Title, p.Description, p.AuthorID, string(p.Status), p.CreatedAt.Format(time.RFC3339))
	return err
}

// GetProposal retrieves one proposal with its vote count.
// Returns (nil, nil) when no such proposal exists.
func (db *DB) GetProposal(ctx context.Context, id string) (*domain.Proposal, error) {
	p, err := scanProposal(db.db.QueryRowContext(ctx, `
		SELECT p.id, p.title, p.description, p.author_id, p.status, p.created_at,
		       (SELECT COUNT(*) FROM proposal_votes v WHERE v.proposal_id = p.id)
		FROM proposals p WHERE p.id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProposals returns all proposals, newest first, with vote counts.
func (db *DB) ListProposals(ctx context.Context) ([]domain.Proposal, error) {
	rows, err := db.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.description, p.author_id, p.status, p.created_at,
		       (SELECT COUNT(*) FROM proposal_votes v WHERE v.proposal_id = p.id)
		FROM proposals p
		ORDER BY p.created_at DESC, p.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func scanProposal(s scanTarget) (*domain.Proposal, error) {
	var p domain.Proposal
	var status, createdStr string
	if err := s.Scan(&p.ID, &p.Title, &p.Description, &p.AuthorID, &status, &createdStr, &p.VoteCount); err != nil {
		return nil, err
	}
	p.Status = domain.ProposalStatus(status)
	created, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	p.CreatedAt = created
	return &p, nil
}

// ─── Vote Operations ────────────────────────────────────────────────────────

// ToggleProposalVote atomically removes the user's vote if present, else
// inserts it, inside one transaction.
func (db *DB) ToggleProposalVote(ctx context.Context, userID, proposalID string) (bool, error) {
	return db.toggleVote(ctx, `DELETE FROM proposal_votes WHERE user_id = ? AND proposal_id = ?`,
		`INSERT INTO proposal_votes (id, user_id, proposal_id) VALUES (?, ?, ?)`,
		userID, proposalID)
}

// CountProposalVotes returns the authoritative vote count.
func (db *DB) CountProposalVotes(ctx context.Context, proposalID string) (int, error) {
	var count int
	err := db.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM proposal_votes WHERE proposal_id = ?
	`, proposalID).Scan(&count)
	return count, err
}

// PromoteProposal advances the status only when it still equals from.
// The WHERE clause makes the promotion monotonic: a proposal already past
// from is left untouched, and concurrent promotions collapse into one.
func (db *DB) PromoteProposal(ctx context.Context, id string, from, to domain.ProposalStatus) (bool, error) {
	res, err := db.db.ExecContext(ctx, `
		UPDATE proposals SET status = ? WHERE id = ? AND status = ?
	`, string(to), id, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

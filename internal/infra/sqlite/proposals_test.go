package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/civicpulse/civicpulse/internal/domain"
)

// insertProposal writes one OPEN proposal with sensible defaults.
func insertProposal(t *testing.T, db *DB, p domain.Proposal) domain.Proposal {
	t.Helper()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Title == "" {
		p.Title = "More night buses"
	}
	if p.AuthorID == "" {
		p.AuthorID = "alice"
	}
	if p.Status == "" {
		p.Status = domain.ProposalOpen
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	}
	if err := db.InsertProposal(context.Background(), p); err != nil {
		t.Fatalf("InsertProposal() error: %v", err)
	}
	return p
}

func TestProposalRoundtrip(t *testing.T) {
	db := newTestDB(t)

	want := insertProposal(t, db, domain.Proposal{
		Title:       "Bike lane on Main Street",
		Description: "The shoulder is too narrow for safe cycling",
		AuthorID:    "bob",
	})

	got, err := db.GetProposal(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("GetProposal() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetProposal() = nil for existing proposal")
	}
	if got.Title != want.Title || got.Description != want.Description || got.AuthorID != want.AuthorID {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.Status != domain.ProposalOpen {
		t.Errorf("status = %s, want OPEN", got.Status)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("createdAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	if got.VoteCount != 0 {
		t.Errorf("voteCount = %d, want 0", got.VoteCount)
	}
}

func TestGetProposal_MissingIsNilNil(t *testing.T) {
	db := newTestDB(t)

	got, err := db.GetProposal(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("GetProposal() error: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestListProposals_NewestFirst(t *testing.T) {
	db := newTestDB(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	old := insertProposal(t, db, domain.Proposal{CreatedAt: base})
	recent := insertProposal(t, db, domain.Proposal{CreatedAt: base.AddDate(0, 0, 7)})

	props, err := db.ListProposals(context.Background())
	if err != nil {
		t.Fatalf("ListProposals() error: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("len = %d, want 2", len(props))
	}
	if props[0].ID != recent.ID || props[1].ID != old.ID {
		t.Errorf("order = [%s %s], want newest first", props[0].ID, props[1].ID)
	}
}

func TestToggleProposalVote(t *testing.T) {
	db := newTestDB(t)
	p := insertProposal(t, db, domain.Proposal{})

	voted, err := db.ToggleProposalVote(context.Background(), "bob", p.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !voted {
		t.Error("first toggle should cast")
	}

	voted, err = db.ToggleProposalVote(context.Background(), "bob", p.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if voted {
		t.Error("second toggle should withdraw")
	}

	count, err := db.CountProposalVotes(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("CountProposalVotes() error: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestToggleProposalVote_PerUserLedger(t *testing.T) {
	db := newTestDB(t)
	p := insertProposal(t, db, domain.Proposal{})

	db.ToggleProposalVote(context.Background(), "bob", p.ID)
	db.ToggleProposalVote(context.Background(), "carol", p.ID)

	count, _ := db.CountProposalVotes(context.Background(), p.ID)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	got, _ := db.GetProposal(context.Background(), p.ID)
	if got.VoteCount != 2 {
		t.Errorf("embedded voteCount = %d, want 2", got.VoteCount)
	}
}

func TestGetProposal_CorruptTimestampIsError(t *testing.T) {
	db := newTestDB(t)
	p := insertProposal(t, db, domain.Proposal{})

	if _, err := db.db.Exec(`UPDATE proposals SET created_at = 'garbage' WHERE id = ?`, p.ID); err != nil {
		t.Fatalf("corrupt row: %v", err)
	}

	if _, err := db.GetProposal(context.Background(), p.ID); err == nil {
		t.Error("corrupted created_at should fail the scan, not read as zero time")
	}
}

func TestPromoteProposal(t *testing.T) {
	db := newTestDB(t)
	p := insertProposal(t, db, domain.Proposal{})

	promoted, err := db.PromoteProposal(context.Background(), p.ID, domain.ProposalOpen, domain.ProposalUnderReview)
	if err != nil {
		t.Fatalf("PromoteProposal() error: %v", err)
	}
	if !promoted {
		t.Error("promotion from OPEN should apply")
	}

	got, _ := db.GetProposal(context.Background(), p.ID)
	if got.Status != domain.ProposalUnderReview {
		t.Errorf("status = %s, want UNDER_REVIEW", got.Status)
	}

	// A second promotion finds the status already advanced and is a no-op.
	promoted, err = db.PromoteProposal(context.Background(), p.ID, domain.ProposalOpen, domain.ProposalUnderReview)
	if err != nil {
		t.Fatalf("second PromoteProposal() error: %v", err)
	}
	if promoted {
		t.Error("promotion must be conditional on the from status")
	}
}

func TestPromoteProposal_NeverMovesBackward(t *testing.T) {
	db := newTestDB(t)
	p := insertProposal(t, db, domain.Proposal{Status: domain.ProposalUnderReview})

	promoted, err := db.PromoteProposal(context.Background(), p.ID, domain.ProposalOpen, domain.ProposalUnderReview)
	if err != nil {
		t.Fatalf("PromoteProposal() error: %v", err)
	}
	if promoted {
		t.Error("promotion applied despite status not matching from")
	}

	got, _ := db.GetProposal(context.Background(), p.ID)
	if got.Status != domain.ProposalUnderReview {
		t.Errorf("status = %s, want UNDER_REVIEW untouched", got.Status)
	}
}

// Package sqlite persists feedback, helpful votes, and proposals behind the
// domain storage ports. Uses the pure-Go modernc driver via database/sql.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/civicpulse/civicpulse/internal/domain"
)

// DB wraps the sqlite handle and implements domain.FeedbackStore and
// domain.ProposalStore.
type DB struct {
	db *sql.DB
}

var (
	_ domain.FeedbackStore = (*DB)(nil)
	_ domain.ProposalStore = (*DB)(nil)
)

// Open opens (or creates) the database under dir and applies migrations.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	path := filepath.Join(dir, "civicpulse.db")
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection: sqlite serializes writers anyway, and a single handle
	// makes two toggles by the same user for the same proposal serialize
	// deterministically instead of racing on the vote row.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{db: sqlDB}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close releases the underlying handle.
func (db *DB) Close() error {
	return db.db.Close()
}

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema migration statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// Feedback records. The rating is immutable once written; moderation
		// flips only the hidden flag.
		`CREATE TABLE IF NOT EXISTS feedback (
			id         TEXT PRIMARY KEY,
			type       TEXT NOT NULL,
			target_id  TEXT NOT NULL,
			user_id    TEXT NOT NULL,
			rating     INTEGER NOT NULL CHECK(rating BETWEEN 1 AND 5),
			comment    TEXT NOT NULL DEFAULT '',
			tags_json  TEXT NOT NULL DEFAULT '[]',
			hidden     INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_target ON feedback(type, target_id)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_user ON feedback(user_id)`,

		// Helpful marks, one per user per record.
		`CREATE TABLE IF NOT EXISTS feedback_votes (
			id          TEXT PRIMARY KEY,
			feedback_id TEXT NOT NULL,
			user_id     TEXT NOT NULL,
			UNIQUE(feedback_id, user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fvotes_feedback ON feedback_votes(feedback_id)`,

		// Improvement proposals. Status only moves forward.
		`CREATE TABLE IF NOT EXISTS proposals (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			author_id   TEXT NOT NULL,
			status      TEXT NOT NULL DEFAULT 'OPEN',
			created_at  TEXT NOT NULL
		)`,

		// Proposal upvotes, one per user per proposal.
		`CREATE TABLE IF NOT EXISTS proposal_votes (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			proposal_id TEXT NOT NULL,
			UNIQUE(user_id, proposal_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pvotes_proposal ON proposal_votes(proposal_id)`,
	}
}

// migrate applies all schema statements.
func (db *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := db.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

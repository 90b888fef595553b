// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import "time"

// ─── Target Types ───────────────────────────────────────────────────────────

// TargetType identifies the kind of transit entity a feedback record rates.
type TargetType string

const (
	TargetLine     TargetType = "LINE"
	TargetStop     TargetType = "STOP"
	TargetVehicle  TargetType = "VEHICLE"
	TargetBikePark TargetType = "BIKE_PARK"
	TargetBikeLane TargetType = "BIKE_LANE"
)

// Valid reports whether t is a known target type.
func (t TargetType) Valid() bool {
	switch t {
	case TargetLine, TargetStop, TargetVehicle, TargetBikePark, TargetBikeLane:
		return true
	}
	return false
}

// Label returns the fixed human-readable label used in complaint contexts.
func (t TargetType) Label() string {
	switch t {
	case TargetLine:
		return "transit line"
	case TargetStop:
		return "stop"
	case TargetVehicle:
		return "vehicle"
	case TargetBikePark:
		return "bike parking facility"
	case TargetBikeLane:
		return "bike lane"
	default:
		return "transit entity"
	}
}

// ─── Feedback Types ─────────────────────────────────────────────────────────

// Rating bounds for a feedback record (inclusive).
const (
	RatingMin = 1
	RatingMax = 5
)

// FeedbackRecord is one resident's rating of a transit entity.
// The rating value is immutable once created; only moderation mutates the
// record, and only the hidden flag.
type FeedbackRecord struct {
	ID        string     `json:"id"`
	Type      TargetType `json:"type"`
	TargetID  string     `json:"target_id"`
	UserID    string     `json:"user_id"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Hidden    bool       `json:"hidden"`
	VoteCount int        `json:"vote_count"`
	CreatedAt time.Time  `json:"created_at"`
}

// Validate checks the fields a caller controls at submission time.
func (f *FeedbackRecord) Validate() error {
	if !f.Type.Valid() {
		return ErrInvalidTargetType
	}
	if f.TargetID == "" {
		return ErrEmptyTargetID
	}
	if f.UserID == "" {
		return ErrEmptyUserID
	}
	if f.Rating < RatingMin || f.Rating > RatingMax {
		return ErrRatingOutOfRange
	}
	return nil
}

// RatingSummary is the derived average rating for one target.
type RatingSummary struct {
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

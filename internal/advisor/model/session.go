package model

import (
	"context"
	"time"
)

// Adjustment is the output of one feedback round: the branch the feedback was
// routed to and the suggestions it produced.
type Adjustment struct {
	Branch      string
	Suggestions SuggestionList
}

// Round is one stored feedback round. Number starts at 1.
type Round struct {
	Number      int            `json:"number"`
	Feedback    string         `json:"feedback"`
	Branch      string         `json:"branch"`
	Suggestions SuggestionList `json:"suggestions"`
	At          time.Time      `json:"at"`
}

// SessionRecord is what the advisor keeps about one analysis while it runs.
type SessionRecord struct {
	SessionID  string
	Food       string
	Outcome    MatchOutcome
	SaltDosage SaltDosage
	StartedAt  time.Time
	Rounds     []Round
}

// SessionStore keeps the record of an analysis until the session ends.
type SessionStore interface {
	// Start creates the record; any earlier record under the same id is replaced.
	Start(ctx context.Context, rec SessionRecord) error

	// AppendRound stores a round and returns its number.
	AppendRound(ctx context.Context, sessionID string, round Round) (int, error)

	// Load returns the record with its rounds in order. A session that was
	// never started is a not_found error.
	Load(ctx context.Context, sessionID string) (*SessionRecord, error)

	// Delete drops the record. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error
}

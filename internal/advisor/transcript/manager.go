// Package transcript records the rounds of one advisor session.
package transcript

import (
	"context"
	"time"

	"github.com/smart-spoon-core/advisor/internal/advisor/model"
)

const defaultRecentRounds = 3

// Summary is what the advisor tells the user when a session ends.
type Summary struct {
	Food        string
	Outcome     model.MatchOutcome
	SaltDosage  model.SaltDosage
	TotalRounds int
	Recent      []model.Round // last rounds, oldest first
}

type Manager struct {
	store        model.SessionStore
	recentRounds int
	now          func() time.Time
}

func NewManager(store model.SessionStore, cfg model.SessionConfig) *Manager {
	n := cfg.RecentRounds
	if n <= 0 {
		n = defaultRecentRounds
	}
	return &Manager{store: store, recentRounds: n, now: time.Now}
}

// Begin opens the record of an analysis.
func (m *Manager) Begin(ctx context.Context, sessionID string, a model.Analysis) error {
	return m.store.Start(ctx, model.SessionRecord{
		SessionID:  sessionID,
		Food:       a.Match.Profile.Name,
		Outcome:    a.Match.Outcome,
		SaltDosage: a.Recommendation.SaltDosage,
		StartedAt:  m.now(),
	})
}

// RecordRound stores one feedback round and returns its number.
func (m *Manager) RecordRound(ctx context.Context, sessionID, feedback string, adj model.Adjustment) (int, error) {
	return m.store.AppendRound(ctx, sessionID, model.Round{
		Feedback:    feedback,
		Branch:      adj.Branch,
		Suggestions: adj.Suggestions,
		At:          m.now(),
	})
}

// LastRound returns the most recent round, or nil before the first one.
func (m *Manager) LastRound(ctx context.Context, sessionID string) (*model.Round, error) {
	rec, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(rec.Rounds) == 0 {
		return nil, nil
	}
	last := rec.Rounds[len(rec.Rounds)-1]
	return &last, nil
}

// Summarize reports the analysis and its last few rounds.
func (m *Manager) Summarize(ctx context.Context, sessionID string) (*Summary, error) {
	rec, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Food:        rec.Food,
		Outcome:     rec.Outcome,
		SaltDosage:  rec.SaltDosage,
		TotalRounds: len(rec.Rounds),
		Recent:      trimTail(rec.Rounds, m.recentRounds),
	}, nil
}

// Close drops the record so nothing outlives the session.
func (m *Manager) Close(ctx context.Context, sessionID string) error {
	return m.store.Delete(ctx, sessionID)
}

func trimTail[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

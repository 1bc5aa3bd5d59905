// Package repo provides session record storage backends.
package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/smart-spoon-core/advisor/internal/advisor/model"
	errx "github.com/smart-spoon-core/advisor/internal/core/error"
)

// ErrSessionNotFound is wrapped in a not_found AppError by every backend.
var ErrSessionNotFound = errors.New("session not found")

// MemorySessionStore keeps session records in process memory.
// It is the default when no Redis URL is configured.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*model.SessionRecord
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*model.SessionRecord)}
}

func (s *MemorySessionStore) Start(_ context.Context, rec model.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Rounds = nil
	s.sessions[rec.SessionID] = &rec
	return nil
}

func (s *MemorySessionStore) AppendRound(_ context.Context, sessionID string, round model.Round) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[sessionID]
	if !ok {
		return 0, notFound(sessionID)
	}
	round.Number = len(rec.Rounds) + 1
	round.Suggestions = append(model.SuggestionList(nil), round.Suggestions...)
	rec.Rounds = append(rec.Rounds, round)
	return round.Number, nil
}

func (s *MemorySessionStore) Load(_ context.Context, sessionID string) (*model.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil, notFound(sessionID)
	}
	out := *rec
	out.Rounds = make([]model.Round, len(rec.Rounds))
	for i, r := range rec.Rounds {
		r.Suggestions = append(model.SuggestionList(nil), r.Suggestions...)
		out.Rounds[i] = r
	}
	return &out, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func notFound(sessionID string) error {
	return errx.New(ErrSessionNotFound, errx.KindNotFound, fmt.Sprintf("session %s", sessionID))
}

var _ model.SessionStore = (*MemorySessionStore)(nil)

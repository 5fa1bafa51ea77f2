package coordination

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var ErrSessionNotFound = errors.New("session not found")

// Seeder produces the initial state for a new session. Every session starts
// from the same synthetic dataset; ending a session discards everything.
type Seeder interface {
	Seed() (*SessionState, error)
}

// Store owns all live sessions. It is the single mutation point for session
// state: callers hand it a closure which runs under the store lock against
// one session, so each user action is fully applied before the next.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*SessionState
	seeder   Seeder
}

func NewStore(seeder Seeder) *Store {
	return &Store{
		sessions: make(map[string]*SessionState),
		seeder:   seeder,
	}
}

// CreateSession seeds and registers a new session, the analogue of a page
// load in the original browser demo.
func (s *Store) CreateSession() (*SessionState, error) {
	st, err := s.seeder.Seed()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[st.ID] = st
	s.mu.Unlock()

	st.recordEvent(EventSessionCreated, "", nil)
	return st, nil
}

// DeleteSession ends a session and discards its state.
func (s *Store) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// With runs fn against the named session under the store lock and bumps its
// last-seen timestamp. Errors from fn are returned unchanged.
func (s *Store) With(id string, fn func(st *SessionState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	st.LastSeen = time.Now()

	return fn(st)
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// PurgeIdle drops sessions not touched within ttl and returns how many were
// removed.
func (s *Store) PurgeIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, st := range s.sessions {
		if st.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged
}

// RunSweeper purges idle sessions on a fixed interval until ctx is done.
// Sessions live in process memory, so the sweeper runs in-process rather
// than as a separate worker binary.
func (s *Store) RunSweeper(ctx context.Context, log zerolog.Logger, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("session sweeper stopping")
			return
		case <-ticker.C:
			if n := s.PurgeIdle(ttl); n > 0 {
				log.Info().Int("purged", n).Int("live", s.Count()).Msg("purged idle sessions")
			}
		}
	}
}

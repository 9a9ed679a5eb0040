// Package session provides the active-interview session stores. Sessions
// are independent of each other; a store only maps session ids to patient
// state and enforces capacity and idle-expiry bounds.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"github.com/triage-advisor-server/internal/domain"
)

// MemoryStore keeps sessions in a bounded in-process LRU with idle expiry.
// Suitable for single-instance deployments; use the Redis store when
// running more than one replica.
type MemoryStore struct {
	cache  *expirable.LRU[string, *domain.PatientState]
	logger *logrus.Logger
}

// NewMemoryStore creates an in-memory session store holding at most
// maxSessions states, each expiring after ttl of inactivity.
func NewMemoryStore(maxSessions int, ttl time.Duration, logger *logrus.Logger) *MemoryStore {
	store := &MemoryStore{logger: logger}
	store.cache = expirable.NewLRU[string, *domain.PatientState](
		maxSessions,
		func(id string, _ *domain.PatientState) {
			logger.WithField("session_id", id).Debug("Session evicted")
		},
		ttl,
	)
	return store
}

// Create stores a fresh session state.
func (s *MemoryStore) Create(_ context.Context, id string, state *domain.PatientState) error {
	s.cache.Add(id, state)
	return nil
}

// Get returns the session state or ErrSessionNotFound.
func (s *MemoryStore) Get(_ context.Context, id string) (*domain.PatientState, error) {
	state, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("memory session %q: %w", id, domain.ErrSessionNotFound)
	}
	return state, nil
}

// Update overwrites the session state and refreshes its expiry.
func (s *MemoryStore) Update(_ context.Context, id string, state *domain.PatientState) error {
	if _, ok := s.cache.Get(id); !ok {
		return fmt.Errorf("memory session %q: %w", id, domain.ErrSessionNotFound)
	}
	s.cache.Add(id, state)
	return nil
}

// Delete removes the session. Deleting an absent session is not an error.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Remove(id)
	return nil
}

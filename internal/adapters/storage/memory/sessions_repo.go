package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"pet-profiles/internal/domain/sessions"
)

type sessionRepo struct {
	mu   sync.RWMutex
	byID map[string]sessions.Session
}

func NewSessionRepo() sessions.Repository {
	return &sessionRepo{byID: make(map[string]sessions.Session)}
}

func (r *sessionRepo) Create(ctx context.Context, s sessions.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		return errors.New("session id required")
	}
	if _, exists := r.byID[s.ID]; exists {
		return errors.New("session already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (sessions.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return sessions.Session{}, sessions.ErrNotFound
	}
	return s, nil
}

func (r *sessionRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return sessions.ErrNotFound
	}
	if s.RevokedAt == nil {
		s.RevokedAt = &at
		r.byID[id] = s
	}
	return nil
}

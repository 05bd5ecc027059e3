package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-profiles/internal/domain/sessions"
)

var ErrMobileTaken = errors.New("mobile number already registered")

// UserRepo guarda credenciales en memoria (dev/tests). Se siembra con Add.
type UserRepo struct {
	mu       sync.RWMutex
	byMobile map[string]sessions.Credential
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byMobile: make(map[string]sessions.Credential)}
}

func (r *UserRepo) Add(ctx context.Context, c sessions.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.MobileNumber) == "" {
		return errors.New("user id and mobile number required")
	}
	if _, exists := r.byMobile[c.MobileNumber]; exists {
		return ErrMobileTaken
	}
	r.byMobile[c.MobileNumber] = c
	return nil
}

func (r *UserRepo) FindByMobile(ctx context.Context, mobileNumber string) (sessions.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byMobile[mobileNumber]
	if !ok {
		return sessions.Credential{}, sessions.ErrNotFound
	}
	return c, nil
}

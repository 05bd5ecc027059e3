package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-profiles/internal/domain/pets"
)

type petRepo struct {
	mu         sync.RWMutex
	byID       map[string]pets.Pet
	byUsername map[string]string // pet_unique_username -> id
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID:       make(map[string]pets.Pet),
		byUsername: make(map[string]string),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	if _, taken := r.byUsername[p.Username]; taken {
		return pets.ErrUsernameTaken
	}
	r.byID[p.ID] = p
	r.byUsername[p.Username] = p.ID
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byID[p.ID]
	if !exists {
		return pets.ErrNotFound
	}
	if owner, taken := r.byUsername[p.Username]; taken && owner != p.ID {
		return pets.ErrUsernameTaken
	}

	delete(r.byUsername, current.Username)
	r.byID[p.ID] = p
	r.byUsername[p.Username] = p.ID
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byUsername, p.Username)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) GetByUsername(ctx context.Context, username string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}

	// created_at desc; id como desempate para que el orden sea estable
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *petRepo) ImageReferenced(ctx context.Context, imageURL string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if imageURL == "" {
		return false, nil
	}
	for _, p := range r.byID {
		if p.ImageURL == imageURL {
			return true, nil
		}
	}
	return false, nil
}

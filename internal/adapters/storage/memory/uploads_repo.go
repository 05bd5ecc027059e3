package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pet-profiles/internal/domain/uploads"
)

type uploadRepo struct {
	mu   sync.RWMutex
	byID map[string]uploads.Upload
}

func NewUploadRepo() uploads.Repository {
	return &uploadRepo{byID: make(map[string]uploads.Upload)}
}

func (r *uploadRepo) Create(ctx context.Context, u uploads.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == "" {
		return errors.New("upload id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("upload already exists")
	}
	r.byID[u.ID] = u
	return nil
}

func (r *uploadRepo) Update(ctx context.Context, u uploads.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[u.ID]; !exists {
		return uploads.ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *uploadRepo) FindStaged(ctx context.Context, ownerUserID, publicURL string) (uploads.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Status == uploads.StatusStaged && u.OwnerUserID == ownerUserID && u.PublicURL == publicURL {
			return u, nil
		}
	}
	return uploads.Upload{}, uploads.ErrNotFound
}

func (r *uploadRepo) ListStaleStaged(ctx context.Context, before time.Time, limit int) ([]uploads.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]uploads.Upload, 0)
	for _, u := range r.byID {
		if u.Status == uploads.StatusStaged && u.UpdatedAt.Before(before) {
			out = append(out, u)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.Before(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

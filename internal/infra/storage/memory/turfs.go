package memory

import (
	"context"
	"sync"

	domainturf "turfmania/internal/domain/turf"
)

// TurfRepository is an in-memory implementation for dev mode and tests.
type TurfRepository struct {
	mu    sync.RWMutex
	items map[domainturf.TurfID]*domainturf.Turf
}

func NewTurfRepository() *TurfRepository {
	return &TurfRepository{items: make(map[domainturf.TurfID]*domainturf.Turf)}
}

func (r *TurfRepository) ByID(ctx context.Context, id domainturf.TurfID) (*domainturf.Turf, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.items[id]
	if !ok {
		return nil, domainturf.ErrTurfNotFound
	}
	copy := *t
	return &copy, nil
}

func (r *TurfRepository) Save(ctx context.Context, t *domainturf.Turf) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *t
	r.items[t.ID] = &copy
	return nil
}

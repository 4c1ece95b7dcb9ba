package plan

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	plans map[string]Plan
	order []string
}

// NewMemoryRepository constructs an in-memory catalog for tests and local runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{plans: make(map[string]Plan)}
}

func (r *memoryRepository) Create(_ context.Context, p Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[id]
	if !ok {
		return Plan{}, ErrNotFound
	}
	return p, nil
}

func (r *memoryRepository) Update(_ context.Context, p Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[p.ID]; !ok {
		return ErrNotFound
	}
	r.plans[p.ID] = p
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plan, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.plans[id])
	}
	return out, nil
}

func (r *memoryRepository) ListActive(_ context.Context) ([]Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Plan
	for _, id := range r.order {
		if p := r.plans[id]; p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

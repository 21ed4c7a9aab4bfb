package school

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-process Repository. It backs the "memory" store
// and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	schools map[string]School
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{schools: make(map[string]School)}
}

func (r *MemoryRepository) Create(_ context.Context, s School) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.schools {
		if SameName(existing.Name, s.Name) {
			return ErrDuplicateName
		}
	}
	r.schools[s.ID] = School{FormData: s.FormData.Clone(), ID: s.ID, Slug: s.Slug, CreatedAt: s.CreatedAt}
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (School, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schools[id]
	if !ok {
		return School{}, ErrNotFound
	}
	return s, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]School, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]School, 0, len(r.schools))
	for _, s := range r.schools {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) FindByName(_ context.Context, name string) (School, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.schools {
		if SameName(s.Name, name) {
			return s, nil
		}
	}
	return School{}, ErrNotFound
}

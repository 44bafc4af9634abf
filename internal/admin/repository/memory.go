package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/fekuna/storefront-service/internal/model"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]model.Admin
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: make(map[string]model.Admin)}
}

func (r *MemoryRepository) Create(_ context.Context, a *model.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[a.Email]; ok {
		return fmt.Errorf("%w: email is already registered", model.ErrAlreadyExists)
	}
	r.byEmail[a.Email] = *a
	return nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*model.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

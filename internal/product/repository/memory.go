package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/product/dto"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	products map[string]model.Product
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{products: make(map[string]model.Product)}
}

func (r *MemoryRepository) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[p.ID]; ok {
		return fmt.Errorf("%w: product %s", model.ErrAlreadyExists, p.ID)
	}
	r.products[p.ID] = clone(*p)
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	p = clone(p)
	return &p, nil
}

func (r *MemoryRepository) FindAll(_ context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Product{}
	for _, p := range r.products {
		if matches(p, f) {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[p.ID]
	if !ok {
		return fmt.Errorf("%w: product %s", model.ErrNotFound, p.ID)
	}
	updated := clone(*p)
	updated.CreatedAt = existing.CreatedAt
	r.products[p.ID] = updated
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}

func (r *MemoryRepository) CountActive(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, p := range r.products {
		if p.Active {
			n++
		}
	}
	return n, nil
}

func matches(p model.Product, f *dto.ProductFilters) bool {
	if !p.Active {
		return false
	}
	if f == nil {
		return true
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.FeaturedOnly && !p.Featured {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q)
	}
	return true
}

func clone(p model.Product) model.Product {
	p.Images = append(model.StringList(nil), p.Images...)
	p.Videos = append(model.StringList(nil), p.Videos...)
	p.Colors = append(model.StringList(nil), p.Colors...)
	return p
}

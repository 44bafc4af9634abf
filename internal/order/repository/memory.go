package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fekuna/storefront-service/internal/model"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]model.Order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[string]model.Order)}
}

func (r *MemoryRepository) Create(_ context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.ID]; ok {
		return fmt.Errorf("%w: order %s", model.ErrAlreadyExists, o.ID)
	}
	r.orders[o.ID] = clone(*o)
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	o = clone(o)
	return &o, nil
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, clone(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[o.ID]
	if !ok {
		return fmt.Errorf("%w: order %s", model.ErrNotFound, o.ID)
	}
	existing.Status = o.Status
	existing.Notes = o.Notes
	r.orders[o.ID] = existing
	return nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders), nil
}

func (r *MemoryRepository) CountByStatus(_ context.Context, status model.OrderStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, o := range r.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) SumTotal(_ context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum float64
	for _, o := range r.orders {
		sum += o.Total
	}
	return sum, nil
}

func clone(o model.Order) model.Order {
	o.LineItems = append(model.LineItems(nil), o.LineItems...)
	return o
}

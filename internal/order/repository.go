package order

import (
	"context"

	"github.com/fekuna/storefront-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	// FindAll returns every order, newest first.
	FindAll(ctx context.Context) ([]model.Order, error)
	// Update persists the status and notes of an existing order.
	Update(ctx context.Context, order *model.Order) error

	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status model.OrderStatus) (int, error)
	SumTotal(ctx context.Context) (float64, error)
}

package product

import (
	"context"

	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	// FindAll lists active products matching the filters, newest first.
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error

	CountActive(ctx context.Context) (int, error)
}

package product

import (
	"context"

	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.ProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id string, input *dto.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

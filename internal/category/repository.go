package category

import (
	"context"

	"github.com/fekuna/storefront-service/internal/category/dto"
	"github.com/fekuna/storefront-service/internal/model"
)

type Repository interface {
	// FindActive groups active products by their non-empty category label,
	// ordered by name.
	FindActive(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
}

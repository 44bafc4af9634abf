package category

import (
	"context"

	"github.com/fekuna/storefront-service/internal/category/dto"
	"github.com/fekuna/storefront-service/internal/model"
)

type UseCase interface {
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
}

package repository

import (
	"context"
	"sort"

	"github.com/fekuna/storefront-service/internal/category/dto"
	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/product"
	productdto "github.com/fekuna/storefront-service/internal/product/dto"
)

// ProductRepository derives categories from any product.Repository by
// grouping its active listing. It backs the in-memory driver.
type ProductRepository struct {
	products product.Repository
}

func NewProductRepository(products product.Repository) *ProductRepository {
	return &ProductRepository{products: products}
}

func (r *ProductRepository) FindActive(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	products, err := r.products.FindAll(ctx, &productdto.ProductFilters{FeaturedOnly: f.FeaturedOnly})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, p := range products {
		if p.Category != "" {
			counts[p.Category]++
		}
	}

	categories := make([]model.Category, 0, len(counts))
	for name, n := range counts {
		categories = append(categories, model.Category{Name: name, ProductCount: n})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

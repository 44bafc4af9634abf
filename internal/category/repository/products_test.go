package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/storefront-service/internal/category/dto"
	"github.com/fekuna/storefront-service/internal/model"
	productRepo "github.com/fekuna/storefront-service/internal/product/repository"
)

func TestProductRepositoryGroupsActiveProducts(t *testing.T) {
	ctx := context.Background()
	products := productRepo.NewMemoryRepository()
	for _, p := range []model.Product{
		{BaseModel: model.BaseModel{ID: "1"}, Category: "bags", Active: true, Featured: true},
		{BaseModel: model.BaseModel{ID: "2"}, Category: "bags", Active: true},
		{BaseModel: model.BaseModel{ID: "3"}, Category: "shoes", Active: false},
		{BaseModel: model.BaseModel{ID: "4"}, Category: "", Active: true},
		{BaseModel: model.BaseModel{ID: "5"}, Category: "accessories", Active: true},
	} {
		p := p
		require.NoError(t, products.Create(ctx, &p))
	}

	repo := NewProductRepository(products)

	all, err := repo.FindActive(ctx, &dto.CategoryFilters{})
	require.NoError(t, err)
	assert.Equal(t, []model.Category{
		{Name: "accessories", ProductCount: 1},
		{Name: "bags", ProductCount: 2},
	}, all)

	featured, err := repo.FindActive(ctx, &dto.CategoryFilters{FeaturedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []model.Category{{Name: "bags", ProductCount: 1}}, featured)
}

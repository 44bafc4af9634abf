package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/storefront-service/internal/category/dto"
	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/pkg/logger"
)

type stubRepo struct {
	categories []model.Category
	err        error
	got        *dto.CategoryFilters
}

func (s *stubRepo) FindActive(_ context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	s.got = f
	return s.categories, s.err
}

func TestListCategories(t *testing.T) {
	t.Run("Nil result becomes empty list", func(t *testing.T) {
		repo := &stubRepo{}
		uc := NewCategoryUseCase(repo, logger.NewNop())

		categories, err := uc.ListCategories(context.Background(), nil)
		require.NoError(t, err)
		assert.NotNil(t, categories)
		assert.Empty(t, categories)
		require.NotNil(t, repo.got)
		assert.False(t, repo.got.FeaturedOnly)
	})

	t.Run("Passes filters through", func(t *testing.T) {
		repo := &stubRepo{categories: []model.Category{{Name: "bags", ProductCount: 2}}}
		uc := NewCategoryUseCase(repo, logger.NewNop())

		categories, err := uc.ListCategories(context.Background(), &dto.CategoryFilters{FeaturedOnly: true})
		require.NoError(t, err)
		assert.Len(t, categories, 1)
		assert.True(t, repo.got.FeaturedOnly)
	})

	t.Run("Store error", func(t *testing.T) {
		uc := NewCategoryUseCase(&stubRepo{err: errors.New("boom")}, logger.NewNop())
		_, err := uc.ListCategories(context.Background(), nil)
		assert.EqualError(t, err, "boom")
	})
}

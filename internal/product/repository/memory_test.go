package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/product/dto"
)

func newProduct(id, name string, active bool, at time.Time) *model.Product {
	return &model.Product{
		BaseModel: model.BaseModel{ID: id, CreatedAt: at},
		Name:      name,
		Active:    active,
		Colors:    model.StringList{"red"},
	}
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newProduct("a", "Alpha", true, base)))
	require.NoError(t, repo.Create(ctx, newProduct("b", "Beta", false, base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newProduct("c", "Gamma", true, base.Add(2*time.Hour))))

	t.Run("Duplicate id", func(t *testing.T) {
		err := repo.Create(ctx, newProduct("a", "Again", true, base))
		assert.ErrorIs(t, err, model.ErrAlreadyExists)
	})

	t.Run("FindAll lists active newest first", func(t *testing.T) {
		products, err := repo.FindAll(ctx, &dto.ProductFilters{})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "c", products[0].ID)
		assert.Equal(t, "a", products[1].ID)
	})

	t.Run("Returned values are copies", func(t *testing.T) {
		p, err := repo.FindByID(ctx, "a")
		require.NoError(t, err)
		p.Colors[0] = "blue"

		again, err := repo.FindByID(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, model.StringList{"red"}, again.Colors)
	})

	t.Run("Missing id", func(t *testing.T) {
		p, err := repo.FindByID(ctx, "zzz")
		require.NoError(t, err)
		assert.Nil(t, p)

		err = repo.Update(ctx, newProduct("zzz", "Nope", true, base))
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("CountActive", func(t *testing.T) {
		n, err := repo.CountActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "c"))
		require.NoError(t, repo.Delete(ctx, "c"))
		n, err := repo.CountActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

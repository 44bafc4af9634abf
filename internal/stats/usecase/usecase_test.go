package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/storefront-service/internal/model"
	orderrepo "github.com/fekuna/storefront-service/internal/order/repository"
	productrepo "github.com/fekuna/storefront-service/internal/product/repository"
	"github.com/fekuna/storefront-service/pkg/logger"
)

func TestAggregateStats(t *testing.T) {
	products := productrepo.NewMemoryRepository()
	orders := orderrepo.NewMemoryRepository()
	uc := NewStatsUseCase(products, orders, logger.NewNop())
	ctx := context.Background()

	t.Run("Empty stores", func(t *testing.T) {
		s, err := uc.AggregateStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.Stats{}, *s)
	})

	now := time.Now()
	require.NoError(t, products.Create(ctx, &model.Product{BaseModel: model.BaseModel{ID: "p1", CreatedAt: now}, Active: true}))
	require.NoError(t, products.Create(ctx, &model.Product{BaseModel: model.BaseModel{ID: "p2", CreatedAt: now}, Active: false}))
	require.NoError(t, products.Create(ctx, &model.Product{BaseModel: model.BaseModel{ID: "p3", CreatedAt: now}, Active: true}))

	require.NoError(t, orders.Create(ctx, &model.Order{BaseModel: model.BaseModel{ID: "o1", CreatedAt: now}, Total: 10.5, Status: model.StatusPending}))
	require.NoError(t, orders.Create(ctx, &model.Order{BaseModel: model.BaseModel{ID: "o2", CreatedAt: now}, Total: 20, Status: model.StatusDelivered}))
	require.NoError(t, orders.Create(ctx, &model.Order{BaseModel: model.BaseModel{ID: "o3", CreatedAt: now}, Total: 4.5, Status: model.StatusPending}))

	t.Run("Revenue spans every status", func(t *testing.T) {
		s, err := uc.AggregateStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, s.ActiveProductCount)
		assert.Equal(t, 3, s.OrderCount)
		assert.Equal(t, 2, s.PendingOrderCount)
		assert.InDelta(t, 35.0, s.TotalRevenue, 1e-9)
	})
}

type failingOrders struct {
	*orderrepo.MemoryRepository
}

func (failingOrders) SumTotal(context.Context) (float64, error) {
	return 0, errors.New("aggregate failed")
}

func TestAggregateStatsError(t *testing.T) {
	uc := NewStatsUseCase(productrepo.NewMemoryRepository(), failingOrders{orderrepo.NewMemoryRepository()}, logger.NewNop())

	_, err := uc.AggregateStats(context.Background())
	assert.ErrorContains(t, err, "aggregate failed")
}

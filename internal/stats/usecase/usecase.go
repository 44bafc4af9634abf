package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/order"
	"github.com/fekuna/storefront-service/internal/product"
	"github.com/fekuna/storefront-service/internal/stats"
	"github.com/fekuna/storefront-service/pkg/logger"
)

type statsUseCase struct {
	products product.Repository
	orders   order.Repository
	logger   logger.ZapLogger
}

func NewStatsUseCase(products product.Repository, orders order.Repository, log logger.ZapLogger) stats.UseCase {
	return &statsUseCase{
		products: products,
		orders:   orders,
		logger:   log,
	}
}

// AggregateStats counts revenue over orders of every status, pending ones
// included.
func (uc *statsUseCase) AggregateStats(ctx context.Context) (*model.Stats, error) {
	var s model.Stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		s.ActiveProductCount, err = uc.products.CountActive(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.OrderCount, err = uc.orders.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.PendingOrderCount, err = uc.orders.CountByStatus(gctx, model.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		s.TotalRevenue, err = uc.orders.SumTotal(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

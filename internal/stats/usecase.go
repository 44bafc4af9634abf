package stats

import (
	"context"

	"github.com/fekuna/storefront-service/internal/model"
)

type UseCase interface {
	AggregateStats(ctx context.Context) (*model.Stats, error)
}

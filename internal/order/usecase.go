package order

import (
	"context"

	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/order/dto"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, input *dto.UpdateStatusInput) (*model.Order, error)
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/storefront-service/internal/event"
	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/order"
	"github.com/fekuna/storefront-service/internal/order/dto"
	"github.com/fekuna/storefront-service/internal/validate"
	"github.com/fekuna/storefront-service/pkg/logger"
)

type orderUseCase struct {
	repo       order.Repository
	dispatcher event.Dispatcher
	logger     logger.ZapLogger
	now        func() time.Time
}

func NewOrderUseCase(repo order.Repository, dispatcher event.Dispatcher, log logger.ZapLogger) order.UseCase {
	if dispatcher == nil {
		dispatcher = event.NopDispatcher{}
	}
	return &orderUseCase{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     log,
		now:        time.Now,
	}
}

// CreateOrder accepts the checkout payload without checking stock or
// recomputing the total.
func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	items := model.LineItems(input.LineItems)
	if items == nil {
		items = model.LineItems{}
	}

	o := &model.Order{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: uc.now().UTC()},
		Customer:  input.Customer,
		LineItems: items,
		Total:     input.Total,
		Status:    model.StatusPending,
		Notes:     input.Notes,
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	uc.logger.Info("order created", zap.String("order_id", o.ID), zap.Int("items", len(o.LineItems)))
	uc.dispatch(ctx, model.OrderCreated{OrderID: o.ID, Total: o.Total, ItemCount: len(o.LineItems)})

	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// UpdateStatus sets any of the four statuses from any other; there is no
// transition guard. Notes are replaced, so omitting them clears them.
func (uc *orderUseCase) UpdateStatus(ctx context.Context, id string, input *dto.UpdateStatusInput) (*model.Order, error) {
	if err := validate.StructFields(input); err != nil {
		return nil, err
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: status must be one of %v", model.ErrInvalidInput, model.OrderStatuses)
	}

	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: order %s", model.ErrNotFound, id)
	}

	old := o.Status
	o.Status = input.Status
	o.Notes = input.Notes

	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	uc.dispatch(ctx, model.OrderStatusChanged{OrderID: o.ID, OldStatus: old, NewStatus: o.Status})
	return o, nil
}

func (uc *orderUseCase) dispatch(ctx context.Context, e event.Event) {
	if err := uc.dispatcher.Dispatch(ctx, e); err != nil {
		uc.logger.Error("failed to publish event", zap.String("event_type", e.Type()), zap.Error(err))
	}
}

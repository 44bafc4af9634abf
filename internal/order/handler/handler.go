package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fekuna/storefront-service/internal/httpx"
	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/order"
	"github.com/fekuna/storefront-service/internal/order/dto"
	"github.com/fekuna/storefront-service/pkg/logger"
)

// OrderLinker produces the chat hand-off link returned after checkout. An
// empty link is omitted from the response.
type OrderLinker interface {
	OrderLink(o *model.Order) string
}

type OrderHandler struct {
	uc     order.UseCase
	linker OrderLinker
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, linker OrderLinker, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		linker: linker,
		logger: log,
	}
}

func (h *OrderHandler) RegisterRoutes(r, protected chi.Router) {
	r.Post("/orders", httpx.MakeHandler(h.logger, h.createOrder))

	protected.Get("/orders", httpx.MakeHandler(h.logger, h.listOrders))
	protected.Put("/orders/{id}", httpx.MakeHandler(h.logger, h.updateStatus))
}

type createOrderResponse struct {
	*model.Order
	WhatsAppURL string `json:"whatsappUrl,omitempty"`
}

func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), httpx.RequestTimeout)
	defer cancel()

	var input dto.CreateOrderInput
	if err := httpx.ParseJSON(r, &input); err != nil {
		return err
	}

	o, err := h.uc.CreateOrder(ctx, &input)
	if err != nil {
		return err
	}

	res := createOrderResponse{Order: o}
	if h.linker != nil {
		res.WhatsAppURL = h.linker.OrderLink(o)
	}
	return httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), httpx.RequestTimeout)
	defer cancel()

	orders, err := h.uc.ListOrders(ctx)
	if err != nil {
		return err
	}

	return httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), httpx.RequestTimeout)
	defer cancel()

	var input dto.UpdateStatusInput
	if err := httpx.ParseJSON(r, &input); err != nil {
		return err
	}

	o, err := h.uc.UpdateStatus(ctx, chi.URLParam(r, "id"), &input)
	if err != nil {
		return err
	}

	return httpx.WriteJSON(w, http.StatusOK, o)
}

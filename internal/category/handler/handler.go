package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fekuna/storefront-service/internal/category"
	"github.com/fekuna/storefront-service/internal/category/dto"
	"github.com/fekuna/storefront-service/internal/httpx"
	"github.com/fekuna/storefront-service/pkg/logger"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", httpx.MakeHandler(h.logger, h.listCategories))
}

func (h *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), httpx.RequestTimeout)
	defer cancel()

	filters := &dto.CategoryFilters{FeaturedOnly: r.URL.Query().Get("featured") == "true"}
	categories, err := h.uc.ListCategories(ctx, filters)
	if err != nil {
		return err
	}

	return httpx.WriteJSON(w, http.StatusOK, categories)
}

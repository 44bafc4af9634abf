package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fekuna/storefront-service/internal/admin"
	"github.com/fekuna/storefront-service/internal/admin/dto"
	"github.com/fekuna/storefront-service/internal/httpx"
	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/pkg/logger"
)

type AdminHandler struct {
	uc                  admin.UseCase
	registrationEnabled bool
	logger              logger.ZapLogger
}

func NewAdminHandler(uc admin.UseCase, registrationEnabled bool, log logger.ZapLogger) *AdminHandler {
	return &AdminHandler{
		uc:                  uc,
		registrationEnabled: registrationEnabled,
		logger:              log,
	}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", httpx.MakeHandler(h.logger, h.register))
	r.Post("/auth/login", httpx.MakeHandler(h.logger, h.login))
}

func (h *AdminHandler) register(w http.ResponseWriter, r *http.Request) error {
	if !h.registrationEnabled {
		return fmt.Errorf("%w: registration is disabled", model.ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(r.Context(), httpx.RequestTimeout)
	defer cancel()

	var input dto.RegisterInput
	if err := httpx.ParseJSON(r, &input); err != nil {
		return err
	}

	if _, err := h.uc.Register(ctx, &input); err != nil {
		return err
	}

	return httpx.WriteMessage(w, http.StatusOK, "admin registered")
}

func (h *AdminHandler) login(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), httpx.RequestTimeout)
	defer cancel()

	var input dto.LoginInput
	if err := httpx.ParseJSON(r, &input); err != nil {
		return err
	}

	result, err := h.uc.Login(ctx, &input)
	if err != nil {
		return err
	}

	return httpx.WriteJSON(w, http.StatusOK, result)
}

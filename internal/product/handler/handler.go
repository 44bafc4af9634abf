package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fekuna/storefront-service/internal/httpx"
	"github.com/fekuna/storefront-service/internal/product"
	"github.com/fekuna/storefront-service/internal/product/dto"
	"github.com/fekuna/storefront-service/pkg/logger"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

// RegisterRoutes mounts the public catalog routes on r and the write routes on
// protected, which must already carry the bearer gate.
func (h *ProductHandler) RegisterRoutes(r, protected chi.Router) {
	r.Get("/products", httpx.MakeHandler(h.logger, h.listProducts))
	r.Get("/products/{id}", httpx.MakeHandler(h.logger, h.getProduct))

	protected.Post("/products", httpx.MakeHandler(h.logger, h.createProduct))
	protected.Put("/products/{id}", httpx.MakeHandler(h.logger, h.updateProduct))
	protected.Delete("/products/{id}", httpx.MakeHandler(h.logger, h.deleteProduct))
}

// productRequest accepts numbers and booleans either as JSON scalars or as
// strings, and lists either as arrays or as comma separated strings.
type productRequest struct {
	Name        httpx.FlexString  `json:"name"`
	Description httpx.FlexString  `json:"description"`
	Price       httpx.FlexString  `json:"price"`
	Images      httpx.FlexList    `json:"images"`
	Videos      httpx.FlexList    `json:"videos"`
	Category    httpx.FlexString  `json:"category"`
	Colors      httpx.FlexList    `json:"colors"`
	Stock       httpx.FlexString  `json:"stock"`
	Featured    httpx.FlexString  `json:"featured"`
	Active      *httpx.FlexString `json:"active"`
}

func (req *productRequest) toInput() *dto.ProductInput {
	input := &dto.ProductInput{
		Name:        req.Name.String(),
		Description: req.Description.String(),
		Price:       req.Price.String(),
		Images:      req.Images,
		Videos:      req.Videos,
		Category:    req.Category.String(),
		Colors:      req.Colors,
		Stock:       req.Stock.String(),
		Featured:    req.Featured.String(),
	}
	if req.Active != nil {
		active := req.Active.String()
		input.Active = &active
	}
	return input
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), httpx.RequestTimeout)
	defer cancel()

	q := r.URL.Query()
	filters := &dto.ProductFilters{
		Category:     q.Get("category"),
		FeaturedOnly: q.Get("featured") == "true",
		Search:       q.Get("search"),
	}

	products, err := h.uc.ListProducts(ctx, filters)
	if err != nil {
		return err
	}

	return httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), httpx.RequestTimeout)
	defer cancel()

	p, err := h.uc.GetProduct(ctx, chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	return httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), httpx.RequestTimeout)
	defer cancel()

	var req productRequest
	if err := httpx.ParseJSON(r, &req); err != nil {
		return err
	}

	p, err := h.uc.CreateProduct(ctx, req.toInput())
	if err != nil {
		return err
	}

	return httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), httpx.RequestTimeout)
	defer cancel()

	var req productRequest
	if err := httpx.ParseJSON(r, &req); err != nil {
		return err
	}

	p, err := h.uc.UpdateProduct(ctx, chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		return err
	}

	return httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), httpx.RequestTimeout)
	defer cancel()

	if err := h.uc.DeleteProduct(ctx, chi.URLParam(r, "id")); err != nil {
		return err
	}

	return httpx.WriteMessage(w, http.StatusOK, "product deleted")
}

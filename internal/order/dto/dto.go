package dto

import "github.com/fekuna/storefront-service/internal/model"

// CreateOrderInput is stored as given. The total is not checked against the
// line items.
type CreateOrderInput struct {
	Customer  model.Customer   `json:"customer"`
	LineItems []model.LineItem `json:"lineItems"`
	Total     float64          `json:"total"`
	Notes     string           `json:"notes"`
}

// UpdateStatusInput carries one of model.OrderStatuses; the label is checked
// by the use case with OrderStatus.Valid.
type UpdateStatusInput struct {
	Status model.OrderStatus `json:"status" validate:"required"`
	Notes  string            `json:"notes"`
}

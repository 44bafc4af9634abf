package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fekuna/storefront-service/internal/model"
)

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered"`
	Email  string `json:"email" validate:"omitempty,email"`
}

func TestStructFields(t *testing.T) {
	assert.NoError(t, StructFields(statusRequest{Status: "shipped"}))

	err := StructFields(statusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Contains(t, err.Error(), "status must be one of [pending confirmed shipped delivered]")

	err = StructFields(statusRequest{})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Contains(t, err.Error(), "status is required")

	err = StructFields(statusRequest{Status: "pending", Email: "nope"})
	assert.Contains(t, err.Error(), "email must be a valid email address")
}

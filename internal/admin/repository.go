package admin

import (
	"context"

	"github.com/fekuna/storefront-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, admin *model.Admin) error
	// FindByEmail returns (nil, nil) when no administrator has the email.
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
}

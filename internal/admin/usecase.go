package admin

import (
	"context"

	"github.com/fekuna/storefront-service/internal/admin/dto"
	"github.com/fekuna/storefront-service/internal/model"
)

type UseCase interface {
	Register(ctx context.Context, input *dto.RegisterInput) (*model.Admin, error)
	Verify(ctx context.Context, email, password string) (*model.Admin, error)
	Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error)
}

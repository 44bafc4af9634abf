package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/storefront-service/internal/admin"
	"github.com/fekuna/storefront-service/internal/admin/dto"
	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/validate"
	"github.com/fekuna/storefront-service/pkg/logger"
)

type PasswordManager interface {
	Hash(plainTextPassword string) (string, error)
	Check(hashedPassword, plainTextPassword string) (bool, error)
}

type TokenIssuer interface {
	Issue(adminID string) (string, error)
}

type adminUseCase struct {
	repo      admin.Repository
	passwords PasswordManager
	tokens    TokenIssuer
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewAdminUseCase(repo admin.Repository, passwords PasswordManager, tokens TokenIssuer, log logger.ZapLogger) admin.UseCase {
	return &adminUseCase{
		repo:      repo,
		passwords: passwords,
		tokens:    tokens,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *adminUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*model.Admin, error) {
	if err := validate.StructFields(input); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email is already registered", model.ErrAlreadyExists)
	}

	hash, err := uc.passwords.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	a := &model.Admin{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: uc.now().UTC()},
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	uc.logger.Info("admin registered", zap.String("admin_id", a.ID))
	return a, nil
}

// Verify answers the same error for an unknown email and a wrong password.
func (uc *adminUseCase) Verify(ctx context.Context, email, password string) (*model.Admin, error) {
	a, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, model.ErrInvalidCredentials
	}

	ok, err := uc.passwords.Check(a.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrInvalidCredentials
	}
	return a, nil
}

func (uc *adminUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error) {
	if err := validate.StructFields(input); err != nil {
		return nil, err
	}

	a, err := uc.Verify(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(a.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &dto.LoginResult{Token: token, Admin: dto.NewAdminView(a)}, nil
}

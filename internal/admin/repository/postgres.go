package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/pkg/database/postgres"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, a *model.Admin) error {
	query := `
        INSERT INTO admins (id, email, password_hash, display_name, created_at)
        VALUES (:id, :email, :password_hash, :display_name, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	if postgres.IsUniqueViolation(err) {
		return fmt.Errorf("%w: email is already registered", model.ErrAlreadyExists)
	}
	return errors.Wrap(err, "admin.PGRepository.Create")
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var a model.Admin
	query := `SELECT id, email, password_hash, display_name, created_at FROM admins WHERE email = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &a, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "admin.PGRepository.FindByEmail")
	}
	return &a, nil
}

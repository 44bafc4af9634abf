package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/storefront-service/internal/category/dto"
	"github.com/fekuna/storefront-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindActive(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	categories := []model.Category{}

	query := `
        SELECT category AS name, count(*) AS product_count
        FROM products
        WHERE active = TRUE AND category <> ''
    `
	if f.FeaturedOnly {
		query += ` AND featured = TRUE`
	}
	query += ` GROUP BY category ORDER BY category ASC`

	if err := r.DB.SelectContext(ctx, &categories, query); err != nil {
		return nil, errors.Wrap(err, "category.PGRepository.FindActive")
	}
	return categories, nil
}

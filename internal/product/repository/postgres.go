package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/product/dto"
)

const productColumns = `id, name, description, price, images, videos, category, colors, stock, featured, active, created_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, name, description, price, images, videos,
            category, colors, stock, featured, active, created_at
        )
        VALUES (
            :id, :name, :description, :price, :images, :videos,
            :category, :colors, :stock, :featured, :active, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "product.PGRepository.Create")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "product.PGRepository.FindByID")
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	products := []model.Product{}

	conditions := []string{"active = TRUE"}
	args := map[string]interface{}{}

	if f.Category != "" {
		conditions = append(conditions, "category = :category")
		args["category"] = f.Category
	}
	if f.FeaturedOnly {
		conditions = append(conditions, "featured = TRUE")
	}
	if f.Search != "" {
		conditions = append(conditions, "(name ILIKE :search OR description ILIKE :search OR category ILIKE :search)")
		args["search"] = "%" + escapeLike(f.Search) + "%"
	}

	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE %s ORDER BY created_at DESC",
		productColumns, strings.Join(conditions, " AND "),
	)

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "product.PGRepository.FindAll.Prepare")
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, errors.Wrap(err, "product.PGRepository.FindAll.Select")
	}
	return products, nil
}

// Update replaces every mutable column; created_at is never written.
func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            description = :description,
            price = :price,
            images = :images,
            videos = :videos,
            category = :category,
            colors = :colors,
            stock = :stock,
            featured = :featured,
            active = :active
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		return errors.Wrap(err, "product.PGRepository.Update")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "product.PGRepository.Update.RowsAffected")
	}
	if rows == 0 {
		return fmt.Errorf("%w: product %s", model.ErrNotFound, p.ID)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return errors.Wrap(err, "product.PGRepository.Delete")
}

func (r *PGRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM products WHERE active = TRUE"); err != nil {
		return 0, errors.Wrap(err, "product.PGRepository.CountActive")
	}
	return count, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/storefront-service/internal/model"
)

const orderColumns = `id, customer, line_items, total, status, notes, created_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (id, customer, line_items, total, status, notes, created_at)
        VALUES (:id, :customer, :line_items, :total, :status, :notes, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return errors.Wrap(err, "order.PGRepository.Create")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &o, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "order.PGRepository.FindByID")
	}
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	orders := []model.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &orders, query); err != nil {
		return nil, errors.Wrap(err, "order.PGRepository.FindAll")
	}
	return orders, nil
}

func (r *PGRepository) Update(ctx context.Context, o *model.Order) error {
	query := `UPDATE orders SET status = :status, notes = :notes WHERE id = :id`
	res, err := r.DB.NamedExecContext(ctx, query, o)
	if err != nil {
		return errors.Wrap(err, "order.PGRepository.Update")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "order.PGRepository.Update.RowsAffected")
	}
	if rows == 0 {
		return fmt.Errorf("%w: order %s", model.ErrNotFound, o.ID)
	}
	return nil
}

func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.GetContext(ctx, &n, `SELECT count(*) FROM orders`); err != nil {
		return 0, errors.Wrap(err, "order.PGRepository.Count")
	}
	return n, nil
}

func (r *PGRepository) CountByStatus(ctx context.Context, status model.OrderStatus) (int, error) {
	var n int
	if err := r.DB.GetContext(ctx, &n, `SELECT count(*) FROM orders WHERE status = $1`, string(status)); err != nil {
		return 0, errors.Wrap(err, "order.PGRepository.CountByStatus")
	}
	return n, nil
}

func (r *PGRepository) SumTotal(ctx context.Context) (float64, error) {
	var sum float64
	if err := r.DB.GetContext(ctx, &sum, `SELECT COALESCE(SUM(total), 0) FROM orders`); err != nil {
		return 0, errors.Wrap(err, "order.PGRepository.SumTotal")
	}
	return sum, nil
}

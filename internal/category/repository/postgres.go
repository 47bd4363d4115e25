package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/sylohq/sylo-catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
		INSERT INTO categories (id, business_id, name, name_ar, sort_order, created_at, updated_at)
		VALUES (:id, :business_id, :name, :name_ar, :sort_order, :created_at, :updated_at)
	`
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindAll(ctx context.Context, businessID string) ([]model.Category, error) {
	categories := []model.Category{}
	query := `SELECT * FROM categories WHERE business_id = $1 ORDER BY sort_order ASC, name ASC`
	err := r.DB.SelectContext(ctx, &categories, query, businessID)
	return categories, err
}

func (r *PGRepository) FindByID(ctx context.Context, id, businessID string) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 AND business_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Category, error) {
	categories := []model.Category{}
	if len(ids) == 0 {
		return categories, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM categories WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	err = r.DB.SelectContext(ctx, &categories, query, args...)
	return categories, err
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
		UPDATE categories
		SET name = :name, name_ar = :name_ar, sort_order = :sort_order, updated_at = :updated_at
		WHERE id = :id AND business_id = :business_id
	`
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id, businessID string) error {
	// products.category_id falls back to NULL via the FK.
	_, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND business_id = $2`, id, businessID)
	return err
}

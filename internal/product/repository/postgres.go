package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sylohq/sylo-catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const insertProductQuery = `
	INSERT INTO products (
		id, business_id, category_id, sku, name, name_ar, description,
		base_price, image_url, available, status, created_at, updated_at
	)
	VALUES (
		:id, :business_id, :category_id, :sku, :name, :name_ar, :description,
		:base_price, :image_url, :available, :status, :created_at, :updated_at
	)
`

const insertVariantGroupQuery = `
	INSERT INTO variant_groups (id, product_id, name, name_ar, required, sort_order, created_at, updated_at)
	VALUES (:id, :product_id, :name, :name_ar, :required, :sort_order, :created_at, :updated_at)
`

const insertVariantOptionQuery = `
	INSERT INTO variant_options (id, group_id, name, name_ar, price_adjustment, sort_order, created_at, updated_at)
	VALUES (:id, :group_id, :name, :name_ar, :price_adjustment, :sort_order, :created_at, :updated_at)
`

const insertModifierQuery = `
	INSERT INTO modifiers (id, product_id, name, name_ar, removable, addable, extra_price, sort_order, created_at, updated_at)
	VALUES (:id, :product_id, :name, :name_ar, :removable, :addable, :extra_price, :sort_order, :created_at, :updated_at)
`

func (r *PGRepository) CreateAggregate(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, insertProductQuery, p); err != nil {
		return err
	}
	if err := insertChildren(ctx, tx, p); err != nil {
		return err
	}

	return tx.Commit()
}

func insertChildren(ctx context.Context, tx *sqlx.Tx, p *model.Product) error {
	for i := range p.VariantGroups {
		g := &p.VariantGroups[i]
		if _, err := tx.NamedExecContext(ctx, insertVariantGroupQuery, g); err != nil {
			return err
		}
		if len(g.Options) > 0 {
			// Named exec with a slice does a bulk insert.
			if _, err := tx.NamedExecContext(ctx, insertVariantOptionQuery, g.Options); err != nil {
				return err
			}
		}
	}

	if len(p.Modifiers) > 0 {
		if _, err := tx.NamedExecContext(ctx, insertModifierQuery, p.Modifiers); err != nil {
			return err
		}
	}

	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id, businessID string) (*model.Product, error) {
	var product model.Product
	// No status filter: soft-deleted rows stay reachable by id.
	query := `SELECT * FROM products WHERE id = $1 AND business_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAllActive(ctx context.Context, businessID string) ([]model.Product, error) {
	products := []model.Product{}
	query := `SELECT * FROM products WHERE business_id = $1 AND status = $2 ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &products, query, businessID, model.ProductStatusActive)
	return products, err
}

func (r *PGRepository) SearchActive(ctx context.Context, businessID, search string) ([]model.Product, error) {
	products := []model.Product{}
	query := `
		SELECT * FROM products
		WHERE business_id = $1 AND status = $2
		AND (name ILIKE $3 OR sku ILIKE $3 OR description ILIKE $3)
		ORDER BY name ASC
	`
	err := r.DB.SelectContext(ctx, &products, query, businessID, model.ProductStatusActive, "%"+search+"%")
	return products, err
}

func (r *PGRepository) CountByBusiness(ctx context.Context, businessID string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM products WHERE business_id = $1`, businessID)
	return count, err
}

func (r *PGRepository) UpdateAggregate(ctx context.Context, p *model.Product, replaceGroups, replaceModifiers bool) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE products
		SET category_id = :category_id,
		    name = :name,
		    name_ar = :name_ar,
		    description = :description,
		    base_price = :base_price,
		    image_url = :image_url,
		    available = :available,
		    updated_at = :updated_at
		WHERE id = :id AND business_id = :business_id
	`
	if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
		return err
	}

	if replaceGroups {
		// Options cascade with their group rows.
		if _, err := tx.ExecContext(ctx, `DELETE FROM variant_groups WHERE product_id = $1`, p.ID); err != nil {
			return err
		}
	}
	if replaceModifiers {
		if _, err := tx.ExecContext(ctx, `DELETE FROM modifiers WHERE product_id = $1`, p.ID); err != nil {
			return err
		}
	}

	// Re-insert only the collections being replaced. The model carries the
	// surviving collections too, so guard on the flags.
	replacement := *p
	if !replaceGroups {
		replacement.VariantGroups = nil
	}
	if !replaceModifiers {
		replacement.Modifiers = nil
	}
	if err := insertChildren(ctx, tx, &replacement); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) SetStatus(ctx context.Context, id, businessID, status string, updatedAt time.Time) error {
	query := `UPDATE products SET status = $1, updated_at = $2 WHERE id = $3 AND business_id = $4`
	_, err := r.DB.ExecContext(ctx, query, status, updatedAt, id, businessID)
	return err
}

func (r *PGRepository) SetAvailability(ctx context.Context, id, businessID string, available bool, updatedAt time.Time) error {
	query := `UPDATE products SET available = $1, updated_at = $2 WHERE id = $3 AND business_id = $4`
	_, err := r.DB.ExecContext(ctx, query, available, updatedAt, id, businessID)
	return err
}

func (r *PGRepository) ListVariantGroups(ctx context.Context, productIDs []string) ([]model.VariantGroup, error) {
	groups := []model.VariantGroup{}
	if len(productIDs) == 0 {
		return groups, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM variant_groups WHERE product_id IN (?) ORDER BY sort_order ASC`, productIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	err = r.DB.SelectContext(ctx, &groups, query, args...)
	return groups, err
}

func (r *PGRepository) ListVariantOptions(ctx context.Context, groupIDs []string) ([]model.VariantOption, error) {
	options := []model.VariantOption{}
	if len(groupIDs) == 0 {
		return options, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM variant_options WHERE group_id IN (?) ORDER BY sort_order ASC`, groupIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	err = r.DB.SelectContext(ctx, &options, query, args...)
	return options, err
}

func (r *PGRepository) ListModifiers(ctx context.Context, productIDs []string) ([]model.Modifier, error) {
	modifiers := []model.Modifier{}
	if len(productIDs) == 0 {
		return modifiers, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM modifiers WHERE product_id IN (?) ORDER BY sort_order ASC`, productIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	err = r.DB.SelectContext(ctx, &modifiers, query, args...)
	return modifiers, err
}

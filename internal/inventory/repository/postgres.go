package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sylohq/sylo-catalog-service/internal/inventory/dto"
	"github.com/sylohq/sylo-catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByProduct(ctx context.Context, businessID, productID string, variantOptionID *string) (*model.Inventory, error) {
	var inv model.Inventory
	query := `SELECT * FROM inventory WHERE business_id = $1 AND product_id = $2`
	args := []interface{}{businessID, productID}

	if variantOptionID != nil && *variantOptionID != "" {
		query += ` AND variant_option_id = $3`
		args = append(args, *variantOptionID)
	} else {
		query += ` AND variant_option_id IS NULL`
	}

	err := r.DB.GetContext(ctx, &inv, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Caller decides what a missing row means
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, error) {
	items := []model.Inventory{}

	conditions := []string{}
	args := map[string]interface{}{}

	if f.BusinessID != "" {
		conditions = append(conditions, "business_id = :business_id")
		args["business_id"] = f.BusinessID
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.LowStock {
		conditions = append(conditions, "quantity - reserved_quantity <= reorder_point AND reorder_point > 0")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT * FROM inventory" + whereClause + " ORDER BY updated_at DESC"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, err
}

func (r *PGRepository) AdjustStockWithMovement(ctx context.Context, inv *model.Inventory, movement *model.InventoryMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsertQuery := `
		INSERT INTO inventory (
			id, business_id, product_id, variant_option_id,
			quantity, reserved_quantity, reorder_point, reorder_quantity,
			last_counted_at, updated_at
		)
		VALUES (
			:id, :business_id, :product_id, :variant_option_id,
			:quantity, :reserved_quantity, :reorder_point, :reorder_quantity,
			:last_counted_at, :updated_at
		)
		ON CONFLICT (business_id, product_id, variant_option_id)
		DO UPDATE SET
			quantity = EXCLUDED.quantity,
			reserved_quantity = EXCLUDED.reserved_quantity,
			last_counted_at = EXCLUDED.last_counted_at,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := tx.NamedExecContext(ctx, upsertQuery, inv); err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	insertLogQuery := `
		INSERT INTO inventory_movements (
			id, business_id, product_id, variant_option_id,
			movement_type, quantity_change, quantity_before, quantity_after,
			reference_type, reference_id, notes, created_by, created_at
		)
		VALUES (
			:id, :business_id, :product_id, :variant_option_id,
			:movement_type, :quantity_change, :quantity_before, :quantity_after,
			:reference_type, :reference_id, :notes, :created_by, :created_at
		)
	`
	if _, err := tx.NamedExecContext(ctx, insertLogQuery, movement); err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, error) {
	items := []model.InventoryMovement{}

	conditions := []string{}
	args := map[string]interface{}{}

	if f.BusinessID != "" {
		conditions = append(conditions, "business_id = :business_id")
		args["business_id"] = f.BusinessID
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT * FROM inventory_movements" + whereClause + " ORDER BY created_at DESC"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, err
}

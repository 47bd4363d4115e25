package inventory

import (
	"context"

	"github.com/sylohq/sylo-catalog-service/internal/inventory/dto"
	"github.com/sylohq/sylo-catalog-service/internal/model"
)

type Repository interface {
	GetByProduct(ctx context.Context, businessID, productID string, variantOptionID *string) (*model.Inventory, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, error)

	// AdjustStockWithMovement upserts the stock row and appends the audit
	// movement in one transaction.
	AdjustStockWithMovement(ctx context.Context, inv *model.Inventory, movement *model.InventoryMovement) error

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, error)
}

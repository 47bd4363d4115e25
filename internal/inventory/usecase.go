package inventory

import (
	"context"
	"errors"

	"github.com/sylohq/sylo-catalog-service/internal/inventory/dto"
	"github.com/sylohq/sylo-catalog-service/internal/model"
)

// ErrInsufficientStock rejects adjustments that would take stock negative.
var ErrInsufficientStock = errors.New("insufficient inventory")

type UseCase interface {
	GetProductInventory(ctx context.Context, businessID, productID string, variantOptionID *string) (*model.Inventory, error)
	ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, error)
	AdjustInventory(ctx context.Context, input *dto.AdjustInventoryInput) (*model.Inventory, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, error)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sylohq/sylo-catalog-service/internal/inventory"
	"github.com/sylohq/sylo-catalog-service/internal/inventory/dto"
	"github.com/sylohq/sylo-catalog-service/internal/model"
	"github.com/sylohq/sylo-catalog-service/pkg/logger"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	locker inventory.Locker
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, locker inventory.Locker, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		locker: locker,
		logger: log,
	}
}

func (uc *inventoryUseCase) GetProductInventory(ctx context.Context, businessID, productID string, variantOptionID *string) (*model.Inventory, error) {
	inv, err := uc.repo.GetByProduct(ctx, businessID, productID, variantOptionID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		// Zero stock rather than nil: a product that was never counted
		// simply has nothing on hand.
		return &model.Inventory{
			BusinessID:      businessID,
			ProductID:       productID,
			VariantOptionID: variantOptionID,
			Quantity:        0,
		}, nil
	}
	return inv, nil
}

func (uc *inventoryUseCase) ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *inventoryUseCase) AdjustInventory(ctx context.Context, input *dto.AdjustInventoryInput) (*model.Inventory, error) {
	lockKey := fmt.Sprintf("lock:inventory:%s:%s", input.BusinessID, input.ProductID)
	if input.VariantOptionID != nil {
		lockKey += ":" + *input.VariantOptionID
	}
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire inventory lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, errors.New("system busy, please try again later")
	}
	defer uc.locker.ReleaseLock(ctx, lockKey, lockValue)

	inv, err := uc.repo.GetByProduct(ctx, input.BusinessID, input.ProductID, input.VariantOptionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if inv == nil {
		inv = &model.Inventory{
			ID:              uuid.New().String(),
			BusinessID:      input.BusinessID,
			ProductID:       input.ProductID,
			VariantOptionID: input.VariantOptionID,
			Quantity:        0,
		}
	}

	quantityBefore := inv.Quantity
	inv.Quantity += input.QuantityChange
	inv.UpdatedAt = now

	if inv.Quantity < 0 {
		return nil, inventory.ErrInsufficientStock
	}

	movementType := input.MovementType
	if movementType == "" {
		movementType = "adjustment"
	}

	var refID *string
	if input.ReferenceID != "" {
		refID = &input.ReferenceID
	}
	var refType *string
	if input.ReferenceType != "" {
		refType = &input.ReferenceType
	}
	var createdBy *string
	if input.UserID != "" && input.UserID != "system" {
		createdBy = &input.UserID
	}

	movement := &model.InventoryMovement{
		ID:              uuid.New().String(),
		BusinessID:      input.BusinessID,
		ProductID:       input.ProductID,
		VariantOptionID: input.VariantOptionID,
		MovementType:    movementType,
		QuantityChange:  input.QuantityChange,
		QuantityBefore:  quantityBefore,
		QuantityAfter:   inv.Quantity,
		ReferenceType:   refType,
		ReferenceID:     refID,
		Notes:           input.Reason,
		CreatedBy:       createdBy,
		CreatedAt:       now,
	}

	if err := uc.repo.AdjustStockWithMovement(ctx, inv, movement); err != nil {
		return nil, err
	}

	return inv, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, error) {
	return uc.repo.ListMovements(ctx, filters)
}

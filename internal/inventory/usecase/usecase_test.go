package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sylohq/sylo-catalog-service/internal/inventory"
	"github.com/sylohq/sylo-catalog-service/internal/inventory/dto"
	"github.com/sylohq/sylo-catalog-service/internal/model"
	"github.com/sylohq/sylo-catalog-service/pkg/logger"
)

type stockKey struct {
	businessID string
	productID  string
	optionID   string
}

func keyOf(businessID, productID string, optionID *string) stockKey {
	k := stockKey{businessID: businessID, productID: productID}
	if optionID != nil {
		k.optionID = *optionID
	}
	return k
}

type fakeRepo struct {
	stock     map[stockKey]model.Inventory
	movements []model.InventoryMovement
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{stock: map[stockKey]model.Inventory{}}
}

func (r *fakeRepo) GetByProduct(_ context.Context, businessID, productID string, optionID *string) (*model.Inventory, error) {
	if inv, ok := r.stock[keyOf(businessID, productID, optionID)]; ok {
		row := inv
		return &row, nil
	}
	return nil, nil
}

func (r *fakeRepo) FindAll(_ context.Context, filters *dto.InventoryFilters) ([]model.Inventory, error) {
	out := []model.Inventory{}
	for _, inv := range r.stock {
		if inv.BusinessID != filters.BusinessID {
			continue
		}
		if filters.ProductID != "" && inv.ProductID != filters.ProductID {
			continue
		}
		if filters.LowStock && inv.Quantity-inv.ReservedQuantity > inv.ReorderPoint {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeRepo) AdjustStockWithMovement(_ context.Context, inv *model.Inventory, movement *model.InventoryMovement) error {
	r.stock[keyOf(inv.BusinessID, inv.ProductID, inv.VariantOptionID)] = *inv
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *fakeRepo) ListMovements(_ context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, error) {
	out := []model.InventoryMovement{}
	for _, m := range r.movements {
		if m.BusinessID != filters.BusinessID {
			continue
		}
		if filters.ProductID != "" && m.ProductID != filters.ProductID {
			continue
		}
		if filters.MovementType != "" && m.MovementType != filters.MovementType {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// fakeLocker hands out every lock; busyLocker never does.
type fakeLocker struct {
	acquired []string
	released []string
}

func (l *fakeLocker) AcquireLock(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	l.acquired = append(l.acquired, key)
	return true, nil
}

func (l *fakeLocker) ReleaseLock(_ context.Context, key, _ string) error {
	l.released = append(l.released, key)
	return nil
}

type busyLocker struct{}

func (busyLocker) AcquireLock(_ context.Context, _, _ string, _ time.Duration) (bool, error) {
	return false, nil
}

func (busyLocker) ReleaseLock(_ context.Context, _, _ string) error { return nil }

func TestAdjustInventory_CreatesRowAndMovement(t *testing.T) {
	repo := newFakeRepo()
	locker := &fakeLocker{}
	uc := NewInventoryUseCase(repo, locker, logger.NewNop())

	inv, err := uc.AdjustInventory(context.Background(), &dto.AdjustInventoryInput{
		BusinessID:     "1",
		ProductID:      "p-1",
		QuantityChange: 10,
		Reason:         "Initial count",
		UserID:         "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 10.0, inv.Quantity)
	require.Len(t, repo.movements, 1)
	m := repo.movements[0]
	assert.Equal(t, "adjustment", m.MovementType)
	assert.Equal(t, 0.0, m.QuantityBefore)
	assert.Equal(t, 10.0, m.QuantityAfter)
	assert.Equal(t, "Initial count", m.Notes)
	require.NotNil(t, m.CreatedBy)
	assert.Equal(t, "u-1", *m.CreatedBy)

	// Lock is acquired and released around the adjustment.
	require.Len(t, locker.acquired, 1)
	assert.Equal(t, locker.acquired, locker.released)
}

func TestAdjustInventory_RejectsNegativeStock(t *testing.T) {
	repo := newFakeRepo()
	uc := NewInventoryUseCase(repo, &fakeLocker{}, logger.NewNop())
	ctx := context.Background()

	_, err := uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{BusinessID: "1", ProductID: "p-1", QuantityChange: 5})
	require.NoError(t, err)

	_, err = uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{BusinessID: "1", ProductID: "p-1", QuantityChange: -8})
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

	// The failed adjustment left no trace.
	inv, err := uc.GetProductInventory(ctx, "1", "p-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 5.0, inv.Quantity)
	assert.Len(t, repo.movements, 1)
}

func TestAdjustInventory_LockBusy(t *testing.T) {
	uc := NewInventoryUseCase(newFakeRepo(), busyLocker{}, logger.NewNop())

	_, err := uc.AdjustInventory(context.Background(), &dto.AdjustInventoryInput{
		BusinessID:     "1",
		ProductID:      "p-1",
		QuantityChange: 1,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, inventory.ErrInsufficientStock)
}

func TestAdjustInventory_VariantScopedRows(t *testing.T) {
	repo := newFakeRepo()
	uc := NewInventoryUseCase(repo, &fakeLocker{}, logger.NewNop())
	ctx := context.Background()

	small := "opt-small"
	_, err := uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{BusinessID: "1", ProductID: "p-1", QuantityChange: 3})
	require.NoError(t, err)
	_, err = uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{BusinessID: "1", ProductID: "p-1", VariantOptionID: &small, QuantityChange: 7})
	require.NoError(t, err)

	productLevel, err := uc.GetProductInventory(ctx, "1", "p-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 3.0, productLevel.Quantity)

	variantLevel, err := uc.GetProductInventory(ctx, "1", "p-1", &small)
	require.NoError(t, err)
	assert.Equal(t, 7.0, variantLevel.Quantity)
}

func TestGetProductInventory_ZeroDefault(t *testing.T) {
	uc := NewInventoryUseCase(newFakeRepo(), &fakeLocker{}, logger.NewNop())

	inv, err := uc.GetProductInventory(context.Background(), "1", "never-counted", nil)
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, 0.0, inv.Quantity)
	assert.Equal(t, "never-counted", inv.ProductID)
}

func TestListMovements_Filtered(t *testing.T) {
	repo := newFakeRepo()
	uc := NewInventoryUseCase(repo, &fakeLocker{}, logger.NewNop())
	ctx := context.Background()

	_, err := uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{BusinessID: "1", ProductID: "p-1", QuantityChange: 10})
	require.NoError(t, err)
	_, err = uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{BusinessID: "1", ProductID: "p-1", QuantityChange: -2, MovementType: "sale", ReferenceID: "o-1", ReferenceType: "sale"})
	require.NoError(t, err)

	sales, err := uc.ListMovements(ctx, &dto.MovementFilters{BusinessID: "1", MovementType: "sale"})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, -2.0, sales[0].QuantityChange)
	require.NotNil(t, sales[0].ReferenceID)
	assert.Equal(t, "o-1", *sales[0].ReferenceID)

	all, err := uc.ListMovements(ctx, &dto.MovementFilters{BusinessID: "1"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

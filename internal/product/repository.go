package product

import (
	"context"
	"time"

	"github.com/sylohq/sylo-catalog-service/internal/model"
)

type Repository interface {
	// CreateAggregate inserts the product row plus all variant groups,
	// options and modifiers in a single transaction.
	CreateAggregate(ctx context.Context, p *model.Product) error

	// FindByID is business scoped but deliberately not status filtered:
	// soft-deleted products stay fetchable by id.
	FindByID(ctx context.Context, id, businessID string) (*model.Product, error)

	FindAllActive(ctx context.Context, businessID string) ([]model.Product, error)
	SearchActive(ctx context.Context, businessID, query string) ([]model.Product, error)
	CountByBusiness(ctx context.Context, businessID string) (int, error)

	// UpdateAggregate patches the product row and, when the replace flags
	// are set, swaps the owned collections wholesale, all in one
	// transaction.
	UpdateAggregate(ctx context.Context, p *model.Product, replaceGroups, replaceModifiers bool) error

	SetStatus(ctx context.Context, id, businessID, status string, updatedAt time.Time) error
	SetAvailability(ctx context.Context, id, businessID string, available bool, updatedAt time.Time) error

	// Batch loads for aggregate assembly, ordered by sort_order.
	ListVariantGroups(ctx context.Context, productIDs []string) ([]model.VariantGroup, error)
	ListVariantOptions(ctx context.Context, groupIDs []string) ([]model.VariantOption, error)
	ListModifiers(ctx context.Context, productIDs []string) ([]model.Modifier, error)
}

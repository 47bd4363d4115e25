package category

import (
	"context"

	"github.com/sylohq/sylo-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindAll(ctx context.Context, businessID string) ([]model.Category, error)
	FindByID(ctx context.Context, id, businessID string) (*model.Category, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error

	// Delete removes the category row; products referencing it fall back
	// to category_id NULL via the FK.
	Delete(ctx context.Context, id, businessID string) error
}

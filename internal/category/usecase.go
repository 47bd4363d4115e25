package category

import (
	"context"
	"errors"

	"github.com/sylohq/sylo-catalog-service/internal/category/dto"
	"github.com/sylohq/sylo-catalog-service/internal/model"
)

// ErrNotFound covers missing categories and categories owned by another
// business.
var ErrNotFound = errors.New("category not found")

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	ListCategories(ctx context.Context, businessID string) ([]model.Category, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id, businessID string) error
}

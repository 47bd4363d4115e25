package product

import (
	"context"
	"errors"

	"github.com/sylohq/sylo-catalog-service/internal/model"
	"github.com/sylohq/sylo-catalog-service/internal/product/dto"
)

// ErrNotFound covers missing products and products owned by another
// business; tenants cannot tell the two apart.
var ErrNotFound = errors.New("product not found")

type UseCase interface {
	GenerateSKU(ctx context.Context, businessID string) (string, error)
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id, businessID string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id, businessID string) error
	ToggleAvailability(ctx context.Context, id, businessID string, available bool) (*model.Product, error)
}

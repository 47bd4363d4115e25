package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sylohq/sylo-catalog-service/internal/category"
	"github.com/sylohq/sylo-catalog-service/internal/category/dto"
	"github.com/sylohq/sylo-catalog-service/internal/model"
	"github.com/sylohq/sylo-catalog-service/pkg/logger"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

// CreateCategory does not enforce name uniqueness; that is left to the
// caller or a database constraint.
func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	now := time.Now()

	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BusinessID: input.BusinessID,
		Name:       input.Name,
		NameAr:     input.NameAr,
		SortOrder:  input.SortOrder,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, businessID string) ([]model.Category, error) {
	return uc.repo.FindAll(ctx, businessID)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID, input.BusinessID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, category.ErrNotFound
	}

	if input.Name != nil {
		cat.Name = *input.Name
	}
	if input.NameAr != nil {
		cat.NameAr = input.NameAr
	}
	if input.SortOrder != nil {
		cat.SortOrder = *input.SortOrder
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id, businessID string) error {
	cat, err := uc.repo.FindByID(ctx, id, businessID)
	if err != nil {
		return err
	}
	if cat == nil {
		return category.ErrNotFound
	}
	return uc.repo.Delete(ctx, id, businessID)
}

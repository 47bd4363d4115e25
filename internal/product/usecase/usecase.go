package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sylohq/sylo-catalog-service/internal/category"
	"github.com/sylohq/sylo-catalog-service/internal/model"
	"github.com/sylohq/sylo-catalog-service/internal/product"
	"github.com/sylohq/sylo-catalog-service/internal/product/dto"
	"github.com/sylohq/sylo-catalog-service/pkg/cache"
	"github.com/sylohq/sylo-catalog-service/pkg/logger"
	"github.com/sylohq/sylo-catalog-service/pkg/search"
)

const productIndex = "products"

type productUseCase struct {
	repo    product.Repository
	catRepo category.Repository
	cache   *cache.RedisClient
	es      *search.Client
	logger  logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, catRepo category.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:    repo,
		catRepo: catRepo,
		cache:   cache,
		es:      es,
		logger:  log,
	}
}

// GenerateSKU numbers products per business: "{business}-POS-0001".
// The sequence comes from a plain count, so it is only race-safe as far
// as the unique (business_id, sku) index makes duplicates fail loudly.
func (uc *productUseCase) GenerateSKU(ctx context.Context, businessID string) (string, error) {
	count, err := uc.repo.CountByBusiness(ctx, businessID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-POS-%04d", businessID, count+1), nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	sku, err := uc.GenerateSKU(ctx, input.BusinessID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		BusinessID:  input.BusinessID,
		CategoryID:  input.CategoryID,
		SKU:         sku,
		Name:        input.Name,
		NameAr:      input.NameAr,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		ImageURL:    input.ImageURL,
		Available:   true,
		Status:      model.ProductStatusActive,
	}
	p.VariantGroups = buildVariantGroups(p.ID, input.VariantGroups, now)
	p.Modifiers = buildModifiers(p.ID, input.Modifiers, now)

	// Product, groups, options and modifiers land in one transaction; a
	// failed child insert rolls back the whole aggregate.
	if err := uc.repo.CreateAggregate(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateProductCache(context.Background(), input.BusinessID)

	created, err := uc.GetProduct(ctx, p.ID, input.BusinessID)
	if err != nil {
		return nil, err
	}

	go uc.syncToElastic(context.Background(), created)

	return created, nil
}

// buildVariantGroups assigns ids and dense zero-based sort_order from the
// input position at write time.
func buildVariantGroups(productID string, inputs []dto.VariantGroupInput, now time.Time) []model.VariantGroup {
	groups := make([]model.VariantGroup, 0, len(inputs))
	for i, gi := range inputs {
		g := model.VariantGroup{
			BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			ProductID: productID,
			Name:      gi.Name,
			NameAr:    gi.NameAr,
			Required:  gi.Required,
			SortOrder: i,
		}
		g.Options = make([]model.VariantOption, 0, len(gi.Options))
		for j, oi := range gi.Options {
			g.Options = append(g.Options, model.VariantOption{
				BaseModel:       model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
				GroupID:         g.ID,
				Name:            oi.Name,
				NameAr:          oi.NameAr,
				PriceAdjustment: oi.PriceAdjustment,
				SortOrder:       j,
			})
		}
		groups = append(groups, g)
	}
	return groups
}

func buildModifiers(productID string, inputs []dto.ModifierInput, now time.Time) []model.Modifier {
	modifiers := make([]model.Modifier, 0, len(inputs))
	for i, mi := range inputs {
		modifiers = append(modifiers, model.Modifier{
			BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			ProductID:  productID,
			Name:       mi.Name,
			NameAr:     mi.NameAr,
			Removable:  mi.Removable,
			Addable:    mi.Addable,
			ExtraPrice: mi.ExtraPrice,
			SortOrder:  i,
		})
	}
	return modifiers
}

// GetProduct returns nil (not an error) when the product does not exist
// or belongs to another business. It deliberately does not filter on
// status, so soft-deleted products remain fetchable by id.
func (uc *productUseCase) GetProduct(ctx context.Context, id, businessID string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id, businessID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	products := []model.Product{*p}
	if err := uc.assemble(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	// 1. Check cache
	cacheKey := ""
	if uc.cache != nil {
		if key, err := generateCacheKey(filters); err == nil {
			cacheKey = key
			val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
			if err == nil {
				var cached []model.Product
				if err := json.Unmarshal([]byte(val), &cached); err == nil {
					return cached, nil
				}
			}
		}
	}

	// 2. Search via Elastic (if query present), falling back to the DB
	var products []model.Product
	var err error
	if filters.SearchQuery != "" {
		products, err = uc.searchProducts(ctx, filters)
	} else {
		products, err = uc.repo.FindAllActive(ctx, filters.BusinessID)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.assemble(ctx, products); err != nil {
		return nil, err
	}

	// 3. Set cache
	if cacheKey != "" {
		if data, err := json.Marshal(products); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, nil
}

func (uc *productUseCase) searchProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	if uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"bool": map[string]interface{}{
					"must": []map[string]interface{}{
						{
							"query_string": map[string]interface{}{
								"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
								"fields": []string{"name^3", "sku", "description"},
							},
						},
						{
							"term": map[string]interface{}{
								"business_id": filters.BusinessID,
							},
						},
						{
							"term": map[string]interface{}{
								"status": model.ProductStatusActive,
							},
						},
					},
				},
			},
		}

		res, err := uc.es.Search(ctx, productIndex, q)
		if err == nil {
			products := []model.Product{}
			for _, hit := range res.Hits.Hits {
				var p model.Product
				if err := json.Unmarshal(hit.Source, &p); err == nil {
					products = append(products, p)
				}
			}
			return products, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	return uc.repo.SearchActive(ctx, filters.BusinessID, filters.SearchQuery)
}

// assemble attaches ordered variant groups, options, modifiers and the
// resolved category name to each product, using one batch query per
// relation.
func (uc *productUseCase) assemble(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	productIDs := make([]string, 0, len(products))
	categoryIDs := make([]string, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
		if p.CategoryID != nil {
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
	}

	groups, err := uc.repo.ListVariantGroups(ctx, productIDs)
	if err != nil {
		return err
	}

	groupIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
	}
	options, err := uc.repo.ListVariantOptions(ctx, groupIDs)
	if err != nil {
		return err
	}

	modifiers, err := uc.repo.ListModifiers(ctx, productIDs)
	if err != nil {
		return err
	}

	// The queries come back ordered by sort_order; appending preserves it.
	optionsByGroup := map[string][]model.VariantOption{}
	for _, o := range options {
		optionsByGroup[o.GroupID] = append(optionsByGroup[o.GroupID], o)
	}

	groupsByProduct := map[string][]model.VariantGroup{}
	for _, g := range groups {
		g.Options = optionsByGroup[g.ID]
		if g.Options == nil {
			g.Options = []model.VariantOption{}
		}
		groupsByProduct[g.ProductID] = append(groupsByProduct[g.ProductID], g)
	}

	modifiersByProduct := map[string][]model.Modifier{}
	for _, m := range modifiers {
		modifiersByProduct[m.ProductID] = append(modifiersByProduct[m.ProductID], m)
	}

	categoryNames := map[string]string{}
	if len(categoryIDs) > 0 {
		categories, err := uc.catRepo.FindByIDs(ctx, categoryIDs)
		if err != nil {
			return err
		}
		for _, c := range categories {
			categoryNames[c.ID] = c.Name
		}
	}

	for i := range products {
		p := &products[i]
		p.VariantGroups = groupsByProduct[p.ID]
		if p.VariantGroups == nil {
			p.VariantGroups = []model.VariantGroup{}
		}
		p.Modifiers = modifiersByProduct[p.ID]
		if p.Modifiers == nil {
			p.Modifiers = []model.Modifier{}
		}
		if p.CategoryID != nil {
			if name, ok := categoryNames[*p.CategoryID]; ok {
				p.CategoryName = &name
			}
		}
	}

	return nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID, input.BusinessID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	// Patch only the fields present in the input. The SKU is assigned
	// once at creation and never regenerated.
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.NameAr != nil {
		p.NameAr = input.NameAr
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.CategoryID != nil {
		p.CategoryID = input.CategoryID
	}
	if input.BasePrice != nil {
		p.BasePrice = *input.BasePrice
	}
	if input.ImageURL != nil {
		p.ImageURL = input.ImageURL
	}
	if input.Available != nil {
		p.Available = *input.Available
	}

	now := time.Now()
	p.UpdatedAt = now

	// Replace-or-preserve keyed on field presence: a present collection
	// (even empty) replaces the stored one wholesale.
	replaceGroups := input.VariantGroups != nil
	if replaceGroups {
		p.VariantGroups = buildVariantGroups(p.ID, *input.VariantGroups, now)
	}
	replaceModifiers := input.Modifiers != nil
	if replaceModifiers {
		p.Modifiers = buildModifiers(p.ID, *input.Modifiers, now)
	}

	if err := uc.repo.UpdateAggregate(ctx, p, replaceGroups, replaceModifiers); err != nil {
		return nil, err
	}

	go uc.invalidateProductCache(context.Background(), input.BusinessID)

	updated, err := uc.GetProduct(ctx, p.ID, input.BusinessID)
	if err != nil {
		return nil, err
	}

	go uc.syncToElastic(context.Background(), updated)

	return updated, nil
}

// DeleteProduct is a soft delete: status flips to deleted, the row and
// its children stay in place. There is no resurrection path.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id, businessID string) error {
	p, err := uc.repo.FindByID(ctx, id, businessID)
	if err != nil {
		return err
	}
	if p == nil {
		return product.ErrNotFound
	}

	if err := uc.repo.SetStatus(ctx, id, businessID, model.ProductStatusDeleted, time.Now()); err != nil {
		return err
	}

	go uc.invalidateProductCache(context.Background(), businessID)
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}

	return nil
}

// ToggleAvailability flips the available flag and nothing else; status is
// untouched.
func (uc *productUseCase) ToggleAvailability(ctx context.Context, id, businessID string, available bool) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id, businessID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	if err := uc.repo.SetAvailability(ctx, id, businessID, available, time.Now()); err != nil {
		return nil, err
	}

	go uc.invalidateProductCache(context.Background(), businessID)

	updated, err := uc.GetProduct(ctx, id, businessID)
	if err != nil {
		return nil, err
	}

	go uc.syncToElastic(context.Background(), updated)

	return updated, nil
}

func generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%s:%x", filters.BusinessID, md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context, businessID string) {
	if uc.cache == nil {
		return
	}
	pattern := fmt.Sprintf("products:list:%s:*", businessID)
	keys, err := uc.cache.Client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil || p == nil {
		return
	}

	// Create the index lazily so the service stays useful when ES came up
	// after we did. In production the mapping is applied by provisioning.
	mapping := `{
		"mappings": {
			"properties": {
				"business_id": { "type": "keyword" },
				"name": { "type": "text" },
				"name_ar": { "type": "text" },
				"description": { "type": "text" },
				"sku": { "type": "keyword" },
				"status": { "type": "keyword" },
				"base_price": { "type": "double" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndex, mapping)

	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

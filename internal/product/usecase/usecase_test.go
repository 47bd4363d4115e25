package usecase

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sylohq/sylo-catalog-service/internal/model"
	"github.com/sylohq/sylo-catalog-service/internal/product"
	"github.com/sylohq/sylo-catalog-service/internal/product/dto"
	"github.com/sylohq/sylo-catalog-service/pkg/logger"
)

// fakeRepo is an in-memory product.Repository that mirrors the ordering
// and scoping contracts of the Postgres implementation.
type fakeRepo struct {
	products  map[string]model.Product
	groups    []model.VariantGroup
	options   []model.VariantOption
	modifiers []model.Modifier
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[string]model.Product{}}
}

func (r *fakeRepo) CreateAggregate(_ context.Context, p *model.Product) error {
	row := *p
	row.VariantGroups = nil
	row.Modifiers = nil
	r.products[p.ID] = row
	r.insertChildren(p)
	return nil
}

func (r *fakeRepo) insertChildren(p *model.Product) {
	for _, g := range p.VariantGroups {
		row := g
		row.Options = nil
		r.groups = append(r.groups, row)
		r.options = append(r.options, g.Options...)
	}
	r.modifiers = append(r.modifiers, p.Modifiers...)
}

func (r *fakeRepo) FindByID(_ context.Context, id, businessID string) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.BusinessID != businessID {
		return nil, nil
	}
	row := p
	return &row, nil
}

func (r *fakeRepo) FindAllActive(_ context.Context, businessID string) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range r.products {
		if p.BusinessID == businessID && p.Status == model.ProductStatusActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRepo) SearchActive(_ context.Context, businessID, query string) ([]model.Product, error) {
	all, _ := r.FindAllActive(context.Background(), businessID)
	out := []model.Product{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountByBusiness(_ context.Context, businessID string) (int, error) {
	count := 0
	for _, p := range r.products {
		if p.BusinessID == businessID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) UpdateAggregate(_ context.Context, p *model.Product, replaceGroups, replaceModifiers bool) error {
	row := *p
	row.VariantGroups = nil
	row.Modifiers = nil
	r.products[p.ID] = row

	if replaceGroups {
		keptGroups := r.groups[:0]
		removed := map[string]bool{}
		for _, g := range r.groups {
			if g.ProductID == p.ID {
				removed[g.ID] = true
				continue
			}
			keptGroups = append(keptGroups, g)
		}
		r.groups = keptGroups

		keptOptions := r.options[:0]
		for _, o := range r.options {
			if !removed[o.GroupID] {
				keptOptions = append(keptOptions, o)
			}
		}
		r.options = keptOptions
	}
	if replaceModifiers {
		kept := r.modifiers[:0]
		for _, m := range r.modifiers {
			if m.ProductID != p.ID {
				kept = append(kept, m)
			}
		}
		r.modifiers = kept
	}

	replacement := *p
	if !replaceGroups {
		replacement.VariantGroups = nil
	}
	if !replaceModifiers {
		replacement.Modifiers = nil
	}
	r.insertChildren(&replacement)
	return nil
}

func (r *fakeRepo) SetStatus(_ context.Context, id, businessID, status string, updatedAt time.Time) error {
	if p, ok := r.products[id]; ok && p.BusinessID == businessID {
		p.Status = status
		p.UpdatedAt = updatedAt
		r.products[id] = p
	}
	return nil
}

func (r *fakeRepo) SetAvailability(_ context.Context, id, businessID string, available bool, updatedAt time.Time) error {
	if p, ok := r.products[id]; ok && p.BusinessID == businessID {
		p.Available = available
		p.UpdatedAt = updatedAt
		r.products[id] = p
	}
	return nil
}

func (r *fakeRepo) ListVariantGroups(_ context.Context, productIDs []string) ([]model.VariantGroup, error) {
	wanted := map[string]bool{}
	for _, id := range productIDs {
		wanted[id] = true
	}
	out := []model.VariantGroup{}
	for _, g := range r.groups {
		if wanted[g.ProductID] {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *fakeRepo) ListVariantOptions(_ context.Context, groupIDs []string) ([]model.VariantOption, error) {
	wanted := map[string]bool{}
	for _, id := range groupIDs {
		wanted[id] = true
	}
	out := []model.VariantOption{}
	for _, o := range r.options {
		if wanted[o.GroupID] {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *fakeRepo) ListModifiers(_ context.Context, productIDs []string) ([]model.Modifier, error) {
	wanted := map[string]bool{}
	for _, id := range productIDs {
		wanted[id] = true
	}
	out := []model.Modifier{}
	for _, m := range r.modifiers {
		if wanted[m.ProductID] {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

type fakeCategoryRepo struct {
	categories map[string]model.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]model.Category{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) FindAll(_ context.Context, businessID string) ([]model.Category, error) {
	out := []model.Category{}
	for _, c := range r.categories {
		if c.BusinessID == businessID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id, businessID string) (*model.Category, error) {
	if c, ok := r.categories[id]; ok && c.BusinessID == businessID {
		row := c
		return &row, nil
	}
	return nil, nil
}

func (r *fakeCategoryRepo) FindByIDs(_ context.Context, ids []string) ([]model.Category, error) {
	out := []model.Category{}
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id, _ string) error {
	delete(r.categories, id)
	return nil
}

func newTestUseCase() (product.UseCase, *fakeRepo, *fakeCategoryRepo) {
	repo := newFakeRepo()
	catRepo := newFakeCategoryRepo()
	uc := NewProductUseCase(repo, catRepo, nil, nil, logger.NewNop())
	return uc, repo, catRepo
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestGenerateSKU(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	sku, err := uc.GenerateSKU(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1-POS-0001", sku)

	_, err = uc.CreateProduct(ctx, &dto.CreateProductInput{BusinessID: "1", Name: "Burger", BasePrice: 10})
	require.NoError(t, err)

	sku, err = uc.GenerateSKU(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1-POS-0002", sku)

	// Another business starts its own sequence.
	sku, err = uc.GenerateSKU(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "2-POS-0001", sku)
}

func TestCreateProduct_Defaults(t *testing.T) {
	uc, _, _ := newTestUseCase()

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		BusinessID: "1",
		Name:       "Burger",
		BasePrice:  10,
	})
	require.NoError(t, err)

	assert.Equal(t, "1-POS-0001", p.SKU)
	assert.Equal(t, model.ProductStatusActive, p.Status)
	assert.True(t, p.Available)
	assert.Equal(t, 10.0, p.BasePrice)
	assert.NotNil(t, p.VariantGroups)
	assert.Empty(t, p.VariantGroups)
	assert.NotNil(t, p.Modifiers)
	assert.Empty(t, p.Modifiers)
}

func TestCreateProduct_AggregateOrder(t *testing.T) {
	uc, _, _ := newTestUseCase()

	input := &dto.CreateProductInput{
		BusinessID: "1",
		Name:       "Pizza",
		BasePrice:  30,
		VariantGroups: []dto.VariantGroupInput{
			{
				Name:     "Size",
				Required: true,
				Options: []dto.VariantOptionInput{
					{Name: "Small", PriceAdjustment: -5},
					{Name: "Medium"},
					{Name: "Large", PriceAdjustment: 5},
				},
			},
			{
				Name:    "Crust",
				Options: []dto.VariantOptionInput{{Name: "Thin"}, {Name: "Thick", PriceAdjustment: 2}},
			},
		},
		Modifiers: []dto.ModifierInput{
			{Name: "Cheese", Addable: true, ExtraPrice: 3},
			{Name: "Onions", Removable: true},
		},
	}

	p, err := uc.CreateProduct(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, p.VariantGroups, 2)
	assert.Equal(t, "Size", p.VariantGroups[0].Name)
	assert.Equal(t, 0, p.VariantGroups[0].SortOrder)
	assert.True(t, p.VariantGroups[0].Required)
	assert.Equal(t, "Crust", p.VariantGroups[1].Name)
	assert.Equal(t, 1, p.VariantGroups[1].SortOrder)

	require.Len(t, p.VariantGroups[0].Options, 3)
	assert.Equal(t, "Small", p.VariantGroups[0].Options[0].Name)
	assert.Equal(t, -5.0, p.VariantGroups[0].Options[0].PriceAdjustment)
	assert.Equal(t, "Medium", p.VariantGroups[0].Options[1].Name)
	assert.Equal(t, "Large", p.VariantGroups[0].Options[2].Name)
	for j, o := range p.VariantGroups[0].Options {
		assert.Equal(t, j, o.SortOrder)
	}

	require.Len(t, p.Modifiers, 2)
	assert.Equal(t, "Cheese", p.Modifiers[0].Name)
	assert.Equal(t, 0, p.Modifiers[0].SortOrder)
	assert.Equal(t, "Onions", p.Modifiers[1].Name)
	assert.Equal(t, 1, p.Modifiers[1].SortOrder)
}

func TestListProducts_SortedAndScoped(t *testing.T) {
	uc, _, catRepo := newTestUseCase()
	ctx := context.Background()

	catRepo.categories["cat-1"] = model.Category{
		BaseModel:  model.BaseModel{ID: "cat-1"},
		BusinessID: "1",
		Name:       "Mains",
	}

	_, err := uc.CreateProduct(ctx, &dto.CreateProductInput{BusinessID: "1", Name: "Zaatar", BasePrice: 4})
	require.NoError(t, err)
	_, err = uc.CreateProduct(ctx, &dto.CreateProductInput{BusinessID: "1", Name: "Burger", BasePrice: 10, CategoryID: strPtr("cat-1")})
	require.NoError(t, err)
	_, err = uc.CreateProduct(ctx, &dto.CreateProductInput{BusinessID: "2", Name: "Alien dish", BasePrice: 99})
	require.NoError(t, err)

	products, err := uc.ListProducts(ctx, &dto.ProductFilters{BusinessID: "1"})
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "Burger", products[0].Name)
	assert.Equal(t, "Zaatar", products[1].Name)
	require.NotNil(t, products[0].CategoryName)
	assert.Equal(t, "Mains", *products[0].CategoryName)
	assert.Nil(t, products[1].CategoryName)
}

func TestGetProduct_TenantIsolation(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.CreateProduct(ctx, &dto.CreateProductInput{BusinessID: "1", Name: "Burger", BasePrice: 10})
	require.NoError(t, err)

	// Foreign business sees "not found", not "forbidden".
	p, err := uc.GetProduct(ctx, created.ID, "2")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = uc.GetProduct(ctx, created.ID, "1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Burger", p.Name)
}

func TestDeleteProduct_SoftDeleteAsymmetry(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.CreateProduct(ctx, &dto.CreateProductInput{BusinessID: "1", Name: "Burger", BasePrice: 10})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(ctx, created.ID, "1"))

	// Excluded from the list...
	products, err := uc.ListProducts(ctx, &dto.ProductFilters{BusinessID: "1"})
	require.NoError(t, err)
	assert.Empty(t, products)

	// ...but still fetchable by id, now with status=deleted.
	p, err := uc.GetProduct(ctx, created.ID, "1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, model.ProductStatusDeleted, p.Status)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	uc, _, _ := newTestUseCase()
	err := uc.DeleteProduct(context.Background(), "missing", "1")
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestUpdateProduct_PartialScalars(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.CreateProduct(ctx, &dto.CreateProductInput{BusinessID: "1", Name: "Burger", BasePrice: 10})
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:         created.ID,
		BusinessID: "1",
		BasePrice:  f64Ptr(12.5),
	})
	require.NoError(t, err)

	assert.Equal(t, 12.5, updated.BasePrice)
	assert.Equal(t, "Burger", updated.Name)
	// SKU is assigned once at creation and never regenerated.
	assert.Equal(t, created.SKU, updated.SKU)
}

func TestUpdateProduct_ReplaceOrPreserve(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		BusinessID: "1",
		Name:       "Pizza",
		BasePrice:  30,
		VariantGroups: []dto.VariantGroupInput{
			{Name: "Size", Options: []dto.VariantOptionInput{{Name: "Small"}, {Name: "Large"}}},
		},
		Modifiers: []dto.ModifierInput{{Name: "Cheese", Addable: true}},
	})
	require.NoError(t, err)

	// Omitting both collections preserves them.
	updated, err := uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:         created.ID,
		BusinessID: "1",
		Name:       strPtr("Pizza Deluxe"),
	})
	require.NoError(t, err)
	require.Len(t, updated.VariantGroups, 1)
	assert.Equal(t, "Size", updated.VariantGroups[0].Name)
	require.Len(t, updated.Modifiers, 1)

	// A present non-empty collection replaces wholesale.
	updated, err = uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:         created.ID,
		BusinessID: "1",
		VariantGroups: &[]dto.VariantGroupInput{
			{Name: "Dough", Options: []dto.VariantOptionInput{{Name: "Sourdough"}}},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.VariantGroups, 1)
	assert.Equal(t, "Dough", updated.VariantGroups[0].Name)
	require.Len(t, updated.VariantGroups[0].Options, 1)
	// Modifiers were absent from the input and survive untouched.
	require.Len(t, updated.Modifiers, 1)
	assert.Equal(t, "Cheese", updated.Modifiers[0].Name)

	// An explicitly empty collection removes everything.
	updated, err = uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:            created.ID,
		BusinessID:    "1",
		VariantGroups: &[]dto.VariantGroupInput{},
		Modifiers:     &[]dto.ModifierInput{},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.VariantGroups)
	assert.Empty(t, updated.Modifiers)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{ID: "missing", BusinessID: "1"})
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestToggleAvailability_OnlyAvailableChanges(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.CreateProduct(ctx, &dto.CreateProductInput{BusinessID: "1", Name: "Burger", BasePrice: 10})
	require.NoError(t, err)
	require.True(t, created.Available)

	updated, err := uc.ToggleAvailability(ctx, created.ID, "1", false)
	require.NoError(t, err)

	assert.False(t, updated.Available)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.BasePrice, updated.BasePrice)
	assert.Equal(t, created.SKU, updated.SKU)
	assert.Equal(t, model.ProductStatusActive, updated.Status)
}

func TestListProducts_SearchFallback(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, &dto.CreateProductInput{BusinessID: "1", Name: "Chicken Burger", BasePrice: 12})
	require.NoError(t, err)
	_, err = uc.CreateProduct(ctx, &dto.CreateProductInput{BusinessID: "1", Name: "Salad", BasePrice: 8})
	require.NoError(t, err)

	// No ES client wired: the query goes straight to the repository.
	products, err := uc.ListProducts(ctx, &dto.ProductFilters{BusinessID: "1", SearchQuery: "burger"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Chicken Burger", products[0].Name)
}

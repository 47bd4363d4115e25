package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sylohq/sylo-catalog-service/internal/auth"
	"github.com/sylohq/sylo-catalog-service/internal/product"
	"github.com/sylohq/sylo-catalog-service/internal/product/dto"
	"github.com/sylohq/sylo-catalog-service/pkg/httpx"
	"github.com/sylohq/sylo-catalog-service/pkg/logger"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

type createProductRequest struct {
	Name          *string                 `json:"name"`
	NameAr        *string                 `json:"name_ar"`
	Description   *string                 `json:"description"`
	CategoryID    *string                 `json:"category_id"`
	BasePrice     *float64                `json:"base_price"`
	ImageURL      *string                 `json:"image_url"`
	VariantGroups []dto.VariantGroupInput `json:"variant_groups"`
	Modifiers     []dto.ModifierInput     `json:"modifiers"`
}

type updateProductRequest struct {
	Name          *string                  `json:"name"`
	NameAr        *string                  `json:"name_ar"`
	Description   *string                  `json:"description"`
	CategoryID    *string                  `json:"category_id"`
	BasePrice     *float64                 `json:"base_price"`
	ImageURL      *string                  `json:"image_url"`
	Available     *bool                    `json:"available"`
	VariantGroups *[]dto.VariantGroupInput `json:"variant_groups"`
	Modifiers     *[]dto.ModifierInput     `json:"modifiers"`
}

type availabilityRequest struct {
	Available *bool `json:"available"`
}

// List serves GET /api/products, optionally filtered by ?q=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &dto.ProductFilters{
		BusinessID:  auth.GetBusinessID(r.Context()),
		SearchQuery: r.URL.Query().Get("q"),
	}

	products, err := h.uc.ListProducts(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		httpx.Internal(w)
		return
	}

	httpx.Success(w, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), chi.URLParam(r, "id"), auth.GetBusinessID(r.Context()))
	if err != nil {
		h.logger.Error("failed to get product", zap.Error(err))
		httpx.Internal(w)
		return
	}
	if p == nil {
		httpx.NotFound(w, "Product not found")
		return
	}

	httpx.Success(w, p)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == nil || *req.Name == "" || req.BasePrice == nil {
		httpx.BadRequest(w, "name and base_price are required")
		return
	}

	input := &dto.CreateProductInput{
		BusinessID:    auth.GetBusinessID(r.Context()),
		Name:          *req.Name,
		NameAr:        req.NameAr,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		BasePrice:     *req.BasePrice,
		ImageURL:      req.ImageURL,
		VariantGroups: req.VariantGroups,
		Modifiers:     req.Modifiers,
	}

	p, err := h.uc.CreateProduct(r.Context(), input)
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		httpx.Internal(w)
		return
	}

	httpx.Created(w, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.BadRequest(w, "Invalid request body")
		return
	}

	input := &dto.UpdateProductInput{
		ID:            chi.URLParam(r, "id"),
		BusinessID:    auth.GetBusinessID(r.Context()),
		Name:          req.Name,
		NameAr:        req.NameAr,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		BasePrice:     req.BasePrice,
		ImageURL:      req.ImageURL,
		Available:     req.Available,
		VariantGroups: req.VariantGroups,
		Modifiers:     req.Modifiers,
	}

	p, err := h.uc.UpdateProduct(r.Context(), input)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			httpx.NotFound(w, "Product not found")
			return
		}
		h.logger.Error("failed to update product", zap.Error(err))
		httpx.Internal(w)
		return
	}

	httpx.Success(w, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.uc.DeleteProduct(r.Context(), chi.URLParam(r, "id"), auth.GetBusinessID(r.Context()))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			httpx.NotFound(w, "Product not found")
			return
		}
		h.logger.Error("failed to delete product", zap.Error(err))
		httpx.Internal(w)
		return
	}

	httpx.Message(w, "Product deleted successfully")
}

func (h *ProductHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.BadRequest(w, "Invalid request body")
		return
	}
	if req.Available == nil {
		httpx.BadRequest(w, "available is required")
		return
	}

	p, err := h.uc.ToggleAvailability(r.Context(), chi.URLParam(r, "id"), auth.GetBusinessID(r.Context()), *req.Available)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			httpx.NotFound(w, "Product not found")
			return
		}
		h.logger.Error("failed to toggle availability", zap.Error(err))
		httpx.Internal(w)
		return
	}

	httpx.Success(w, p)
}

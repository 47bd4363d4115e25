package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sylohq/sylo-catalog-service/internal/auth"
	"github.com/sylohq/sylo-catalog-service/internal/category"
	"github.com/sylohq/sylo-catalog-service/internal/category/dto"
	"github.com/sylohq/sylo-catalog-service/pkg/httpx"
	"github.com/sylohq/sylo-catalog-service/pkg/logger"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

type createCategoryRequest struct {
	Name      string  `json:"name"`
	NameAr    *string `json:"name_ar"`
	SortOrder int     `json:"sort_order"`
}

type updateCategoryRequest struct {
	Name      *string `json:"name"`
	NameAr    *string `json:"name_ar"`
	SortOrder *int    `json:"sort_order"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.uc.ListCategories(r.Context(), auth.GetBusinessID(r.Context()))
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		httpx.Internal(w)
		return
	}

	httpx.Success(w, categories)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		httpx.BadRequest(w, "name is required")
		return
	}

	cat, err := h.uc.CreateCategory(r.Context(), &dto.CreateCategoryInput{
		BusinessID: auth.GetBusinessID(r.Context()),
		Name:       req.Name,
		NameAr:     req.NameAr,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		httpx.Internal(w)
		return
	}

	httpx.Created(w, cat)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.BadRequest(w, "Invalid request body")
		return
	}

	cat, err := h.uc.UpdateCategory(r.Context(), &dto.UpdateCategoryInput{
		ID:         chi.URLParam(r, "id"),
		BusinessID: auth.GetBusinessID(r.Context()),
		Name:       req.Name,
		NameAr:     req.NameAr,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			httpx.NotFound(w, "Category not found")
			return
		}
		h.logger.Error("failed to update category", zap.Error(err))
		httpx.Internal(w)
		return
	}

	httpx.Success(w, cat)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.uc.DeleteCategory(r.Context(), chi.URLParam(r, "id"), auth.GetBusinessID(r.Context()))
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			httpx.NotFound(w, "Category not found")
			return
		}
		h.logger.Error("failed to delete category", zap.Error(err))
		httpx.Internal(w)
		return
	}

	httpx.Message(w, "Category deleted successfully")
}

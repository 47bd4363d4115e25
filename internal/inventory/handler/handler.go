package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sylohq/sylo-catalog-service/internal/auth"
	"github.com/sylohq/sylo-catalog-service/internal/inventory"
	"github.com/sylohq/sylo-catalog-service/internal/inventory/dto"
	"github.com/sylohq/sylo-catalog-service/pkg/httpx"
	"github.com/sylohq/sylo-catalog-service/pkg/logger"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

type adjustRequest struct {
	ProductID       string   `json:"product_id"`
	VariantOptionID *string  `json:"variant_option_id"`
	QuantityChange  *float64 `json:"quantity_change"`
	Reason          string   `json:"reason"`
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &dto.InventoryFilters{
		BusinessID: auth.GetBusinessID(r.Context()),
		ProductID:  r.URL.Query().Get("product_id"),
		LowStock:   r.URL.Query().Get("low_stock") == "true",
	}

	items, err := h.uc.ListInventory(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list inventory", zap.Error(err))
		httpx.Internal(w)
		return
	}

	httpx.Success(w, items)
}

func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.BadRequest(w, "Invalid request body")
		return
	}
	if req.ProductID == "" || req.QuantityChange == nil {
		httpx.BadRequest(w, "product_id and quantity_change are required")
		return
	}

	inv, err := h.uc.AdjustInventory(r.Context(), &dto.AdjustInventoryInput{
		BusinessID:      auth.GetBusinessID(r.Context()),
		ProductID:       req.ProductID,
		VariantOptionID: req.VariantOptionID,
		QuantityChange:  *req.QuantityChange,
		Reason:          req.Reason,
		UserID:          auth.GetUserID(r.Context()),
	})
	if err != nil {
		if errors.Is(err, inventory.ErrInsufficientStock) {
			httpx.BadRequest(w, err.Error())
			return
		}
		h.logger.Error("failed to adjust inventory", zap.Error(err))
		httpx.Internal(w)
		return
	}

	httpx.Success(w, inv)
}

func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	filters := &dto.MovementFilters{
		BusinessID:   auth.GetBusinessID(r.Context()),
		ProductID:    r.URL.Query().Get("product_id"),
		MovementType: r.URL.Query().Get("movement_type"),
	}

	movements, err := h.uc.ListMovements(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list movements", zap.Error(err))
		httpx.Internal(w)
		return
	}

	httpx.Success(w, movements)
}

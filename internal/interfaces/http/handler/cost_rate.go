package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/wms/backend/internal/application/billing"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// CostRateHandler handles billing rate API endpoints
type CostRateHandler struct {
	BaseHandler
	rateService *billingapp.CostRateService
}

// NewCostRateHandler creates a new CostRateHandler
func NewCostRateHandler(rateService *billingapp.CostRateService) *CostRateHandler {
	return &CostRateHandler{rateService: rateService}
}

// RegisterRoutes registers all cost rate routes
func (h *CostRateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rates := rg.Group("/cost-rates")
	{
		rates.POST("", h.Create)
		rates.GET("", h.ListByWarehouse)
	}
}

// Create records a new effective-dated rate version, closing the previous
// open-ended one
func (h *CostRateHandler) Create(c *gin.Context) {
	var req dto.CreateCostRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	warehouseID, _ := uuid.Parse(req.WarehouseID)

	rate, err := h.rateService.Create(c.Request.Context(), billingapp.CreateRateInput{
		WarehouseID:   warehouseID,
		Category:      req.Category,
		Name:          req.Name,
		Value:         req.Value,
		UnitOfMeasure: req.UnitOfMeasure,
		EffectiveDate: req.EffectiveDate,
		EndDate:       req.EndDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rate)
}

// ListByWarehouse returns all rate versions for one warehouse
func (h *CostRateHandler) ListByWarehouse(c *gin.Context) {
	warehouseID, err := uuid.Parse(c.Query("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	rates, err := h.rateService.ListByWarehouse(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rates)
}

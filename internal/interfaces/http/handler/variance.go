package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	varianceapp "github.com/wms/backend/internal/application/variance"
	"github.com/wms/backend/internal/domain/variance"
	"github.com/wms/backend/internal/infrastructure/telemetry"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// VarianceHandler handles pallet variance API endpoints
type VarianceHandler struct {
	BaseHandler
	varianceService *varianceapp.VarianceService
	metrics         *telemetry.EngineMetrics
}

// NewVarianceHandler creates a new VarianceHandler
func NewVarianceHandler(varianceService *varianceapp.VarianceService, metrics *telemetry.EngineMetrics) *VarianceHandler {
	return &VarianceHandler{
		varianceService: varianceService,
		metrics:         metrics,
	}
}

// RegisterRoutes registers all variance routes
func (h *VarianceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	variances := rg.Group("/variances")
	{
		variances.POST("/detect", h.Detect)
		variances.GET("", h.List)
		variances.POST("/:id/resolve", h.Resolve)
	}
}

// Detect sweeps one warehouse for pallet count discrepancies at the as-of
// date, defaulting to now
func (h *VarianceHandler) Detect(c *gin.Context) {
	var req dto.DetectVariancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	warehouseID, _ := uuid.Parse(req.WarehouseID)
	asOf := time.Now().UTC()
	if req.AsOf != nil {
		asOf = req.AsOf.UTC()
	}

	result, err := h.varianceService.DetectWarehouseVariances(c.Request.Context(), warehouseID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		for i := 0; i < result.Pending; i++ {
			h.metrics.RecordVarianceDetected(c.Request.Context(), string(variance.StatusPending))
		}
		for i := 0; i < result.Detected-result.Pending; i++ {
			h.metrics.RecordVarianceDetected(c.Request.Context(), string(variance.StatusResolved))
		}
	}
	h.Success(c, result)
}

// List returns variance records matching the query filters
func (h *VarianceHandler) List(c *gin.Context) {
	req := dto.ListVariancesRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := variance.Filter{Filter: paginationFrom(req.ListRequest)}
	filter.WarehouseID, _ = parseOptionalUUID(req.WarehouseID)
	filter.SkuID, _ = parseOptionalUUID(req.SkuID)
	if req.Status != "" {
		status := variance.Status(req.Status)
		filter.Status = &status
	}
	filter.From = req.From
	filter.To = req.To

	items, total, err := h.varianceService.ListVariances(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Resolve records the investigated root cause of a pending variance
func (h *VarianceHandler) Resolve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid variance ID")
		return
	}

	var req dto.ResolveVarianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	record, err := h.varianceService.ResolveVariance(c.Request.Context(), id,
		variance.RootCause(req.RootCause), req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

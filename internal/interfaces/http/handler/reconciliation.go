package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/wms/backend/internal/application/billing"
	"github.com/wms/backend/internal/domain/billing"
	"github.com/wms/backend/internal/infrastructure/telemetry"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// ReconciliationHandler handles invoice reconciliation API endpoints
type ReconciliationHandler struct {
	BaseHandler
	reconciliationService *billingapp.ReconciliationService
	metrics               *telemetry.EngineMetrics
}

// NewReconciliationHandler creates a new ReconciliationHandler
func NewReconciliationHandler(reconciliationService *billingapp.ReconciliationService, metrics *telemetry.EngineMetrics) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconciliationService: reconciliationService,
		metrics:               metrics,
	}
}

// RegisterRoutes registers all reconciliation routes
func (h *ReconciliationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reconciliations := rg.Group("/reconciliations")
	{
		reconciliations.POST("", h.ReconcilePeriod)
		reconciliations.GET("", h.List)
		reconciliations.GET("/:id", h.Get)
		reconciliations.POST("/:id/review", h.StartReview)
		reconciliations.POST("/:id/resolve", h.ResolveDispute)
	}
}

// ReconcilePeriod classifies invoice lines against the recomputed storage
// cost of one warehouse and billing period
func (h *ReconciliationHandler) ReconcilePeriod(c *gin.Context) {
	var req dto.ReconcilePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	warehouseID, _ := uuid.Parse(req.WarehouseID)
	period := billing.PeriodForMonth(req.Year, time.Month(req.Month))

	lines := make([]billing.InvoiceLineItem, 0, len(req.Lines))
	for _, line := range req.Lines {
		lineWarehouseID, err := uuid.Parse(line.WarehouseID)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse ID on invoice line")
			return
		}
		lines = append(lines, billing.InvoiceLineItem{
			WarehouseID: lineWarehouseID,
			Category:    line.Category,
			Name:        line.Name,
			Quantity:    line.Quantity,
			UnitRate:    line.UnitRate,
			Amount:      line.Amount,
		})
	}

	result, err := h.reconciliationService.ReconcilePeriod(c.Request.Context(), warehouseID, period, lines)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordReconciledLines(c.Request.Context(), int64(len(result.Reconciliations)))
	}
	h.Success(c, result)
}

// List returns reconciliation results matching the query filters
func (h *ReconciliationHandler) List(c *gin.Context) {
	req := dto.ListReconciliationsRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := billing.ReconciliationFilter{Filter: paginationFrom(req.ListRequest)}
	filter.WarehouseID, _ = parseOptionalUUID(req.WarehouseID)
	if req.Status != "" {
		status := billing.ReconciliationStatus(req.Status)
		filter.Status = &status
	}
	if req.DisputeStatus != "" {
		disputeStatus := billing.DisputeStatus(req.DisputeStatus)
		filter.DisputeStatus = &disputeStatus
	}

	items, total, err := h.reconciliationService.ListReconciliations(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Get returns one reconciliation result by ID
func (h *ReconciliationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid reconciliation ID")
		return
	}

	reconciliation, err := h.reconciliationService.GetReconciliation(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reconciliation)
}

// StartReview moves an open dispute into review
func (h *ReconciliationHandler) StartReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid reconciliation ID")
		return
	}

	reconciliation, err := h.reconciliationService.StartReview(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reconciliation)
}

// ResolveDispute records the outcome of a reviewed dispute
func (h *ReconciliationHandler) ResolveDispute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid reconciliation ID")
		return
	}

	var req dto.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	reconciliation, err := h.reconciliationService.ResolveDispute(c.Request.Context(), id,
		billing.DisputeResolution(req.Resolution), req.CreditedAmount, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reconciliation)
}

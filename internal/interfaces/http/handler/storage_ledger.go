package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/wms/backend/internal/application/billing"
	"github.com/wms/backend/internal/domain/billing"
	"github.com/wms/backend/internal/infrastructure/telemetry"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// StorageLedgerHandler handles weekly storage snapshot API endpoints
type StorageLedgerHandler struct {
	BaseHandler
	ledgerService *billingapp.StorageLedgerService
	metrics       *telemetry.EngineMetrics
}

// NewStorageLedgerHandler creates a new StorageLedgerHandler
func NewStorageLedgerHandler(ledgerService *billingapp.StorageLedgerService, metrics *telemetry.EngineMetrics) *StorageLedgerHandler {
	return &StorageLedgerHandler{
		ledgerService: ledgerService,
		metrics:       metrics,
	}
}

// RegisterRoutes registers all storage ledger routes
func (h *StorageLedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledgerGroup := rg.Group("/storage-ledger")
	{
		ledgerGroup.POST("/generate", h.Generate)
		ledgerGroup.GET("", h.List)
	}
}

// Generate writes the weekly snapshots for the billing period ending on
// the 15th of the requested month
func (h *StorageLedgerHandler) Generate(c *gin.Context) {
	var req dto.GenerateStorageLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	warehouseID, err := parseOptionalUUID(req.WarehouseID)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	period := billing.PeriodForMonth(req.Year, time.Month(req.Month))

	started := time.Now()
	result, err := h.ledgerService.GenerateStorageLedger(c.Request.Context(), period, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		scope := "all"
		if warehouseID != nil {
			scope = "warehouse"
		}
		h.metrics.RecordLedgerRun(c.Request.Context(), scope,
			int64(result.Written), int64(result.Skipped), time.Since(started))
	}
	h.Success(c, gin.H{
		"period_start": period.Start,
		"period_end":   period.End,
		"result":       result,
	})
}

// List returns weekly snapshot rows matching the query filters
func (h *StorageLedgerHandler) List(c *gin.Context) {
	req := dto.ListStorageLedgerRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := billing.StorageLedgerFilter{Filter: paginationFrom(req.ListRequest)}
	filter.WarehouseID, _ = parseOptionalUUID(req.WarehouseID)
	filter.SkuID, _ = parseOptionalUUID(req.SkuID)
	filter.PeriodStart = req.From
	filter.PeriodEnd = req.To

	items, total, err := h.ledgerService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

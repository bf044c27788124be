package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/wms/backend/internal/application/inventory"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/ledger"
	"github.com/wms/backend/internal/infrastructure/telemetry"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// BalanceHandler handles derived balance API endpoints
type BalanceHandler struct {
	BaseHandler
	balanceService *inventoryapp.BalanceService
	metrics        *telemetry.EngineMetrics
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(balanceService *inventoryapp.BalanceService, metrics *telemetry.EngineMetrics) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
		metrics:        metrics,
	}
}

// RegisterRoutes registers all balance routes
func (h *BalanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	balances := rg.Group("/balances")
	{
		balances.POST("/recompute", h.Recompute)
		balances.GET("", h.List)
		balances.GET("/as-of", h.AsOf)
	}
}

// Recompute rederives the balance cache from the ledger, optionally for
// one warehouse
func (h *BalanceHandler) Recompute(c *gin.Context) {
	var req dto.RecomputeBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	warehouseID, err := parseOptionalUUID(req.WarehouseID)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	started := time.Now()
	result, err := h.balanceService.RecomputeBalances(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		scope := "all"
		if warehouseID != nil {
			scope = "warehouse"
		}
		h.metrics.RecordRecomputeRun(c.Request.Context(), scope,
			int64(result.AffectedKeys), result.DeletedZero, time.Since(started))
	}
	h.Success(c, result)
}

// List returns cached balances matching the query filters
func (h *BalanceHandler) List(c *gin.Context) {
	req := dto.ListBalancesRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := inventory.BalanceFilter{Filter: paginationFrom(req.ListRequest)}
	filter.WarehouseID, _ = parseOptionalUUID(req.WarehouseID)
	filter.SkuID, _ = parseOptionalUUID(req.SkuID)
	filter.BatchLot = strPtr(req.BatchLot)

	items, total, err := h.balanceService.ListBalances(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// AsOf replays one key's transactions up to an instant and returns the
// carton total
func (h *BalanceHandler) AsOf(c *gin.Context) {
	var req dto.BalanceAsOfRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	warehouseID, _ := uuid.Parse(req.WarehouseID)
	skuID, _ := uuid.Parse(req.SkuID)
	batchLot := req.BatchLot
	if batchLot == "" {
		batchLot = ledger.DefaultBatchLot
	}

	cartons, err := h.balanceService.BalanceAsOf(c.Request.Context(),
		ledger.Key{WarehouseID: warehouseID, SkuID: skuID, BatchLot: batchLot}, req.AsOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"warehouse_id": warehouseID,
		"sku_id":       skuID,
		"batch_lot":    batchLot,
		"as_of":        req.AsOf,
		"cartons":      cartons,
	})
}

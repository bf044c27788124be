package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/wms/backend/internal/application/ledger"
	"github.com/wms/backend/internal/domain/ledger"
	"github.com/wms/backend/internal/infrastructure/telemetry"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// TransactionHandler handles inventory ledger API endpoints
type TransactionHandler struct {
	BaseHandler
	transactionService *ledgerapp.TransactionService
	metrics            *telemetry.EngineMetrics
}

// NewTransactionHandler creates a new TransactionHandler. Metrics may be
// nil when telemetry is disabled.
func NewTransactionHandler(transactionService *ledgerapp.TransactionService, metrics *telemetry.EngineMetrics) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		metrics:            metrics,
	}
}

// RegisterRoutes registers all ledger transaction routes
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.Append)
		transactions.GET("", h.List)
		transactions.GET("/:id", h.Get)
	}
}

// Append records one movement on the append-only ledger
func (h *TransactionHandler) Append(c *gin.Context) {
	var req dto.AppendTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	warehouseID, _ := uuid.Parse(req.WarehouseID)
	skuID, _ := uuid.Parse(req.SkuID)

	tx, err := h.transactionService.Append(c.Request.Context(), ledgerapp.AppendTransactionInput{
		WarehouseID:     warehouseID,
		SkuID:           skuID,
		BatchLot:        req.BatchLot,
		Type:            ledger.TransactionType(req.Type),
		CartonsIn:       req.CartonsIn,
		CartonsOut:      req.CartonsOut,
		PalletsIn:       req.PalletsIn,
		PalletsOut:      req.PalletsOut,
		TransactionDate: req.TransactionDate,
		Reference:       req.Reference,
		Notes:           req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordTransactionAppended(c.Request.Context(), tx.Type.String())
	}
	h.Created(c, tx)
}

// List returns ledger transactions matching the query filters
func (h *TransactionHandler) List(c *gin.Context) {
	req := dto.ListTransactionsRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := ledger.TransactionFilter{Filter: paginationFrom(req.ListRequest)}
	filter.WarehouseID, _ = parseOptionalUUID(req.WarehouseID)
	filter.SkuID, _ = parseOptionalUUID(req.SkuID)
	filter.BatchLot = strPtr(req.BatchLot)
	if req.Type != "" {
		txType := ledger.TransactionType(req.Type)
		filter.Type = &txType
	}
	filter.From = req.From
	filter.To = req.To

	items, total, err := h.transactionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Get returns one ledger transaction by ID
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.transactionService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tx)
}

package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/wms/backend/internal/application/catalog"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// SkuHandler handles SKU reference data API endpoints
type SkuHandler struct {
	BaseHandler
	skuService *catalogapp.SkuService
}

// NewSkuHandler creates a new SkuHandler
func NewSkuHandler(skuService *catalogapp.SkuService) *SkuHandler {
	return &SkuHandler{skuService: skuService}
}

// RegisterRoutes registers all SKU routes
func (h *SkuHandler) RegisterRoutes(rg *gin.RouterGroup) {
	skus := rg.Group("/skus")
	{
		skus.POST("", h.Create)
		skus.GET("", h.List)
		skus.GET("/:id", h.Get)
	}
}

// Create registers a SKU with a unique code
func (h *SkuHandler) Create(c *gin.Context) {
	var req dto.CreateSkuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	sku, err := h.skuService.Create(c.Request.Context(), req.Code, req.Description, req.UnitsPerCarton)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sku)
}

// List returns SKUs with pagination
func (h *SkuHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := paginationFrom(req)
	items, total, err := h.skuService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Get returns one SKU by ID
func (h *SkuHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid SKU ID")
		return
	}

	sku, err := h.skuService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sku)
}

package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/wms/backend/internal/application/inventory"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// ConfigHandler handles packing configuration API endpoints
type ConfigHandler struct {
	BaseHandler
	configService *inventoryapp.ConfigService
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(configService *inventoryapp.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// RegisterRoutes registers all packing configuration routes
func (h *ConfigHandler) RegisterRoutes(rg *gin.RouterGroup) {
	configs := rg.Group("/configs")
	{
		configs.POST("", h.Create)
		configs.GET("", h.History)
		configs.GET("/active", h.Active)
	}
}

// Create records a new effective-dated configuration version, closing the
// previous open-ended one
func (h *ConfigHandler) Create(c *gin.Context) {
	var req dto.CreateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	warehouseID, _ := uuid.Parse(req.WarehouseID)
	skuID, _ := uuid.Parse(req.SkuID)

	cfg, err := h.configService.Create(c.Request.Context(), inventoryapp.CreateConfigInput{
		WarehouseID:              warehouseID,
		SkuID:                    skuID,
		StorageCartonsPerPallet:  req.StorageCartonsPerPallet,
		ShippingCartonsPerPallet: req.ShippingCartonsPerPallet,
		EffectiveDate:            req.EffectiveDate,
		EndDate:                  req.EndDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, cfg)
}

// History returns all configuration versions for a pair, oldest first
func (h *ConfigHandler) History(c *gin.Context) {
	var req dto.ConfigHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	warehouseID, _ := uuid.Parse(req.WarehouseID)
	skuID, _ := uuid.Parse(req.SkuID)

	versions, err := h.configService.History(c.Request.Context(), warehouseID, skuID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, versions)
}

// Active returns the configuration version covering the given instant, or
// null when none does
func (h *ConfigHandler) Active(c *gin.Context) {
	var req dto.ConfigActiveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	warehouseID, _ := uuid.Parse(req.WarehouseID)
	skuID, _ := uuid.Parse(req.SkuID)
	at := time.Now().UTC()
	if req.At != nil {
		at = req.At.UTC()
	}

	cfg, err := h.configService.ActiveAt(c.Request.Context(), warehouseID, skuID, at)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cfg)
}

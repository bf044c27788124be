package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormWarehouseSkuConfigRepository implements inventory.WarehouseSkuConfigRepository using GORM
type GormWarehouseSkuConfigRepository struct {
	db *gorm.DB
}

// NewGormWarehouseSkuConfigRepository creates a new GormWarehouseSkuConfigRepository
func NewGormWarehouseSkuConfigRepository(db *gorm.DB) *GormWarehouseSkuConfigRepository {
	return &GormWarehouseSkuConfigRepository{db: db}
}

// Save creates or updates a packing config
func (r *GormWarehouseSkuConfigRepository) Save(ctx context.Context, config *inventory.WarehouseSkuConfig) error {
	return r.db.WithContext(ctx).Save(config).Error
}

// FindByPair returns all configs for a (warehouse, SKU) pair ordered by
// effective date ascending
func (r *GormWarehouseSkuConfigRepository) FindByPair(ctx context.Context, warehouseID, skuID uuid.UUID) ([]inventory.WarehouseSkuConfig, error) {
	var configs []inventory.WarehouseSkuConfig
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND sku_id = ?", warehouseID, skuID).
		Order("effective_date ASC").
		Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// FindActiveAt returns the config active at the given instant: the latest
// effective date not after the instant whose end date is unset or not before
// it. Returns (nil, nil) when none covers the instant.
func (r *GormWarehouseSkuConfigRepository) FindActiveAt(ctx context.Context, warehouseID, skuID uuid.UUID, instant time.Time) (*inventory.WarehouseSkuConfig, error) {
	var config inventory.WarehouseSkuConfig
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND sku_id = ?", warehouseID, skuID).
		Where("effective_date <= ?", instant).
		Where("end_date IS NULL OR end_date >= ?", instant).
		Order("effective_date DESC").
		First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

// Ensure GormWarehouseSkuConfigRepository implements WarehouseSkuConfigRepository
var _ inventory.WarehouseSkuConfigRepository = (*GormWarehouseSkuConfigRepository)(nil)

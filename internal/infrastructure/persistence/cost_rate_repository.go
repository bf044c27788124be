package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/billing"
	"gorm.io/gorm"
)

// GormCostRateRepository implements billing.CostRateRepository using GORM
type GormCostRateRepository struct {
	db *gorm.DB
}

// NewGormCostRateRepository creates a new GormCostRateRepository
func NewGormCostRateRepository(db *gorm.DB) *GormCostRateRepository {
	return &GormCostRateRepository{db: db}
}

// Save creates or updates a cost rate
func (r *GormCostRateRepository) Save(ctx context.Context, rate *billing.CostRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

// FindByName returns all rates for (warehouse, category, name) ordered by
// effective date ascending
func (r *GormCostRateRepository) FindByName(ctx context.Context, warehouseID uuid.UUID, category, name string) ([]billing.CostRate, error) {
	var rates []billing.CostRate
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND category = ? AND name = ?", warehouseID, category, name).
		Order("effective_date ASC").
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// FindActiveAt returns the rate active at the given instant, selected the
// same way as packing config: latest effective date not after the instant
// whose end date is unset or not before it. Returns (nil, nil) when none
// covers the instant.
func (r *GormCostRateRepository) FindActiveAt(ctx context.Context, warehouseID uuid.UUID, category, name string, instant time.Time) (*billing.CostRate, error) {
	var rate billing.CostRate
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND category = ? AND name = ?", warehouseID, category, name).
		Where("effective_date <= ?", instant).
		Where("end_date IS NULL OR end_date >= ?", instant).
		Order("effective_date DESC").
		First(&rate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

// FindByWarehouse returns all rates for a warehouse
func (r *GormCostRateRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]billing.CostRate, error) {
	var rates []billing.CostRate
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("category, name, effective_date ASC").
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// Ensure GormCostRateRepository implements CostRateRepository
var _ billing.CostRateRepository = (*GormCostRateRepository)(nil)

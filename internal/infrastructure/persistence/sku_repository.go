package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSkuRepository implements catalog.SkuRepository using GORM
type GormSkuRepository struct {
	db *gorm.DB
}

// NewGormSkuRepository creates a new GormSkuRepository
func NewGormSkuRepository(db *gorm.DB) *GormSkuRepository {
	return &GormSkuRepository{db: db}
}

// Save creates or updates a SKU
func (r *GormSkuRepository) Save(ctx context.Context, sku *catalog.Sku) error {
	return r.db.WithContext(ctx).Save(sku).Error
}

// FindByID finds a SKU by its ID, returning (nil, nil) when absent
func (r *GormSkuRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Sku, error) {
	var sku catalog.Sku
	if err := r.db.WithContext(ctx).First(&sku, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sku, nil
}

// FindByCode finds a SKU by its code, returning (nil, nil) when absent
func (r *GormSkuRepository) FindByCode(ctx context.Context, code string) (*catalog.Sku, error) {
	var sku catalog.Sku
	if err := r.db.WithContext(ctx).First(&sku, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sku, nil
}

// FindAll finds all SKUs matching the filter
func (r *GormSkuRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Sku, error) {
	var skus []catalog.Sku
	query := r.db.WithContext(ctx).Model(&catalog.Sku{}).
		Offset(filter.Offset()).Limit(filter.Limit())

	orderBy := ValidateSortField(filter.OrderBy, CatalogSortFields, "code")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&skus).Error; err != nil {
		return nil, err
	}
	return skus, nil
}

// Count counts all SKUs
func (r *GormSkuRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Sku{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormSkuRepository implements SkuRepository
var _ catalog.SkuRepository = (*GormSkuRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/variance"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPalletVarianceRepository implements variance.PalletVarianceRepository using GORM
type GormPalletVarianceRepository struct {
	db *gorm.DB
}

// NewGormPalletVarianceRepository creates a new GormPalletVarianceRepository
func NewGormPalletVarianceRepository(db *gorm.DB) *GormPalletVarianceRepository {
	return &GormPalletVarianceRepository{db: db}
}

// Upsert writes a detection keyed by (warehouse, SKU, batch lot, report
// date) so re-running detection for the same day refreshes the row
func (r *GormPalletVarianceRepository) Upsert(ctx context.Context, pv *variance.PalletVariance) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "warehouse_id"},
			{Name: "sku_id"},
			{Name: "batch_lot"},
			{Name: "report_date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"reported_pallets",
			"system_pallets",
			"variance_amount",
			"variance_percentage",
			"status",
			"root_cause",
			"resolution_notes",
			"resolved_at",
			"updated_at",
		}),
	}).Create(pv).Error
}

// Save updates an existing variance record
func (r *GormPalletVarianceRepository) Save(ctx context.Context, pv *variance.PalletVariance) error {
	return r.db.WithContext(ctx).Save(pv).Error
}

// FindByID finds a variance by ID, returning (nil, nil) when absent
func (r *GormPalletVarianceRepository) FindByID(ctx context.Context, id uuid.UUID) (*variance.PalletVariance, error) {
	var pv variance.PalletVariance
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pv, nil
}

// FindAll returns variances matching the filter, newest report first by default
func (r *GormPalletVarianceRepository) FindAll(ctx context.Context, filter variance.Filter) ([]variance.PalletVariance, error) {
	var pvs []variance.PalletVariance
	query := r.applyFilter(r.db.WithContext(ctx).Model(&variance.PalletVariance{}), filter)

	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	orderBy := ValidateSortField(filter.OrderBy, VarianceSortFields, "report_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&pvs).Error; err != nil {
		return nil, err
	}
	return pvs, nil
}

// Count returns the number of variances matching the filter
func (r *GormPalletVarianceRepository) Count(ctx context.Context, filter variance.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&variance.PalletVariance{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPendingVariances reports how many detections still await review.
// Feeds the pending-variance gauge.
func (r *GormPalletVarianceRepository) CountPendingVariances(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&variance.PalletVariance{}).
		Where("status = ?", variance.StatusPending).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies the filter conditions without pagination or ordering
func (r *GormPalletVarianceRepository) applyFilter(query *gorm.DB, filter variance.Filter) *gorm.DB {
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.SkuID != nil {
		query = query.Where("sku_id = ?", *filter.SkuID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("report_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("report_date <= ?", *filter.To)
	}
	return query
}

// Ensure GormPalletVarianceRepository implements PalletVarianceRepository
var _ variance.PalletVarianceRepository = (*GormPalletVarianceRepository)(nil)

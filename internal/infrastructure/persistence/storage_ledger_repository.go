package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/billing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStorageLedgerRepository implements billing.StorageLedgerRepository using GORM
type GormStorageLedgerRepository struct {
	db *gorm.DB
}

// NewGormStorageLedgerRepository creates a new GormStorageLedgerRepository
func NewGormStorageLedgerRepository(db *gorm.DB) *GormStorageLedgerRepository {
	return &GormStorageLedgerRepository{db: db}
}

// Upsert writes the entry keyed by (week-ending Monday, warehouse, SKU,
// batch lot) so regenerating a period overwrites instead of duplicating
func (r *GormStorageLedgerRepository) Upsert(ctx context.Context, entry *billing.StorageLedgerEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "week_ending_monday"},
			{Name: "warehouse_id"},
			{Name: "sku_id"},
			{Name: "batch_lot"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"cartons_end_of_monday",
			"storage_pallets_charged",
			"applicable_weekly_rate",
			"calculated_weekly_cost",
			"billing_period_start",
			"billing_period_end",
			"updated_at",
		}),
	}).Create(entry).Error
}

// FindByPeriod returns entries whose week-ending Monday lies within
// [start, end], optionally restricted to one warehouse
func (r *GormStorageLedgerRepository) FindByPeriod(ctx context.Context, warehouseID *uuid.UUID, start, end time.Time) ([]billing.StorageLedgerEntry, error) {
	query := r.db.WithContext(ctx).
		Where("week_ending_monday >= ? AND week_ending_monday <= ?", start, end).
		Order("week_ending_monday ASC, warehouse_id, sku_id, batch_lot")
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}

	var entries []billing.StorageLedgerEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SumCostForPeriod totals the calculated weekly cost over [start, end] for
// one warehouse
func (r *GormStorageLedgerRepository) SumCostForPeriod(ctx context.Context, warehouseID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&billing.StorageLedgerEntry{}).
		Select("SUM(calculated_weekly_cost)").
		Where("warehouse_id = ? AND week_ending_monday >= ? AND week_ending_monday <= ?", warehouseID, start, end).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// FindAll returns entries matching the filter
func (r *GormStorageLedgerRepository) FindAll(ctx context.Context, filter billing.StorageLedgerFilter) ([]billing.StorageLedgerEntry, error) {
	var entries []billing.StorageLedgerEntry
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.StorageLedgerEntry{}), filter)

	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	orderBy := ValidateSortField(filter.OrderBy, StorageLedgerSortFields, "week_ending_monday")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of entries matching the filter
func (r *GormStorageLedgerRepository) Count(ctx context.Context, filter billing.StorageLedgerFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.StorageLedgerEntry{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies the filter conditions without pagination or ordering
func (r *GormStorageLedgerRepository) applyFilter(query *gorm.DB, filter billing.StorageLedgerFilter) *gorm.DB {
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.SkuID != nil {
		query = query.Where("sku_id = ?", *filter.SkuID)
	}
	if filter.PeriodStart != nil {
		query = query.Where("week_ending_monday >= ?", *filter.PeriodStart)
	}
	if filter.PeriodEnd != nil {
		query = query.Where("week_ending_monday <= ?", *filter.PeriodEnd)
	}
	return query
}

// Ensure GormStorageLedgerRepository implements StorageLedgerRepository
var _ billing.StorageLedgerRepository = (*GormStorageLedgerRepository)(nil)

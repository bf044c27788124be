package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/ledger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBalanceRepository implements inventory.InventoryBalanceRepository using GORM
type GormBalanceRepository struct {
	db *gorm.DB
}

// NewGormBalanceRepository creates a new GormBalanceRepository
func NewGormBalanceRepository(db *gorm.DB) *GormBalanceRepository {
	return &GormBalanceRepository{db: db}
}

// Upsert writes the balance row keyed by (warehouse, SKU, batch lot)
func (r *GormBalanceRepository) Upsert(ctx context.Context, balance *inventory.InventoryBalance) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "warehouse_id"},
			{Name: "sku_id"},
			{Name: "batch_lot"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_cartons",
			"current_pallets",
			"current_units",
			"last_transaction_date",
			"updated_at",
		}),
	}).Create(balance).Error
}

// FindByKey returns the balance for a ledger key, or (nil, nil) when absent
func (r *GormBalanceRepository) FindByKey(ctx context.Context, key ledger.Key) (*inventory.InventoryBalance, error) {
	var balance inventory.InventoryBalance
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND sku_id = ? AND batch_lot = ?", key.WarehouseID, key.SkuID, key.BatchLot).
		First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &balance, nil
}

// FindPositive returns all balances holding cartons, optionally for one warehouse
func (r *GormBalanceRepository) FindPositive(ctx context.Context, warehouseID *uuid.UUID) ([]inventory.InventoryBalance, error) {
	query := r.db.WithContext(ctx).
		Where("current_cartons > 0").
		Order("warehouse_id, sku_id, batch_lot")
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}

	var balances []inventory.InventoryBalance
	if err := query.Find(&balances).Error; err != nil {
		return nil, err
	}
	return balances, nil
}

// FindAll returns balances matching the filter
func (r *GormBalanceRepository) FindAll(ctx context.Context, filter inventory.BalanceFilter) ([]inventory.InventoryBalance, error) {
	var balances []inventory.InventoryBalance
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.InventoryBalance{}), filter)

	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	orderBy := ValidateSortField(filter.OrderBy, BalanceSortFields, "last_transaction_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&balances).Error; err != nil {
		return nil, err
	}
	return balances, nil
}

// Count returns the number of balances matching the filter
func (r *GormBalanceRepository) Count(ctx context.Context, filter inventory.BalanceFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.InventoryBalance{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteZeroBalances removes every balance row whose carton total is exactly
// zero, optionally restricted to one warehouse
func (r *GormBalanceRepository) DeleteZeroBalances(ctx context.Context, warehouseID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Where("current_cartons = 0")
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}

	result := query.Delete(&inventory.InventoryBalance{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// applyFilter applies the filter conditions without pagination or ordering
func (r *GormBalanceRepository) applyFilter(query *gorm.DB, filter inventory.BalanceFilter) *gorm.DB {
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.SkuID != nil {
		query = query.Where("sku_id = ?", *filter.SkuID)
	}
	if filter.BatchLot != nil {
		query = query.Where("batch_lot = ?", *filter.BatchLot)
	}
	return query
}

// Ensure GormBalanceRepository implements InventoryBalanceRepository
var _ inventory.InventoryBalanceRepository = (*GormBalanceRepository)(nil)

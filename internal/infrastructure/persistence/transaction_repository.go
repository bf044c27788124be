package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM.
// The ledger is append-only: this repository never updates or deletes rows.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Append persists a new ledger transaction
func (r *GormTransactionRepository) Append(ctx context.Context, tx *ledger.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// FindByID finds a transaction by its ID, returning (nil, nil) when absent
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var tx ledger.Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}

// FindByKey returns all transactions for a key ordered by transaction date ascending
func (r *GormTransactionRepository) FindByKey(ctx context.Context, key ledger.Key) ([]ledger.Transaction, error) {
	var txs []ledger.Transaction
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND sku_id = ? AND batch_lot = ?", key.WarehouseID, key.SkuID, key.BatchLot).
		Order("transaction_date ASC, created_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByKeyUntil returns all transactions for a key dated at or before the
// cutoff, ordered by transaction date ascending
func (r *GormTransactionRepository) FindByKeyUntil(ctx context.Context, key ledger.Key, until time.Time) ([]ledger.Transaction, error) {
	var txs []ledger.Transaction
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND sku_id = ? AND batch_lot = ? AND transaction_date <= ?",
			key.WarehouseID, key.SkuID, key.BatchLot, until).
		Order("transaction_date ASC, created_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// DistinctKeys enumerates the distinct (warehouse, SKU, batch lot) triples in
// the ledger, optionally restricted to one warehouse
func (r *GormTransactionRepository) DistinctKeys(ctx context.Context, warehouseID *uuid.UUID) ([]ledger.Key, error) {
	query := r.db.WithContext(ctx).
		Model(&ledger.Transaction{}).
		Distinct("warehouse_id", "sku_id", "batch_lot").
		Order("warehouse_id, sku_id, batch_lot")
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}

	var keys []ledger.Key
	if err := query.Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// FindAll returns transactions matching the filter, newest first by default
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	var txs []ledger.Transaction
	query := r.applyFilter(r.db.WithContext(ctx).Model(&ledger.Transaction{}), filter)

	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	orderBy := ValidateSortField(filter.OrderBy, TransactionSortFields, "transaction_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Count returns the number of transactions matching the filter
func (r *GormTransactionRepository) Count(ctx context.Context, filter ledger.TransactionFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&ledger.Transaction{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies the filter conditions without pagination or ordering
func (r *GormTransactionRepository) applyFilter(query *gorm.DB, filter ledger.TransactionFilter) *gorm.DB {
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.SkuID != nil {
		query = query.Where("sku_id = ?", *filter.SkuID)
	}
	if filter.BatchLot != nil {
		query = query.Where("batch_lot = ?", *filter.BatchLot)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.From != nil {
		query = query.Where("transaction_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("transaction_date <= ?", *filter.To)
	}
	return query
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)

package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// StorageLedgerEntry is one weekly storage snapshot: the carton balance of
// one (warehouse, SKU, batch lot) key as of a Monday inside a billing
// period, with the pallet charge derived from it. Natural key =
// (week-ending Monday, warehouse, SKU, batch lot); regeneration upserts so
// re-running a period is idempotent.
type StorageLedgerEntry struct {
	shared.BaseEntity
	WeekEndingMonday      time.Time       `gorm:"not null;uniqueIndex:idx_ledger_week,priority:1"`
	WarehouseID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_week,priority:2"`
	SkuID                 uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_week,priority:3"`
	BatchLot              string          `gorm:"type:varchar(100);not null;default:'NONE';uniqueIndex:idx_ledger_week,priority:4"`
	CartonsEndOfMonday    int64           `gorm:"not null;default:0"`
	StoragePalletsCharged int64           `gorm:"not null;default:0"`
	ApplicableWeeklyRate  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CalculatedWeeklyCost  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BillingPeriodStart    time.Time       `gorm:"not null"`
	BillingPeriodEnd      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StorageLedgerEntry) TableName() string {
	return "storage_ledger_entries"
}

// StorageLedgerFilter holds query options for listing ledger entries
type StorageLedgerFilter struct {
	shared.Filter
	WarehouseID *uuid.UUID
	SkuID       *uuid.UUID
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// StorageLedgerRepository is the persistence contract for weekly storage
// snapshots
type StorageLedgerRepository interface {
	// Upsert writes the entry by natural key
	Upsert(ctx context.Context, entry *StorageLedgerEntry) error

	// FindByPeriod returns entries whose week-ending Monday lies within
	// [start, end], optionally restricted to one warehouse, ordered by
	// week-ending Monday ascending
	FindByPeriod(ctx context.Context, warehouseID *uuid.UUID, start, end time.Time) ([]StorageLedgerEntry, error)

	// SumCostForPeriod totals the calculated weekly cost over [start, end]
	// for one warehouse
	SumCostForPeriod(ctx context.Context, warehouseID uuid.UUID, start, end time.Time) (decimal.Decimal, error)

	// FindAll returns entries matching the filter
	FindAll(ctx context.Context, filter StorageLedgerFilter) ([]StorageLedgerEntry, error)

	// Count returns the number of entries matching the filter
	Count(ctx context.Context, filter StorageLedgerFilter) (int64, error)
}

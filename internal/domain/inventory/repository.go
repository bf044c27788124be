package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/ledger"
	"github.com/wms/backend/internal/domain/shared"
)

// BalanceFilter holds query options for listing inventory balances
type BalanceFilter struct {
	shared.Filter
	WarehouseID *uuid.UUID
	SkuID       *uuid.UUID
	BatchLot    *string
}

// InventoryBalanceRepository is the persistence contract for the derived
// balance cache. Upsert keys on (warehouse, SKU, batch lot) so that
// recomputation overwrites rather than duplicates.
type InventoryBalanceRepository interface {
	// Upsert writes the balance row by natural key
	Upsert(ctx context.Context, balance *InventoryBalance) error

	// FindByKey returns the balance for a ledger key, or (nil, nil) when
	// absent
	FindByKey(ctx context.Context, key ledger.Key) (*InventoryBalance, error)

	// FindPositive returns all balances with current cartons > 0,
	// optionally restricted to one warehouse
	FindPositive(ctx context.Context, warehouseID *uuid.UUID) ([]InventoryBalance, error)

	// FindAll returns balances matching the filter
	FindAll(ctx context.Context, filter BalanceFilter) ([]InventoryBalance, error)

	// Count returns the number of balances matching the filter
	Count(ctx context.Context, filter BalanceFilter) (int64, error)

	// DeleteZeroBalances removes every balance row whose carton total is
	// exactly zero, optionally restricted to one warehouse. Returns the
	// number of rows removed.
	DeleteZeroBalances(ctx context.Context, warehouseID *uuid.UUID) (int64, error)
}

// WarehouseSkuConfigRepository is the persistence contract for
// effective-dated packing configuration
type WarehouseSkuConfigRepository interface {
	// Save persists a packing config
	Save(ctx context.Context, config *WarehouseSkuConfig) error

	// FindByPair returns all configs for a (warehouse, SKU) pair ordered by
	// effective date ascending
	FindByPair(ctx context.Context, warehouseID, skuID uuid.UUID) ([]WarehouseSkuConfig, error)

	// FindActiveAt returns the config active at the given instant, or
	// (nil, nil) when none covers it
	FindActiveAt(ctx context.Context, warehouseID, skuID uuid.UUID, instant time.Time) (*WarehouseSkuConfig, error)
}

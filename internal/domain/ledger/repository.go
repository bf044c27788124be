package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// TransactionFilter holds query options for listing ledger transactions
type TransactionFilter struct {
	shared.Filter
	WarehouseID *uuid.UUID
	SkuID       *uuid.UUID
	BatchLot    *string
	Type        *TransactionType
	From        *time.Time
	To          *time.Time
}

// TransactionRepository is the persistence contract for the append-only
// ledger. Transactions are only ever appended; there is no update or delete.
type TransactionRepository interface {
	// Append persists a new ledger transaction
	Append(ctx context.Context, tx *Transaction) error

	// FindByID returns a transaction by ID, or (nil, nil) when absent
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// FindByKey returns all transactions for a key ordered by transaction
	// date ascending
	FindByKey(ctx context.Context, key Key) ([]Transaction, error)

	// FindByKeyUntil returns all transactions for a key with transaction
	// date <= until, ordered by transaction date ascending
	FindByKeyUntil(ctx context.Context, key Key, until time.Time) ([]Transaction, error)

	// DistinctKeys enumerates the distinct (warehouse, SKU, batch lot)
	// triples appearing in the ledger, optionally restricted to one
	// warehouse
	DistinctKeys(ctx context.Context, warehouseID *uuid.UUID) ([]Key, error)

	// FindAll returns transactions matching the filter, newest first
	FindAll(ctx context.Context, filter TransactionFilter) ([]Transaction, error)

	// Count returns the number of transactions matching the filter
	Count(ctx context.Context, filter TransactionFilter) (int64, error)
}

package variance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// Filter holds query options for listing pallet variances
type Filter struct {
	shared.Filter
	WarehouseID *uuid.UUID
	SkuID       *uuid.UUID
	Status      *Status
	From        *time.Time
	To          *time.Time
}

// PalletVarianceRepository is the persistence contract for variance
// records. Upsert keys on (warehouse, SKU, batch lot, report date) so a
// re-run of detection for the same date overwrites instead of duplicating.
type PalletVarianceRepository interface {
	// Upsert writes the variance by natural key
	Upsert(ctx context.Context, variance *PalletVariance) error

	// Save persists changes to an existing variance (resolution updates)
	Save(ctx context.Context, variance *PalletVariance) error

	// FindByID returns a variance by ID, or (nil, nil) when absent
	FindByID(ctx context.Context, id uuid.UUID) (*PalletVariance, error)

	// FindAll returns variances matching the filter, newest report first
	FindAll(ctx context.Context, filter Filter) ([]PalletVariance, error)

	// Count returns the number of variances matching the filter
	Count(ctx context.Context, filter Filter) (int64, error)
}

package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// Cost categories used by the rate table
const (
	// CostCategoryStorage covers recurring storage charges
	CostCategoryStorage = "Storage"
	// CostCategoryHandling covers inbound/outbound handling charges
	CostCategoryHandling = "Handling"
)

// DefaultStorageRateName is the rate the snapshot generator looks up for
// weekly pallet storage. Configurable via the billing config section.
const DefaultStorageRateName = "Pallet Storage Weekly"

// CostRate is an effective-dated, per-warehouse price for one named cost.
// Selection at an instant follows the same rule as packing config: latest
// effective date not after the instant, end date unset or not before it.
type CostRate struct {
	shared.BaseEntity
	WarehouseID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_rate_lookup,priority:1"`
	Category      string          `gorm:"type:varchar(50);not null;index:idx_rate_lookup,priority:2"`
	Name          string          `gorm:"type:varchar(100);not null;index:idx_rate_lookup,priority:3"`
	Value         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitOfMeasure string          `gorm:"type:varchar(50)"`
	EffectiveDate time.Time       `gorm:"not null"`
	EndDate       *time.Time
}

// TableName returns the table name for GORM
func (CostRate) TableName() string {
	return "cost_rates"
}

// NewCostRate creates a cost rate effective from the given date
func NewCostRate(warehouseID uuid.UUID, category, name string, value decimal.Decimal, unitOfMeasure string, effectiveDate time.Time) (*CostRate, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "warehouse is required")
	}
	if strings.TrimSpace(category) == "" || strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "cost category and name are required")
	}
	if value.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "rate value must be non-negative")
	}
	return &CostRate{
		BaseEntity:    shared.NewBaseEntity(),
		WarehouseID:   warehouseID,
		Category:      category,
		Name:          name,
		Value:         value,
		UnitOfMeasure: unitOfMeasure,
		EffectiveDate: effectiveDate.UTC(),
	}, nil
}

// WithEndDate closes the rate's validity interval
func (r *CostRate) WithEndDate(endDate time.Time) *CostRate {
	utc := endDate.UTC()
	r.EndDate = &utc
	return r
}

// IsActiveAt reports whether this rate covers the given instant
func (r *CostRate) IsActiveAt(instant time.Time) bool {
	if r.EffectiveDate.After(instant) {
		return false
	}
	if r.EndDate != nil && r.EndDate.Before(instant) {
		return false
	}
	return true
}

// ActiveRateAt selects the rate active at the given instant from a
// candidate list, or nil when none covers it
func ActiveRateAt(rates []CostRate, instant time.Time) *CostRate {
	var active *CostRate
	for i := range rates {
		r := &rates[i]
		if !r.IsActiveAt(instant) {
			continue
		}
		if active == nil || r.EffectiveDate.After(active.EffectiveDate) {
			active = r
		}
	}
	return active
}

// CostRateRepository is the persistence contract for the rate table
type CostRateRepository interface {
	// Save persists a cost rate
	Save(ctx context.Context, rate *CostRate) error

	// FindByName returns all rates for (warehouse, category, name) ordered
	// by effective date ascending
	FindByName(ctx context.Context, warehouseID uuid.UUID, category, name string) ([]CostRate, error)

	// FindActiveAt returns the rate active at the given instant, or
	// (nil, nil) when none covers it
	FindActiveAt(ctx context.Context, warehouseID uuid.UUID, category, name string, instant time.Time) (*CostRate, error)

	// FindByWarehouse returns all rates for a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]CostRate, error)
}

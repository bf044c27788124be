package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// WarehouseSkuConfig is the effective-dated packing configuration for one
// (warehouse, SKU) pair. At most one config is active at any instant: the
// one with the latest effective date not after the instant, whose end date
// is unset or not before the instant.
type WarehouseSkuConfig struct {
	shared.BaseEntity
	WarehouseID              uuid.UUID `gorm:"type:uuid;not null;index:idx_config_pair,priority:1"`
	SkuID                    uuid.UUID `gorm:"type:uuid;not null;index:idx_config_pair,priority:2"`
	StorageCartonsPerPallet  int64     `gorm:"not null"`
	ShippingCartonsPerPallet int64     `gorm:"not null"`
	EffectiveDate            time.Time `gorm:"not null"`
	EndDate                  *time.Time
}

// TableName returns the table name for GORM
func (WarehouseSkuConfig) TableName() string {
	return "warehouse_sku_configs"
}

// NewWarehouseSkuConfig creates a packing config effective from the given date
func NewWarehouseSkuConfig(warehouseID, skuID uuid.UUID, storageCpp, shippingCpp int64, effectiveDate time.Time) (*WarehouseSkuConfig, error) {
	if warehouseID == uuid.Nil || skuID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "warehouse and SKU are required")
	}
	if storageCpp <= 0 || shippingCpp <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "cartons-per-pallet figures must be positive")
	}
	return &WarehouseSkuConfig{
		BaseEntity:               shared.NewBaseEntity(),
		WarehouseID:              warehouseID,
		SkuID:                    skuID,
		StorageCartonsPerPallet:  storageCpp,
		ShippingCartonsPerPallet: shippingCpp,
		EffectiveDate:            effectiveDate.UTC(),
	}, nil
}

// WithEndDate closes the config's validity interval
func (c *WarehouseSkuConfig) WithEndDate(endDate time.Time) *WarehouseSkuConfig {
	utc := endDate.UTC()
	c.EndDate = &utc
	return c
}

// IsActiveAt reports whether this config covers the given instant
func (c *WarehouseSkuConfig) IsActiveAt(instant time.Time) bool {
	if c.EffectiveDate.After(instant) {
		return false
	}
	if c.EndDate != nil && c.EndDate.Before(instant) {
		return false
	}
	return true
}

// ActiveConfigAt selects the config active at the given instant from a
// candidate list: the latest effective date that covers the instant.
// Returns nil when no config covers it.
func ActiveConfigAt(configs []WarehouseSkuConfig, instant time.Time) *WarehouseSkuConfig {
	var active *WarehouseSkuConfig
	for i := range configs {
		c := &configs[i]
		if !c.IsActiveAt(instant) {
			continue
		}
		if active == nil || c.EffectiveDate.After(active.EffectiveDate) {
			active = c
		}
	}
	return active
}

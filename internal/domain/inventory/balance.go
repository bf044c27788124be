package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/ledger"
	"github.com/wms/backend/internal/domain/shared"
)

// InventoryBalance is the derived carton/pallet/unit count for one
// (warehouse, SKU, batch lot) key. It is a cache, not a source of truth:
// it is rederived in full from the ledger on every recomputation, and rows
// whose carton total reaches zero are deleted rather than kept at zero.
type InventoryBalance struct {
	shared.BaseEntity
	WarehouseID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balance_stream,priority:1"`
	SkuID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balance_stream,priority:2"`
	BatchLot            string    `gorm:"type:varchar(100);not null;default:'NONE';uniqueIndex:idx_balance_stream,priority:3"`
	CurrentCartons      int64     `gorm:"not null;default:0"`
	CurrentPallets      int64     `gorm:"not null;default:0"`
	CurrentUnits        int64     `gorm:"not null;default:0"`
	LastTransactionDate time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryBalance) TableName() string {
	return "inventory_balances"
}

// NewInventoryBalance creates a balance row for the given ledger key
func NewInventoryBalance(key ledger.Key) *InventoryBalance {
	return &InventoryBalance{
		BaseEntity:  shared.NewBaseEntity(),
		WarehouseID: key.WarehouseID,
		SkuID:       key.SkuID,
		BatchLot:    key.BatchLot,
	}
}

// Key returns the ledger key this balance belongs to
func (b *InventoryBalance) Key() ledger.Key {
	return ledger.Key{
		WarehouseID: b.WarehouseID,
		SkuID:       b.SkuID,
		BatchLot:    b.BatchLot,
	}
}

// PalletsForCartons converts a carton count into pallets, always rounding
// up: a partial pallet occupies a full pallet position. A non-positive
// cartons-per-pallet figure means no conversion is configured and yields 0.
func PalletsForCartons(cartons, cartonsPerPallet int64) int64 {
	if cartons <= 0 || cartonsPerPallet <= 0 {
		return 0
	}
	return (cartons + cartonsPerPallet - 1) / cartonsPerPallet
}

// ClampCartons clamps a folded carton total at zero. A key whose
// transactions net negative surfaces as empty, never as negative stock.
func ClampCartons(total int64) int64 {
	if total < 0 {
		return 0
	}
	return total
}

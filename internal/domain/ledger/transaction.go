package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// DefaultBatchLot is the sentinel batch/lot label used when a transaction
// is recorded without one. Balances and ledger entries key on it the same
// way as on a real lot.
const DefaultBatchLot = "NONE"

// TransactionType represents the type of inventory movement
type TransactionType string

const (
	// TransactionTypeReceive represents cartons received into the warehouse
	TransactionTypeReceive TransactionType = "RECEIVE"
	// TransactionTypeShip represents cartons shipped out of the warehouse
	TransactionTypeShip TransactionType = "SHIP"
	// TransactionTypeAdjustIn represents a positive stock adjustment
	TransactionTypeAdjustIn TransactionType = "ADJUST_IN"
	// TransactionTypeAdjustOut represents a negative stock adjustment
	TransactionTypeAdjustOut TransactionType = "ADJUST_OUT"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeReceive,
		TransactionTypeShip,
		TransactionTypeAdjustIn,
		TransactionTypeAdjustOut:
		return true
	}
	return false
}

// IsInbound returns true if this transaction type moves cartons into stock
func (t TransactionType) IsInbound() bool {
	return t == TransactionTypeReceive || t == TransactionTypeAdjustIn
}

// IsOutbound returns true if this transaction type moves cartons out of stock
func (t TransactionType) IsOutbound() bool {
	return t == TransactionTypeShip || t == TransactionTypeAdjustOut
}

// Key identifies one balance stream in the ledger: a warehouse, a SKU and
// a batch/lot label.
type Key struct {
	WarehouseID uuid.UUID
	SkuID       uuid.UUID
	BatchLot    string
}

// String returns a stable textual form of the key, usable as a guard key
func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s", k.WarehouseID, k.SkuID, k.BatchLot)
}

// Transaction is one immutable entry in the append-only inventory ledger.
// It is created once by an operations action and never updated or deleted.
// The cartons-per-pallet figures in effect at creation time are captured on
// the record itself so historical pallet math stays stable when the packing
// configuration changes later.
type Transaction struct {
	shared.BaseEntity
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index:idx_tx_stream,priority:1"`
	SkuID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_tx_stream,priority:2"`
	BatchLot    string          `gorm:"type:varchar(100);not null;default:'NONE';index:idx_tx_stream,priority:3"`
	Type        TransactionType `gorm:"type:varchar(20);not null"`
	CartonsIn   int64           `gorm:"not null;default:0"`
	CartonsOut  int64           `gorm:"not null;default:0"`
	PalletsIn   int64           `gorm:"not null;default:0"`
	PalletsOut  int64           `gorm:"not null;default:0"`
	// Frozen packing configuration at transaction time
	StorageCartonsPerPallet  int64     `gorm:"not null;default:0"`
	ShippingCartonsPerPallet int64     `gorm:"not null;default:0"`
	TransactionDate          time.Time `gorm:"not null;index"`
	Reference                string    `gorm:"type:varchar(100)"`
	Notes                    string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "inventory_transactions"
}

// NewTransaction creates a ledger transaction for the given key and type.
// The batch lot defaults to DefaultBatchLot when empty.
func NewTransaction(warehouseID, skuID uuid.UUID, batchLot string, txType TransactionType, occurredAt time.Time) *Transaction {
	if batchLot == "" {
		batchLot = DefaultBatchLot
	}
	return &Transaction{
		BaseEntity:      shared.NewBaseEntity(),
		WarehouseID:     warehouseID,
		SkuID:           skuID,
		BatchLot:        batchLot,
		Type:            txType,
		TransactionDate: occurredAt.UTC(),
	}
}

// WithCartons sets the carton movement quantities
func (t *Transaction) WithCartons(in, out int64) *Transaction {
	t.CartonsIn = in
	t.CartonsOut = out
	return t
}

// WithPallets sets the operator-reported pallet movement quantities
func (t *Transaction) WithPallets(in, out int64) *Transaction {
	t.PalletsIn = in
	t.PalletsOut = out
	return t
}

// WithPackingConfig freezes the cartons-per-pallet figures on the record
func (t *Transaction) WithPackingConfig(storageCpp, shippingCpp int64) *Transaction {
	t.StorageCartonsPerPallet = storageCpp
	t.ShippingCartonsPerPallet = shippingCpp
	return t
}

// WithReference sets the source document reference
func (t *Transaction) WithReference(reference string) *Transaction {
	t.Reference = reference
	return t
}

// WithNotes sets free-form notes
func (t *Transaction) WithNotes(notes string) *Transaction {
	t.Notes = notes
	return t
}

// Key returns the balance stream this transaction belongs to
func (t *Transaction) Key() Key {
	return Key{
		WarehouseID: t.WarehouseID,
		SkuID:       t.SkuID,
		BatchLot:    t.BatchLot,
	}
}

// NetCartons returns cartons in minus cartons out for this record
func (t *Transaction) NetCartons() int64 {
	return t.CartonsIn - t.CartonsOut
}

// Validate checks the transaction invariants before it is appended
func (t *Transaction) Validate() error {
	if t.WarehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "warehouse is required")
	}
	if t.SkuID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "SKU is required")
	}
	if !t.Type.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("invalid transaction type: %s", t.Type))
	}
	if t.CartonsIn < 0 || t.CartonsOut < 0 {
		return shared.NewDomainError("INVALID_INPUT", "carton quantities must be non-negative")
	}
	if t.PalletsIn < 0 || t.PalletsOut < 0 {
		return shared.NewDomainError("INVALID_INPUT", "pallet quantities must be non-negative")
	}
	if t.Type.IsInbound() && t.CartonsOut > 0 {
		return shared.NewDomainError("INVALID_INPUT", "inbound transactions cannot move cartons out")
	}
	if t.Type.IsOutbound() && t.CartonsIn > 0 {
		return shared.NewDomainError("INVALID_INPUT", "outbound transactions cannot move cartons in")
	}
	if t.TransactionDate.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "transaction date is required")
	}
	return nil
}

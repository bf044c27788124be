package variance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/ledger"
	"github.com/wms/backend/internal/domain/shared"
)

// Status tracks the investigation lifecycle of a pallet variance
type Status string

const (
	// StatusPending means the variance exceeds the noise threshold and
	// awaits investigation
	StatusPending Status = "pending"
	// StatusResolved means the variance is explained, either automatically
	// as expected noise or by an investigator
	StatusResolved Status = "resolved"
)

// RootCause classifies why reported and system pallet counts diverged
type RootCause string

const (
	// RootCauseRounding covers divergence from ceiling partial pallets
	RootCauseRounding RootCause = "rounding"
	// RootCauseConsolidation covers operators combining partial pallets
	RootCauseConsolidation RootCause = "consolidation"
	// RootCauseOptimization covers repacking that changed pallet usage
	RootCauseOptimization RootCause = "optimization"
)

// IsValid returns true if the root cause is a known classification
func (c RootCause) IsValid() bool {
	switch c {
	case RootCauseRounding, RootCauseConsolidation, RootCauseOptimization:
		return true
	}
	return false
}

// PalletVariance records a discrepancy between operator-reported physical
// pallet counts and the system-theoretical count derived from carton math.
// System pallets use the cartons-per-pallet figures frozen on each
// transaction, so the comparison stays historically stable when the packing
// configuration changes later.
type PalletVariance struct {
	shared.BaseEntity
	WarehouseID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variance_report,priority:1"`
	SkuID              uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variance_report,priority:2"`
	BatchLot           string          `gorm:"type:varchar(100);not null;default:'NONE';uniqueIndex:idx_variance_report,priority:3"`
	ReportDate         time.Time       `gorm:"not null;uniqueIndex:idx_variance_report,priority:4"`
	ReportedPallets    int64           `gorm:"not null;default:0"`
	SystemPallets      int64           `gorm:"not null;default:0"`
	VarianceAmount     int64           `gorm:"not null;default:0"`
	VariancePercentage decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Status             Status          `gorm:"type:varchar(20);not null;index"`
	RootCause          RootCause       `gorm:"type:varchar(30)"`
	ResolutionNotes    string          `gorm:"type:text"`
	ResolvedAt         *time.Time
}

// TableName returns the table name for GORM
func (PalletVariance) TableName() string {
	return "pallet_variances"
}

// NewPalletVariance builds a variance record for a ledger key at a report
// date. Variance amount is reported minus system pallets. Variances within
// the pending threshold are treated as expected noise: they come out
// already resolved with a default root cause instead of demanding
// investigation.
func NewPalletVariance(key ledger.Key, reportDate time.Time, reportedPallets, systemPallets, pendingThreshold int64) *PalletVariance {
	amount := reportedPallets - systemPallets

	pct := decimal.Zero
	if systemPallets != 0 {
		pct = decimal.NewFromInt(amount).
			Div(decimal.NewFromInt(systemPallets)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	v := &PalletVariance{
		BaseEntity:         shared.NewBaseEntity(),
		WarehouseID:        key.WarehouseID,
		SkuID:              key.SkuID,
		BatchLot:           key.BatchLot,
		ReportDate:         reportDate.UTC(),
		ReportedPallets:    reportedPallets,
		SystemPallets:      systemPallets,
		VarianceAmount:     amount,
		VariancePercentage: pct,
		Status:             StatusPending,
	}

	abs := amount
	if abs < 0 {
		abs = -abs
	}
	if abs <= pendingThreshold {
		now := time.Now().UTC()
		v.Status = StatusResolved
		v.RootCause = defaultRootCause(amount)
		v.ResolvedAt = &now
	}
	return v
}

// defaultRootCause picks the noise classification for auto-resolved small
// variances: single-pallet gaps are ceiling artifacts, fewer physical than
// theoretical pallets points at consolidation, more points at repacking.
func defaultRootCause(amount int64) RootCause {
	switch {
	case amount == 1 || amount == -1:
		return RootCauseRounding
	case amount < 0:
		return RootCauseConsolidation
	default:
		return RootCauseOptimization
	}
}

// Key returns the ledger key this variance belongs to
func (v *PalletVariance) Key() ledger.Key {
	return ledger.Key{
		WarehouseID: v.WarehouseID,
		SkuID:       v.SkuID,
		BatchLot:    v.BatchLot,
	}
}

// Resolve records the investigated root cause for a pending variance
func (v *PalletVariance) Resolve(rootCause RootCause, notes string) error {
	if v.Status != StatusPending {
		return shared.ErrInvalidState
	}
	if !rootCause.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "unknown variance root cause")
	}
	now := time.Now().UTC()
	v.Status = StatusResolved
	v.RootCause = rootCause
	v.ResolutionNotes = notes
	v.ResolvedAt = &now
	v.UpdatedAt = now
	return nil
}

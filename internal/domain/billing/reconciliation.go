package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// ReconciliationStatus classifies an invoice line against the recomputed
// expected amount
type ReconciliationStatus string

const (
	// StatusMatch means the invoiced amount is within tolerance of expected
	StatusMatch ReconciliationStatus = "match"
	// StatusOverbilled means the invoiced amount exceeds expected beyond
	// tolerance
	StatusOverbilled ReconciliationStatus = "overbilled"
	// StatusUnderbilled means the invoiced amount falls short of expected
	// beyond tolerance
	StatusUnderbilled ReconciliationStatus = "underbilled"
)

// DisputeStatus tracks the human review lifecycle for a non-matching line
type DisputeStatus string

const (
	// DisputeNone means no dispute has been opened
	DisputeNone DisputeStatus = "none"
	// DisputeOpen means a discrepancy awaits review
	DisputeOpen DisputeStatus = "open"
	// DisputeInReview means a reviewer has picked the dispute up
	DisputeInReview DisputeStatus = "in_review"
	// DisputeResolved means the dispute has a recorded resolution
	DisputeResolved DisputeStatus = "resolved"
)

// DisputeResolution is the recorded outcome of a resolved dispute
type DisputeResolution string

const (
	ResolutionFullCredit    DisputeResolution = "full_credit"
	ResolutionPartialCredit DisputeResolution = "partial_credit"
	ResolutionNoAdjustment  DisputeResolution = "no_adjustment"
	ResolutionPaymentPlan   DisputeResolution = "payment_plan"
)

// IsValid returns true if the resolution is one of the recorded outcomes
func (r DisputeResolution) IsValid() bool {
	switch r {
	case ResolutionFullCredit, ResolutionPartialCredit, ResolutionNoAdjustment, ResolutionPaymentPlan:
		return true
	}
	return false
}

// InvoiceLineItem is an externally recorded invoice line fed into
// reconciliation
type InvoiceLineItem struct {
	WarehouseID uuid.UUID
	Category    string
	Name        string
	Quantity    decimal.Decimal
	UnitRate    decimal.Decimal
	Amount      decimal.Decimal
}

// InvoiceReconciliation compares one invoice line against the engine's
// recomputed expected amount. The engine only classifies; applying a
// resolution is a human-reviewed action recorded through the dispute
// transitions below.
type InvoiceReconciliation struct {
	shared.BaseEntity
	WarehouseID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	Category       string               `gorm:"type:varchar(50);not null"`
	Name           string               `gorm:"type:varchar(100);not null"`
	ExpectedAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	InvoicedAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Difference     decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Status         ReconciliationStatus `gorm:"type:varchar(20);not null;index"`
	DisputeStatus  DisputeStatus        `gorm:"type:varchar(20);not null;default:'none';index"`
	Resolution     DisputeResolution    `gorm:"type:varchar(30)"`
	CreditedAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	ReviewNotes    string               `gorm:"type:text"`
	ReconciledAt   time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceReconciliation) TableName() string {
	return "invoice_reconciliations"
}

// NewInvoiceReconciliation classifies an invoice line against the expected
// amount. Difference is invoiced minus expected; a difference whose
// absolute value is below the tolerance counts as a match.
func NewInvoiceReconciliation(line InvoiceLineItem, expected, tolerance decimal.Decimal, reconciledAt time.Time) *InvoiceReconciliation {
	difference := line.Amount.Sub(expected)

	status := StatusMatch
	if difference.Abs().GreaterThanOrEqual(tolerance) {
		if difference.IsPositive() {
			status = StatusOverbilled
		} else {
			status = StatusUnderbilled
		}
	}

	disputeStatus := DisputeNone
	if status != StatusMatch {
		disputeStatus = DisputeOpen
	}

	return &InvoiceReconciliation{
		BaseEntity:     shared.NewBaseEntity(),
		WarehouseID:    line.WarehouseID,
		Category:       line.Category,
		Name:           line.Name,
		ExpectedAmount: expected,
		InvoicedAmount: line.Amount,
		Difference:     difference,
		Status:         status,
		DisputeStatus:  disputeStatus,
		ReconciledAt:   reconciledAt.UTC(),
	}
}

// RequiresReview reports whether this line feeds the dispute workflow
func (r *InvoiceReconciliation) RequiresReview() bool {
	return r.Status != StatusMatch
}

// StartReview moves an open dispute into review
func (r *InvoiceReconciliation) StartReview() error {
	if r.DisputeStatus != DisputeOpen {
		return shared.ErrInvalidState
	}
	r.DisputeStatus = DisputeInReview
	r.Touch()
	return nil
}

// Resolve records the outcome of a reviewed dispute with the credited
// amount agreed on
func (r *InvoiceReconciliation) Resolve(resolution DisputeResolution, creditedAmount decimal.Decimal, notes string) error {
	if r.DisputeStatus != DisputeOpen && r.DisputeStatus != DisputeInReview {
		return shared.ErrInvalidState
	}
	if !resolution.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "unknown dispute resolution")
	}
	if creditedAmount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "credited amount must be non-negative")
	}
	r.DisputeStatus = DisputeResolved
	r.Resolution = resolution
	r.CreditedAmount = creditedAmount
	r.ReviewNotes = notes
	r.Touch()
	return nil
}

// ReconciliationFilter holds query options for listing reconciliations
type ReconciliationFilter struct {
	shared.Filter
	WarehouseID   *uuid.UUID
	Status        *ReconciliationStatus
	DisputeStatus *DisputeStatus
}

// InvoiceReconciliationRepository is the persistence contract for
// reconciliation results
type InvoiceReconciliationRepository interface {
	// Save persists a reconciliation result (insert or update)
	Save(ctx context.Context, reconciliation *InvoiceReconciliation) error

	// FindByID returns a reconciliation by ID, or (nil, nil) when absent
	FindByID(ctx context.Context, id uuid.UUID) (*InvoiceReconciliation, error)

	// FindAll returns reconciliations matching the filter, newest first
	FindAll(ctx context.Context, filter ReconciliationFilter) ([]InvoiceReconciliation, error)

	// Count returns the number of reconciliations matching the filter
	Count(ctx context.Context, filter ReconciliationFilter) (int64, error)
}

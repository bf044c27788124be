package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/billing"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ExpectedCost is one recomputed expected amount keyed the same way as an
// invoice line
type ExpectedCost struct {
	WarehouseID uuid.UUID
	Category    string
	Name        string
	Amount      decimal.Decimal
}

// ReconciliationService classifies externally recorded invoice lines
// against the engine's recomputed expected amounts and drives the dispute
// workflow on the results
type ReconciliationService struct {
	reconciliationRepo billing.InvoiceReconciliationRepository
	storageLedgerRepo  billing.StorageLedgerRepository
	warehouseRepo      catalog.WarehouseRepository
	logger             *zap.Logger

	tolerance       decimal.Decimal
	storageRateName string
}

// ReconciliationServiceConfig contains configuration for ReconciliationService
type ReconciliationServiceConfig struct {
	// Tolerance is the absolute difference below which an invoice line
	// counts as a match
	Tolerance decimal.Decimal
	// StorageRateName names the storage line expected amounts are summed
	// under
	StorageRateName string
}

// DefaultReconciliationServiceConfig returns default configuration
func DefaultReconciliationServiceConfig() ReconciliationServiceConfig {
	return ReconciliationServiceConfig{
		Tolerance:       decimal.NewFromInt(10),
		StorageRateName: billing.DefaultStorageRateName,
	}
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	reconciliationRepo billing.InvoiceReconciliationRepository,
	storageLedgerRepo billing.StorageLedgerRepository,
	warehouseRepo catalog.WarehouseRepository,
	logger *zap.Logger,
	config ReconciliationServiceConfig,
) *ReconciliationService {
	if config.Tolerance.LessThanOrEqual(decimal.Zero) {
		config.Tolerance = decimal.NewFromInt(10)
	}
	if config.StorageRateName == "" {
		config.StorageRateName = billing.DefaultStorageRateName
	}

	return &ReconciliationService{
		reconciliationRepo: reconciliationRepo,
		storageLedgerRepo:  storageLedgerRepo,
		warehouseRepo:      warehouseRepo,
		logger:             logger,
		tolerance:          config.Tolerance,
		storageRateName:    config.StorageRateName,
	}
}

// ReconcileResult reports the outcome of one reconciliation pass
type ReconcileResult struct {
	Reconciliations []*billing.InvoiceReconciliation `json:"reconciliations"`
	Unmatched       int                              `json:"unmatched"`
	Failed          int                              `json:"failed"`
}

// Reconcile classifies each invoice line against the expected amount with
// the same (warehouse, category, name). Lines with no matching expected
// amount are warned and counted, not classified. A failed save is logged
// and the pass continues.
func (s *ReconciliationService) Reconcile(ctx context.Context, lines []billing.InvoiceLineItem, expected []ExpectedCost) (*ReconcileResult, error) {
	index := make(map[string]decimal.Decimal, len(expected))
	for _, e := range expected {
		index[costKey(e.WarehouseID, e.Category, e.Name)] = e.Amount
	}

	now := time.Now()
	result := &ReconcileResult{}

	for _, line := range lines {
		expectedAmount, ok := index[costKey(line.WarehouseID, line.Category, line.Name)]
		if !ok {
			s.logger.Warn("No expected amount for invoice line",
				zap.String("warehouse_id", line.WarehouseID.String()),
				zap.String("category", line.Category),
				zap.String("name", line.Name))
			result.Unmatched++
			continue
		}

		rec := billing.NewInvoiceReconciliation(line, expectedAmount, s.tolerance, now)
		if err := s.reconciliationRepo.Save(ctx, rec); err != nil {
			s.logger.Error("Failed to save reconciliation",
				zap.String("warehouse_id", line.WarehouseID.String()),
				zap.String("name", line.Name),
				zap.Error(err))
			result.Failed++
			continue
		}
		result.Reconciliations = append(result.Reconciliations, rec)
	}

	return result, nil
}

// ReconcilePeriod reconciles a warehouse's storage invoice lines against
// the stored storage ledger total for the billing period. An unknown
// warehouse fails the whole call.
func (s *ReconciliationService) ReconcilePeriod(ctx context.Context, warehouseID uuid.UUID, period billing.Period, lines []billing.InvoiceLineItem) (*ReconcileResult, error) {
	if !period.Start.Before(period.End) {
		return nil, shared.ErrInvalidPeriod
	}

	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load warehouse: %w", err)
	}
	if warehouse == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "warehouse not found")
	}

	expectedStorage, err := s.storageLedgerRepo.SumCostForPeriod(ctx, warehouseID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to sum storage costs: %w", err)
	}

	expected := []ExpectedCost{{
		WarehouseID: warehouseID,
		Category:    billing.CostCategoryStorage,
		Name:        s.storageRateName,
		Amount:      expectedStorage,
	}}

	return s.Reconcile(ctx, lines, expected)
}

// GetReconciliation returns one reconciliation result by ID
func (s *ReconciliationService) GetReconciliation(ctx context.Context, id uuid.UUID) (*billing.InvoiceReconciliation, error) {
	return s.loadReconciliation(ctx, id)
}

// StartReview moves an open dispute into review
func (s *ReconciliationService) StartReview(ctx context.Context, id uuid.UUID) (*billing.InvoiceReconciliation, error) {
	rec, err := s.loadReconciliation(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rec.StartReview(); err != nil {
		return nil, err
	}
	if err := s.reconciliationRepo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}
	return rec, nil
}

// ResolveDispute records the reviewed outcome of a disputed line
func (s *ReconciliationService) ResolveDispute(ctx context.Context, id uuid.UUID, resolution billing.DisputeResolution, creditedAmount decimal.Decimal, notes string) (*billing.InvoiceReconciliation, error) {
	rec, err := s.loadReconciliation(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rec.Resolve(resolution, creditedAmount, notes); err != nil {
		return nil, err
	}
	if err := s.reconciliationRepo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}

	s.logger.Info("Dispute resolved",
		zap.String("reconciliation_id", id.String()),
		zap.String("resolution", string(resolution)),
		zap.String("credited_amount", creditedAmount.String()))

	return rec, nil
}

// ListReconciliations returns reconciliations matching the filter
func (s *ReconciliationService) ListReconciliations(ctx context.Context, filter billing.ReconciliationFilter) ([]billing.InvoiceReconciliation, int64, error) {
	items, err := s.reconciliationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reconciliationRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *ReconciliationService) loadReconciliation(ctx context.Context, id uuid.UUID) (*billing.InvoiceReconciliation, error) {
	rec, err := s.reconciliationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load reconciliation: %w", err)
	}
	if rec == nil {
		return nil, shared.ErrNotFound
	}
	return rec, nil
}

func costKey(warehouseID uuid.UUID, category, name string) string {
	return strings.Join([]string{warehouseID.String(), strings.ToLower(category), strings.ToLower(name)}, "|")
}

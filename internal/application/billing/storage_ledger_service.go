package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/billing"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/ledger"
	"github.com/wms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BalanceCalculator is the as-of-date fold the generator builds its Monday
// checkpoints on
type BalanceCalculator interface {
	BalanceAsOf(ctx context.Context, key ledger.Key, instant time.Time) (int64, error)
}

// StorageLedgerService generates weekly storage snapshots for a billing
// period. Each pass is a full, idempotent regeneration: entries are
// upserted by natural key, never appended blindly.
type StorageLedgerService struct {
	balanceRepo inventory.InventoryBalanceRepository
	configRepo  inventory.WarehouseSkuConfigRepository
	rateRepo    billing.CostRateRepository
	ledgerRepo  billing.StorageLedgerRepository
	calculator  BalanceCalculator
	guard       shared.RunGuard
	logger      *zap.Logger

	storageRateName string
	guardTTL        time.Duration
}

// StorageLedgerServiceConfig contains configuration for StorageLedgerService
type StorageLedgerServiceConfig struct {
	// StorageRateName is the cost rate looked up for weekly pallet storage
	StorageRateName string
	// GuardTTL bounds how long a crashed generation pass holds its guard
	GuardTTL time.Duration
}

// DefaultStorageLedgerServiceConfig returns default configuration
func DefaultStorageLedgerServiceConfig() StorageLedgerServiceConfig {
	return StorageLedgerServiceConfig{
		StorageRateName: billing.DefaultStorageRateName,
		GuardTTL:        shared.DefaultRunGuardConfig().TTL,
	}
}

// NewStorageLedgerService creates a new StorageLedgerService
func NewStorageLedgerService(
	balanceRepo inventory.InventoryBalanceRepository,
	configRepo inventory.WarehouseSkuConfigRepository,
	rateRepo billing.CostRateRepository,
	ledgerRepo billing.StorageLedgerRepository,
	calculator BalanceCalculator,
	guard shared.RunGuard,
	logger *zap.Logger,
	config StorageLedgerServiceConfig,
) *StorageLedgerService {
	if config.StorageRateName == "" {
		config.StorageRateName = billing.DefaultStorageRateName
	}
	if config.GuardTTL <= 0 {
		config.GuardTTL = shared.DefaultRunGuardConfig().TTL
	}

	return &StorageLedgerService{
		balanceRepo:     balanceRepo,
		configRepo:      configRepo,
		rateRepo:        rateRepo,
		ledgerRepo:      ledgerRepo,
		calculator:      calculator,
		guard:           guard,
		logger:          logger,
		storageRateName: config.StorageRateName,
		guardTTL:        config.GuardTTL,
	}
}

// GenerateResult reports the outcome of one generation pass. Skipped counts
// warned rows (missing config or rate); zero-balance weeks are simply
// absent and not counted anywhere.
type GenerateResult struct {
	Written  int      `json:"written"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Warnings []string `json:"warnings,omitempty"`
}

// GenerateStorageLedger writes one storage ledger entry per positive
// (warehouse, SKU, batch lot) balance per Monday within the billing period.
// Missing configuration or rates skip the affected row with a warning;
// a failed upsert is logged with enough context to retry that row and the
// pass continues. Only an invalid period or a failed balance enumeration
// fails the whole call.
func (s *StorageLedgerService) GenerateStorageLedger(ctx context.Context, period billing.Period, warehouseID *uuid.UUID) (*GenerateResult, error) {
	if !period.Start.Before(period.End) {
		return nil, shared.ErrInvalidPeriod
	}

	release, err := s.acquireGuard(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	defer release()

	balances, err := s.balanceRepo.FindPositive(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load balances: %w", err)
	}

	mondays := period.Mondays()
	result := &GenerateResult{}

	for _, balance := range balances {
		key := balance.Key()
		for _, monday := range mondays {
			s.generateWeek(ctx, key, monday, period, result)
		}
	}

	s.logger.Info("Storage ledger generation completed",
		zap.Time("period_start", period.Start),
		zap.Time("period_end", period.End),
		zap.Int("written", result.Written),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	return result, nil
}

// generateWeek computes and upserts one (Monday, key) snapshot
func (s *StorageLedgerService) generateWeek(ctx context.Context, key ledger.Key, monday time.Time, period billing.Period, result *GenerateResult) {
	cutoff := billing.EndOfDay(monday)

	cartons, err := s.calculator.BalanceAsOf(ctx, key, cutoff)
	if err != nil {
		s.logger.Error("Failed to fold balance for week",
			zap.Time("week_ending_monday", monday),
			zap.String("warehouse_id", key.WarehouseID.String()),
			zap.String("sku_id", key.SkuID.String()),
			zap.String("batch_lot", key.BatchLot),
			zap.Error(err))
		result.Failed++
		return
	}
	if cartons == 0 {
		// Zero-balance weeks are invisible, not zero-cost rows
		return
	}

	cfg, err := s.configRepo.FindActiveAt(ctx, key.WarehouseID, key.SkuID, monday)
	if err == nil && cfg == nil {
		err = fmt.Errorf("no packing config active at %s", monday.Format("2006-01-02"))
	}
	if err != nil {
		s.warnSkip(result, key, monday, "packing config unavailable", err)
		return
	}

	rate, err := s.rateRepo.FindActiveAt(ctx, key.WarehouseID, billing.CostCategoryStorage, s.storageRateName, monday)
	if err == nil && rate == nil {
		err = fmt.Errorf("no %q rate active at %s", s.storageRateName, monday.Format("2006-01-02"))
	}
	if err != nil {
		s.warnSkip(result, key, monday, "storage rate unavailable", err)
		return
	}

	pallets := inventory.PalletsForCartons(cartons, cfg.StorageCartonsPerPallet)
	cost := rate.Value.Mul(decimal.NewFromInt(pallets))

	entry := &billing.StorageLedgerEntry{
		BaseEntity:            shared.NewBaseEntity(),
		WeekEndingMonday:      monday,
		WarehouseID:           key.WarehouseID,
		SkuID:                 key.SkuID,
		BatchLot:              key.BatchLot,
		CartonsEndOfMonday:    cartons,
		StoragePalletsCharged: pallets,
		ApplicableWeeklyRate:  rate.Value,
		CalculatedWeeklyCost:  cost,
		BillingPeriodStart:    period.Start,
		BillingPeriodEnd:      period.End,
	}

	if err := s.ledgerRepo.Upsert(ctx, entry); err != nil {
		s.logger.Error("Failed to upsert storage ledger entry",
			zap.Time("week_ending_monday", monday),
			zap.String("warehouse_id", key.WarehouseID.String()),
			zap.String("sku_id", key.SkuID.String()),
			zap.String("batch_lot", key.BatchLot),
			zap.Int64("cartons", cartons),
			zap.Error(err))
		result.Failed++
		return
	}
	result.Written++
}

// ListEntries returns weekly snapshot rows matching the filter plus the
// total count
func (s *StorageLedgerService) ListEntries(ctx context.Context, filter billing.StorageLedgerFilter) ([]billing.StorageLedgerEntry, int64, error) {
	items, err := s.ledgerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ledgerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *StorageLedgerService) warnSkip(result *GenerateResult, key ledger.Key, monday time.Time, reason string, err error) {
	s.logger.Warn("Skipping storage ledger row: "+reason,
		zap.Time("week_ending_monday", monday),
		zap.String("warehouse_id", key.WarehouseID.String()),
		zap.String("sku_id", key.SkuID.String()),
		zap.String("batch_lot", key.BatchLot),
		zap.Error(err))
	result.Skipped++
	result.Warnings = append(result.Warnings, fmt.Sprintf("%s %s: %s: %v", monday.Format("2006-01-02"), key, reason, err))
}

func (s *StorageLedgerService) acquireGuard(ctx context.Context, warehouseID *uuid.UUID) (func(), error) {
	if s.guard == nil {
		return func() {}, nil
	}

	key := "storage-ledger:generate:all"
	if warehouseID != nil {
		key = "storage-ledger:generate:" + warehouseID.String()
	}

	ok, err := s.guard.Acquire(ctx, key, s.guardTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run guard: %w", err)
	}
	if !ok {
		return nil, shared.ErrRunInProgress
	}

	return func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), key); err != nil {
			s.logger.Warn("Failed to release run guard", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

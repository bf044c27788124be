package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/ledger"
	"github.com/wms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BalanceService replays the append-only ledger into the derived balance
// cache. Recomputation is a full re-derivation: it never patches
// incrementally, so re-running after a late-arriving transaction is correct
// by construction.
type BalanceService struct {
	txRepo      ledger.TransactionRepository
	balanceRepo inventory.InventoryBalanceRepository
	configRepo  inventory.WarehouseSkuConfigRepository
	skuRepo     catalog.SkuRepository
	guard       shared.RunGuard
	logger      *zap.Logger

	guardTTL time.Duration
}

// BalanceServiceConfig contains configuration for BalanceService
type BalanceServiceConfig struct {
	// GuardTTL bounds how long a crashed recompute pass holds its guard
	GuardTTL time.Duration
}

// DefaultBalanceServiceConfig returns default configuration
func DefaultBalanceServiceConfig() BalanceServiceConfig {
	return BalanceServiceConfig{
		GuardTTL: shared.DefaultRunGuardConfig().TTL,
	}
}

// NewBalanceService creates a new BalanceService. The run guard may be nil
// when the caller serializes passes itself.
func NewBalanceService(
	txRepo ledger.TransactionRepository,
	balanceRepo inventory.InventoryBalanceRepository,
	configRepo inventory.WarehouseSkuConfigRepository,
	skuRepo catalog.SkuRepository,
	guard shared.RunGuard,
	logger *zap.Logger,
	config BalanceServiceConfig,
) *BalanceService {
	if config.GuardTTL <= 0 {
		config.GuardTTL = shared.DefaultRunGuardConfig().TTL
	}

	return &BalanceService{
		txRepo:      txRepo,
		balanceRepo: balanceRepo,
		configRepo:  configRepo,
		skuRepo:     skuRepo,
		guard:       guard,
		logger:      logger,
		guardTTL:    config.GuardTTL,
	}
}

// RecomputeResult reports the outcome of one recompute pass
type RecomputeResult struct {
	AffectedKeys int      `json:"affected_keys"`
	DeletedZero  int64    `json:"deleted_zero"`
	Failed       int      `json:"failed"`
	Errors       []string `json:"errors,omitempty"`
}

// RecomputeBalances rederives every balance from the ledger, optionally
// restricted to one warehouse. For each distinct (warehouse, SKU, batch
// lot) key it folds cartons in minus cartons out in timestamp order,
// clamps the final total at zero, derives units and pallets, and upserts
// the row. Zero-carton rows are deleted afterwards, which also cleans up
// keys that existed historically but have since netted to zero.
//
// A single failing key is logged and counted, never fatal for the pass.
func (s *BalanceService) RecomputeBalances(ctx context.Context, warehouseID *uuid.UUID) (*RecomputeResult, error) {
	release, err := s.acquireGuard(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	defer release()

	keys, err := s.txRepo.DistinctKeys(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate ledger keys: %w", err)
	}

	result := &RecomputeResult{}

	for _, key := range keys {
		updated, err := s.recomputeKey(ctx, key)
		if err != nil {
			s.logger.Error("Failed to recompute balance",
				zap.String("warehouse_id", key.WarehouseID.String()),
				zap.String("sku_id", key.SkuID.String()),
				zap.String("batch_lot", key.BatchLot),
				zap.Error(err))
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", key, err))
			continue
		}
		if updated {
			result.AffectedKeys++
		}
	}

	deleted, err := s.balanceRepo.DeleteZeroBalances(ctx, warehouseID)
	if err != nil {
		s.logger.Error("Failed to delete zero balances", zap.Error(err))
		result.Errors = append(result.Errors, fmt.Sprintf("delete zero balances: %v", err))
	}
	result.DeletedZero = deleted

	s.logger.Info("Balance recomputation completed",
		zap.Int("affected_keys", result.AffectedKeys),
		zap.Int64("deleted_zero", result.DeletedZero),
		zap.Int("failed", result.Failed))

	return result, nil
}

// recomputeKey folds one key's full transaction history into its balance
// row. It reports false when the key has no transactions, so keys that
// vanished between enumeration and replay do not count as affected.
func (s *BalanceService) recomputeKey(ctx context.Context, key ledger.Key) (bool, error) {
	txs, err := s.txRepo.FindByKey(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(txs) == 0 {
		return false, nil
	}

	var total int64
	lastDate := txs[0].TransactionDate
	for _, tx := range txs {
		total += tx.NetCartons()
		if tx.TransactionDate.After(lastDate) {
			lastDate = tx.TransactionDate
		}
	}
	// Only the final total is clamped; negative running sums are allowed
	// transiently.
	cartons := inventory.ClampCartons(total)

	balance := inventory.NewInventoryBalance(key)
	balance.CurrentCartons = cartons
	balance.CurrentUnits = cartons * s.unitsPerCarton(ctx, key.SkuID)
	balance.CurrentPallets = inventory.PalletsForCartons(cartons, s.storageCartonsPerPallet(ctx, key, lastDate))
	balance.LastTransactionDate = lastDate

	if err := s.balanceRepo.Upsert(ctx, balance); err != nil {
		return false, fmt.Errorf("failed to upsert balance: %w", err)
	}
	return true, nil
}

// unitsPerCarton resolves the SKU conversion factor, treating a missing or
// unreadable SKU record as one unit per carton
func (s *BalanceService) unitsPerCarton(ctx context.Context, skuID uuid.UUID) int64 {
	sku, err := s.skuRepo.FindByID(ctx, skuID)
	if err != nil {
		s.logger.Warn("Failed to load SKU, defaulting units per carton to 1",
			zap.String("sku_id", skuID.String()),
			zap.Error(err))
		return 1
	}
	if sku == nil || sku.UnitsPerCarton <= 0 {
		return 1
	}
	return sku.UnitsPerCarton
}

// storageCartonsPerPallet resolves the packing config active at the key's
// latest transaction. No config means no pallet conversion, not an error.
func (s *BalanceService) storageCartonsPerPallet(ctx context.Context, key ledger.Key, instant time.Time) int64 {
	cfg, err := s.configRepo.FindActiveAt(ctx, key.WarehouseID, key.SkuID, instant)
	if err != nil {
		s.logger.Warn("Failed to load packing config, skipping pallet conversion",
			zap.String("warehouse_id", key.WarehouseID.String()),
			zap.String("sku_id", key.SkuID.String()),
			zap.Error(err))
		return 0
	}
	if cfg == nil {
		return 0
	}
	return cfg.StorageCartonsPerPallet
}

// BalanceAsOf folds one key's transactions up to the given instant and
// returns the clamped carton total. This is the per-Monday primitive the
// storage ledger generator builds on.
func (s *BalanceService) BalanceAsOf(ctx context.Context, key ledger.Key, instant time.Time) (int64, error) {
	txs, err := s.txRepo.FindByKeyUntil(ctx, key, instant)
	if err != nil {
		return 0, fmt.Errorf("failed to load transactions: %w", err)
	}

	var total int64
	for _, tx := range txs {
		total += tx.NetCartons()
	}
	return inventory.ClampCartons(total), nil
}

// ListBalances returns cached balances matching the filter plus the total
// count
func (s *BalanceService) ListBalances(ctx context.Context, filter inventory.BalanceFilter) ([]inventory.InventoryBalance, int64, error) {
	items, err := s.balanceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.balanceRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// acquireGuard serializes recompute passes per warehouse. With no guard
// configured the caller is responsible for serialization.
func (s *BalanceService) acquireGuard(ctx context.Context, warehouseID *uuid.UUID) (func(), error) {
	if s.guard == nil {
		return func() {}, nil
	}

	key := "balance:recompute:all"
	if warehouseID != nil {
		key = "balance:recompute:" + warehouseID.String()
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

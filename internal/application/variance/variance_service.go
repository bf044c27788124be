package variance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/ledger"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/variance"
	"go.uber.org/zap"
)

// VarianceService compares operator-reported physical pallet counts against
// system-theoretical counts derived from carton math
type VarianceService struct {
	txRepo       ledger.TransactionRepository
	varianceRepo variance.PalletVarianceRepository
	logger       *zap.Logger

	pendingThreshold int64
}

// VarianceServiceConfig contains configuration for VarianceService
type VarianceServiceConfig struct {
	// PendingThreshold is the absolute pallet variance above which a record
	// stays pending for investigation instead of auto-resolving as noise
	PendingThreshold int64
}

// DefaultVarianceServiceConfig returns default configuration
func DefaultVarianceServiceConfig() VarianceServiceConfig {
	return VarianceServiceConfig{
		PendingThreshold: 2,
	}
}

// NewVarianceService creates a new VarianceService
func NewVarianceService(
	txRepo ledger.TransactionRepository,
	varianceRepo variance.PalletVarianceRepository,
	logger *zap.Logger,
	config VarianceServiceConfig,
) *VarianceService {
	if config.PendingThreshold <= 0 {
		config.PendingThreshold = 2
	}

	return &VarianceService{
		txRepo:           txRepo,
		varianceRepo:     varianceRepo,
		logger:           logger,
		pendingThreshold: config.PendingThreshold,
	}
}

// DetectPalletVariance compares reported and system pallet counts for one
// key up to the as-of date. System pallets use the cartons-per-pallet
// figures frozen on each transaction, never a re-lookup, so the result is
// stable under later configuration changes. Returns nil when the counts
// agree.
func (s *VarianceService) DetectPalletVariance(ctx context.Context, key ledger.Key, asOf time.Time) (*variance.PalletVariance, error) {
	if key.WarehouseID == uuid.Nil || key.SkuID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "warehouse and SKU are required")
	}

	txs, err := s.txRepo.FindByKeyUntil(ctx, key, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(txs) == 0 {
		return nil, nil
	}

	var reported, system int64
	for _, tx := range txs {
		reported += tx.PalletsIn - tx.PalletsOut
		system += inventory.PalletsForCartons(tx.CartonsIn, tx.StorageCartonsPerPallet)
		system -= inventory.PalletsForCartons(tx.CartonsOut, tx.ShippingCartonsPerPallet)
	}

	if reported == system {
		return nil, nil
	}

	v := variance.NewPalletVariance(key, asOf, reported, system, s.pendingThreshold)
	if err := s.varianceRepo.Upsert(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to upsert pallet variance: %w", err)
	}

	s.logger.Info("Pallet variance detected",
		zap.String("warehouse_id", key.WarehouseID.String()),
		zap.String("sku_id", key.SkuID.String()),
		zap.String("batch_lot", key.BatchLot),
		zap.Int64("reported", reported),
		zap.Int64("system", system),
		zap.String("status", string(v.Status)))

	return v, nil
}

// DetectResult reports the outcome of a warehouse-wide variance sweep
type DetectResult struct {
	KeysChecked int      `json:"keys_checked"`
	Detected    int      `json:"detected"`
	Pending     int      `json:"pending"`
	Failed      int      `json:"failed"`
	Errors      []string `json:"errors,omitempty"`
}

// DetectWarehouseVariances sweeps every ledger key in a warehouse at the
// as-of date. A failing key is logged and counted, never fatal.
func (s *VarianceService) DetectWarehouseVariances(ctx context.Context, warehouseID uuid.UUID, asOf time.Time) (*DetectResult, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "warehouse is required")
	}

	keys, err := s.txRepo.DistinctKeys(ctx, &warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate ledger keys: %w", err)
	}

	result := &DetectResult{}
	for _, key := range keys {
		result.KeysChecked++
		v, err := s.DetectPalletVariance(ctx, key, asOf)
		if err != nil {
			s.logger.Error("Failed to detect variance",
				zap.String("warehouse_id", key.WarehouseID.String()),
				zap.String("sku_id", key.SkuID.String()),
				zap.String("batch_lot", key.BatchLot),
				zap.Error(err))
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", key, err))
			continue
		}
		if v == nil {
			continue
		}
		result.Detected++
		if v.Status == variance.StatusPending {
			result.Pending++
		}
	}

	s.logger.Info("Variance sweep completed",
		zap.String("warehouse_id", warehouseID.String()),
		zap.Int("keys_checked", result.KeysChecked),
		zap.Int("detected", result.Detected),
		zap.Int("pending", result.Pending),
		zap.Int("failed", result.Failed))

	return result, nil
}

// ResolveVariance records the investigated root cause for a pending variance
func (s *VarianceService) ResolveVariance(ctx context.Context, id uuid.UUID, rootCause variance.RootCause, notes string) (*variance.PalletVariance, error) {
	v, err := s.varianceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load variance: %w", err)
	}
	if v == nil {
		return nil, shared.ErrNotFound
	}

	if err := v.Resolve(rootCause, notes); err != nil {
		return nil, err
	}
	if err := s.varianceRepo.Save(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to save variance: %w", err)
	}
	return v, nil
}

// ListVariances returns variances matching the filter
func (s *VarianceService) ListVariances(ctx context.Context, filter variance.Filter) ([]variance.PalletVariance, int64, error) {
	items, err := s.varianceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.varianceRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

package ledger

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

// TransactionService appends movements to the inventory ledger. Appending
// is the only write: the ledger is the source of truth and existing entries
// are never updated or deleted.
type TransactionService struct {
	txRepo        ledger.TransactionRepository
	configRepo    inventory.WarehouseSkuConfigRepository
	warehouseRepo catalog.WarehouseRepository
	skuRepo       catalog.SkuRepository
	logger        *zap.Logger
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	txRepo ledger.TransactionRepository,
	configRepo inventory.WarehouseSkuConfigRepository,
	warehouseRepo catalog.WarehouseRepository,
	skuRepo catalog.SkuRepository,
	logger *zap.Logger,
) *TransactionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionService{
		txRepo:        txRepo,
		configRepo:    configRepo,
		warehouseRepo: warehouseRepo,
		skuRepo:       skuRepo,
		logger:        logger,
	}
}

// AppendTransactionInput carries one ledger movement
type AppendTransactionInput struct {
	WarehouseID     uuid.UUID
	SkuID           uuid.UUID
	BatchLot        string
	Type            ledger.TransactionType
	CartonsIn       int64
	CartonsOut      int64
	PalletsIn       int64
	PalletsOut      int64
	TransactionDate time.Time
	Reference       string
	Notes           string
}

// Append validates the movement and writes it to the ledger. The packing
// configuration active at the transaction date is captured on the record,
// so pallet math computed later stays stable when the configuration
// changes. A missing configuration freezes zeroes, which downstream
// consumers treat as "no pallet conversion available".
func (s *TransactionService) Append(ctx context.Context, input AppendTransactionInput) (*ledger.Transaction, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, input.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up warehouse: %w", err)
	}
	if warehouse == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Warehouse not found")
	}

	sku, err := s.skuRepo.FindByID(ctx, input.SkuID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up SKU: %w", err)
	}
	if sku == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "SKU not found")
	}

	tx := ledger.NewTransaction(input.WarehouseID, input.SkuID, input.BatchLot, input.Type, input.TransactionDate).
		WithCartons(input.CartonsIn, input.CartonsOut).
		WithPallets(input.PalletsIn, input.PalletsOut).
		WithReference(input.Reference).
		WithNotes(input.Notes)

	cfg, err := s.configRepo.FindActiveAt(ctx, input.WarehouseID, input.SkuID, tx.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up packing configuration: %w", err)
	}
	if cfg != nil {
		tx.WithPackingConfig(cfg.StorageCartonsPerPallet, cfg.ShippingCartonsPerPallet)
	} else {
		s.logger.Warn("No packing configuration active at transaction date",
			zap.String("warehouse_id", input.WarehouseID.String()),
			zap.String("sku_id", input.SkuID.String()),
			zap.Time("transaction_date", tx.TransactionDate))
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.txRepo.Append(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	s.logger.Info("Transaction appended",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("type", tx.Type.String()),
		zap.String("warehouse_id", tx.WarehouseID.String()),
		zap.String("sku_id", tx.SkuID.String()),
		zap.String("batch_lot", tx.BatchLot),
		zap.Int64("cartons_in", tx.CartonsIn),
		zap.Int64("cartons_out", tx.CartonsOut))

	return tx, nil
}

// Get returns one ledger transaction by ID
func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if tx == nil {
		return nil, shared.ErrNotFound
	}
	return tx, nil
}

// List returns transactions matching the filter plus the total count
func (s *TransactionService) List(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, int64, error) {
	items, err := s.txRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.txRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// History returns the full chronological transaction stream for one key
func (s *TransactionService) History(ctx context.Context, key ledger.Key) ([]ledger.Transaction, error) {
	return s.txRepo.FindByKey(ctx, key)
}

package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// WarehouseService manages the warehouse reference data that ledger
// transactions and packing configurations key into
type WarehouseService struct {
	warehouseRepo catalog.WarehouseRepository
	logger        *zap.Logger
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo catalog.WarehouseRepository, logger *zap.Logger) *WarehouseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WarehouseService{
		warehouseRepo: warehouseRepo,
		logger:        logger,
	}
}

// Create registers a warehouse with a unique code
func (s *WarehouseService) Create(ctx context.Context, code, name, address string) (*catalog.Warehouse, error) {
	existing, err := s.warehouseRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to check warehouse code: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Warehouse with this code already exists")
	}

	warehouse, err := catalog.NewWarehouse(code, name)
	if err != nil {
		return nil, err
	}
	if address != "" {
		warehouse.WithAddress(address)
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, fmt.Errorf("failed to save warehouse: %w", err)
	}

	s.logger.Info("Warehouse created",
		zap.String("warehouse_id", warehouse.ID.String()),
		zap.String("code", warehouse.Code))

	return warehouse, nil
}

// Get returns one warehouse by ID
func (s *WarehouseService) Get(ctx context.Context, id uuid.UUID) (*catalog.Warehouse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load warehouse: %w", err)
	}
	if warehouse == nil {
		return nil, shared.ErrNotFound
	}
	return warehouse, nil
}

// List returns warehouses matching the filter plus the total count
func (s *WarehouseService) List(ctx context.Context, filter shared.Filter) ([]catalog.Warehouse, int64, error) {
	items, err := s.warehouseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.warehouseRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

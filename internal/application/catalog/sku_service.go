package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SkuService manages SKU reference data
type SkuService struct {
	skuRepo catalog.SkuRepository
	logger  *zap.Logger
}

// NewSkuService creates a new SkuService
func NewSkuService(skuRepo catalog.SkuRepository, logger *zap.Logger) *SkuService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkuService{
		skuRepo: skuRepo,
		logger:  logger,
	}
}

// Create registers a SKU with a unique code. Units per carton defaults to
// one when not given, so unit math degrades to carton counts for SKUs
// that never had the figure recorded.
func (s *SkuService) Create(ctx context.Context, code, description string, unitsPerCarton int64) (*catalog.Sku, error) {
	existing, err := s.skuRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to check SKU code: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "SKU with this code already exists")
	}

	sku, err := catalog.NewSku(code, description)
	if err != nil {
		return nil, err
	}
	if unitsPerCarton > 0 {
		sku.WithUnitsPerCarton(unitsPerCarton)
	}

	if err := s.skuRepo.Save(ctx, sku); err != nil {
		return nil, fmt.Errorf("failed to save SKU: %w", err)
	}

	s.logger.Info("SKU created",
		zap.String("sku_id", sku.ID.String()),
		zap.String("code", sku.Code))

	return sku, nil
}

// Get returns one SKU by ID
func (s *SkuService) Get(ctx context.Context, id uuid.UUID) (*catalog.Sku, error) {
	sku, err := s.skuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load SKU: %w", err)
	}
	if sku == nil {
		return nil, shared.ErrNotFound
	}
	return sku, nil
}

// List returns SKUs matching the filter plus the total count
func (s *SkuService) List(ctx context.Context, filter shared.Filter) ([]catalog.Sku, int64, error) {
	items, err := s.skuRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.skuRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

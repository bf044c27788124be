package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/inventory"
	"go.uber.org/zap"
)

// ConfigService manages the effective-dated packing configurations that
// drive carton-to-pallet conversion
type ConfigService struct {
	configRepo inventory.WarehouseSkuConfigRepository
	logger     *zap.Logger
}

// NewConfigService creates a new ConfigService
func NewConfigService(configRepo inventory.WarehouseSkuConfigRepository, logger *zap.Logger) *ConfigService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigService{
		configRepo: configRepo,
		logger:     logger,
	}
}

// CreateConfigInput carries one packing configuration version
type CreateConfigInput struct {
	WarehouseID              uuid.UUID
	SkuID                    uuid.UUID
	StorageCartonsPerPallet  int64
	ShippingCartonsPerPallet int64
	EffectiveDate            time.Time
	EndDate                  *time.Time
}

// Create records a new configuration version. The previous open-ended
// version for the pair, if any, is closed the day before the new effective
// date so at most one version is active at any instant.
func (s *ConfigService) Create(ctx context.Context, input CreateConfigInput) (*inventory.WarehouseSkuConfig, error) {
	cfg, err := inventory.NewWarehouseSkuConfig(
		input.WarehouseID, input.SkuID,
		input.StorageCartonsPerPallet, input.ShippingCartonsPerPallet,
		input.EffectiveDate)
	if err != nil {
		return nil, err
	}
	if input.EndDate != nil {
		cfg.WithEndDate(*input.EndDate)
	}

	current, err := s.configRepo.FindActiveAt(ctx, input.WarehouseID, input.SkuID, cfg.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up current configuration: %w", err)
	}
	if current != nil && current.EndDate == nil && current.EffectiveDate.Before(cfg.EffectiveDate) {
		current.WithEndDate(cfg.EffectiveDate.AddDate(0, 0, -1))
		if err := s.configRepo.Save(ctx, current); err != nil {
			return nil, fmt.Errorf("failed to close previous configuration: %w", err)
		}
		s.logger.Info("Closed previous packing configuration",
			zap.String("config_id", current.ID.String()),
			zap.Time("end_date", *current.EndDate))
	}

	if err := s.configRepo.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save configuration: %w", err)
	}

	s.logger.Info("Packing configuration created",
		zap.String("warehouse_id", cfg.WarehouseID.String()),
		zap.String("sku_id", cfg.SkuID.String()),
		zap.Int64("storage_cpp", cfg.StorageCartonsPerPallet),
		zap.Int64("shipping_cpp", cfg.ShippingCartonsPerPallet),
		zap.Time("effective_date", cfg.EffectiveDate))

	return cfg, nil
}

// History returns all configuration versions for a pair, oldest first
func (s *ConfigService) History(ctx context.Context, warehouseID, skuID uuid.UUID) ([]inventory.WarehouseSkuConfig, error) {
	return s.configRepo.FindByPair(ctx, warehouseID, skuID)
}

// ActiveAt returns the configuration version active at the instant, or nil
// when none is
func (s *ConfigService) ActiveAt(ctx context.Context, warehouseID, skuID uuid.UUID, instant time.Time) (*inventory.WarehouseSkuConfig, error) {
	return s.configRepo.FindActiveAt(ctx, warehouseID, skuID, instant)
}

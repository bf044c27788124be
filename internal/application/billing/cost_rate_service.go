package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/billing"
	"go.uber.org/zap"
)

// CostRateService manages the effective-dated billing rates that weekly
// storage costs are priced from
type CostRateService struct {
	rateRepo billing.CostRateRepository
	logger   *zap.Logger
}

// NewCostRateService creates a new CostRateService
func NewCostRateService(rateRepo billing.CostRateRepository, logger *zap.Logger) *CostRateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CostRateService{
		rateRepo: rateRepo,
		logger:   logger,
	}
}

// CreateRateInput carries one rate version
type CreateRateInput struct {
	WarehouseID   uuid.UUID
	Category      string
	Name          string
	Value         decimal.Decimal
	UnitOfMeasure string
	EffectiveDate time.Time
	EndDate       *time.Time
}

// Create records a new rate version. The previous open-ended version with
// the same (warehouse, category, name), if any, is closed the day before
// the new effective date.
func (s *CostRateService) Create(ctx context.Context, input CreateRateInput) (*billing.CostRate, error) {
	rate, err := billing.NewCostRate(
		input.WarehouseID, input.Category, input.Name,
		input.Value, input.UnitOfMeasure, input.EffectiveDate)
	if err != nil {
		return nil, err
	}
	if input.EndDate != nil {
		rate.WithEndDate(*input.EndDate)
	}

	current, err := s.rateRepo.FindActiveAt(ctx, input.WarehouseID, input.Category, input.Name, rate.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up current rate: %w", err)
	}
	if current != nil && current.EndDate == nil && current.EffectiveDate.Before(rate.EffectiveDate) {
		current.WithEndDate(rate.EffectiveDate.AddDate(0, 0, -1))
		if err := s.rateRepo.Save(ctx, current); err != nil {
			return nil, fmt.Errorf("failed to close previous rate: %w", err)
		}
	}

	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save rate: %w", err)
	}

	s.logger.Info("Cost rate created",
		zap.String("warehouse_id", rate.WarehouseID.String()),
		zap.String("category", rate.Category),
		zap.String("name", rate.Name),
		zap.String("value", rate.Value.String()),
		zap.Time("effective_date", rate.EffectiveDate))

	return rate, nil
}

// ListByWarehouse returns all rate versions for a warehouse
func (s *CostRateService) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]billing.CostRate, error) {
	return s.rateRepo.FindByWarehouse(ctx, warehouseID)
}

// ActiveAt returns the rate version active at the instant, or nil when
// none is
func (s *CostRateService) ActiveAt(ctx context.Context, warehouseID uuid.UUID, category, name string, instant time.Time) (*billing.CostRate, error) {
	return s.rateRepo.FindActiveAt(ctx, warehouseID, category, name, instant)
}

package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// Sku represents a stock keeping unit. UnitsPerCarton converts carton
// balances into unit counts; balance math treats a missing SKU record as
// one unit per carton.
type Sku struct {
	shared.BaseEntity
	Code           string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description    string `gorm:"type:text"`
	UnitsPerCarton int64  `gorm:"not null;default:1"`
	Active         bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Sku) TableName() string {
	return "skus"
}

// NewSku creates a SKU with the given code. Units per carton defaults to 1.
func NewSku(code, description string) (*Sku, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "SKU code is required")
	}
	return &Sku{
		BaseEntity:     shared.NewBaseEntity(),
		Code:           code,
		Description:    description,
		UnitsPerCarton: 1,
		Active:         true,
	}, nil
}

// WithUnitsPerCarton sets the carton-to-unit conversion factor
func (s *Sku) WithUnitsPerCarton(units int64) *Sku {
	if units > 0 {
		s.UnitsPerCarton = units
	}
	return s
}

// SkuRepository is the persistence contract for SKUs
type SkuRepository interface {
	Save(ctx context.Context, sku *Sku) error
	FindByID(ctx context.Context, id uuid.UUID) (*Sku, error)
	FindByCode(ctx context.Context, code string) (*Sku, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sku, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

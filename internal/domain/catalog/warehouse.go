package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// Warehouse represents a physical storage location that accrues weekly
// storage charges
type Warehouse struct {
	shared.BaseEntity
	Code    string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:text"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a warehouse with the given code and name
func NewWarehouse(code, name string) (*Warehouse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "warehouse code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "warehouse name is required")
	}
	return &Warehouse{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		Active:     true,
	}, nil
}

// WithAddress sets the warehouse address
func (w *Warehouse) WithAddress(address string) *Warehouse {
	w.Address = address
	return w
}

// Deactivate marks the warehouse inactive; its ledger history remains
func (w *Warehouse) Deactivate() {
	w.Active = false
}

// WarehouseRepository is the persistence contract for warehouses
type WarehouseRepository interface {
	Save(ctx context.Context, warehouse *Warehouse) error
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindByCode(ctx context.Context, code string) (*Warehouse, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Warehouse, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

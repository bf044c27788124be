package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/billing"
	"gorm.io/gorm"
)

// GormReconciliationRepository implements billing.InvoiceReconciliationRepository using GORM
type GormReconciliationRepository struct {
	db *gorm.DB
}

// NewGormReconciliationRepository creates a new GormReconciliationRepository
func NewGormReconciliationRepository(db *gorm.DB) *GormReconciliationRepository {
	return &GormReconciliationRepository{db: db}
}

// Save creates or updates a reconciliation
func (r *GormReconciliationRepository) Save(ctx context.Context, rec *billing.InvoiceReconciliation) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// FindByID finds a reconciliation by ID, returning (nil, nil) when absent
func (r *GormReconciliationRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.InvoiceReconciliation, error) {
	var rec billing.InvoiceReconciliation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// FindAll returns reconciliations matching the filter, newest first by default
func (r *GormReconciliationRepository) FindAll(ctx context.Context, filter billing.ReconciliationFilter) ([]billing.InvoiceReconciliation, error) {
	var recs []billing.InvoiceReconciliation
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.InvoiceReconciliation{}), filter)

	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	orderBy := ValidateSortField(filter.OrderBy, ReconciliationSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// Count returns the number of reconciliations matching the filter
func (r *GormReconciliationRepository) Count(ctx context.Context, filter billing.ReconciliationFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.InvoiceReconciliation{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies the filter conditions without pagination or ordering
func (r *GormReconciliationRepository) applyFilter(query *gorm.DB, filter billing.ReconciliationFilter) *gorm.DB {
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DisputeStatus != nil {
		query = query.Where("dispute_status = ?", *filter.DisputeStatus)
	}
	return query
}

// Ensure GormReconciliationRepository implements InvoiceReconciliationRepository
var _ billing.InvoiceReconciliationRepository = (*GormReconciliationRepository)(nil)

package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/ledger"
	"github.com/wms/backend/internal/domain/shared"
)

type mockTransactionRepo struct {
	mock.Mock
}

func (m *mockTransactionRepo) Append(ctx context.Context, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) FindByKey(ctx context.Context, key ledger.Key) ([]ledger.Transaction, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) FindByKeyUntil(ctx context.Context, key ledger.Key, until time.Time) ([]ledger.Transaction, error) {
	args := m.Called(ctx, key, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) DistinctKeys(ctx context.Context, warehouseID *uuid.UUID) ([]ledger.Key, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Key), args.Error(1)
}

func (m *mockTransactionRepo) FindAll(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) Count(ctx context.Context, filter ledger.TransactionFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockConfigRepo struct {
	mock.Mock
}

func (m *mockConfigRepo) Save(ctx context.Context, config *inventory.WarehouseSkuConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *mockConfigRepo) FindByPair(ctx context.Context, warehouseID, skuID uuid.UUID) ([]inventory.WarehouseSkuConfig, error) {
	args := m.Called(ctx, warehouseID, skuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.WarehouseSkuConfig), args.Error(1)
}

func (m *mockConfigRepo) FindActiveAt(ctx context.Context, warehouseID, skuID uuid.UUID, instant time.Time) (*inventory.WarehouseSkuConfig, error) {
	args := m.Called(ctx, warehouseID, skuID, instant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.WarehouseSkuConfig), args.Error(1)
}

type mockWarehouseRepo struct {
	mock.Mock
}

func (m *mockWarehouseRepo) Save(ctx context.Context, warehouse *catalog.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *mockWarehouseRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Warehouse), args.Error(1)
}

func (m *mockWarehouseRepo) FindByCode(ctx context.Context, code string) (*catalog.Warehouse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Warehouse), args.Error(1)
}

func (m *mockWarehouseRepo) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Warehouse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Warehouse), args.Error(1)
}

func (m *mockWarehouseRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockSkuRepo struct {
	mock.Mock
}

func (m *mockSkuRepo) Save(ctx context.Context, sku *catalog.Sku) error {
	args := m.Called(ctx, sku)
	return args.Error(0)
}

func (m *mockSkuRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Sku, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Sku), args.Error(1)
}

func (m *mockSkuRepo) FindByCode(ctx context.Context, code string) (*catalog.Sku, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Sku), args.Error(1)
}

func (m *mockSkuRepo) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Sku, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Sku), args.Error(1)
}

func (m *mockSkuRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

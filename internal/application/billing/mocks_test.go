package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/wms/backend/internal/domain/billing"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/ledger"
	"github.com/wms/backend/internal/domain/shared"
)

type mockBalanceRepo struct {
	mock.Mock
}

func (m *mockBalanceRepo) Upsert(ctx context.Context, balance *inventory.InventoryBalance) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}

func (m *mockBalanceRepo) FindByKey(ctx context.Context, key ledger.Key) (*inventory.InventoryBalance, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryBalance), args.Error(1)
}

func (m *mockBalanceRepo) FindPositive(ctx context.Context, warehouseID *uuid.UUID) ([]inventory.InventoryBalance, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryBalance), args.Error(1)
}

func (m *mockBalanceRepo) FindAll(ctx context.Context, filter inventory.BalanceFilter) ([]inventory.InventoryBalance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryBalance), args.Error(1)
}

func (m *mockBalanceRepo) Count(ctx context.Context, filter inventory.BalanceFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBalanceRepo) DeleteZeroBalances(ctx context.Context, warehouseID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, warehouseID)
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

type mockRateRepo struct {
	mock.Mock
}

func (m *mockRateRepo) Save(ctx context.Context, rate *billing.CostRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *mockRateRepo) FindByName(ctx context.Context, warehouseID uuid.UUID, category, name string) ([]billing.CostRate, error) {
	args := m.Called(ctx, warehouseID, category, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.CostRate), args.Error(1)
}

func (m *mockRateRepo) FindActiveAt(ctx context.Context, warehouseID uuid.UUID, category, name string, instant time.Time) (*billing.CostRate, error) {
	args := m.Called(ctx, warehouseID, category, name, instant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CostRate), args.Error(1)
}

func (m *mockRateRepo) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]billing.CostRate, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.CostRate), args.Error(1)
}

type mockStorageLedgerRepo struct {
	mock.Mock
}

func (m *mockStorageLedgerRepo) Upsert(ctx context.Context, entry *billing.StorageLedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockStorageLedgerRepo) FindByPeriod(ctx context.Context, warehouseID *uuid.UUID, start, end time.Time) ([]billing.StorageLedgerEntry, error) {
	args := m.Called(ctx, warehouseID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.StorageLedgerEntry), args.Error(1)
}

func (m *mockStorageLedgerRepo) SumCostForPeriod(ctx context.Context, warehouseID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, warehouseID, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockStorageLedgerRepo) FindAll(ctx context.Context, filter billing.StorageLedgerFilter) ([]billing.StorageLedgerEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.StorageLedgerEntry), args.Error(1)
}

func (m *mockStorageLedgerRepo) Count(ctx context.Context, filter billing.StorageLedgerFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockReconciliationRepo struct {
	mock.Mock
}

func (m *mockReconciliationRepo) Save(ctx context.Context, reconciliation *billing.InvoiceReconciliation) error {
	args := m.Called(ctx, reconciliation)
	return args.Error(0)
}

func (m *mockReconciliationRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.InvoiceReconciliation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.InvoiceReconciliation), args.Error(1)
}

func (m *mockReconciliationRepo) FindAll(ctx context.Context, filter billing.ReconciliationFilter) ([]billing.InvoiceReconciliation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.InvoiceReconciliation), args.Error(1)
}

func (m *mockReconciliationRepo) Count(ctx context.Context, filter billing.ReconciliationFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
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

type mockBalanceCalculator struct {
	mock.Mock
}

func (m *mockBalanceCalculator) BalanceAsOf(ctx context.Context, key ledger.Key, instant time.Time) (int64, error) {
	args := m.Called(ctx, key, instant)
	return args.Get(0).(int64), args.Error(1)
}

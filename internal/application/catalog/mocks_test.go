package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
)

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

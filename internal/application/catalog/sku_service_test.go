package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
)

func TestSkuService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates SKU with units per carton", func(t *testing.T) {
		skuRepo := new(mockSkuRepo)
		svc := NewSkuService(skuRepo, nil)

		skuRepo.On("FindByCode", ctx, "WIDGET-A").Return(nil, nil)
		skuRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Sku")).Return(nil)

		sku, err := svc.Create(ctx, "WIDGET-A", "Widget, type A", 24)

		require.NoError(t, err)
		assert.Equal(t, "WIDGET-A", sku.Code)
		assert.Equal(t, int64(24), sku.UnitsPerCarton)
		skuRepo.AssertExpectations(t)
	})

	t.Run("defaults units per carton to one", func(t *testing.T) {
		skuRepo := new(mockSkuRepo)
		svc := NewSkuService(skuRepo, nil)

		skuRepo.On("FindByCode", ctx, "WIDGET-B").Return(nil, nil)
		skuRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Sku")).Return(nil)

		sku, err := svc.Create(ctx, "WIDGET-B", "Widget, type B", 0)

		require.NoError(t, err)
		assert.Equal(t, int64(1), sku.UnitsPerCarton)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		skuRepo := new(mockSkuRepo)
		svc := NewSkuService(skuRepo, nil)

		existing, err := catalog.NewSku("WIDGET-A", "Widget, type A")
		require.NoError(t, err)
		skuRepo.On("FindByCode", ctx, "WIDGET-A").Return(existing, nil)

		_, err = svc.Create(ctx, "WIDGET-A", "Duplicate", 0)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		skuRepo.AssertNotCalled(t, "Save")
	})
}

func TestSkuService_Get(t *testing.T) {
	ctx := context.Background()
	skuRepo := new(mockSkuRepo)
	svc := NewSkuService(skuRepo, nil)

	id := uuid.New()
	skuRepo.On("FindByID", ctx, id).Return(nil, nil)

	_, err := svc.Get(ctx, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSkuService_List(t *testing.T) {
	ctx := context.Background()
	skuRepo := new(mockSkuRepo)
	svc := NewSkuService(skuRepo, nil)

	sku, err := catalog.NewSku("WIDGET-A", "Widget, type A")
	require.NoError(t, err)

	filter := shared.DefaultFilter()
	skuRepo.On("FindAll", ctx, filter).Return([]catalog.Sku{*sku}, nil)
	skuRepo.On("Count", ctx, filter).Return(int64(1), nil)

	items, total, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), total)
}

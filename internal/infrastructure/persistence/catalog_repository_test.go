package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&catalog.Warehouse{}, &catalog.Sku{})
	require.NoError(t, err)

	return db
}

func TestWarehouseRepository(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormWarehouseRepository(db)
	ctx := context.Background()

	t.Run("saves and finds by code", func(t *testing.T) {
		warehouse, err := catalog.NewWarehouse("ONT-8", "Ontario Fulfillment")
		require.NoError(t, err)
		warehouse.WithAddress("2020 E Philadelphia St, Ontario, CA")
		require.NoError(t, repo.Save(ctx, warehouse))

		found, err := repo.FindByCode(ctx, "ONT-8")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, warehouse.ID, found.ID)
		assert.Equal(t, "Ontario Fulfillment", found.Name)
	})

	t.Run("returns nil for unknown code", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, "MISSING")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("returns nil for unknown ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("lists ordered by code", func(t *testing.T) {
		second, err := catalog.NewWarehouse("EWR-4", "Newark")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, second))

		warehouses, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, warehouses, 2)
		assert.Equal(t, "EWR-4", warehouses[0].Code)

		count, err := repo.Count(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestSkuRepository(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormSkuRepository(db)
	ctx := context.Background()

	t.Run("saves and finds by code", func(t *testing.T) {
		sku, err := catalog.NewSku("WIDGET-XL", "Extra large widget, case of 24")
		require.NoError(t, err)
		sku.WithUnitsPerCarton(24)
		require.NoError(t, repo.Save(ctx, sku))

		found, err := repo.FindByCode(ctx, "WIDGET-XL")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, int64(24), found.UnitsPerCarton)
	})

	t.Run("returns nil for unknown code", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, "NOPE")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/inventory"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupConfigTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&inventory.WarehouseSkuConfig{})
	require.NoError(t, err)

	return db
}

func TestWarehouseSkuConfigRepository_FindActiveAt(t *testing.T) {
	db := setupConfigTestDB(t)
	repo := NewGormWarehouseSkuConfigRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()
	skuID := uuid.New()

	// Old config superseded mid-June, new config open-ended
	oldCfg, err := inventory.NewWarehouseSkuConfig(warehouseID, skuID, 20, 24,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	oldCfg.WithEndDate(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, oldCfg))

	newCfg, err := inventory.NewWarehouseSkuConfig(warehouseID, skuID, 30, 36,
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, newCfg))

	t.Run("picks config active during its window", func(t *testing.T) {
		cfg, err := repo.FindActiveAt(ctx, warehouseID, skuID,
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, int64(20), cfg.StorageCartonsPerPallet)
	})

	t.Run("picks latest effective config after changeover", func(t *testing.T) {
		cfg, err := repo.FindActiveAt(ctx, warehouseID, skuID,
			time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, int64(30), cfg.StorageCartonsPerPallet)
	})

	t.Run("returns nil before any config is effective", func(t *testing.T) {
		cfg, err := repo.FindActiveAt(ctx, warehouseID, skuID,
			time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns nil for unknown pair", func(t *testing.T) {
		cfg, err := repo.FindActiveAt(ctx, uuid.New(), skuID,
			time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})
}

func TestWarehouseSkuConfigRepository_FindByPair(t *testing.T) {
	db := setupConfigTestDB(t)
	repo := NewGormWarehouseSkuConfigRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()
	skuID := uuid.New()

	for _, month := range []time.Month{time.March, time.January, time.February} {
		cfg, err := inventory.NewWarehouseSkuConfig(warehouseID, skuID, 20, 24,
			time.Date(2025, month, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, cfg))
	}

	configs, err := repo.FindByPair(ctx, warehouseID, skuID)
	require.NoError(t, err)
	require.Len(t, configs, 3)
	assert.True(t, configs[0].EffectiveDate.Before(configs[1].EffectiveDate))
	assert.True(t, configs[1].EffectiveDate.Before(configs[2].EffectiveDate))
}

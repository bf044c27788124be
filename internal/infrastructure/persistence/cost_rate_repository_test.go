package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/billing"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCostRateTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&billing.CostRate{})
	require.NoError(t, err)

	return db
}

func TestCostRateRepository_FindActiveAt(t *testing.T) {
	db := setupCostRateTestDB(t)
	repo := NewGormCostRateRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()

	oldRate, err := billing.NewCostRate(warehouseID, billing.CostCategoryStorage,
		billing.DefaultStorageRateName, decimal.NewFromFloat(3.5), "pallet/week",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	oldRate.WithEndDate(time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, oldRate))

	newRate, err := billing.NewCostRate(warehouseID, billing.CostCategoryStorage,
		billing.DefaultStorageRateName, decimal.NewFromFloat(3.9), "pallet/week",
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, newRate))

	t.Run("picks rate effective at instant", func(t *testing.T) {
		rate, err := repo.FindActiveAt(ctx, warehouseID, billing.CostCategoryStorage,
			billing.DefaultStorageRateName, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NotNil(t, rate)
		assert.True(t, rate.Value.Equal(decimal.NewFromFloat(3.5)))
	})

	t.Run("picks later rate after changeover", func(t *testing.T) {
		rate, err := repo.FindActiveAt(ctx, warehouseID, billing.CostCategoryStorage,
			billing.DefaultStorageRateName, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NotNil(t, rate)
		assert.True(t, rate.Value.Equal(decimal.NewFromFloat(3.9)))
	})

	t.Run("returns nil for unknown name", func(t *testing.T) {
		rate, err := repo.FindActiveAt(ctx, warehouseID, billing.CostCategoryStorage,
			"Special Handling", time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Nil(t, rate)
	})
}

func TestCostRateRepository_FindByWarehouse(t *testing.T) {
	db := setupCostRateTestDB(t)
	repo := NewGormCostRateRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()

	storage, err := billing.NewCostRate(warehouseID, billing.CostCategoryStorage,
		billing.DefaultStorageRateName, decimal.NewFromFloat(3.9), "pallet/week",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	handling, err := billing.NewCostRate(warehouseID, billing.CostCategoryHandling,
		"Carton Pick", decimal.NewFromFloat(0.45), "carton",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, storage))
	require.NoError(t, repo.Save(ctx, handling))

	rates, err := repo.FindByWarehouse(ctx, warehouseID)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, billing.CostCategoryHandling, rates[0].Category)
	assert.Equal(t, billing.CostCategoryStorage, rates[1].Category)
}

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/ledger"
	"github.com/wms/backend/internal/domain/variance"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupVarianceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&variance.PalletVariance{})
	require.NoError(t, err)

	return db
}

func TestPalletVarianceRepository_Upsert(t *testing.T) {
	db := setupVarianceTestDB(t)
	repo := NewGormPalletVarianceRepository(db)
	ctx := context.Background()

	key := ledger.Key{WarehouseID: uuid.New(), SkuID: uuid.New(), BatchLot: "NONE"}
	reportDate := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	t.Run("inserts new detection", func(t *testing.T) {
		pv := variance.NewPalletVariance(key, reportDate, 10, 6, 2)
		require.NoError(t, repo.Upsert(ctx, pv))

		found, err := repo.FindByID(ctx, pv.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, variance.StatusPending, found.Status)
		assert.Equal(t, int64(4), found.VarianceAmount)
	})

	t.Run("rerunning detection refreshes the row", func(t *testing.T) {
		pv := variance.NewPalletVariance(key, reportDate, 7, 6, 2)
		require.NoError(t, repo.Upsert(ctx, pv))

		count, err := repo.Count(ctx, variance.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		pvs, err := repo.FindAll(ctx, variance.Filter{WarehouseID: &key.WarehouseID})
		require.NoError(t, err)
		require.Len(t, pvs, 1)
		assert.Equal(t, int64(1), pvs[0].VarianceAmount)
		assert.Equal(t, variance.StatusResolved, pvs[0].Status)
	})
}

func TestPalletVarianceRepository_Resolve(t *testing.T) {
	db := setupVarianceTestDB(t)
	repo := NewGormPalletVarianceRepository(db)
	ctx := context.Background()

	key := ledger.Key{WarehouseID: uuid.New(), SkuID: uuid.New(), BatchLot: "LOT-7"}
	pv := variance.NewPalletVariance(key, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), 12, 6, 2)
	require.NoError(t, repo.Upsert(ctx, pv))

	require.NoError(t, pv.Resolve(variance.RootCauseConsolidation, "pallets merged during cycle count"))
	require.NoError(t, repo.Save(ctx, pv))

	found, err := repo.FindByID(ctx, pv.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, variance.StatusResolved, found.Status)
	assert.Equal(t, variance.RootCauseConsolidation, found.RootCause)
	assert.NotNil(t, found.ResolvedAt)
}

func TestPalletVarianceRepository_CountPendingVariances(t *testing.T) {
	db := setupVarianceTestDB(t)
	repo := NewGormPalletVarianceRepository(db)
	ctx := context.Background()

	reportDate := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	// Two above the threshold stay pending, one within it auto-resolves
	for _, reported := range []int64{10, 11} {
		key := ledger.Key{WarehouseID: uuid.New(), SkuID: uuid.New(), BatchLot: "NONE"}
		require.NoError(t, repo.Upsert(ctx, variance.NewPalletVariance(key, reportDate, reported, 6, 2)))
	}
	noiseKey := ledger.Key{WarehouseID: uuid.New(), SkuID: uuid.New(), BatchLot: "NONE"}
	require.NoError(t, repo.Upsert(ctx, variance.NewPalletVariance(noiseKey, reportDate, 7, 6, 2)))

	pending, err := repo.CountPendingVariances(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending)

	t.Run("status filter matches pending count", func(t *testing.T) {
		status := variance.StatusPending
		count, err := repo.Count(ctx, variance.Filter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

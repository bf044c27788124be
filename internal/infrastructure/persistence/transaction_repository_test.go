package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/ledger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTransactionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&ledger.Transaction{})
	require.NoError(t, err)

	return db
}

func TestTransactionRepository_Append(t *testing.T) {
	db := setupTransactionTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	t.Run("appends and finds by ID", func(t *testing.T) {
		tx := ledger.NewTransaction(uuid.New(), uuid.New(), "LOT-A", ledger.TransactionTypeReceive,
			time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)).
			WithCartons(100, 0).
			WithPackingConfig(20, 24)

		err := repo.Append(ctx, tx)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, tx.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, tx.ID, found.ID)
		assert.Equal(t, int64(100), found.CartonsIn)
		assert.Equal(t, int64(20), found.StorageCartonsPerPallet)
	})

	t.Run("returns nil for missing ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestTransactionRepository_FindByKey(t *testing.T) {
	db := setupTransactionTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	key := ledger.Key{WarehouseID: uuid.New(), SkuID: uuid.New(), BatchLot: "NONE"}

	// Insert out of chronological order to exercise ordering
	dates := []time.Time{
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		tx := ledger.NewTransaction(key.WarehouseID, key.SkuID, key.BatchLot,
			ledger.TransactionTypeReceive, d).WithCartons(10, 0)
		require.NoError(t, repo.Append(ctx, tx))
	}

	// A transaction on another key must not leak in
	other := ledger.NewTransaction(uuid.New(), key.SkuID, key.BatchLot,
		ledger.TransactionTypeReceive, dates[0]).WithCartons(99, 0)
	require.NoError(t, repo.Append(ctx, other))

	t.Run("returns transactions in date order", func(t *testing.T) {
		txs, err := repo.FindByKey(ctx, key)
		require.NoError(t, err)
		require.Len(t, txs, 3)
		assert.True(t, txs[0].TransactionDate.Before(txs[1].TransactionDate))
		assert.True(t, txs[1].TransactionDate.Before(txs[2].TransactionDate))
	})

	t.Run("until cuts off later transactions", func(t *testing.T) {
		until := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
		txs, err := repo.FindByKeyUntil(ctx, key, until)
		require.NoError(t, err)
		assert.Len(t, txs, 2)
	})
}

func TestTransactionRepository_DistinctKeys(t *testing.T) {
	db := setupTransactionTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	warehouseA := uuid.New()
	warehouseB := uuid.New()
	sku := uuid.New()

	for i := 0; i < 3; i++ {
		tx := ledger.NewTransaction(warehouseA, sku, "LOT-1", ledger.TransactionTypeReceive,
			time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.UTC)).WithCartons(5, 0)
		require.NoError(t, repo.Append(ctx, tx))
	}
	txB := ledger.NewTransaction(warehouseB, sku, "NONE", ledger.TransactionTypeShip,
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)).WithCartons(0, 2)
	require.NoError(t, repo.Append(ctx, txB))

	t.Run("collapses repeated keys", func(t *testing.T) {
		keys, err := repo.DistinctKeys(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, keys, 2)
	})

	t.Run("scopes to one warehouse", func(t *testing.T) {
		keys, err := repo.DistinctKeys(ctx, &warehouseB)
		require.NoError(t, err)
		require.Len(t, keys, 1)
		assert.Equal(t, warehouseB, keys[0].WarehouseID)
		assert.Equal(t, "NONE", keys[0].BatchLot)
	})
}

func TestTransactionRepository_FindAll(t *testing.T) {
	db := setupTransactionTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()
	skuID := uuid.New()

	receive := ledger.NewTransaction(warehouseID, skuID, "NONE", ledger.TransactionTypeReceive,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).WithCartons(50, 0)
	ship := ledger.NewTransaction(warehouseID, skuID, "NONE", ledger.TransactionTypeShip,
		time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)).WithCartons(0, 20)
	require.NoError(t, repo.Append(ctx, receive))
	require.NoError(t, repo.Append(ctx, ship))

	t.Run("filters by type", func(t *testing.T) {
		txType := ledger.TransactionTypeShip
		filter := ledger.TransactionFilter{Type: &txType}
		txs, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, ledger.TransactionTypeShip, txs[0].Type)
	})

	t.Run("filters by date range", func(t *testing.T) {
		from := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
		filter := ledger.TransactionFilter{From: &from}
		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("counts all for warehouse", func(t *testing.T) {
		filter := ledger.TransactionFilter{WarehouseID: &warehouseID}
		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

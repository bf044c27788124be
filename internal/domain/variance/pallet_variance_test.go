package variance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/ledger"
)

const pendingThreshold = int64(2)

func testKey() ledger.Key {
	return ledger.Key{WarehouseID: uuid.New(), SkuID: uuid.New(), BatchLot: "NONE"}
}

func TestNewPalletVariance(t *testing.T) {
	reportDate := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	t.Run("large variance stays pending", func(t *testing.T) {
		v := NewPalletVariance(testKey(), reportDate, 12, 7, pendingThreshold)

		assert.Equal(t, int64(5), v.VarianceAmount)
		assert.Equal(t, StatusPending, v.Status)
		assert.Empty(t, string(v.RootCause))
		assert.Nil(t, v.ResolvedAt)
	})

	t.Run("small variance auto-resolves as noise", func(t *testing.T) {
		v := NewPalletVariance(testKey(), reportDate, 8, 7, pendingThreshold)

		assert.Equal(t, int64(1), v.VarianceAmount)
		assert.Equal(t, StatusResolved, v.Status)
		assert.Equal(t, RootCauseRounding, v.RootCause)
		assert.NotNil(t, v.ResolvedAt)
	})

	t.Run("variance at threshold auto-resolves", func(t *testing.T) {
		v := NewPalletVariance(testKey(), reportDate, 5, 7, pendingThreshold)

		assert.Equal(t, int64(-2), v.VarianceAmount)
		assert.Equal(t, StatusResolved, v.Status)
		assert.Equal(t, RootCauseConsolidation, v.RootCause)
	})

	t.Run("variance just past threshold stays pending", func(t *testing.T) {
		v := NewPalletVariance(testKey(), reportDate, 4, 7, pendingThreshold)

		assert.Equal(t, int64(-3), v.VarianceAmount)
		assert.Equal(t, StatusPending, v.Status)
	})

	t.Run("positive small variance classified as optimization", func(t *testing.T) {
		v := NewPalletVariance(testKey(), reportDate, 9, 7, pendingThreshold)

		assert.Equal(t, RootCauseOptimization, v.RootCause)
	})

	t.Run("variance percentage relative to system pallets", func(t *testing.T) {
		v := NewPalletVariance(testKey(), reportDate, 12, 8, pendingThreshold)

		assert.True(t, v.VariancePercentage.Equal(decimal.NewFromInt(50)))
	})

	t.Run("zero system pallets yields zero percentage", func(t *testing.T) {
		v := NewPalletVariance(testKey(), reportDate, 3, 0, pendingThreshold)

		assert.True(t, v.VariancePercentage.IsZero())
	})
}

func TestPalletVariance_Resolve(t *testing.T) {
	reportDate := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	t.Run("pending variance resolves with root cause", func(t *testing.T) {
		v := NewPalletVariance(testKey(), reportDate, 12, 7, pendingThreshold)

		require.NoError(t, v.Resolve(RootCauseConsolidation, "partial pallets combined during cycle count"))
		assert.Equal(t, StatusResolved, v.Status)
		assert.Equal(t, RootCauseConsolidation, v.RootCause)
		assert.NotNil(t, v.ResolvedAt)
	})

	t.Run("already resolved variance rejects resolution", func(t *testing.T) {
		v := NewPalletVariance(testKey(), reportDate, 8, 7, pendingThreshold)

		require.Error(t, v.Resolve(RootCauseRounding, ""))
	})

	t.Run("unknown root cause rejected", func(t *testing.T) {
		v := NewPalletVariance(testKey(), reportDate, 12, 7, pendingThreshold)

		require.Error(t, v.Resolve(RootCause("theft"), ""))
	})
}

package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tolerance = decimal.NewFromInt(10)

func lineFor(amount float64) InvoiceLineItem {
	return InvoiceLineItem{
		WarehouseID: uuid.New(),
		Category:    CostCategoryStorage,
		Name:        DefaultStorageRateName,
		Amount:      decimal.NewFromFloat(amount),
	}
}

func TestNewInvoiceReconciliation_Classification(t *testing.T) {
	expected := decimal.NewFromFloat(19.5)
	now := time.Now()

	t.Run("equal amounts match", func(t *testing.T) {
		rec := NewInvoiceReconciliation(lineFor(19.5), expected, tolerance, now)

		assert.Equal(t, StatusMatch, rec.Status)
		assert.True(t, rec.Difference.IsZero())
		assert.Equal(t, DisputeNone, rec.DisputeStatus)
		assert.False(t, rec.RequiresReview())
	})

	t.Run("difference beyond tolerance is overbilled", func(t *testing.T) {
		rec := NewInvoiceReconciliation(lineFor(35.0), expected, tolerance, now)

		assert.Equal(t, StatusOverbilled, rec.Status)
		assert.True(t, rec.Difference.Equal(decimal.NewFromFloat(15.5)))
		assert.Equal(t, DisputeOpen, rec.DisputeStatus)
		assert.True(t, rec.RequiresReview())
	})

	t.Run("shortfall beyond tolerance is underbilled", func(t *testing.T) {
		rec := NewInvoiceReconciliation(lineFor(5.0), expected, tolerance, now)

		assert.Equal(t, StatusUnderbilled, rec.Status)
		assert.True(t, rec.Difference.Equal(decimal.NewFromFloat(-14.5)))
		assert.Equal(t, DisputeOpen, rec.DisputeStatus)
	})

	t.Run("difference inside tolerance still matches", func(t *testing.T) {
		rec := NewInvoiceReconciliation(lineFor(28.0), expected, tolerance, now)

		assert.Equal(t, StatusMatch, rec.Status)
	})

	t.Run("difference exactly at tolerance is not a match", func(t *testing.T) {
		rec := NewInvoiceReconciliation(lineFor(29.5), expected, tolerance, now)

		assert.Equal(t, StatusOverbilled, rec.Status)
	})
}

func TestInvoiceReconciliation_DisputeLifecycle(t *testing.T) {
	expected := decimal.NewFromFloat(19.5)

	t.Run("open through review to resolved", func(t *testing.T) {
		rec := NewInvoiceReconciliation(lineFor(35.0), expected, tolerance, time.Now())

		require.NoError(t, rec.StartReview())
		assert.Equal(t, DisputeInReview, rec.DisputeStatus)

		require.NoError(t, rec.Resolve(ResolutionPartialCredit, decimal.NewFromFloat(10.0), "credit agreed with provider"))
		assert.Equal(t, DisputeResolved, rec.DisputeStatus)
		assert.Equal(t, ResolutionPartialCredit, rec.Resolution)
		assert.True(t, rec.CreditedAmount.Equal(decimal.NewFromFloat(10.0)))
	})

	t.Run("open dispute can resolve directly", func(t *testing.T) {
		rec := NewInvoiceReconciliation(lineFor(35.0), expected, tolerance, time.Now())

		require.NoError(t, rec.Resolve(ResolutionNoAdjustment, decimal.Zero, ""))
		assert.Equal(t, DisputeResolved, rec.DisputeStatus)
	})

	t.Run("matched line cannot enter review", func(t *testing.T) {
		rec := NewInvoiceReconciliation(lineFor(19.5), expected, tolerance, time.Now())

		require.Error(t, rec.StartReview())
	})

	t.Run("resolved dispute cannot be resolved again", func(t *testing.T) {
		rec := NewInvoiceReconciliation(lineFor(35.0), expected, tolerance, time.Now())
		require.NoError(t, rec.Resolve(ResolutionFullCredit, decimal.NewFromFloat(15.5), ""))

		require.Error(t, rec.Resolve(ResolutionNoAdjustment, decimal.Zero, ""))
	})

	t.Run("unknown resolution rejected", func(t *testing.T) {
		rec := NewInvoiceReconciliation(lineFor(35.0), expected, tolerance, time.Now())

		require.Error(t, rec.Resolve(DisputeResolution("write_off"), decimal.Zero, ""))
	})

	t.Run("negative credit rejected", func(t *testing.T) {
		rec := NewInvoiceReconciliation(lineFor(35.0), expected, tolerance, time.Now())

		require.Error(t, rec.Resolve(ResolutionFullCredit, decimal.NewFromInt(-1), ""))
	})
}

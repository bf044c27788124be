// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// EngineMetrics tracks the inventory ledger and billing engine:
// transactions appended, balance recomputes, storage ledger generation,
// invoice reconciliation and pallet variance detection.
type EngineMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	transactionsAppended *Counter
	recomputeRuns        *Counter
	balancesUpserted     *Counter
	zeroBalancesDeleted  *Counter
	ledgerEntriesWritten *Counter
	ledgerRowsSkipped    *Counter
	linesReconciled      *Counter
	variancesDetected    *Counter

	// Histogram metrics
	runDuration *Histogram

	// Gauge metrics (point-in-time values)
	pendingVariances *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	varianceProvider PendingVarianceProvider
}

// PendingVarianceProvider reports the number of unresolved pallet variances.
// This interface lets the telemetry layer poll variance state without
// depending on the variance domain directly.
type PendingVarianceProvider interface {
	CountPendingVariances(ctx context.Context) (int64, error)
}

// EngineMetricsConfig holds configuration for engine metrics.
type EngineMetricsConfig struct {
	Meter            metric.Meter
	Logger           *zap.Logger
	CollectInterval  time.Duration // Default: 5 minutes
	VarianceProvider PendingVarianceProvider
}

// NewEngineMetrics creates a new EngineMetrics instance.
func NewEngineMetrics(cfg EngineMetricsConfig) (*EngineMetrics, error) {
	em := &EngineMetrics{
		meter:            cfg.Meter,
		logger:           cfg.Logger,
		stopChan:         make(chan struct{}),
		varianceProvider: cfg.VarianceProvider,
	}

	var err error

	if em.transactionsAppended, err = NewCounter(cfg.Meter,
		"wms.ledger.transactions.appended",
		"Number of inventory transactions appended to the ledger",
		"{transaction}"); err != nil {
		return nil, err
	}
	if em.recomputeRuns, err = NewCounter(cfg.Meter,
		"wms.balance.recompute.runs",
		"Number of balance recompute runs",
		"{run}"); err != nil {
		return nil, err
	}
	if em.balancesUpserted, err = NewCounter(cfg.Meter,
		"wms.balance.rows.upserted",
		"Number of inventory balance rows written during recompute",
		"{row}"); err != nil {
		return nil, err
	}
	if em.zeroBalancesDeleted, err = NewCounter(cfg.Meter,
		"wms.balance.rows.deleted",
		"Number of zero balance rows deleted during recompute",
		"{row}"); err != nil {
		return nil, err
	}
	if em.ledgerEntriesWritten, err = NewCounter(cfg.Meter,
		"wms.storage_ledger.entries.written",
		"Number of weekly storage ledger entries written",
		"{entry}"); err != nil {
		return nil, err
	}
	if em.ledgerRowsSkipped, err = NewCounter(cfg.Meter,
		"wms.storage_ledger.rows.skipped",
		"Number of weekly storage ledger rows skipped for missing config or rate",
		"{row}"); err != nil {
		return nil, err
	}
	if em.linesReconciled, err = NewCounter(cfg.Meter,
		"wms.reconciliation.lines.processed",
		"Number of invoice line items reconciled",
		"{line}"); err != nil {
		return nil, err
	}
	if em.variancesDetected, err = NewCounter(cfg.Meter,
		"wms.variance.detected",
		"Number of pallet variances detected",
		"{variance}"); err != nil {
		return nil, err
	}

	if em.runDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "wms.engine.run.duration",
		Description: "Duration of recompute, ledger generation and variance sweep runs",
		Unit:        "s",
		Boundaries:  RunDurationBuckets,
	}); err != nil {
		return nil, err
	}

	if em.pendingVariances, err = NewGauge(cfg.Meter,
		"wms.variance.pending",
		"Number of pallet variances awaiting manual resolution",
		"{variance}"); err != nil {
		return nil, err
	}

	// Start periodic collection when a provider is wired
	if cfg.VarianceProvider != nil {
		interval := cfg.CollectInterval
		if interval == 0 {
			interval = 5 * time.Minute
		}
		em.startCollector(interval)
	}

	return em, nil
}

// RecordTransactionAppended increments the appended transaction counter.
func (em *EngineMetrics) RecordTransactionAppended(ctx context.Context, txType string) {
	em.transactionsAppended.Inc(ctx, AttrTransactionType.String(txType))
}

// RecordRecomputeRun records one balance recompute run and its row counts.
func (em *EngineMetrics) RecordRecomputeRun(ctx context.Context, scope string, upserted int64, deleted int64, elapsed time.Duration) {
	em.recomputeRuns.Inc(ctx, AttrRunScope.String(scope))
	em.balancesUpserted.Add(ctx, upserted, AttrRunScope.String(scope))
	em.zeroBalancesDeleted.Add(ctx, deleted, AttrRunScope.String(scope))
	em.runDuration.RecordDuration(ctx, elapsed, AttrRunScope.String(scope))
}

// RecordLedgerRun records one weekly storage ledger generation run.
func (em *EngineMetrics) RecordLedgerRun(ctx context.Context, scope string, written int64, skipped int64, elapsed time.Duration) {
	em.ledgerEntriesWritten.Add(ctx, written, AttrRunScope.String(scope))
	em.ledgerRowsSkipped.Add(ctx, skipped, AttrRunScope.String(scope))
	em.runDuration.RecordDuration(ctx, elapsed, AttrRunScope.String(scope))
}

// RecordReconciledLines records processed invoice line items.
func (em *EngineMetrics) RecordReconciledLines(ctx context.Context, count int64) {
	em.linesReconciled.Add(ctx, count)
}

// RecordVarianceDetected increments the detected variance counter.
func (em *EngineMetrics) RecordVarianceDetected(ctx context.Context, status string) {
	em.variancesDetected.Inc(ctx, AttrVarianceStatus.String(status))
}

// startCollector launches the periodic gauge collection goroutine.
// Safe to call once; subsequent calls are no-ops.
func (em *EngineMetrics) startCollector(interval time.Duration) {
	em.collectOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-em.stopChan:
					return
				case <-ticker.C:
					em.collect()
				}
			}
		}()
	})
}

// collect polls the variance provider and records the pending gauge.
func (em *EngineMetrics) collect() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pending, err := em.varianceProvider.CountPendingVariances(ctx)
	if err != nil {
		em.logger.Warn("failed to collect pending variance count", zap.Error(err))
		return
	}
	em.pendingVariances.Record(ctx, pending)
}

// Stop halts periodic collection. Safe to call multiple times.
func (em *EngineMetrics) Stop() {
	em.stopOnce.Do(func() {
		close(em.stopChan)
	})
}

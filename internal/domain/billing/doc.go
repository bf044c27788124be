// Package billing holds the storage-billing domain: effective-dated cost
// rates, the half-month-offset billing period, weekly storage ledger
// snapshots, and invoice reconciliation with its dispute workflow.
//
// The storage ledger is derived data. Every entry is rebuildable from the
// immutable transaction ledger plus the configuration and rate tables, so
// generation upserts by natural key and never relies on prior runs.
package billing

package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// TransactionSortFields contains allowed sort fields for ledger transactions
var TransactionSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"warehouse_id":     true,
	"sku_id":           true,
	"batch_lot":        true,
	"type":             true,
	"cartons_in":       true,
	"cartons_out":      true,
	"transaction_date": true,
	"reference":        true,
}

// BalanceSortFields contains allowed sort fields for inventory balances
var BalanceSortFields = map[string]bool{
	"id":                    true,
	"created_at":            true,
	"updated_at":            true,
	"warehouse_id":          true,
	"sku_id":                true,
	"batch_lot":             true,
	"current_cartons":       true,
	"current_pallets":       true,
	"current_units":         true,
	"last_transaction_date": true,
}

// StorageLedgerSortFields contains allowed sort fields for weekly storage snapshots
var StorageLedgerSortFields = map[string]bool{
	"id":                      true,
	"created_at":              true,
	"updated_at":              true,
	"week_ending_monday":      true,
	"warehouse_id":            true,
	"sku_id":                  true,
	"batch_lot":               true,
	"cartons_end_of_monday":   true,
	"storage_pallets_charged": true,
	"calculated_weekly_cost":  true,
}

// ReconciliationSortFields contains allowed sort fields for invoice reconciliations
var ReconciliationSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"warehouse_id":    true,
	"category":        true,
	"name":            true,
	"status":          true,
	"dispute_status":  true,
	"difference":      true,
	"expected_amount": true,
	"invoiced_amount": true,
	"reconciled_at":   true,
}

// VarianceSortFields contains allowed sort fields for pallet variances
var VarianceSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"warehouse_id":     true,
	"sku_id":           true,
	"batch_lot":        true,
	"report_date":      true,
	"variance_amount":  true,
	"reported_pallets": true,
	"system_pallets":   true,
	"status":           true,
}

// CatalogSortFields contains allowed sort fields for warehouses and SKUs
var CatalogSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"active":     true,
}

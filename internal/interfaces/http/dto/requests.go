package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppendTransactionRequest records one movement on the inventory ledger
type AppendTransactionRequest struct {
	WarehouseID     string    `json:"warehouse_id" binding:"required,uuid"`
	SkuID           string    `json:"sku_id" binding:"required,uuid"`
	BatchLot        string    `json:"batch_lot"`
	Type            string    `json:"type" binding:"required,oneof=RECEIVE SHIP ADJUST_IN ADJUST_OUT"`
	CartonsIn       int64     `json:"cartons_in" binding:"omitempty,min=0"`
	CartonsOut      int64     `json:"cartons_out" binding:"omitempty,min=0"`
	PalletsIn       int64     `json:"pallets_in" binding:"omitempty,min=0"`
	PalletsOut      int64     `json:"pallets_out" binding:"omitempty,min=0"`
	TransactionDate time.Time `json:"transaction_date" binding:"required"`
	Reference       string    `json:"reference" binding:"omitempty,max=100"`
	Notes           string    `json:"notes"`
}

// ListTransactionsRequest filters the ledger transaction list
type ListTransactionsRequest struct {
	ListRequest
	WarehouseID string     `form:"warehouse_id" binding:"omitempty,uuid"`
	SkuID       string     `form:"sku_id" binding:"omitempty,uuid"`
	BatchLot    string     `form:"batch_lot"`
	Type        string     `form:"type" binding:"omitempty,oneof=RECEIVE SHIP ADJUST_IN ADJUST_OUT"`
	From        *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To          *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// RecomputeBalancesRequest scopes a balance recomputation pass
type RecomputeBalancesRequest struct {
	WarehouseID string `json:"warehouse_id" binding:"omitempty,uuid"`
}

// ListBalancesRequest filters the balance list
type ListBalancesRequest struct {
	ListRequest
	WarehouseID string `form:"warehouse_id" binding:"omitempty,uuid"`
	SkuID       string `form:"sku_id" binding:"omitempty,uuid"`
	BatchLot    string `form:"batch_lot"`
}

// BalanceAsOfRequest asks for the replayed carton balance of one key at an
// instant
type BalanceAsOfRequest struct {
	WarehouseID string    `form:"warehouse_id" binding:"required,uuid"`
	SkuID       string    `form:"sku_id" binding:"required,uuid"`
	BatchLot    string    `form:"batch_lot"`
	AsOf        time.Time `form:"as_of" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// GenerateStorageLedgerRequest triggers weekly snapshot generation for the
// billing period ending on the 15th of the given month
type GenerateStorageLedgerRequest struct {
	Year        int    `json:"year" binding:"required,min=2000,max=2100"`
	Month       int    `json:"month" binding:"required,min=1,max=12"`
	WarehouseID string `json:"warehouse_id" binding:"omitempty,uuid"`
}

// ListStorageLedgerRequest filters the weekly snapshot list
type ListStorageLedgerRequest struct {
	ListRequest
	WarehouseID string     `form:"warehouse_id" binding:"omitempty,uuid"`
	SkuID       string     `form:"sku_id" binding:"omitempty,uuid"`
	From        *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To          *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// InvoiceLineRequest is one externally recorded invoice line
type InvoiceLineRequest struct {
	WarehouseID string          `json:"warehouse_id" binding:"required,uuid"`
	Category    string          `json:"category" binding:"required,max=50"`
	Name        string          `json:"name" binding:"required,max=100"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitRate    decimal.Decimal `json:"unit_rate"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// ReconcilePeriodRequest reconciles invoice lines against the recomputed
// storage cost of one warehouse and billing period
type ReconcilePeriodRequest struct {
	WarehouseID string               `json:"warehouse_id" binding:"required,uuid"`
	Year        int                  `json:"year" binding:"required,min=2000,max=2100"`
	Month       int                  `json:"month" binding:"required,min=1,max=12"`
	Lines       []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ListReconciliationsRequest filters the reconciliation list
type ListReconciliationsRequest struct {
	ListRequest
	WarehouseID   string `form:"warehouse_id" binding:"omitempty,uuid"`
	Status        string `form:"status" binding:"omitempty,oneof=match overbilled underbilled"`
	DisputeStatus string `form:"dispute_status" binding:"omitempty,oneof=none open in_review resolved"`
}

// ResolveDisputeRequest records the outcome of a reviewed dispute
type ResolveDisputeRequest struct {
	Resolution     string          `json:"resolution" binding:"required,oneof=full_credit partial_credit no_adjustment payment_plan"`
	CreditedAmount decimal.Decimal `json:"credited_amount"`
	Notes          string          `json:"notes"`
}

// DetectVariancesRequest sweeps a warehouse for pallet count discrepancies
type DetectVariancesRequest struct {
	WarehouseID string     `json:"warehouse_id" binding:"required,uuid"`
	AsOf        *time.Time `json:"as_of"`
}

// ListVariancesRequest filters the pallet variance list
type ListVariancesRequest struct {
	ListRequest
	WarehouseID string     `form:"warehouse_id" binding:"omitempty,uuid"`
	SkuID       string     `form:"sku_id" binding:"omitempty,uuid"`
	Status      string     `form:"status" binding:"omitempty,oneof=pending resolved"`
	From        *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To          *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// ResolveVarianceRequest records the investigated root cause of a variance
type ResolveVarianceRequest struct {
	RootCause string `json:"root_cause" binding:"required,oneof=rounding consolidation optimization"`
	Notes     string `json:"notes"`
}

// CreateWarehouseRequest registers a warehouse
type CreateWarehouseRequest struct {
	Code    string `json:"code" binding:"required,max=50"`
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address" binding:"omitempty,max=255"`
}

// CreateSkuRequest registers a SKU
type CreateSkuRequest struct {
	Code           string `json:"code" binding:"required,max=50"`
	Description    string `json:"description" binding:"omitempty,max=255"`
	UnitsPerCarton int64  `json:"units_per_carton" binding:"omitempty,min=1"`
}

// CreateConfigRequest records an effective-dated packing configuration for
// a (warehouse, SKU) pair
type CreateConfigRequest struct {
	WarehouseID              string     `json:"warehouse_id" binding:"required,uuid"`
	SkuID                    string     `json:"sku_id" binding:"required,uuid"`
	StorageCartonsPerPallet  int64      `json:"storage_cartons_per_pallet" binding:"required,min=1"`
	ShippingCartonsPerPallet int64      `json:"shipping_cartons_per_pallet" binding:"required,min=1"`
	EffectiveDate            time.Time  `json:"effective_date" binding:"required"`
	EndDate                  *time.Time `json:"end_date"`
}

// ConfigHistoryRequest asks for the configuration versions of one
// (warehouse, SKU) pair
type ConfigHistoryRequest struct {
	WarehouseID string `form:"warehouse_id" binding:"required,uuid"`
	SkuID       string `form:"sku_id" binding:"required,uuid"`
}

// ConfigActiveRequest asks for the configuration version active at an
// instant, defaulting to now
type ConfigActiveRequest struct {
	WarehouseID string     `form:"warehouse_id" binding:"required,uuid"`
	SkuID       string     `form:"sku_id" binding:"required,uuid"`
	At          *time.Time `form:"at" time_format:"2006-01-02T15:04:05Z07:00"`
}

// CreateCostRateRequest records an effective-dated billing rate
type CreateCostRateRequest struct {
	WarehouseID   string          `json:"warehouse_id" binding:"required,uuid"`
	Category      string          `json:"category" binding:"required,max=50"`
	Name          string          `json:"name" binding:"required,max=100"`
	Value         decimal.Decimal `json:"value" binding:"required"`
	UnitOfMeasure string          `json:"unit_of_measure" binding:"omitempty,max=50"`
	EffectiveDate time.Time       `json:"effective_date" binding:"required"`
	EndDate       *time.Time      `json:"end_date"`
}

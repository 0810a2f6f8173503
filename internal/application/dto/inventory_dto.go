package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentRequest body para POST /api/adjustments.
type AdjustmentRequest struct {
	VariantID   string           `json:"variant_id" validate:"required"`
	WarehouseID string           `json:"warehouse_id" validate:"required"`
	Type        string           `json:"type" validate:"required,oneof=addition subtraction"`
	Quantity    decimal.Decimal  `json:"quantity" validate:"gt=0"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason      string           `json:"reason" validate:"max=500"`
}

// AdjustmentResponse resultado del ajuste.
type AdjustmentResponse struct {
	AdjustmentID   string          `json:"adjustment_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	BatchID        string          `json:"batch_id,omitempty"`
	CostWrittenOff decimal.Decimal `json:"cost_written_off"`
}

// SortRequest body para POST /api/inventory/sort.
type SortRequest struct {
	SourceBatchID string              `json:"source_batch_id" validate:"required"`
	Allocations   []SortAllocationDTO `json:"allocations" validate:"required,min=1,dive"`
}

// SortAllocationDTO cantidad del lote que pasa a una variante.
type SortAllocationDTO struct {
	VariantID string          `json:"variant_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
}

// SortResponse lote origen y lotes creados.
type SortResponse struct {
	SortID          string          `json:"sort_id"`
	SourceBatchID   string          `json:"source_batch_id"`
	SourceRemaining decimal.Decimal `json:"source_remaining"`
	Batches         []BatchResponse `json:"batches"`
}

// BatchResponse lote de inventario.
type BatchResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	VariantID         string          `json:"variant_id,omitempty"`
	WarehouseID       string          `json:"warehouse_id"`
	BatchLabel        string          `json:"batch_label"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	InitialQuantity   decimal.Decimal `json:"initial_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	Source            string          `json:"source"`
	NeedsReview       bool            `json:"needs_review"`
	CreatedAt         time.Time       `json:"created_at"`
}

// LedgerEntryResponse asiento del kardex.
type LedgerEntryResponse struct {
	ID              string          `json:"id"`
	BatchID         string          `json:"batch_id"`
	VariantID       string          `json:"variant_id,omitempty"`
	Type            string          `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ReferenceType   string          `json:"reference_type"`
	ReferenceID     string          `json:"reference_id"`
	ReferenceLineID string          `json:"reference_line_id,omitempty"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ValuationResponse existencias y valor FIFO de una variante.
type ValuationResponse struct {
	VariantID   string          `json:"variant_id"`
	WarehouseID string          `json:"warehouse_id,omitempty"`
	OnHand      decimal.Decimal `json:"on_hand"`
	FIFOValue   decimal.Decimal `json:"fifo_value"`
	AverageCost decimal.Decimal `json:"average_cost"`
	Batches     int             `json:"batches"`
}

// ReplenishmentSuggestionDTO variante bajo punto de reorden con el pedido sugerido.
type ReplenishmentSuggestionDTO struct {
	Priority           int             `json:"priority"` // 1 = más urgente
	ProductID          string          `json:"product_id"`
	VariantID          string          `json:"variant_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	OnHand             decimal.Decimal `json:"on_hand"`
	ReorderPoint       decimal.Decimal `json:"reorder_point"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`
	LastUnitCost       decimal.Decimal `json:"last_unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	GrossMarginPct     decimal.Decimal `json:"gross_margin_pct"` // (precio base - costo) / precio base
}

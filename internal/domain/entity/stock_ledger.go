package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento en el kardex de lotes.
const (
	LedgerSaleOut       = "sale_out"
	LedgerReturnIn      = "return_in"
	LedgerAdjustmentIn  = "adjustment_in"
	LedgerAdjustmentOut = "adjustment_out"
	LedgerShipmentIn    = "shipment_in"
	LedgerSortOut       = "sort_out"
	LedgerSortIn        = "sort_in"
	LedgerCorrectionIn  = "correction_in"
)

// Tipos de documento referenciado por un asiento.
const (
	RefSalesOrder = "sales_order"
	RefAdjustment = "adjustment"
	RefShipment   = "shipment"
	RefSort       = "sort"
)

// StockLedgerEntry registro inmutable de un cambio de cantidad sobre un lote.
// Quantity es positiva en entradas y negativa en salidas.
type StockLedgerEntry struct {
	ID              string
	CompanyID       string
	BatchID         string
	ProductID       string
	VariantID       *string
	WarehouseID     string
	Type            string
	Quantity        decimal.Decimal
	UnitCost        decimal.Decimal
	ReferenceType   string
	ReferenceID     string
	ReferenceLineID string
	CreatedBy       string
	CreatedAt       time.Time
}

// Reference identifica el documento (y la línea) que origina un movimiento.
type Reference struct {
	Type   string
	ID     string
	LineID string
}

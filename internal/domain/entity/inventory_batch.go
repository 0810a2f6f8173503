package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Orígenes de un lote.
const (
	BatchSourceShipment   = "shipment"
	BatchSourceAdjustment = "adjustment"
	BatchSourceSort       = "sort"
	BatchSourceCorrection = "correction"
)

// InventoryBatch lote físico de stock de una variante, con su costo unitario.
// VariantID vacío = lote sin clasificar (no vendible hasta ordenarlo).
// Invariante: 0 <= RemainingQuantity <= InitialQuantity.
type InventoryBatch struct {
	ID                string
	CompanyID         string
	ProductID         string
	VariantID         *string
	WarehouseID       string
	BatchLabel        string
	UnitCost          decimal.Decimal
	InitialQuantity   decimal.Decimal
	RemainingQuantity decimal.Decimal
	Source            string
	SourceID          string
	NeedsReview       bool // lotes de corrección a costo cero pendientes de revisión contable
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsUnsorted indica si el lote aún no tiene variante asignada.
func (b *InventoryBatch) IsUnsorted() bool {
	return b.VariantID == nil || *b.VariantID == ""
}

// Headroom cantidad que se le puede devolver sin superar la inicial.
func (b *InventoryBatch) Headroom() decimal.Decimal {
	return b.InitialQuantity.Sub(b.RemainingQuantity)
}

// Value valor del remanente al costo del lote.
func (b *InventoryBatch) Value() decimal.Decimal {
	return b.RemainingQuantity.Mul(b.UnitCost)
}

// VariantIDOrEmpty devuelve el id de variante o "" si el lote no está clasificado.
func (b *InventoryBatch) VariantIDOrEmpty() string {
	if b.VariantID == nil {
		return ""
	}
	return *b.VariantID
}

package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
)

// CostCalculator costo promedio ponderado tras una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// Valuation foto del stock disponible de una variante.
type Valuation struct {
	OnHand      decimal.Decimal
	FIFOValue   decimal.Decimal // suma de remanente * costo de cada lote
	AverageCost decimal.Decimal // promedio ponderado de los remanentes
	Batches     int
}

// ValueBatches acumula los remanentes en orden FIFO, aplicando CostCalculator lote a lote.
func ValueBatches(batches []*entity.InventoryBatch) Valuation {
	ordered := make([]*entity.InventoryBatch, 0, len(batches))
	for _, b := range batches {
		if b.RemainingQuantity.GreaterThan(decimal.Zero) {
			ordered = append(ordered, b)
		}
	}
	SortFIFO(ordered)

	v := Valuation{OnHand: decimal.Zero, FIFOValue: decimal.Zero, AverageCost: decimal.Zero}
	for _, b := range ordered {
		v.AverageCost = CostCalculator(v.OnHand, v.AverageCost, b.RemainingQuantity, b.UnitCost)
		v.OnHand = v.OnHand.Add(b.RemainingQuantity)
		v.FIFOValue = v.FIFOValue.Add(b.Value())
		v.Batches++
	}
	return v
}

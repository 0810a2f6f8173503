package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
)

// Depletion cuánto se toma de un lote y a qué costo.
type Depletion struct {
	BatchID        string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	Cost           decimal.Decimal // Quantity * UnitCost, sin redondeo
	RemainingAfter decimal.Decimal
}

// FIFOPlan resultado de recorrer los lotes del más antiguo al más reciente.
type FIFOPlan struct {
	Requested  decimal.Decimal
	Fulfilled  decimal.Decimal
	Shortfall  decimal.Decimal
	TotalCost  decimal.Decimal
	Depletions []Depletion
}

// Complete indica si los lotes alcanzaron para toda la cantidad.
func (p *FIFOPlan) Complete() bool {
	return p.Shortfall.IsZero()
}

// SortFIFO ordena por fecha de creación ascendente y, en empate, por id.
func SortFIFO(batches []*entity.InventoryBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		if !batches[i].CreatedAt.Equal(batches[j].CreatedAt) {
			return batches[i].CreatedAt.Before(batches[j].CreatedAt)
		}
		return batches[i].ID < batches[j].ID
	})
}

// PlanFIFO calcula las salidas por lote para cubrir quantity sin modificar los lotes.
// Omite lotes sin remanente y lotes sin clasificar. El costo es la suma exacta de take*costo.
func PlanFIFO(batches []*entity.InventoryBatch, quantity decimal.Decimal) (*FIFOPlan, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	ordered := make([]*entity.InventoryBatch, 0, len(batches))
	for _, b := range batches {
		if b == nil || b.IsUnsorted() || !b.RemainingQuantity.GreaterThan(decimal.Zero) {
			continue
		}
		ordered = append(ordered, b)
	}
	SortFIFO(ordered)

	plan := &FIFOPlan{Requested: quantity, TotalCost: decimal.Zero, Fulfilled: decimal.Zero}
	need := quantity
	for _, b := range ordered {
		if need.IsZero() {
			break
		}
		take := decimal.Min(need, b.RemainingQuantity)
		cost := take.Mul(b.UnitCost)
		plan.Depletions = append(plan.Depletions, Depletion{
			BatchID:        b.ID,
			Quantity:       take,
			UnitCost:       b.UnitCost,
			Cost:           cost,
			RemainingAfter: b.RemainingQuantity.Sub(take),
		})
		plan.TotalCost = plan.TotalCost.Add(cost)
		plan.Fulfilled = plan.Fulfilled.Add(take)
		need = need.Sub(take)
	}
	plan.Shortfall = need
	return plan, nil
}

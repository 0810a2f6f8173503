package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
)

// SortAllocation cantidad del lote sin clasificar que pasa a una variante.
type SortAllocation struct {
	VariantID string
	Quantity  decimal.Decimal
}

// PlanSort valida el reparto de un lote sin clasificar.
// variantProduct mapea variante -> producto padre (variantes desconocidas no aparecen).
// Devuelve la cantidad total a descontar del lote origen.
func PlanSort(source *entity.InventoryBatch, allocations []SortAllocation, variantProduct map[string]string) (decimal.Decimal, error) {
	if source == nil || len(allocations) == 0 {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if !source.IsUnsorted() {
		return decimal.Zero, domain.ErrAlreadySorted
	}

	total := decimal.Zero
	for _, a := range allocations {
		if a.VariantID == "" || !a.Quantity.GreaterThan(decimal.Zero) {
			return decimal.Zero, domain.ErrInvalidInput
		}
		productID, ok := variantProduct[a.VariantID]
		if !ok {
			return decimal.Zero, domain.ErrNotFound
		}
		if productID != source.ProductID {
			return decimal.Zero, domain.ErrCrossProduct
		}
		total = total.Add(a.Quantity)
	}

	if total.GreaterThan(source.RemainingQuantity) {
		return decimal.Zero, fmt.Errorf("%w: el lote %s tiene %s y se pidieron %s",
			domain.ErrInsufficientStock, source.ID, source.RemainingQuantity.String(), total.String())
	}
	return total, nil
}

package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	domaininv "github.com/jhoicas/costeo-fifo/internal/domain/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

const catalogPageSize = 100

var idealStockFactor = decimal.RequireFromString("1.5")

// ReplenishmentUseCase lista de reposición: variantes con existencias bajo su punto de reorden.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository, batchRepo repository.BatchRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo, batchRepo: batchRepo}
}

// GenerateList devuelve las variantes bajo punto de reorden con la cantidad sugerida para llegar
// a 1.5 veces el punto de reorden. El costo estimado usa el costo del lote más reciente.
// warehouseID vacío = stock global de la empresa. Orden: mayor margen estimado, luego mayor déficit.
func (uc *ReplenishmentUseCase) GenerateList(ctx context.Context, companyID, warehouseID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	suggestions := []dto.ReplenishmentSuggestionDTO{}
	for offset := 0; ; offset += catalogPageSize {
		products, err := uc.productRepo.ListByCompany(ctx, companyID, catalogPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			variants, err := uc.productRepo.ListVariants(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			for _, v := range variants {
				s, err := uc.suggest(ctx, companyID, warehouseID, p, v)
				if err != nil {
					return nil, err
				}
				if s != nil {
					suggestions = append(suggestions, *s)
				}
			}
		}
		if len(products) < catalogPageSize {
			break
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		return a.ReorderPoint.Sub(a.OnHand).GreaterThan(b.ReorderPoint.Sub(b.OnHand))
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

func (uc *ReplenishmentUseCase) suggest(ctx context.Context, companyID, warehouseID string, p *entity.Product, v *entity.Variant) (*dto.ReplenishmentSuggestionDTO, error) {
	if !v.ReorderPoint.IsPositive() {
		return nil, nil
	}
	batches, err := uc.batchRepo.ListByVariant(ctx, companyID, v.ID, warehouseID)
	if err != nil {
		return nil, err
	}
	val := domaininv.ValueBatches(batches)
	if val.OnHand.GreaterThanOrEqual(v.ReorderPoint) {
		return nil, nil
	}

	unitCost := val.AverageCost
	if n := len(batches); n > 0 {
		unitCost = batches[n-1].UnitCost
	}
	ideal := v.ReorderPoint.Mul(idealStockFactor)
	qty := ideal.Sub(val.OnHand)

	margin := decimal.Zero
	if v.BasePrice.IsPositive() {
		margin = v.BasePrice.Sub(unitCost).Div(v.BasePrice).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return &dto.ReplenishmentSuggestionDTO{
		ProductID:          p.ID,
		VariantID:          v.ID,
		SKU:                v.SKU,
		ProductName:        p.Name,
		OnHand:             val.OnHand,
		ReorderPoint:       v.ReorderPoint,
		IdealStock:         ideal,
		SuggestedOrderQty:  qty,
		LastUnitCost:       unitCost,
		EstimatedOrderCost: qty.Mul(unitCost).Round(2),
		GrossMarginPct:     margin,
	}, nil
}

package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/domain"
)

// AllocationMethod base de reparto de los costos compartidos del embarque.
type AllocationMethod string

const (
	AllocationAuto     AllocationMethod = "auto"
	AllocationValue    AllocationMethod = "value"
	AllocationWeight   AllocationMethod = "weight"
	AllocationQuantity AllocationMethod = "quantity"
)

// IsValid indica si el método es conocido.
func (m AllocationMethod) IsValid() bool {
	switch m {
	case AllocationAuto, AllocationValue, AllocationWeight, AllocationQuantity:
		return true
	}
	return false
}

// Decimales del costo unitario final. La escala crece con la cantidad de la línea para que el
// error de redondeo multiplicado por la cantidad no supere media unidad monetaria mínima (0.005).
// Tope = escala de las columnas de costo unitario (NUMERIC(20,10)).
const (
	landedCostMinScale int32 = 4
	landedCostMaxScale int32 = 10
)

// LandedCostScale decimales con que se redondea el costo unitario de una línea de qty unidades:
// 0.5 * 10^-scale * qty <= 0.005.
func LandedCostScale(qty decimal.Decimal) int32 {
	digits := int32(len(qty.Abs().Ceil().String()))
	scale := digits + 2
	if scale < landedCostMinScale {
		return landedCostMinScale
	}
	if scale > landedCostMaxScale {
		return landedCostMaxScale
	}
	return scale
}

// AllocationItem ítem recibido a costear.
type AllocationItem struct {
	ItemID           string
	Quantity         decimal.Decimal // cantidad recibida
	UnitPriceForeign decimal.Decimal
	UnitWeight       *decimal.Decimal // kg por unidad
}

// AllocationInput datos del embarque para el reparto.
type AllocationInput struct {
	Method       AllocationMethod
	ExchangeRate decimal.Decimal
	Items        []AllocationItem
	ExtraCosts   []decimal.Decimal // montos en moneda local
}

// AllocatedLine costo puesto en bodega de un ítem.
type AllocatedLine struct {
	ItemID         string
	Quantity       decimal.Decimal
	BaseUnitCost   decimal.Decimal // precio extranjero * tasa de cambio
	ExtraUnitCost  decimal.Decimal // parte de los costos compartidos por unidad
	LandedUnitCost decimal.Decimal // redondeado a LandedCostScale(Quantity) decimales
}

// AllocationResult reparto completo.
type AllocationResult struct {
	Method           AllocationMethod
	TotalProductCost decimal.Decimal
	TotalExtraCost   decimal.Decimal
	Lines            []AllocatedLine
}

// TotalLanded suma de costo unitario final * cantidad de todas las líneas.
func (r *AllocationResult) TotalLanded() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Lines {
		total = total.Add(l.LandedUnitCost.Mul(l.Quantity))
	}
	return total
}

// AllocateLandedCost reparte los costos adicionales entre los ítems y calcula el costo unitario
// puesto en bodega de cada uno.
//
//	value:    ratio = extra / costo_productos;   costo = base * (1 + ratio)
//	weight:   por_kg = extra / peso_total;       costo = base + por_kg * peso_unitario
//	quantity: por_unidad = extra / unidades;     costo = base + por_unidad
//
// auto elige weight si todos los ítems traen peso, value si todos tienen costo base y si no quantity.
func AllocateLandedCost(in AllocationInput) (*AllocationResult, error) {
	if len(in.Items) == 0 || !in.ExchangeRate.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	method := in.Method
	if method == "" {
		method = AllocationAuto
	}
	if !method.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	totalExtra := decimal.Zero
	for _, c := range in.ExtraCosts {
		if c.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		totalExtra = totalExtra.Add(c)
	}

	lines := make([]AllocatedLine, len(in.Items))
	totalProduct := decimal.Zero
	totalWeight := decimal.Zero
	totalQty := decimal.Zero
	allWeighted, allValued := true, true
	for i, it := range in.Items {
		if it.Quantity.LessThan(decimal.Zero) || it.UnitPriceForeign.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		base := it.UnitPriceForeign.Mul(in.ExchangeRate)
		lines[i] = AllocatedLine{ItemID: it.ItemID, Quantity: it.Quantity, BaseUnitCost: base, ExtraUnitCost: decimal.Zero}
		if it.Quantity.IsZero() {
			continue
		}
		totalQty = totalQty.Add(it.Quantity)
		totalProduct = totalProduct.Add(base.Mul(it.Quantity))
		if it.UnitWeight == nil || !it.UnitWeight.GreaterThan(decimal.Zero) {
			allWeighted = false
		} else {
			totalWeight = totalWeight.Add(it.UnitWeight.Mul(it.Quantity))
		}
		if !base.GreaterThan(decimal.Zero) {
			allValued = false
		}
	}

	if method == AllocationAuto {
		switch {
		case allWeighted && totalWeight.GreaterThan(decimal.Zero):
			method = AllocationWeight
		case allValued && totalProduct.GreaterThan(decimal.Zero):
			method = AllocationValue
		default:
			method = AllocationQuantity
		}
	}

	switch method {
	case AllocationValue:
		if !totalProduct.GreaterThan(decimal.Zero) {
			return nil, &domain.NonAllocatableError{Method: string(method), Reason: "el costo total de productos es cero"}
		}
		ratio := totalExtra.Div(totalProduct)
		for i := range lines {
			lines[i].ExtraUnitCost = lines[i].BaseUnitCost.Mul(ratio)
		}
	case AllocationWeight:
		if !allWeighted || !totalWeight.GreaterThan(decimal.Zero) {
			return nil, &domain.NonAllocatableError{Method: string(method), Reason: "hay ítems sin peso o el peso total es cero"}
		}
		perKg := totalExtra.Div(totalWeight)
		for i, it := range in.Items {
			if it.UnitWeight != nil {
				lines[i].ExtraUnitCost = perKg.Mul(*it.UnitWeight)
			}
		}
	case AllocationQuantity:
		if !totalQty.GreaterThan(decimal.Zero) {
			return nil, &domain.NonAllocatableError{Method: string(method), Reason: "no se recibieron unidades"}
		}
		perUnit := totalExtra.Div(totalQty)
		for i := range lines {
			lines[i].ExtraUnitCost = perUnit
		}
	}

	for i := range lines {
		lines[i].LandedUnitCost = lines[i].BaseUnitCost.Add(lines[i].ExtraUnitCost).Round(LandedCostScale(lines[i].Quantity))
	}

	return &AllocationResult{
		Method:           method,
		TotalProductCost: totalProduct,
		TotalExtraCost:   totalExtra,
		Lines:            lines,
	}, nil
}

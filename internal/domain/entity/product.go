package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa el producto padre (catálogo). El stock y el costo viven en las variantes.
type Product struct {
	ID        string
	CompanyID string
	SKU       string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Variant es la unidad vendible (talla, color, presentación) de un producto.
// Los lotes se consumen siempre por variante.
type Variant struct {
	ID           string
	ProductID    string
	CompanyID    string
	SKU          string
	Name         string
	BasePrice    decimal.Decimal // precio de venta por defecto
	TaxRate      decimal.Decimal // fracción: 0, 0.05, 0.19 ...
	ReorderPoint decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidTaxRate la tarifa de impuesto es una fracción entre 0 y 1.
func ValidTaxRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(1))
}

// VariantPrice precio y mínimo de pedido por canal.
type VariantPrice struct {
	VariantID   string
	Channel     Channel
	Price       decimal.Decimal
	MinOrderQty decimal.Decimal // cero = sin mínimo propio
}

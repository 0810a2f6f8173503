package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest producto con sus variantes y precios por canal.
type CreateProductRequest struct {
	SKU      string                 `json:"sku" validate:"required,min=1,max=100"`
	Name     string                 `json:"name" validate:"required,min=1,max=200"`
	Variants []CreateVariantRequest `json:"variants" validate:"dive"`
}

// CreateVariantRequest variante vendible. TaxRate es una fracción entre 0 y 1 (0.19 = 19%).
type CreateVariantRequest struct {
	SKU          string                `json:"sku" validate:"required,min=1,max=100"`
	Name         string                `json:"name" validate:"max=200"`
	BasePrice    decimal.Decimal       `json:"base_price" validate:"gte=0"`
	TaxRate      decimal.Decimal       `json:"tax_rate" validate:"gte=0,lte=1"`
	ReorderPoint decimal.Decimal       `json:"reorder_point" validate:"gte=0"`
	Prices       []VariantPriceRequest `json:"prices" validate:"dive"`
}

// VariantPriceRequest precio y mínimo por canal.
type VariantPriceRequest struct {
	Channel     string          `json:"channel" validate:"required,oneof=pos web wholesale marketplace"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	MinOrderQty decimal.Decimal `json:"min_order_qty" validate:"gte=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string            `json:"id"`
	CompanyID string            `json:"company_id"`
	SKU       string            `json:"sku"`
	Name      string            `json:"name"`
	Variants  []VariantResponse `json:"variants,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// VariantResponse salida de una variante.
type VariantResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	BasePrice    decimal.Decimal `json:"base_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest body para POST /api/sales-orders y POST /api/pos/checkout.
// CustomerID vacío = cliente de mostrador. En POS el canal lo fija el endpoint.
type CheckoutRequest struct {
	CustomerID  string                `json:"customer_id,omitempty" validate:"omitempty,max=64"`
	WarehouseID string                `json:"warehouse_id" validate:"required"`
	Channel     string                `json:"channel,omitempty" validate:"omitempty,oneof=pos web wholesale marketplace"`
	Items       []CheckoutItemRequest `json:"items" validate:"required,min=1,dive"`
	Discount    decimal.Decimal       `json:"discount" validate:"gte=0"`
	PaidAmount  decimal.Decimal       `json:"paid_amount" validate:"gte=0"`
}

// CheckoutItemRequest línea del pedido. UnitPrice opcional: si es > 0 y el canal no es POS,
// reemplaza el precio del canal.
type CheckoutItemRequest struct {
	VariantID string           `json:"variant_id" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled returned"`
}

// SalesOrderResponse pedido con sus líneas.
type SalesOrderResponse struct {
	ID             string                   `json:"id"`
	CompanyID      string                   `json:"company_id"`
	WarehouseID    string                   `json:"warehouse_id"`
	CustomerID     string                   `json:"customer_id,omitempty"`
	Channel        string                   `json:"channel"`
	Status         string                   `json:"status"`
	PaymentStatus  string                   `json:"payment_status"`
	SubTotal       decimal.Decimal          `json:"sub_total"`
	DiscountAmount decimal.Decimal          `json:"discount_amount"`
	TaxAmount      decimal.Decimal          `json:"tax_amount"`
	TotalAmount    decimal.Decimal          `json:"total_amount"`
	PaidAmount     decimal.Decimal          `json:"paid_amount"`
	DueAmount      decimal.Decimal          `json:"due_amount"`
	TotalCost      decimal.Decimal          `json:"total_cost"`
	LoyaltyPoints  int64                    `json:"loyalty_points,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
	Items          []SalesOrderItemResponse `json:"items"`
}

// SalesOrderItemResponse línea con su costo FIFO.
type SalesOrderItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	VariantID  string          `json:"variant_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TaxRate    decimal.Decimal `json:"tax_rate"`
	TotalPrice decimal.Decimal `json:"total_price"`
	TotalCost  decimal.Decimal `json:"total_cost"`
}

// OrderStatusResponse resultado de un cambio de estado.
type OrderStatusResponse struct {
	OrderID       string   `json:"order_id"`
	From          string   `json:"from"`
	To            string   `json:"to"`
	RestoredLines int      `json:"restored_lines"`
	SkippedLines  int      `json:"skipped_lines"`
	LoyaltyPoints int64    `json:"loyalty_points,omitempty"`
	AllowedNext   []string `json:"allowed_next"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Channel canal de venta.
type Channel string

const (
	ChannelPOS         Channel = "pos"
	ChannelWeb         Channel = "web"
	ChannelWholesale   Channel = "wholesale"
	ChannelMarketplace Channel = "marketplace"
)

// IsValid indica si el canal es conocido.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelPOS, ChannelWeb, ChannelWholesale, ChannelMarketplace:
		return true
	}
	return false
}

// InPerson canales donde la mercancía se entrega en el acto.
func (c Channel) InPerson() bool {
	return c == ChannelPOS
}

// PaymentStatus estado de pago del pedido.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
	PaymentUnpaid  PaymentStatus = "unpaid"
)

// PaymentStatusFor calcula el estado de pago a partir de lo abonado y el total.
func PaymentStatusFor(paid, total decimal.Decimal) PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return PaymentPaid
	case paid.GreaterThan(decimal.Zero):
		return PaymentPartial
	default:
		return PaymentUnpaid
	}
}

// SalesOrder cabecera de una venta confirmada.
// Invariantes: suma de TotalPrice de ítems = SubTotal; PaidAmount + DueAmount = TotalAmount.
type SalesOrder struct {
	ID             string
	CompanyID      string
	WarehouseID    string
	CustomerID     *string // nil = cliente de mostrador
	Channel        Channel
	Status         OrderStatus
	PaymentStatus  PaymentStatus
	SubTotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	DueAmount      decimal.Decimal
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CustomerIDOrEmpty devuelve el id del cliente o "".
func (o *SalesOrder) CustomerIDOrEmpty() string {
	if o.CustomerID == nil {
		return ""
	}
	return *o.CustomerID
}

// SalesOrderItem línea del pedido. TotalCost es el COGS FIFO fijado al crear el pedido.
type SalesOrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	VariantID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TaxRate    decimal.Decimal
	TotalPrice decimal.Decimal
	TotalCost  decimal.Decimal
}

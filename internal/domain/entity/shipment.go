package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un embarque de importación.
const (
	ShipmentDraft     = "draft"
	ShipmentArrived   = "arrived"
	ShipmentCompleted = "completed"
)

// Tipos de costo adicional del embarque.
const (
	ShipmentCostFreight = "freight"
	ShipmentCostCustoms = "customs"
	ShipmentCostLocal   = "local"
	ShipmentCostOther   = "other"
)

// Shipment recepción de mercancía con costos compartidos (flete, aduana, manejo local).
type Shipment struct {
	ID               string
	CompanyID        string
	WarehouseID      string
	Reference        string
	Currency         string
	ExchangeRate     decimal.Decimal // moneda extranjera -> moneda local
	Status           string
	AllocationMethod string
	CreatedBy        string
	CreatedAt        time.Time
	ReceivedAt       *time.Time
	FinalizedAt      *time.Time
	UpdatedAt        time.Time
}

// ShipmentItem ítem pedido al proveedor. VariantID nil = llega sin clasificar.
type ShipmentItem struct {
	ID               string
	ShipmentID       string
	ProductID        string
	VariantID        *string
	BatchLabel       string
	Quantity         decimal.Decimal  // cantidad pedida
	ReceivedQuantity *decimal.Decimal // nil hasta registrar la recepción
	UnitPriceForeign decimal.Decimal
	UnitWeight       *decimal.Decimal // kg por unidad
	LandedUnitCost   *decimal.Decimal // se fija al finalizar
}

// EffectiveReceived cantidad recibida; si no se registró recepción se asume la pedida.
func (i *ShipmentItem) EffectiveReceived() decimal.Decimal {
	if i.ReceivedQuantity != nil {
		return *i.ReceivedQuantity
	}
	return i.Quantity
}

// ShipmentCost costo adicional del embarque en moneda local.
type ShipmentCost struct {
	ID          string
	ShipmentID  string
	Kind        string
	Description string
	Amount      decimal.Decimal
}

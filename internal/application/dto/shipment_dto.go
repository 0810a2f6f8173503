package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateShipmentRequest body para POST /api/shipments (queda en draft).
type CreateShipmentRequest struct {
	WarehouseID  string                      `json:"warehouse_id" validate:"required"`
	Reference    string                      `json:"reference" validate:"required,max=100"`
	Currency     string                      `json:"currency" validate:"required,len=3"`
	ExchangeRate decimal.Decimal             `json:"exchange_rate" validate:"gt=0"`
	Items        []CreateShipmentItemRequest `json:"items" validate:"required,min=1,dive"`
	Costs        []ShipmentCostRequest       `json:"costs" validate:"dive"`
}

// CreateShipmentItemRequest ítem del embarque. VariantID vacío = llega sin clasificar.
type CreateShipmentItemRequest struct {
	ProductID        string           `json:"product_id" validate:"required"`
	VariantID        string           `json:"variant_id,omitempty"`
	BatchLabel       string           `json:"batch_label" validate:"max=100"`
	Quantity         decimal.Decimal  `json:"quantity" validate:"gt=0"`
	UnitPriceForeign decimal.Decimal  `json:"unit_price_foreign" validate:"gte=0"`
	UnitWeight       *decimal.Decimal `json:"unit_weight,omitempty"`
}

// ShipmentCostRequest costo adicional en moneda local.
type ShipmentCostRequest struct {
	Kind        string          `json:"kind" validate:"required,oneof=freight customs local other"`
	Description string          `json:"description" validate:"max=200"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
}

// ReceiveShipmentRequest body para POST /api/shipments/:id/receive.
type ReceiveShipmentRequest struct {
	Items []ReceiveItemRequest  `json:"items" validate:"dive"`
	Costs []ShipmentCostRequest `json:"costs" validate:"dive"`
}

// ReceiveItemRequest cantidad recibida y peso medido de un ítem.
type ReceiveItemRequest struct {
	ItemID           string           `json:"item_id" validate:"required"`
	ReceivedQuantity decimal.Decimal  `json:"received_quantity" validate:"gte=0"`
	UnitWeight       *decimal.Decimal `json:"unit_weight,omitempty"`
}

// FinalizeShipmentRequest body opcional para POST /api/shipments/:id/finalize.
type FinalizeShipmentRequest struct {
	AllocationMethod string `json:"allocation_method,omitempty" validate:"omitempty,oneof=auto value weight quantity"`
}

// ShipmentResponse embarque con ítems y costos.
type ShipmentResponse struct {
	ID               string                 `json:"id"`
	WarehouseID      string                 `json:"warehouse_id"`
	Reference        string                 `json:"reference"`
	Currency         string                 `json:"currency"`
	ExchangeRate     decimal.Decimal        `json:"exchange_rate"`
	Status           string                 `json:"status"`
	AllocationMethod string                 `json:"allocation_method,omitempty"`
	TotalExtraCost   decimal.Decimal        `json:"total_extra_cost"`
	CreatedAt        time.Time              `json:"created_at"`
	ReceivedAt       *time.Time             `json:"received_at,omitempty"`
	FinalizedAt      *time.Time             `json:"finalized_at,omitempty"`
	Items            []ShipmentItemResponse `json:"items"`
	Costs            []ShipmentCostResponse `json:"costs"`
	BatchIDs         []string               `json:"batch_ids,omitempty"`
}

// ShipmentItemResponse ítem con su costo aterrizado (tras finalizar).
type ShipmentItemResponse struct {
	ID               string           `json:"id"`
	ProductID        string           `json:"product_id"`
	VariantID        string           `json:"variant_id,omitempty"`
	BatchLabel       string           `json:"batch_label"`
	Quantity         decimal.Decimal  `json:"quantity"`
	ReceivedQuantity *decimal.Decimal `json:"received_quantity,omitempty"`
	UnitPriceForeign decimal.Decimal  `json:"unit_price_foreign"`
	UnitWeight       *decimal.Decimal `json:"unit_weight,omitempty"`
	LandedUnitCost   *decimal.Decimal `json:"landed_unit_cost,omitempty"`
}

// ShipmentCostResponse costo adicional.
type ShipmentCostResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

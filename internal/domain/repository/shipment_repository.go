package repository

import (
	"context"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
)

// ShipmentRepository puerto de persistencia de embarques, ítems y costos adicionales.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *entity.Shipment) error
	CreateItem(ctx context.Context, item *entity.ShipmentItem) error
	CreateCost(ctx context.Context, cost *entity.ShipmentCost) error
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Shipment, error)
	ListItems(ctx context.Context, shipmentID string) ([]*entity.ShipmentItem, error)
	ListCosts(ctx context.Context, shipmentID string) ([]*entity.ShipmentCost, error)
	Update(ctx context.Context, shipment *entity.Shipment) error
	UpdateItem(ctx context.Context, item *entity.ShipmentItem) error
}

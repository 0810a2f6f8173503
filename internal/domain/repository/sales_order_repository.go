package repository

import (
	"context"
	"time"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
)

// SalesOrderRepository puerto de persistencia de pedidos y sus ítems.
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	CreateItem(ctx context.Context, item *entity.SalesOrderItem) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	// GetForUpdate bloquea la cabecera para serializar cambios de estado.
	GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error)
	ListItems(ctx context.Context, orderID string) ([]*entity.SalesOrderItem, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, at time.Time) error
}

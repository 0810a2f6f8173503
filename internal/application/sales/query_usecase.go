package sales

import (
	"context"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

// OrderQueryUseCase lectura de pedidos.
type OrderQueryUseCase struct {
	orders repository.SalesOrderRepository
}

func NewOrderQueryUseCase(orders repository.SalesOrderRepository) *OrderQueryUseCase {
	return &OrderQueryUseCase{orders: orders}
}

// Get devuelve el pedido con sus líneas. Pedidos de otra empresa se reportan como no encontrados.
func (uc *OrderQueryUseCase) Get(ctx context.Context, actor entity.Actor, orderID string) (*dto.SalesOrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil || o.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orders.ListItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return toSalesOrderResponse(o, items), nil
}

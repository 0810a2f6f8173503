package memory

import (
	"context"
	"time"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo pedidos en memoria.
type SalesOrderRepo struct {
	v *view
}

func (r *SalesOrderRepo) Create(_ context.Context, order *entity.SalesOrder) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.orders[order.ID]; ok {
			return domain.ErrDuplicate
		}
		st.orders[order.ID] = ptr(*order)
		return nil
	})
}

func (r *SalesOrderRepo) CreateItem(_ context.Context, item *entity.SalesOrderItem) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.orders[item.OrderID]; !ok {
			return domain.ErrNotFound
		}
		st.orderItems[item.OrderID] = append(st.orderItems[item.OrderID], ptr(*item))
		return nil
	})
}

func (r *SalesOrderRepo) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	var out *entity.SalesOrder
	err := r.v.do(func(st *state) error {
		if o, ok := st.orders[id]; ok {
			out = ptr(*o)
		}
		return nil
	})
	return out, err
}

func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *SalesOrderRepo) ListItems(_ context.Context, orderID string) ([]*entity.SalesOrderItem, error) {
	var out []*entity.SalesOrderItem
	err := r.v.do(func(st *state) error {
		out = cloneSlice(st.orderItems[orderID])
		return nil
	})
	return out, err
}

func (r *SalesOrderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus, at time.Time) error {
	return r.v.do(func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		o.Status = status
		o.UpdatedAt = at
		return nil
	})
}

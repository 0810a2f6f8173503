package memory

import (
	"context"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo embarques en memoria.
type ShipmentRepo struct {
	v *view
}

func (r *ShipmentRepo) Create(_ context.Context, shipment *entity.Shipment) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.shipments[shipment.ID]; ok {
			return domain.ErrDuplicate
		}
		st.shipments[shipment.ID] = ptr(*shipment)
		return nil
	})
}

func (r *ShipmentRepo) CreateItem(_ context.Context, item *entity.ShipmentItem) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.shipments[item.ShipmentID]; !ok {
			return domain.ErrNotFound
		}
		st.shipmentItems[item.ShipmentID] = append(st.shipmentItems[item.ShipmentID], ptr(*item))
		return nil
	})
}

func (r *ShipmentRepo) CreateCost(_ context.Context, cost *entity.ShipmentCost) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.shipments[cost.ShipmentID]; !ok {
			return domain.ErrNotFound
		}
		st.shipmentCosts[cost.ShipmentID] = append(st.shipmentCosts[cost.ShipmentID], ptr(*cost))
		return nil
	})
}

func (r *ShipmentRepo) GetByID(_ context.Context, id string) (*entity.Shipment, error) {
	var out *entity.Shipment
	err := r.v.do(func(st *state) error {
		if s, ok := st.shipments[id]; ok {
			out = ptr(*s)
		}
		return nil
	})
	return out, err
}

func (r *ShipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Shipment, error) {
	return r.GetByID(ctx, id)
}

func (r *ShipmentRepo) ListItems(_ context.Context, shipmentID string) ([]*entity.ShipmentItem, error) {
	var out []*entity.ShipmentItem
	err := r.v.do(func(st *state) error {
		out = cloneSlice(st.shipmentItems[shipmentID])
		return nil
	})
	return out, err
}

func (r *ShipmentRepo) ListCosts(_ context.Context, shipmentID string) ([]*entity.ShipmentCost, error) {
	var out []*entity.ShipmentCost
	err := r.v.do(func(st *state) error {
		out = cloneSlice(st.shipmentCosts[shipmentID])
		return nil
	})
	return out, err
}

func (r *ShipmentRepo) Update(_ context.Context, shipment *entity.Shipment) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.shipments[shipment.ID]; !ok {
			return domain.ErrNotFound
		}
		st.shipments[shipment.ID] = ptr(*shipment)
		return nil
	})
}

func (r *ShipmentRepo) UpdateItem(_ context.Context, item *entity.ShipmentItem) error {
	return r.v.do(func(st *state) error {
		items := st.shipmentItems[item.ShipmentID]
		for i, it := range items {
			if it.ID == item.ID {
				items[i] = ptr(*item)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

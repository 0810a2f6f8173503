package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct {
	v *view
}

func (r *WarehouseRepo) Create(_ context.Context, warehouse *entity.Warehouse) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.warehouses[warehouse.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, w := range st.warehouses {
			if w.SameCode(warehouse) {
				return domain.ErrDuplicate
			}
		}
		st.warehouses[warehouse.ID] = ptr(*warehouse)
		return nil
	})
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.v.do(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = ptr(*w)
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	var all []*entity.Warehouse
	err := r.v.do(func(st *state) error {
		for _, w := range st.warehouses {
			if w.CompanyID == companyID {
				all = append(all, ptr(*w))
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return page(all, limit, offset), err
}

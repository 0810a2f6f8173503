package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes en memoria.
type CustomerRepo struct {
	v *view
}

func (r *CustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.customers[customer.ID]; ok {
			return domain.ErrDuplicate
		}
		st.customers[customer.ID] = ptr(*customer)
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.do(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = ptr(*c)
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	var all []*entity.Customer
	err := r.v.do(func(st *state) error {
		for _, c := range st.customers {
			if c.CompanyID == companyID {
				all = append(all, ptr(*c))
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), err
}

func (r *CustomerRepo) AddLoyaltyPoints(_ context.Context, id string, points int64) error {
	return r.v.do(func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.LoyaltyPoints += points
		return nil
	})
}

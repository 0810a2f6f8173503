package memory

import (
	"context"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.LoyaltyRepository = (*LoyaltyRepo)(nil)

// LoyaltyRepo transacciones de fidelización; un solo "earned" por pedido.
type LoyaltyRepo struct {
	v *view
}

func (r *LoyaltyRepo) Create(_ context.Context, tx *entity.LoyaltyTransaction) error {
	return r.v.do(func(st *state) error {
		if tx.Type == entity.LoyaltyEarned {
			for _, t := range st.loyalty {
				if t.OrderID == tx.OrderID && t.Type == entity.LoyaltyEarned {
					return domain.ErrDuplicate
				}
			}
		}
		st.loyalty = append(st.loyalty, ptr(*tx))
		return nil
	})
}

func (r *LoyaltyRepo) HasEarned(_ context.Context, orderID string) (bool, error) {
	found := false
	err := r.v.do(func(st *state) error {
		for _, t := range st.loyalty {
			if t.OrderID == orderID && t.Type == entity.LoyaltyEarned {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

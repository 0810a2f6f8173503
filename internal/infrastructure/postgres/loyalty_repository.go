package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.LoyaltyRepository = (*LoyaltyRepo)(nil)

// LoyaltyRepo transacciones de puntos. El índice único parcial uq_loyalty_earned_order impide dos
// "earned" para el mismo pedido.
type LoyaltyRepo struct {
	q Querier
}

func NewLoyaltyRepository(q Querier) *LoyaltyRepo {
	return &LoyaltyRepo{q: q}
}

func (r *LoyaltyRepo) Create(ctx context.Context, t *entity.LoyaltyTransaction) error {
	query := `
		INSERT INTO loyalty_transactions (id, company_id, customer_id, order_id, type, points, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, t.ID, t.CompanyID, t.CustomerID, t.OrderID, t.Type, t.Points, t.CreatedAt)
	return wrapInsert("loyalty transaction", err)
}

func (r *LoyaltyRepo) HasEarned(ctx context.Context, orderID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM loyalty_transactions WHERE order_id = $1 AND type = $2)`,
		orderID, entity.LoyaltyEarned,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("loyalty has earned: %w", err)
	}
	return exists, nil
}

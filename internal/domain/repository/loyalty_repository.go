package repository

import (
	"context"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
)

// LoyaltyRepository transacciones de puntos de fidelización.
type LoyaltyRepository interface {
	Create(ctx context.Context, tx *entity.LoyaltyTransaction) error
	// HasEarned indica si ya existe una transacción "earned" para el pedido.
	HasEarned(ctx context.Context, orderID string) (bool, error)
}

package loyalty

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

// Service otorga floor(total / amountPerPoint) puntos por pedido entregado.
type Service struct {
	amountPerPoint decimal.Decimal
	log            *logger.Logger
}

// NewService construye el servicio de fidelización.
func NewService(amountPerPoint decimal.Decimal, log *logger.Logger) *Service {
	return &Service{amountPerPoint: amountPerPoint, log: log}
}

// AwardPoints idempotente: si el pedido ya tiene transacción "earned" no hace nada.
// Pedidos sin cliente (mostrador) no acumulan.
func (s *Service) AwardPoints(ctx context.Context, repos repository.Repos, order *entity.SalesOrder) (int64, error) {
	if order.CustomerID == nil || !s.amountPerPoint.IsPositive() {
		return 0, nil
	}
	earned, err := repos.Loyalty.HasEarned(ctx, order.ID)
	if err != nil {
		return 0, err
	}
	if earned {
		return 0, nil
	}
	points := order.TotalAmount.Div(s.amountPerPoint).Floor().IntPart()
	if points <= 0 {
		return 0, nil
	}

	tx := &entity.LoyaltyTransaction{
		ID:         uuid.New().String(),
		CompanyID:  order.CompanyID,
		CustomerID: *order.CustomerID,
		OrderID:    order.ID,
		Type:       entity.LoyaltyEarned,
		Points:     points,
		CreatedAt:  time.Now().UTC(),
	}
	// HasEarned corre bajo el lock de la fila del pedido; un duplicado aquí aborta la transacción.
	if err := repos.Loyalty.Create(ctx, tx); err != nil {
		return 0, fmt.Errorf("registrar puntos del pedido %s: %w", order.ID, err)
	}
	if err := repos.Customers.AddLoyaltyPoints(ctx, *order.CustomerID, points); err != nil {
		return 0, err
	}
	s.log.Info().Str("order_id", order.ID).Str("customer_id", *order.CustomerID).Int64("points", points).Msg("puntos de fidelización otorgados")
	return points, nil
}

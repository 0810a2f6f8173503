package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

// PricingResolver precio por canal y mínimo de pedido. Recibe los repos de la transacción en curso.
type PricingResolver interface {
	GetPrice(ctx context.Context, repos repository.Repos, variant *entity.Variant, channel entity.Channel) (decimal.Decimal, error)
	// MinimumOrderQty cero = sin mínimo.
	MinimumOrderQty(ctx context.Context, repos repository.Repos, variant *entity.Variant, channel entity.Channel) (decimal.Decimal, error)
}

// LoyaltyService otorga los puntos de un pedido entregado. Debe ser idempotente por pedido.
type LoyaltyService interface {
	AwardPoints(ctx context.Context, repos repository.Repos, order *entity.SalesOrder) (int64, error)
}

// CourierNotifier avisa a la transportadora que el pedido salió. Se llama después del Commit.
type CourierNotifier interface {
	NotifyShipped(ctx context.Context, order *entity.SalesOrder) error
}

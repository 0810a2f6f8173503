package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

// Resolver lee variant_prices y cae al precio base de la variante.
type Resolver struct {
	wholesaleDefaultMOQ decimal.Decimal
}

// NewResolver wholesaleDefaultMOQ aplica a wholesale cuando la variante no define mínimo propio.
func NewResolver(wholesaleDefaultMOQ decimal.Decimal) *Resolver {
	return &Resolver{wholesaleDefaultMOQ: wholesaleDefaultMOQ}
}

// GetPrice precio del canal si existe y es positivo; si no, el precio base.
func (r *Resolver) GetPrice(ctx context.Context, repos repository.Repos, variant *entity.Variant, channel entity.Channel) (decimal.Decimal, error) {
	vp, err := repos.Products.GetVariantPrice(ctx, variant.ID, channel)
	if err != nil {
		return decimal.Zero, err
	}
	if vp != nil && vp.Price.IsPositive() {
		return vp.Price, nil
	}
	return variant.BasePrice, nil
}

// MinimumOrderQty solo wholesale tiene mínimo por defecto; los demás canales solo si está configurado.
func (r *Resolver) MinimumOrderQty(ctx context.Context, repos repository.Repos, variant *entity.Variant, channel entity.Channel) (decimal.Decimal, error) {
	vp, err := repos.Products.GetVariantPrice(ctx, variant.ID, channel)
	if err != nil {
		return decimal.Zero, err
	}
	if vp != nil && vp.MinOrderQty.IsPositive() {
		return vp.MinOrderQty, nil
	}
	if channel == entity.ChannelWholesale {
		return r.wholesaleDefaultMOQ, nil
	}
	return decimal.Zero, nil
}

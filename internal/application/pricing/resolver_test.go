package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/infrastructure/memory"
)

func TestResolver_PrecioDeCanalYMinimo(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", CompanyID: "c1", SKU: "P"}))
	variant := &entity.Variant{ID: "v1", ProductID: "p1", CompanyID: "c1", SKU: "V", BasePrice: decimal.NewFromInt(100)}
	require.NoError(t, repos.Products.CreateVariant(ctx, variant))
	require.NoError(t, repos.Products.UpsertVariantPrice(ctx, &entity.VariantPrice{
		VariantID: "v1", Channel: entity.ChannelWholesale, Price: decimal.NewFromInt(80), MinOrderQty: decimal.NewFromInt(24),
	}))
	require.NoError(t, repos.Products.UpsertVariantPrice(ctx, &entity.VariantPrice{
		VariantID: "v1", Channel: entity.ChannelMarketplace, Price: decimal.Zero,
	}))

	r := NewResolver(decimal.NewFromInt(12))

	price, err := r.GetPrice(ctx, repos, variant, entity.ChannelWholesale)
	require.NoError(t, err)
	assert.Equal(t, "80", price.String())

	price, err = r.GetPrice(ctx, repos, variant, entity.ChannelWeb)
	require.NoError(t, err)
	assert.Equal(t, "100", price.String())

	price, err = r.GetPrice(ctx, repos, variant, entity.ChannelMarketplace)
	require.NoError(t, err)
	assert.Equal(t, "100", price.String(), "precio cero en el canal cae al base")

	moq, err := r.MinimumOrderQty(ctx, repos, variant, entity.ChannelWholesale)
	require.NoError(t, err)
	assert.Equal(t, "24", moq.String())

	moq, err = r.MinimumOrderQty(ctx, repos, variant, entity.ChannelWeb)
	require.NoError(t, err)
	assert.True(t, moq.IsZero())
}

func TestResolver_MinimoMayoristaPorDefecto(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	variant := &entity.Variant{ID: "v9", BasePrice: decimal.NewFromInt(10)}

	moq, err := NewResolver(decimal.NewFromInt(12)).MinimumOrderQty(ctx, repos, variant, entity.ChannelWholesale)
	require.NoError(t, err)
	assert.Equal(t, "12", moq.String())
}

package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/infrastructure/memory"
)

var actor = entity.Actor{UserID: "u1", CompanyID: "c1"}

func TestProductUseCase_CreaConVariantesYPrecios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := NewProductUseCase(store, store.Repos().Products)

	out, err := uc.Create(ctx, actor, dto.CreateProductRequest{
		SKU:  "CAM",
		Name: "Camiseta",
		Variants: []dto.CreateVariantRequest{
			{SKU: "CAM-S", BasePrice: decimal.NewFromInt(30000), TaxRate: decimal.RequireFromString("0.19"),
				Prices: []dto.VariantPriceRequest{{Channel: "wholesale", Price: decimal.NewFromInt(25000), MinOrderQty: decimal.NewFromInt(6)}}},
			{SKU: "CAM-M", Name: "Camiseta M", BasePrice: decimal.NewFromInt(30000)},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Variants, 2)
	assert.Equal(t, "Camiseta", out.Variants[0].Name)

	price, err := store.Repos().Products.GetVariantPrice(ctx, out.Variants[0].ID, entity.ChannelWholesale)
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, "6", price.MinOrderQty.String())

	got, err := uc.GetByID(ctx, actor, out.ID)
	require.NoError(t, err)
	assert.Len(t, got.Variants, 2)

	_, err = uc.GetByID(ctx, entity.Actor{UserID: "u2", CompanyID: "c2"}, out.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_TarifaFueraDeFraccionRechazada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := NewProductUseCase(store, store.Repos().Products)

	_, err := uc.Create(ctx, actor, dto.CreateProductRequest{
		SKU: "PAN", Name: "Pantalón",
		Variants: []dto.CreateVariantRequest{{SKU: "PAN-30", BasePrice: decimal.NewFromInt(80000), TaxRate: decimal.NewFromInt(19)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Create(ctx, actor, dto.CreateProductRequest{
		SKU: "PAN", Name: "Pantalón",
		Variants: []dto.CreateVariantRequest{{SKU: "PAN-30", BasePrice: decimal.NewFromInt(80000), TaxRate: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", out.Variants[0].TaxRate.String())
}

func TestProductUseCase_VarianteDuplicadaRevierte(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := NewProductUseCase(store, store.Repos().Products)

	_, err := uc.Create(ctx, actor, dto.CreateProductRequest{
		SKU: "GOR", Name: "Gorra",
		Variants: []dto.CreateVariantRequest{{SKU: "GOR-U"}, {SKU: "GOR-U"}},
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.List(ctx, actor, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestWarehouseYCustomerUseCases_AltaYConsulta(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()

	warehouses := NewWarehouseUseCase(repos.Warehouses)
	wh, err := warehouses.Create(ctx, actor, dto.CreateWarehouseRequest{Code: " bog ", Name: " Principal"})
	require.NoError(t, err)
	got, err := warehouses.GetByID(ctx, actor, wh.ID)
	require.NoError(t, err)
	assert.Equal(t, "BOG", got.Code)
	assert.Equal(t, "Principal", got.Name)

	_, err = warehouses.Create(ctx, actor, dto.CreateWarehouseRequest{Code: "Bog", Name: "Otra"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = warehouses.Create(ctx, actor, dto.CreateWarehouseRequest{Code: "  ", Name: "Vacía"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	customers := NewCustomerUseCase(repos.Customers)
	c, err := customers.Create(ctx, actor, dto.CreateCustomerRequest{Name: "Ana"})
	require.NoError(t, err)
	assert.Zero(t, c.LoyaltyPoints)

	list, err := customers.List(ctx, actor, dto.PageRequest{Limit: 5})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, c.ID, list.Items[0].ID)

	_, err = customers.Create(ctx, actor, dto.CreateCustomerRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

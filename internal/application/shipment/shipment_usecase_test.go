package shipment_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/application/shipment"
	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/infrastructure/lock"
	"github.com/jhoicas/costeo-fifo/internal/infrastructure/memory"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

var actor = entity.Actor{UserID: "u1", CompanyID: "c1"}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type fixture struct {
	ctx       context.Context
	store     *memory.Store
	shipments *shipment.ShipmentUseCase
	finalizer *shipment.FinalizeUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{ctx: context.Background(), store: memory.NewStore()}
	log := logger.Nop()
	f.shipments = shipment.NewShipmentUseCase(f.store, f.store.Repos().Shipments, log)
	f.finalizer = shipment.NewFinalizeUseCase(f.store, inventory.NewBatchLedger(), lock.NewLocalLocker(), "auto", log)

	r := f.store.Repos()
	require.NoError(t, r.Warehouses.Create(f.ctx, &entity.Warehouse{ID: "w1", CompanyID: "c1", Code: "BOG", Name: "Principal"}))
	require.NoError(t, r.Products.Create(f.ctx, &entity.Product{ID: "p1", CompanyID: "c1", SKU: "CAM"}))
	require.NoError(t, r.Products.Create(f.ctx, &entity.Product{ID: "p2", CompanyID: "c1", SKU: "GOR"}))
	require.NoError(t, r.Products.CreateVariant(f.ctx, &entity.Variant{ID: "v1", ProductID: "p1", CompanyID: "c1", SKU: "CAM-S"}))
	require.NoError(t, r.Products.CreateVariant(f.ctx, &entity.Variant{ID: "v3", ProductID: "p2", CompanyID: "c1", SKU: "GOR-U"}))
	return f
}

// createShipment dos ítems: v1 10u a USD 2 (1 kg) y p1 sin clasificar 10u a USD 3 (2 kg), flete 28000, tasa 4000.
func (f *fixture) createShipment(t *testing.T) *dto.ShipmentResponse {
	t.Helper()
	out, err := f.shipments.Create(f.ctx, actor, dto.CreateShipmentRequest{
		WarehouseID:  "w1",
		Reference:    "IMP-001",
		Currency:     "USD",
		ExchangeRate: dec("4000"),
		Items: []dto.CreateShipmentItemRequest{
			{ProductID: "p1", VariantID: "v1", Quantity: dec("10"), UnitPriceForeign: dec("2"), UnitWeight: decPtr("1")},
			{ProductID: "p1", Quantity: dec("10"), UnitPriceForeign: dec("3"), UnitWeight: decPtr("2")},
		},
		Costs: []dto.ShipmentCostRequest{{Kind: entity.ShipmentCostFreight, Amount: dec("28000")}},
	})
	require.NoError(t, err)
	return out
}

func TestShipment_CreaBorrador(t *testing.T) {
	f := newFixture(t)
	out := f.createShipment(t)

	assert.Equal(t, entity.ShipmentDraft, out.Status)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "IMP-001-1", out.Items[0].BatchLabel)
	assert.Equal(t, "v1", out.Items[0].VariantID)
	assert.Empty(t, out.Items[1].VariantID)
	assert.Equal(t, "28000", out.TotalExtraCost.String())

	got, err := f.shipments.Get(f.ctx, actor, out.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)

	_, err = f.shipments.Get(f.ctx, entity.Actor{UserID: "u2", CompanyID: "c2"}, out.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShipment_CreaConVarianteDeOtroProducto(t *testing.T) {
	f := newFixture(t)
	_, err := f.shipments.Create(f.ctx, actor, dto.CreateShipmentRequest{
		WarehouseID: "w1", Reference: "IMP-002", Currency: "USD", ExchangeRate: dec("4000"),
		Items: []dto.CreateShipmentItemRequest{{ProductID: "p1", VariantID: "v3", Quantity: dec("1"), UnitPriceForeign: dec("1")}},
	})
	require.ErrorIs(t, err, domain.ErrCrossProduct)
}

func TestShipment_RecibirYFinalizarPorPeso(t *testing.T) {
	f := newFixture(t)
	created := f.createShipment(t)

	received, err := f.shipments.Receive(f.ctx, actor, created.ID, dto.ReceiveShipmentRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: created.Items[0].ID, ReceivedQuantity: dec("8")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentArrived, received.Status)
	assert.NotNil(t, received.ReceivedAt)

	out, err := f.finalizer.Finalize(f.ctx, actor, created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentCompleted, out.Status)
	assert.Equal(t, "weight", out.AllocationMethod)
	require.Len(t, out.BatchIDs, 2)

	// peso recibido 8*1 + 10*2 = 28 kg -> 1000 por kg
	assert.Equal(t, "9000", out.Items[0].LandedUnitCost.String())
	assert.Equal(t, "14000", out.Items[1].LandedUnitCost.String())

	repos := f.store.Repos()
	sorted, err := repos.Batches.GetByID(f.ctx, out.BatchIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "v1", sorted.VariantIDOrEmpty())
	assert.Equal(t, "8", sorted.InitialQuantity.String())
	assert.Equal(t, "8", sorted.RemainingQuantity.String())
	assert.Equal(t, "9000", sorted.UnitCost.String())

	unsorted, err := repos.Batches.GetByID(f.ctx, out.BatchIDs[1])
	require.NoError(t, err)
	assert.True(t, unsorted.IsUnsorted())
	assert.Equal(t, "IMP-001-2", unsorted.BatchLabel)

	entries, err := repos.Ledger.ListByReference(f.ctx, "c1", entity.RefShipment, created.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.LedgerShipmentIn, entries[0].Type)
	assert.Equal(t, "8", entries[0].Quantity.String())
}

func TestShipment_RecibirDosVecesNoDuplicaCostos(t *testing.T) {
	f := newFixture(t)
	created := f.createShipment(t)
	req := dto.ReceiveShipmentRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: created.Items[0].ID, ReceivedQuantity: dec("8")}},
		Costs: []dto.ShipmentCostRequest{{Kind: entity.ShipmentCostLocal, Amount: dec("5000")}},
	}

	first, err := f.shipments.Receive(f.ctx, actor, created.ID, req)
	require.NoError(t, err)
	costs := len(first.Costs)

	_, err = f.shipments.Receive(f.ctx, actor, created.ID, req)
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.shipments.Get(f.ctx, actor, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Costs, costs)
	assert.Equal(t, entity.ShipmentArrived, got.Status)
}

func TestShipment_FinalizarDosVecesEsConflicto(t *testing.T) {
	f := newFixture(t)
	created := f.createShipment(t)

	_, err := f.finalizer.Finalize(f.ctx, actor, created.ID, "quantity")
	require.NoError(t, err)

	_, err = f.finalizer.Finalize(f.ctx, actor, created.ID, "")
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.shipments.Receive(f.ctx, actor, created.ID, dto.ReceiveShipmentRequest{})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestShipment_FinalizarNoAsignableRevierte(t *testing.T) {
	f := newFixture(t)
	created, err := f.shipments.Create(f.ctx, actor, dto.CreateShipmentRequest{
		WarehouseID: "w1", Reference: "IMP-003", Currency: "USD", ExchangeRate: dec("4000"),
		Items: []dto.CreateShipmentItemRequest{{ProductID: "p1", VariantID: "v1", Quantity: dec("5"), UnitPriceForeign: dec("0")}},
		Costs: []dto.ShipmentCostRequest{{Kind: entity.ShipmentCostCustoms, Amount: dec("100")}},
	})
	require.NoError(t, err)

	_, err = f.finalizer.Finalize(f.ctx, actor, created.ID, "value")
	require.ErrorIs(t, err, domain.ErrNonAllocatable)

	got, err := f.shipments.Get(f.ctx, actor, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentDraft, got.Status)
	assert.Nil(t, got.Items[0].LandedUnitCost)
}

func TestShipment_FinalizarMetodoDesconocido(t *testing.T) {
	f := newFixture(t)
	created := f.createShipment(t)

	_, err := f.finalizer.Finalize(f.ctx, actor, created.ID, "volume")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

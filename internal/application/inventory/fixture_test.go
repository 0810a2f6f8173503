package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
	"github.com/jhoicas/costeo-fifo/internal/infrastructure/memory"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

var (
	t0    = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	actor = entity.Actor{UserID: "u1", CompanyID: "c1"}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	ledger   *inventory.BatchLedger
	consumer *inventory.ConsumptionEngine
}

// newFixture empresa c1 con bodega w1, producto p1 (variantes v1, v2) y producto p2 (variante v3).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{ctx: context.Background(), store: memory.NewStore(), ledger: inventory.NewBatchLedger()}
	f.consumer = inventory.NewConsumptionEngine(f.ledger, logger.Nop())

	r := f.store.Repos()
	require.NoError(t, r.Warehouses.Create(f.ctx, &entity.Warehouse{ID: "w1", CompanyID: "c1", Code: "BOG", Name: "Principal"}))
	require.NoError(t, r.Products.Create(f.ctx, &entity.Product{ID: "p1", CompanyID: "c1", SKU: "CAM", Name: "Camiseta"}))
	require.NoError(t, r.Products.Create(f.ctx, &entity.Product{ID: "p2", CompanyID: "c1", SKU: "GOR", Name: "Gorra"}))
	for _, v := range []*entity.Variant{
		{ID: "v1", ProductID: "p1", CompanyID: "c1", SKU: "CAM-S", BasePrice: dec("30000"), TaxRate: dec("0.19")},
		{ID: "v2", ProductID: "p1", CompanyID: "c1", SKU: "CAM-M", BasePrice: dec("30000"), TaxRate: dec("0.19")},
		{ID: "v3", ProductID: "p2", CompanyID: "c1", SKU: "GOR-U", BasePrice: dec("20000"), TaxRate: dec("0")},
	} {
		require.NoError(t, r.Products.CreateVariant(f.ctx, v))
	}
	return f
}

// seedBatch abre un lote con su asiento shipment_in. variant "" = sin clasificar.
func (f *fixture) seedBatch(t *testing.T, id, variant string, created time.Time, qty, cost string) {
	t.Helper()
	var variantID *string
	productID := "p1"
	if variant != "" {
		v := variant
		variantID = &v
		if variant == "v3" {
			productID = "p2"
		}
	}
	err := f.store.Run(f.ctx, func(r repository.Repos) error {
		_, err := f.ledger.Open(f.ctx, r, &entity.InventoryBatch{
			ID: id, CompanyID: "c1", ProductID: productID, VariantID: variantID, WarehouseID: "w1",
			BatchLabel: "L-" + id, UnitCost: dec(cost), InitialQuantity: dec(qty),
			Source: entity.BatchSourceShipment, SourceID: "seed", CreatedAt: created,
		}, inventory.Movement{
			Type:      entity.LedgerShipmentIn,
			Reference: entity.Reference{Type: entity.RefShipment, ID: "seed", LineID: id},
			ActorID:   "u1",
		})
		return err
	})
	require.NoError(t, err)
}

func (f *fixture) remaining(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	b, err := f.store.Repos().Batches.GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, b, "lote %s", id)
	return b.RemainingQuantity
}

func (f *fixture) ledgerEntries() []*entity.StockLedgerEntry {
	return f.store.Repos().Ledger.(*memory.LedgerRepo).All()
}

// assertConservation la suma de asientos de cada lote es igual a su remanente.
func (f *fixture) assertConservation(t *testing.T) {
	t.Helper()
	sums := map[string]decimal.Decimal{}
	for _, e := range f.ledgerEntries() {
		sums[e.BatchID] = sums[e.BatchID].Add(e.Quantity)
	}
	for id, sum := range sums {
		require.True(t, sum.Equal(f.remaining(t, id)), "lote %s: kardex %s vs remanente %s", id, sum, f.remaining(t, id))
	}
}

func saleRef(order, line string) entity.Reference {
	return entity.Reference{Type: entity.RefSalesOrder, ID: order, LineID: line}
}

// consume corre el motor de consumo en su propia transacción.
func (f *fixture) consume(variant, qty string, ref entity.Reference) (*inventory.ConsumeResult, error) {
	var res *inventory.ConsumeResult
	err := f.store.Run(f.ctx, func(r repository.Repos) error {
		var err error
		res, err = f.consumer.Consume(f.ctx, r, inventory.ConsumeInput{
			CompanyID: "c1", VariantID: variant, WarehouseID: "w1",
			Quantity: dec(qty), Reference: ref, ActorID: "u1",
		})
		return err
	})
	return res, err
}

func (f *fixture) restore(policy inventory.RestorePolicy, variant, qty string, ref entity.Reference) (*inventory.RestoreResult, error) {
	engine := inventory.NewRestorationEngine(f.ledger, policy, logger.Nop())
	var res *inventory.RestoreResult
	err := f.store.Run(f.ctx, func(r repository.Repos) error {
		var err error
		res, err = engine.Restore(f.ctx, r, inventory.RestoreInput{
			CompanyID: "c1", VariantID: variant, ProductID: "p1", WarehouseID: "w1",
			Quantity: dec(qty), Reference: ref, ActorID: "u1",
		})
		return err
	})
	return res, err
}

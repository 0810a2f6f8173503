package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/application/loyalty"
	"github.com/jhoicas/costeo-fifo/internal/application/pricing"
	"github.com/jhoicas/costeo-fifo/internal/application/sales"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
	"github.com/jhoicas/costeo-fifo/internal/infrastructure/lock"
	"github.com/jhoicas/costeo-fifo/internal/infrastructure/memory"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

var (
	t0    = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	actor = entity.Actor{UserID: "u1", CompanyID: "c1"}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type courierSpy struct {
	shipped []string
}

func (c *courierSpy) NotifyShipped(_ context.Context, order *entity.SalesOrder) error {
	c.shipped = append(c.shipped, order.ID)
	return nil
}

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	locker   *lock.LocalLocker
	courier  *courierSpy
	checkout *sales.CheckoutUseCase
	status   *sales.StatusUseCase
	query    *sales.OrderQueryUseCase
}

// newFixture empresa c1, bodega w1, cliente cu1, variante v1 (10000 + IVA 19%) con lotes
// b1 5@4000 y b2 5@6000, variante v2 (5000 sin IVA) con lote b3 2@1000.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:     context.Background(),
		store:   memory.NewStore(),
		locker:  lock.NewLocalLocker(),
		courier: &courierSpy{},
	}
	ledger := inventory.NewBatchLedger()
	log := logger.Nop()
	loyaltySvc := loyalty.NewService(dec("1000"), log)
	f.checkout = sales.NewCheckoutUseCase(f.store, inventory.NewConsumptionEngine(ledger, log),
		pricing.NewResolver(dec("12")), loyaltySvc, log)
	f.status = sales.NewStatusUseCase(f.store, inventory.NewRestorationEngine(ledger, inventory.RestoreExact, log),
		loyaltySvc, f.courier, f.locker, log)
	f.query = sales.NewOrderQueryUseCase(f.store.Repos().Orders)

	r := f.store.Repos()
	require.NoError(t, r.Warehouses.Create(f.ctx, &entity.Warehouse{ID: "w1", CompanyID: "c1", Code: "BOG", Name: "Principal"}))
	require.NoError(t, r.Customers.Create(f.ctx, &entity.Customer{ID: "cu1", CompanyID: "c1", Name: "Ana"}))
	require.NoError(t, r.Products.Create(f.ctx, &entity.Product{ID: "p1", CompanyID: "c1", SKU: "CAM", Name: "Camiseta"}))
	require.NoError(t, r.Products.CreateVariant(f.ctx, &entity.Variant{ID: "v1", ProductID: "p1", CompanyID: "c1", SKU: "CAM-S", BasePrice: dec("10000"), TaxRate: dec("0.19")}))
	require.NoError(t, r.Products.CreateVariant(f.ctx, &entity.Variant{ID: "v2", ProductID: "p1", CompanyID: "c1", SKU: "CAM-M", BasePrice: dec("5000")}))

	err := f.store.Run(f.ctx, func(repos repository.Repos) error {
		for i, b := range []struct{ id, variant, qty, cost string }{
			{"b1", "v1", "5", "4000"},
			{"b2", "v1", "5", "6000"},
			{"b3", "v2", "2", "1000"},
		} {
			v := b.variant
			_, err := ledger.Open(f.ctx, repos, &entity.InventoryBatch{
				ID: b.id, CompanyID: "c1", ProductID: "p1", VariantID: &v, WarehouseID: "w1",
				BatchLabel: "L-" + b.id, UnitCost: dec(b.cost), InitialQuantity: dec(b.qty),
				Source: entity.BatchSourceShipment, SourceID: "seed", CreatedAt: t0.Add(time.Duration(i) * time.Hour),
			}, inventory.Movement{
				Type:      entity.LedgerShipmentIn,
				Reference: entity.Reference{Type: entity.RefShipment, ID: "seed", LineID: b.id},
				ActorID:   "u1",
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) remaining(t *testing.T, id string) string {
	t.Helper()
	b, err := f.store.Repos().Batches.GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, b)
	return b.RemainingQuantity.String()
}

func (f *fixture) ledgerSize() int {
	return len(f.store.Repos().Ledger.(*memory.LedgerRepo).All())
}

func (f *fixture) points(t *testing.T) int64 {
	t.Helper()
	c, err := f.store.Repos().Customers.GetByID(f.ctx, "cu1")
	require.NoError(t, err)
	return c.LoyaltyPoints
}

func webOrder(qty string) dto.CheckoutRequest {
	return dto.CheckoutRequest{
		CustomerID:  "cu1",
		WarehouseID: "w1",
		Channel:     "web",
		Items:       []dto.CheckoutItemRequest{{VariantID: "v1", Quantity: dec(qty)}},
	}
}

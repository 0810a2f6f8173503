package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/costeo-fifo/internal/application/analytics"
	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/application/loyalty"
	"github.com/jhoicas/costeo-fifo/internal/application/pricing"
	"github.com/jhoicas/costeo-fifo/internal/application/sales"
	"github.com/jhoicas/costeo-fifo/internal/application/shipment"
	"github.com/jhoicas/costeo-fifo/internal/application/usecase"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	domaininv "github.com/jhoicas/costeo-fifo/internal/domain/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
	"github.com/jhoicas/costeo-fifo/internal/infrastructure/lock"
	"github.com/jhoicas/costeo-fifo/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/costeo-fifo/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/costeo-fifo/pkg/jwt"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newAPI monta el router completo sobre el store en memoria con empresa c1, bodega w1,
// variante v1 (lotes 5@4000 y 5@6000) y variante v2 (lote 2@1000).
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	log := logger.Nop()
	locker := lock.NewLocalLocker()
	ledger := inventory.NewBatchLedger()
	consumer := inventory.NewConsumptionEngine(ledger, log)
	loyaltySvc := loyalty.NewService(dec("1000"), log)
	r := store.Repos()
	require.NoError(t, r.Warehouses.Create(ctx, &entity.Warehouse{ID: "w1", CompanyID: "c1", Code: "BOG", Name: "Principal"}))
	require.NoError(t, r.Products.Create(ctx, &entity.Product{ID: "p1", CompanyID: "c1", SKU: "CAM", Name: "Camiseta"}))
	require.NoError(t, r.Products.CreateVariant(ctx, &entity.Variant{ID: "v1", ProductID: "p1", CompanyID: "c1", SKU: "CAM-S", BasePrice: dec("10000"), TaxRate: dec("0.19")}))
	require.NoError(t, r.Products.CreateVariant(ctx, &entity.Variant{ID: "v2", ProductID: "p1", CompanyID: "c1", SKU: "CAM-M", BasePrice: dec("5000")}))
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Run(ctx, func(tx repository.Repos) error {
		for i, b := range []struct{ id, variant, qty, cost string }{
			{"b1", "v1", "5", "4000"},
			{"b2", "v1", "5", "6000"},
			{"b3", "v2", "2", "1000"},
		} {
			variant := b.variant
			if _, err := ledger.Open(ctx, tx, &entity.InventoryBatch{
				ID: b.id, CompanyID: "c1", ProductID: "p1", VariantID: &variant, WarehouseID: "w1",
				BatchLabel: "L-" + b.id, UnitCost: dec(b.cost), InitialQuantity: dec(b.qty),
				Source: entity.BatchSourceShipment, SourceID: "seed", CreatedAt: t0.Add(time.Duration(i) * time.Hour),
			}, inventory.Movement{
				Type:      entity.LedgerShipmentIn,
				Reference: entity.Reference{Type: entity.RefShipment, ID: "seed", LineID: b.id},
				ActorID:   "u1",
			}); err != nil {
				return err
			}
		}
		return nil
	}))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		WarehouseUC: usecase.NewWarehouseUseCase(r.Warehouses),
		ProductUC:   usecase.NewProductUseCase(store, r.Products),
		CustomerUC:  usecase.NewCustomerUseCase(r.Customers),
		CheckoutUC:  sales.NewCheckoutUseCase(store, consumer, pricing.NewResolver(dec("12")), loyaltySvc, log),
		OrderQuery:  sales.NewOrderQueryUseCase(r.Orders),
		StatusUC: sales.NewStatusUseCase(store, inventory.NewRestorationEngine(ledger, inventory.RestoreExact, log),
			loyaltySvc, sales.NewLogCourierNotifier(log), locker, log),
		Adjustments: inventory.NewAdjustmentUseCase(store, ledger, consumer, log),
		SortUC:      inventory.NewSortUseCase(store, ledger, log),
		Valuation:   inventory.NewValuationUseCase(r.Batches, r.Ledger, r.Products),
		Reorder:     inventory.NewReplenishmentUseCase(r.Products, r.Batches),
		ShipmentUC:  shipment.NewShipmentUseCase(store, r.Shipments, log),
		FinalizeUC:  shipment.NewFinalizeUseCase(store, ledger, locker, string(domaininv.AllocationAuto), log),
		MarginsUC:   analytics.NewMarginsUseCase(store.Analytics()),
		Logger:      log,
		JWTSecret:   testJWTSecret,
		JWTIssuer:   testIssuer,
	})
	return app
}

type apiResponse struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) (int, apiResponse) {
	return callAs(t, app, method, path, role, testCompanyID, body)
}

func callAs(t *testing.T, app *fiber.App, method, path, role, company string, body any) (int, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, role, company))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func decodeData(t *testing.T, res apiResponse, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(res.Data, into))
}

func webOrder(variant, qty string) fiber.Map {
	return fiber.Map{
		"warehouse_id": "w1",
		"channel":      "web",
		"items":        []fiber.Map{{"variant_id": variant, "quantity": qty}},
	}
}

func TestSalesOrders_CostoFIFO(t *testing.T) {
	app := newAPI(t)

	status, res := call(t, app, http.MethodPost, "/api/sales-orders", pkgjwt.RoleVendedor, webOrder("v1", "7"))
	require.Equal(t, http.StatusCreated, status, res.Message)
	assert.True(t, res.Success)

	var order struct {
		ID        string          `json:"id"`
		Status    string          `json:"status"`
		TotalCost decimal.Decimal `json:"total_cost"`
	}
	decodeData(t, res, &order)
	assert.Equal(t, "pending", order.Status)
	assert.True(t, order.TotalCost.Equal(dec("32000")), order.TotalCost.String())

	status, res = call(t, app, http.MethodGet, "/api/sales-orders/"+order.ID, pkgjwt.RoleBodeguero, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = callAs(t, app, http.MethodGet, "/api/sales-orders/"+order.ID, pkgjwt.RoleAdmin, "otra", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSalesOrders_Rechazos(t *testing.T) {
	app := newAPI(t)

	status, res := call(t, app, http.MethodPost, "/api/sales-orders", pkgjwt.RoleVendedor, webOrder("v1", "11"))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", res.Code)

	status, res = call(t, app, http.MethodPost, "/api/sales-orders", pkgjwt.RoleVendedor, webOrder("v1", "0"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", res.Code)

	pos := webOrder("v1", "1")
	pos["channel"] = "pos"
	status, _ = call(t, app, http.MethodPost, "/api/sales-orders", pkgjwt.RoleVendedor, pos)
	assert.Equal(t, http.StatusBadRequest, status)

	status, res = call(t, app, http.MethodPost, "/api/sales-orders", pkgjwt.RoleBodeguero, webOrder("v1", "1"))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", res.Code)

	// El intento fallido no tocó los lotes.
	status, res = call(t, app, http.MethodGet, "/api/inventory/variants/v1/valuation", pkgjwt.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, status)
	var val struct {
		OnHand decimal.Decimal `json:"on_hand"`
	}
	decodeData(t, res, &val)
	assert.True(t, val.OnHand.Equal(dec("10")))
}

func TestPOSCheckout_Entregado(t *testing.T) {
	app := newAPI(t)
	body := webOrder("v2", "2")
	body["channel"] = "wholesale"

	status, res := call(t, app, http.MethodPost, "/api/pos/checkout", pkgjwt.RoleVendedor, body)
	require.Equal(t, http.StatusCreated, status, res.Message)
	var order struct {
		Channel string `json:"channel"`
		Status  string `json:"status"`
	}
	decodeData(t, res, &order)
	assert.Equal(t, "pos", order.Channel)
	assert.Equal(t, "delivered", order.Status)
}

func TestOrderStatus_CancelarRestauraYBloquea(t *testing.T) {
	app := newAPI(t)
	_, res := call(t, app, http.MethodPost, "/api/sales-orders", pkgjwt.RoleVendedor, webOrder("v1", "7"))
	var order struct {
		ID string `json:"id"`
	}
	decodeData(t, res, &order)
	path := "/api/orders/" + order.ID + "/status"

	status, res := call(t, app, http.MethodPatch, path, pkgjwt.RoleAdmin, fiber.Map{"status": "cancelled"})
	require.Equal(t, http.StatusOK, status, res.Message)
	var change struct {
		RestoredLines int      `json:"restored_lines"`
		AllowedNext   []string `json:"allowed_next"`
	}
	decodeData(t, res, &change)
	assert.Equal(t, 1, change.RestoredLines)
	assert.Empty(t, change.AllowedNext)

	status, res = call(t, app, http.MethodPatch, path, pkgjwt.RoleAdmin, fiber.Map{"status": "processing"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "TERMINAL_STATE", res.Code)

	status, res = call(t, app, http.MethodPatch, path, pkgjwt.RoleAdmin, fiber.Map{"status": "perdido"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", res.Code)

	_, res = call(t, app, http.MethodGet, "/api/inventory/variants/v1/batches", pkgjwt.RoleAdmin, nil)
	var batches []struct {
		ID                string          `json:"id"`
		RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	}
	decodeData(t, res, &batches)
	require.Len(t, batches, 2)
	assert.True(t, batches[0].RemainingQuantity.Equal(dec("5")))
	assert.True(t, batches[1].RemainingQuantity.Equal(dec("5")))
}

func TestShipments_FinalizarAbreLotes(t *testing.T) {
	app := newAPI(t)

	status, res := call(t, app, http.MethodPost, "/api/shipments", pkgjwt.RoleBodeguero, fiber.Map{
		"warehouse_id":  "w1",
		"reference":     "EMB-01",
		"currency":      "USD",
		"exchange_rate": "4000",
		"items": []fiber.Map{{
			"product_id": "p1", "variant_id": "v2", "batch_label": "L-EMB", "quantity": "10", "unit_price_foreign": "2",
		}},
		"costs": []fiber.Map{{"kind": "freight", "amount": "20000"}},
	})
	require.Equal(t, http.StatusCreated, status, res.Message)
	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, res, &created)

	status, res = call(t, app, http.MethodPost, "/api/shipments/"+created.ID+"/finalize", pkgjwt.RoleBodeguero, fiber.Map{"allocation_method": "value"})
	require.Equal(t, http.StatusOK, status, res.Message)
	var finalized struct {
		Status   string   `json:"status"`
		BatchIDs []string `json:"batch_ids"`
		Items    []struct {
			LandedUnitCost decimal.Decimal `json:"landed_unit_cost"`
		} `json:"items"`
	}
	decodeData(t, res, &finalized)
	assert.Equal(t, "completed", finalized.Status)
	require.Len(t, finalized.BatchIDs, 1)
	require.Len(t, finalized.Items, 1)
	assert.True(t, finalized.Items[0].LandedUnitCost.Equal(dec("10000")), finalized.Items[0].LandedUnitCost.String())

	status, res = call(t, app, http.MethodPost, "/api/shipments/"+created.ID+"/finalize", pkgjwt.RoleBodeguero, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", res.Code)

	_, res = call(t, app, http.MethodGet, "/api/inventory/variants/v2/valuation", pkgjwt.RoleVendedor, nil)
	var val struct {
		OnHand    decimal.Decimal `json:"on_hand"`
		FIFOValue decimal.Decimal `json:"fifo_value"`
	}
	decodeData(t, res, &val)
	assert.True(t, val.OnHand.Equal(dec("12")))
	assert.True(t, val.FIFOValue.Equal(dec("102000")), val.FIFOValue.String())

	status, _ = call(t, app, http.MethodPost, "/api/shipments", pkgjwt.RoleVendedor, fiber.Map{})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdjustments_BajaFIFO(t *testing.T) {
	app := newAPI(t)

	status, res := call(t, app, http.MethodPost, "/api/adjustments", pkgjwt.RoleBodeguero, fiber.Map{
		"variant_id": "v1", "warehouse_id": "w1", "type": "subtraction", "quantity": "6", "reason": "merma",
	})
	require.Equal(t, http.StatusCreated, status, res.Message)
	var adj struct {
		CostWrittenOff decimal.Decimal `json:"cost_written_off"`
	}
	decodeData(t, res, &adj)
	assert.True(t, adj.CostWrittenOff.Equal(dec("26000")), adj.CostWrittenOff.String())

	status, res = call(t, app, http.MethodGet, "/api/inventory/ledger?reference_type=adjustment", pkgjwt.RoleAdmin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", res.Code)
}

func TestCatalog_ProductosYPaginacion(t *testing.T) {
	app := newAPI(t)

	status, res := call(t, app, http.MethodPost, "/api/warehouses", pkgjwt.RoleAdmin, fiber.Map{"code": "MED", "name": "Medellín"})
	require.Equal(t, http.StatusCreated, status, res.Message)

	status, _ = call(t, app, http.MethodPost, "/api/warehouses", pkgjwt.RoleVendedor, fiber.Map{"code": "CAL", "name": "Cali"})
	assert.Equal(t, http.StatusForbidden, status)

	status, res = call(t, app, http.MethodGet, "/api/products?limit=500", pkgjwt.RoleAdmin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_PARAMS", res.Code)

	status, _ = call(t, app, http.MethodGet, "/api/products/p1", pkgjwt.RoleVendedor, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAnalytics_SoloAdmin(t *testing.T) {
	app := newAPI(t)
	status, _ := call(t, app, http.MethodGet, "/api/analytics/margins", pkgjwt.RoleVendedor, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, res := call(t, app, http.MethodGet, "/api/analytics/margins?start_date=2024-13-01", pkgjwt.RoleAdmin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", res.Code)
}

func TestReplenishment_SinPuntoDeReordenVacia(t *testing.T) {
	app := newAPI(t)
	status, _ := call(t, app, http.MethodGet, "/api/inventory/replenishment", pkgjwt.RoleVendedor, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, res := call(t, app, http.MethodGet, "/api/inventory/replenishment?warehouse_id=w1", pkgjwt.RoleBodeguero, nil)
	require.Equal(t, http.StatusOK, status)
	var list []dto.ReplenishmentSuggestionDTO
	decodeData(t, res, &list)
	assert.Empty(t, list)
}

func TestRequestID_SeRespetaOGenera(t *testing.T) {
	app := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/warehouses/w1", nil)
	req.Header.Set("Authorization", bearer(t, pkgjwt.RoleAdmin, testCompanyID))
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/api/warehouses/w1", nil)
	req.Header.Set("Authorization", bearer(t, pkgjwt.RoleAdmin, testCompanyID))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

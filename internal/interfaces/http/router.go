package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/costeo-fifo/internal/application/analytics"
	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/application/sales"
	"github.com/jhoicas/costeo-fifo/internal/application/shipment"
	"github.com/jhoicas/costeo-fifo/internal/application/usecase"
	"github.com/jhoicas/costeo-fifo/pkg/jwt"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	CheckoutUC  *sales.CheckoutUseCase
	OrderQuery  *sales.OrderQueryUseCase
	StatusUC    *sales.StatusUseCase
	Adjustments *inventory.AdjustmentUseCase
	SortUC      *inventory.SortUseCase
	Valuation   *inventory.ValuationUseCase
	Reorder     *inventory.ReplenishmentUseCase
	ShipmentUC  *shipment.ShipmentUseCase
	FinalizeUC  *shipment.FinalizeUseCase
	MarginsUC   *analytics.MarginsUseCase
	Logger      *logger.Logger
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; el rol define qué puede hacer.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	v := NewRequestValidator()

	api := app.Group("/api", RequestLogger(log), AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero, jwt.RoleVendedor)
	adminOnly := RequireRole(jwt.RoleAdmin)
	sellers := RequireRole(jwt.RoleAdmin, jwt.RoleVendedor)
	warehouse := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)

	// Catálogo
	productHandler := NewProductHandler(deps.ProductUC, v, log)
	api.Post("/products", adminOnly, productHandler.Create)
	api.Get("/products", anyRole, productHandler.List)
	api.Get("/products/:id", anyRole, productHandler.GetByID)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, v, log)
	api.Post("/warehouses", adminOnly, warehouseHandler.Create)
	api.Get("/warehouses", anyRole, warehouseHandler.List)
	api.Get("/warehouses/:id", anyRole, warehouseHandler.GetByID)

	customerHandler := NewCustomerHandler(deps.CustomerUC, v, log)
	api.Post("/customers", sellers, customerHandler.Create)
	api.Get("/customers", sellers, customerHandler.List)
	api.Get("/customers/:id", sellers, customerHandler.GetByID)

	// Ventas
	salesHandler := NewSalesHandler(deps.CheckoutUC, deps.OrderQuery, deps.StatusUC, v, log)
	api.Post("/sales-orders", sellers, salesHandler.CreateOrder)
	api.Get("/sales-orders/:id", anyRole, salesHandler.GetOrder)
	api.Post("/pos/checkout", sellers, salesHandler.POSCheckout)
	api.Patch("/orders/:id/status", anyRole, salesHandler.UpdateStatus)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.Adjustments, deps.SortUC, deps.Valuation, deps.Reorder, v, log)
	api.Post("/adjustments", warehouse, inventoryHandler.Adjust)
	inv := api.Group("/inventory")
	inv.Post("/sort", warehouse, inventoryHandler.Sort)
	inv.Get("/variants/:id/valuation", anyRole, inventoryHandler.Valuation)
	inv.Get("/variants/:id/batches", anyRole, inventoryHandler.Batches)
	inv.Get("/ledger", anyRole, inventoryHandler.Ledger)
	inv.Get("/unsorted", warehouse, inventoryHandler.Unsorted)
	inv.Get("/replenishment", warehouse, inventoryHandler.GetReplenishmentList)

	// Embarques de importación
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC, deps.FinalizeUC, v, log)
	shipments := api.Group("/shipments", warehouse)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Post("/:id/receive", shipmentHandler.Receive)
	shipments.Post("/:id/finalize", shipmentHandler.Finalize)

	// Analítica
	analyticsHandler := NewAnalyticsHandler(deps.MarginsUC, log)
	api.Get("/analytics/margins", adminOnly, analyticsHandler.GetMargins)
}

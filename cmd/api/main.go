package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/costeo-fifo/internal/application/analytics"
	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/application/loyalty"
	"github.com/jhoicas/costeo-fifo/internal/application/ports"
	"github.com/jhoicas/costeo-fifo/internal/application/pricing"
	"github.com/jhoicas/costeo-fifo/internal/application/sales"
	"github.com/jhoicas/costeo-fifo/internal/application/shipment"
	"github.com/jhoicas/costeo-fifo/internal/application/usecase"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
	"github.com/jhoicas/costeo-fifo/internal/infrastructure/lock"
	"github.com/jhoicas/costeo-fifo/internal/infrastructure/memory"
	"github.com/jhoicas/costeo-fifo/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/costeo-fifo/internal/interfaces/http"
	"github.com/jhoicas/costeo-fifo/pkg/config"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

// storage lo que necesitan los casos de uso, sea Postgres o memoria.
type storage struct {
	tx        inventory.TxRunner
	repos     repository.Repos
	analytics repository.AnalyticsRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	locker, closeLocker := newLocker(ctx, cfg, log)
	defer closeLocker()

	ledger := inventory.NewBatchLedger()
	consumer := inventory.NewConsumptionEngine(ledger, log.Component("consumption"))
	restorer := inventory.NewRestorationEngine(ledger, inventory.ParseRestorePolicy(cfg.Costing.RestorePolicy), log.Component("restoration"))
	loyaltySvc := loyalty.NewService(cfg.Costing.LoyaltyAmountPerPoint, log.Component("loyalty"))
	priceResolver := pricing.NewResolver(cfg.Costing.WholesaleDefaultMOQ)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Costeo FIFO API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC: usecase.NewWarehouseUseCase(store.repos.Warehouses),
		ProductUC:   usecase.NewProductUseCase(store.tx, store.repos.Products),
		CustomerUC:  usecase.NewCustomerUseCase(store.repos.Customers),
		CheckoutUC:  sales.NewCheckoutUseCase(store.tx, consumer, priceResolver, loyaltySvc, log.Component("checkout")),
		OrderQuery:  sales.NewOrderQueryUseCase(store.repos.Orders),
		StatusUC: sales.NewStatusUseCase(store.tx, restorer, loyaltySvc,
			sales.NewLogCourierNotifier(log.Component("courier")), locker, log.Component("order_status")),
		Adjustments: inventory.NewAdjustmentUseCase(store.tx, ledger, consumer, log.Component("adjustments")),
		SortUC:      inventory.NewSortUseCase(store.tx, ledger, log.Component("sorting")),
		Valuation:   inventory.NewValuationUseCase(store.repos.Batches, store.repos.Ledger, store.repos.Products),
		Reorder:     inventory.NewReplenishmentUseCase(store.repos.Products, store.repos.Batches),
		ShipmentUC:  shipment.NewShipmentUseCase(store.tx, store.repos.Shipments, log.Component("shipments")),
		FinalizeUC:  shipment.NewFinalizeUseCase(store.tx, ledger, locker, cfg.Costing.DefaultAllocation, log.Component("landed_cost")),
		MarginsUC:   analytics.NewMarginsUseCase(store.analytics),
		Logger:      log.Component("http"),
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		m := memory.NewStore()
		return &storage{tx: m, repos: m.Repos(), analytics: m.Analytics(), close: func() {}}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool, cfg.DB.TxRetries, log.Component("postgres")),
		repos:     postgres.NewRepos(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}, nil
}

// newLocker Redis si hay REDIS_ADDR; si no, lock en proceso (una sola instancia).
func newLocker(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.Locker, func()) {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR vacío: lock en proceso")
		return lock.NewLocalLocker(), func() {}
	}
	rdb, err := lock.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
	}
	return lock.NewRedisLocker(rdb, cfg.Redis.LockTTL()), func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar cliente Redis")
		}
	}
}

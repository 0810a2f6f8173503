package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	domaininv "github.com/jhoicas/costeo-fifo/internal/domain/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
	"github.com/jhoicas/costeo-fifo/pkg/tracing"
)

// ConsumeInput salida de unidades de una variante. EntryType por defecto sale_out.
type ConsumeInput struct {
	CompanyID   string
	VariantID   string
	WarehouseID string
	Quantity    decimal.Decimal
	Reference   entity.Reference
	EntryType   string
	ActorID     string
}

// ConsumeResult COGS exacto (sin redondear) y los lotes tocados.
type ConsumeResult struct {
	CostOfGoodsSold decimal.Decimal
	Depletions      []domaininv.Depletion
}

// ConsumptionEngine descuenta stock en orden FIFO. Debe correr dentro de la transacción del caller:
// si devuelve error, el caller hace Rollback y ningún lote queda modificado.
type ConsumptionEngine struct {
	ledger *BatchLedger
	log    *logger.Logger
}

// NewConsumptionEngine construye el motor.
func NewConsumptionEngine(ledger *BatchLedger, log *logger.Logger) *ConsumptionEngine {
	return &ConsumptionEngine{ledger: ledger, log: log}
}

// Consume bloquea los lotes de la variante (más antiguo primero) y los agota hasta cubrir la cantidad.
func (e *ConsumptionEngine) Consume(ctx context.Context, repos repository.Repos, in ConsumeInput) (res *ConsumeResult, err error) {
	ctx, span := tracing.Start(ctx, "inventory.Consume",
		attribute.String("variant_id", in.VariantID),
		attribute.String("quantity", in.Quantity.String()),
	)
	defer func() { tracing.End(span, err) }()

	if in.VariantID == "" || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	variant, err := repos.Products.GetVariant(ctx, in.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil || variant.CompanyID != in.CompanyID {
		return nil, fmt.Errorf("%w: variante %s", domain.ErrNotFound, in.VariantID)
	}

	batches, err := e.ledger.AvailableForVariant(ctx, repos, in.CompanyID, in.VariantID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	plan, err := domaininv.PlanFIFO(batches, in.Quantity)
	if err != nil {
		return nil, err
	}
	if !plan.Complete() {
		return nil, &domain.InsufficientStockError{
			VariantID: in.VariantID,
			Requested: in.Quantity,
			Shortfall: plan.Shortfall,
		}
	}

	byID := make(map[string]*entity.InventoryBatch, len(batches))
	for _, b := range batches {
		byID[b.ID] = b
	}
	entryType := in.EntryType
	if entryType == "" {
		entryType = entity.LedgerSaleOut
	}
	mv := Movement{Type: entryType, Reference: in.Reference, ActorID: in.ActorID}
	for _, d := range plan.Depletions {
		if _, err := e.ledger.Deplete(ctx, repos, byID[d.BatchID], d.Quantity, mv); err != nil {
			return nil, err
		}
	}

	e.log.Debug().
		Str("variant_id", in.VariantID).
		Str("quantity", in.Quantity.String()).
		Str("cogs", plan.TotalCost.String()).
		Int("batches", len(plan.Depletions)).
		Msg("consumo FIFO")

	return &ConsumeResult{CostOfGoodsSold: plan.TotalCost, Depletions: plan.Depletions}, nil
}

package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
	"github.com/jhoicas/costeo-fifo/pkg/tracing"
)

// Tipos de ajuste manual.
const (
	AdjustmentAddition    = "addition"
	AdjustmentSubtraction = "subtraction"
)

// AdjustmentInput ajuste de inventario. UnitCost obligatorio (>= 0) en addition.
type AdjustmentInput struct {
	VariantID   string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal
	UnitCost    *decimal.Decimal
	Reason      string
}

// AdjustmentResult BatchID en addition; CostWrittenOff en subtraction (COGS FIFO dado de baja).
type AdjustmentResult struct {
	AdjustmentID   string
	Type           string
	Quantity       decimal.Decimal
	BatchID        string
	CostWrittenOff decimal.Decimal
}

// AdjustmentUseCase entradas y bajas manuales sobre los lotes.
type AdjustmentUseCase struct {
	txRunner TxRunner
	ledger   *BatchLedger
	consumer *ConsumptionEngine
	log      *logger.Logger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner TxRunner, ledger *BatchLedger, consumer *ConsumptionEngine, log *logger.Logger) *AdjustmentUseCase {
	return &AdjustmentUseCase{txRunner: txRunner, ledger: ledger, consumer: consumer, log: log}
}

// Register addition abre un lote nuevo al costo indicado; subtraction consume FIFO con adjustment_out.
func (uc *AdjustmentUseCase) Register(ctx context.Context, actor entity.Actor, in AdjustmentInput) (res *AdjustmentResult, err error) {
	ctx, span := tracing.Start(ctx, "inventory.Adjust",
		attribute.String("variant_id", in.VariantID),
		attribute.String("type", in.Type),
	)
	defer func() { tracing.End(span, err) }()

	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if in.VariantID == "" || in.WarehouseID == "" || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case AdjustmentAddition:
		if in.UnitCost == nil || in.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	case AdjustmentSubtraction:
	default:
		return nil, domain.ErrInvalidInput
	}

	adjID := uuid.New().String()
	res = &AdjustmentResult{AdjustmentID: adjID, Type: in.Type, Quantity: in.Quantity, CostWrittenOff: decimal.Zero}

	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		wh, err := repos.Warehouses.GetByID(ctx, in.WarehouseID)
		if err != nil {
			return err
		}
		if wh == nil || wh.CompanyID != actor.CompanyID {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.WarehouseID)
		}
		variant, err := repos.Products.GetVariant(ctx, in.VariantID)
		if err != nil {
			return err
		}
		if variant == nil || variant.CompanyID != actor.CompanyID {
			return fmt.Errorf("%w: variante %s", domain.ErrNotFound, in.VariantID)
		}

		if in.Type == AdjustmentSubtraction {
			out, err := uc.consumer.Consume(ctx, repos, ConsumeInput{
				CompanyID:   actor.CompanyID,
				VariantID:   in.VariantID,
				WarehouseID: in.WarehouseID,
				Quantity:    in.Quantity,
				Reference:   entity.Reference{Type: entity.RefAdjustment, ID: adjID, LineID: adjID},
				EntryType:   entity.LedgerAdjustmentOut,
				ActorID:     actor.UserID,
			})
			if err != nil {
				return err
			}
			res.CostWrittenOff = out.CostOfGoodsSold
			return nil
		}

		variantID := variant.ID
		batch := &entity.InventoryBatch{
			ID:              uuid.New().String(),
			CompanyID:       actor.CompanyID,
			ProductID:       variant.ProductID,
			VariantID:       &variantID,
			WarehouseID:     wh.ID,
			BatchLabel:      "ADJ-" + adjID[:8],
			UnitCost:        *in.UnitCost,
			InitialQuantity: in.Quantity,
			Source:          entity.BatchSourceAdjustment,
			SourceID:        adjID,
		}
		ref := entity.Reference{Type: entity.RefAdjustment, ID: adjID, LineID: batch.ID}
		if _, err := uc.ledger.Open(ctx, repos, batch, Movement{Type: entity.LedgerAdjustmentIn, Reference: ref, ActorID: actor.UserID}); err != nil {
			return err
		}
		res.BatchID = batch.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("adjustment_id", adjID).
		Str("variant_id", in.VariantID).
		Str("type", in.Type).
		Str("quantity", in.Quantity.String()).
		Str("reason", in.Reason).
		Msg("ajuste de inventario registrado")
	return res, nil
}

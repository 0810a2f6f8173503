package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	domaininv "github.com/jhoicas/costeo-fifo/internal/domain/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
	"github.com/jhoicas/costeo-fifo/pkg/tracing"
)

// SortInput reparto de un lote sin clasificar entre variantes del mismo producto.
type SortInput struct {
	SourceBatchID string
	Allocations   []domaininv.SortAllocation
}

// SortResult lote origen tras el reparto y los lotes hijos creados.
type SortResult struct {
	SortID          string
	SourceBatchID   string
	SourceRemaining decimal.Decimal
	Batches         []*entity.InventoryBatch
}

// SortUseCase clasifica mercancía recibida sin variante.
type SortUseCase struct {
	txRunner TxRunner
	ledger   *BatchLedger
	log      *logger.Logger
}

// NewSortUseCase construye el caso de uso.
func NewSortUseCase(txRunner TxRunner, ledger *BatchLedger, log *logger.Logger) *SortUseCase {
	return &SortUseCase{txRunner: txRunner, ledger: ledger, log: log}
}

// Sort bloquea el lote origen, valida todo el reparto antes de mutar y crea un lote por variante
// con el costo, etiqueta, bodega y fecha del origen (conserva su posición FIFO).
func (uc *SortUseCase) Sort(ctx context.Context, actor entity.Actor, in SortInput) (res *SortResult, err error) {
	ctx, span := tracing.Start(ctx, "inventory.Sort", attribute.String("batch_id", in.SourceBatchID))
	defer func() { tracing.End(span, err) }()

	if !actor.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if in.SourceBatchID == "" || len(in.Allocations) == 0 {
		return nil, domain.ErrInvalidInput
	}

	sortID := uuid.New().String()
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		source, err := repos.Batches.GetForUpdate(ctx, in.SourceBatchID)
		if err != nil {
			return err
		}
		if source == nil || source.CompanyID != actor.CompanyID {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, in.SourceBatchID)
		}

		variantProduct := make(map[string]string, len(in.Allocations))
		for _, a := range in.Allocations {
			if a.VariantID == "" {
				continue
			}
			v, err := repos.Products.GetVariant(ctx, a.VariantID)
			if err != nil {
				return err
			}
			if v != nil && v.CompanyID == actor.CompanyID {
				variantProduct[v.ID] = v.ProductID
			}
		}
		if _, err := domaininv.PlanSort(source, in.Allocations, variantProduct); err != nil {
			return err
		}

		res = &SortResult{SortID: sortID, SourceBatchID: source.ID}
		for _, a := range in.Allocations {
			variantID := a.VariantID
			child := &entity.InventoryBatch{
				ID:              uuid.New().String(),
				CompanyID:       source.CompanyID,
				ProductID:       source.ProductID,
				VariantID:       &variantID,
				WarehouseID:     source.WarehouseID,
				BatchLabel:      source.BatchLabel,
				UnitCost:        source.UnitCost,
				InitialQuantity: a.Quantity,
				Source:          entity.BatchSourceSort,
				SourceID:        source.ID,
				CreatedAt:       source.CreatedAt,
			}
			ref := entity.Reference{Type: entity.RefSort, ID: sortID, LineID: child.ID}
			if _, err := uc.ledger.Deplete(ctx, repos, source, a.Quantity, Movement{Type: entity.LedgerSortOut, Reference: ref, ActorID: actor.UserID}); err != nil {
				return err
			}
			if _, err := uc.ledger.Open(ctx, repos, child, Movement{Type: entity.LedgerSortIn, Reference: ref, ActorID: actor.UserID}); err != nil {
				return err
			}
			res.Batches = append(res.Batches, child)
		}
		res.SourceRemaining = source.RemainingQuantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("batch_id", in.SourceBatchID).
		Str("sort_id", sortID).
		Int("variants", len(res.Batches)).
		Str("source_remaining", res.SourceRemaining.String()).
		Msg("lote clasificado")
	return res, nil
}

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

// RestoreInput devolución de unidades de una línea de documento (Reference.LineID obligatorio).
type RestoreInput struct {
	CompanyID   string
	VariantID   string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	Reference   entity.Reference
	ActorID     string
}

// Credit unidades devueltas a un lote.
type Credit struct {
	BatchID    string
	Quantity   decimal.Decimal
	Correction bool
}

// RestoreResult Skipped = la línea ya había sido restaurada; no se tocó nada.
type RestoreResult struct {
	Credits []Credit
	Skipped bool
}

// Restored total acreditado.
func (r *RestoreResult) Restored() decimal.Decimal {
	total := decimal.Zero
	for _, c := range r.Credits {
		total = total.Add(c.Quantity)
	}
	return total
}

// RestorationEngine devuelve unidades a los lotes de forma idempotente por línea de documento.
type RestorationEngine struct {
	ledger *BatchLedger
	policy RestorePolicy
	log    *logger.Logger
}

// NewRestorationEngine construye el motor con la política indicada.
func NewRestorationEngine(ledger *BatchLedger, policy RestorePolicy, log *logger.Logger) *RestorationEngine {
	return &RestorationEngine{ledger: ledger, policy: policy, log: log}
}

// Restore acredita la cantidad según la política. Lo que no quepa en ningún lote va a un lote de
// corrección a costo cero marcado para revisión.
func (e *RestorationEngine) Restore(ctx context.Context, repos repository.Repos, in RestoreInput) (res *RestoreResult, err error) {
	ctx, span := tracing.Start(ctx, "inventory.Restore",
		attribute.String("variant_id", in.VariantID),
		attribute.String("reference_id", in.Reference.ID),
		attribute.String("policy", string(e.policy)),
	)
	defer func() { tracing.End(span, err) }()

	if in.VariantID == "" || in.Reference.LineID == "" || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	done, err := e.alreadyRestored(ctx, repos, in.Reference)
	if err != nil {
		return nil, err
	}
	if done {
		e.log.Debug().Str("reference_id", in.Reference.ID).Str("line_id", in.Reference.LineID).Msg("línea ya restaurada")
		return &RestoreResult{Skipped: true}, nil
	}

	mv := Movement{Type: entity.LedgerReturnIn, Reference: in.Reference, ActorID: in.ActorID}
	res = &RestoreResult{}
	pending := in.Quantity

	var targets []creditTarget
	if e.policy == RestoreFreshest {
		targets, err = e.freshestTargets(ctx, repos, in)
	} else {
		targets, err = e.exactTargets(ctx, repos, in.Reference)
	}
	if err != nil {
		return nil, err
	}

	for _, t := range targets {
		if pending.IsZero() {
			break
		}
		amt := decimal.Min(pending, t.limit, t.batch.Headroom())
		if !amt.IsPositive() {
			continue
		}
		if _, err := e.ledger.Credit(ctx, repos, t.batch, amt, mv); err != nil {
			return nil, err
		}
		res.Credits = append(res.Credits, Credit{BatchID: t.batch.ID, Quantity: amt})
		pending = pending.Sub(amt)
	}

	if pending.IsPositive() {
		batch, err := e.openCorrection(ctx, repos, in, pending)
		if err != nil {
			return nil, err
		}
		res.Credits = append(res.Credits, Credit{BatchID: batch.ID, Quantity: pending, Correction: true})
	}
	return res, nil
}

func (e *RestorationEngine) alreadyRestored(ctx context.Context, repos repository.Repos, ref entity.Reference) (bool, error) {
	for _, t := range []string{entity.LedgerReturnIn, entity.LedgerCorrectionIn} {
		ok, err := repos.Ledger.ExistsForLine(ctx, ref, t)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// creditTarget lote candidato y tope a acreditarle (lo que salió de él, o su holgura).
type creditTarget struct {
	batch *entity.InventoryBatch
	limit decimal.Decimal
}

// exactTargets lotes del sale_out de la línea, del último descontado al primero.
// Se bloquean en orden FIFO, igual que en el consumo.
func (e *RestorationEngine) exactTargets(ctx context.Context, repos repository.Repos, ref entity.Reference) ([]creditTarget, error) {
	outs, err := repos.Ledger.ListForLine(ctx, ref, entity.LedgerSaleOut)
	if err != nil {
		return nil, err
	}
	depleted := make(map[string]decimal.Decimal, len(outs))
	var order []string
	for _, o := range outs {
		if _, seen := depleted[o.BatchID]; !seen {
			order = append(order, o.BatchID)
		}
		depleted[o.BatchID] = depleted[o.BatchID].Add(o.Quantity.Abs())
	}

	unlocked := make([]*entity.InventoryBatch, 0, len(order))
	for _, id := range order {
		b, err := repos.Batches.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if b != nil {
			unlocked = append(unlocked, b)
		}
	}
	domaininv.SortFIFO(unlocked)

	locked := make(map[string]*entity.InventoryBatch, len(unlocked))
	for _, b := range unlocked {
		lb, err := repos.Batches.GetForUpdate(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		locked[b.ID] = lb
	}

	targets := make([]creditTarget, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		b, ok := locked[order[i]]
		if !ok || b == nil {
			continue
		}
		targets = append(targets, creditTarget{batch: b, limit: depleted[b.ID]})
	}
	return targets, nil
}

// freshestTargets todos los lotes de la variante, del más reciente al más antiguo.
func (e *RestorationEngine) freshestTargets(ctx context.Context, repos repository.Repos, in RestoreInput) ([]creditTarget, error) {
	batches, err := repos.Batches.ListForVariantForUpdate(ctx, in.CompanyID, in.VariantID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	targets := make([]creditTarget, 0, len(batches))
	for i := len(batches) - 1; i >= 0; i-- {
		b := batches[i]
		if b.NeedsReview {
			continue
		}
		targets = append(targets, creditTarget{batch: b, limit: b.Headroom()})
	}
	return targets, nil
}

func (e *RestorationEngine) openCorrection(ctx context.Context, repos repository.Repos, in RestoreInput, qty decimal.Decimal) (*entity.InventoryBatch, error) {
	productID := in.ProductID
	if productID == "" {
		v, err := repos.Products.GetVariant(ctx, in.VariantID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("%w: variante %s", domain.ErrNotFound, in.VariantID)
		}
		productID = v.ProductID
	}
	variantID := in.VariantID
	batch := &entity.InventoryBatch{
		CompanyID:       in.CompanyID,
		ProductID:       productID,
		VariantID:       &variantID,
		WarehouseID:     in.WarehouseID,
		BatchLabel:      "CORR-" + in.Reference.ID,
		UnitCost:        decimal.Zero,
		InitialQuantity: qty,
		Source:          entity.BatchSourceCorrection,
		SourceID:        in.Reference.ID,
		NeedsReview:     true,
	}
	mv := Movement{Type: entity.LedgerCorrectionIn, Reference: in.Reference, ActorID: in.ActorID}
	if _, err := e.ledger.Open(ctx, repos, batch, mv); err != nil {
		return nil, err
	}
	e.log.Warn().
		Str("batch_id", batch.ID).
		Str("variant_id", in.VariantID).
		Str("reference_type", in.Reference.Type).
		Str("reference_id", in.Reference.ID).
		Str("quantity", qty.String()).
		Msg("unidades devueltas sin lote de origen: lote de corrección a costo cero pendiente de revisión")
	return batch, nil
}

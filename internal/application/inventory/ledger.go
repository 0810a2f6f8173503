package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

// Movement describe el asiento que acompaña un cambio sobre un lote.
type Movement struct {
	Type      string
	Reference entity.Reference
	ActorID   string
}

// BatchLedger única puerta para mutar remanentes: cada cambio escribe su asiento en el kardex
// dentro de la misma transacción.
type BatchLedger struct {
	now func() time.Time
}

// NewBatchLedger construye el ledger con reloj UTC.
func NewBatchLedger() *BatchLedger {
	return &BatchLedger{now: func() time.Time { return time.Now().UTC() }}
}

// AvailableForVariant lotes clasificados con remanente > 0, bloqueados, del más antiguo al más reciente.
func (l *BatchLedger) AvailableForVariant(ctx context.Context, repos repository.Repos, companyID, variantID, warehouseID string) ([]*entity.InventoryBatch, error) {
	if variantID == "" {
		return nil, domain.ErrInvalidInput
	}
	batches, err := repos.Batches.ListAvailableForUpdate(ctx, companyID, variantID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("lotes disponibles: %w", err)
	}
	return batches, nil
}

// Deplete descuenta qty del lote y registra el asiento de salida (cantidad negativa).
func (l *BatchLedger) Deplete(ctx context.Context, repos repository.Repos, batch *entity.InventoryBatch, qty decimal.Decimal, mv Movement) (*entity.StockLedgerEntry, error) {
	if !qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if qty.GreaterThan(batch.RemainingQuantity) {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrBatchOverDeplete, batch.ID)
	}
	remaining := batch.RemainingQuantity.Sub(qty)
	if err := repos.Batches.UpdateRemaining(ctx, batch.ID, remaining); err != nil {
		return nil, err
	}
	batch.RemainingQuantity = remaining
	return l.record(ctx, repos, batch, qty.Neg(), mv)
}

// Credit devuelve qty al lote sin superar su cantidad inicial y registra el asiento de entrada.
func (l *BatchLedger) Credit(ctx context.Context, repos repository.Repos, batch *entity.InventoryBatch, qty decimal.Decimal, mv Movement) (*entity.StockLedgerEntry, error) {
	if !qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if qty.GreaterThan(batch.Headroom()) {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrBatchOverCredit, batch.ID)
	}
	remaining := batch.RemainingQuantity.Add(qty)
	if err := repos.Batches.UpdateRemaining(ctx, batch.ID, remaining); err != nil {
		return nil, err
	}
	batch.RemainingQuantity = remaining
	return l.record(ctx, repos, batch, qty, mv)
}

// Open crea un lote nuevo (remanente = inicial) y su asiento de entrada.
// ID y fechas vacíos se completan.
func (l *BatchLedger) Open(ctx context.Context, repos repository.Repos, batch *entity.InventoryBatch, mv Movement) (*entity.StockLedgerEntry, error) {
	if batch.InitialQuantity.IsNegative() || batch.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := l.now()
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = now
	}
	batch.UpdatedAt = now
	batch.RemainingQuantity = batch.InitialQuantity
	if err := repos.Batches.Create(ctx, batch); err != nil {
		return nil, err
	}
	if batch.InitialQuantity.IsZero() {
		return nil, nil
	}
	return l.record(ctx, repos, batch, batch.InitialQuantity, mv)
}

func (l *BatchLedger) record(ctx context.Context, repos repository.Repos, batch *entity.InventoryBatch, signedQty decimal.Decimal, mv Movement) (*entity.StockLedgerEntry, error) {
	entry := &entity.StockLedgerEntry{
		ID:              uuid.New().String(),
		CompanyID:       batch.CompanyID,
		BatchID:         batch.ID,
		ProductID:       batch.ProductID,
		VariantID:       batch.VariantID,
		WarehouseID:     batch.WarehouseID,
		Type:            mv.Type,
		Quantity:        signedQty,
		UnitCost:        batch.UnitCost,
		ReferenceType:   mv.Reference.Type,
		ReferenceID:     mv.Reference.ID,
		ReferenceLineID: mv.Reference.LineID,
		CreatedBy:       mv.ActorID,
		CreatedAt:       l.now(),
	}
	if err := repos.Ledger.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

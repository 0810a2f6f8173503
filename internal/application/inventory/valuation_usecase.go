package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	domaininv "github.com/jhoicas/costeo-fifo/internal/domain/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

// ValuationUseCase consultas de solo lectura sobre lotes y kardex (sin bloqueo).
type ValuationUseCase struct {
	batchRepo   repository.BatchRepository
	ledgerRepo  repository.StockLedgerRepository
	productRepo repository.ProductRepository
}

// NewValuationUseCase construye el caso de uso.
func NewValuationUseCase(batchRepo repository.BatchRepository, ledgerRepo repository.StockLedgerRepository, productRepo repository.ProductRepository) *ValuationUseCase {
	return &ValuationUseCase{batchRepo: batchRepo, ledgerRepo: ledgerRepo, productRepo: productRepo}
}

// Variant existencias, valor FIFO y costo promedio ponderado de una variante.
// warehouseID vacío = todas las bodegas.
func (uc *ValuationUseCase) Variant(ctx context.Context, companyID, variantID, warehouseID string) (domaininv.Valuation, error) {
	batches, err := uc.Batches(ctx, companyID, variantID, warehouseID)
	if err != nil {
		return domaininv.Valuation{}, err
	}
	return domaininv.ValueBatches(batches), nil
}

// Batches lotes de la variante del más antiguo al más reciente, incluidos los agotados.
func (uc *ValuationUseCase) Batches(ctx context.Context, companyID, variantID, warehouseID string) ([]*entity.InventoryBatch, error) {
	v, err := uc.productRepo.GetVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if v == nil || v.CompanyID != companyID {
		return nil, fmt.Errorf("%w: variante %s", domain.ErrNotFound, variantID)
	}
	return uc.batchRepo.ListByVariant(ctx, companyID, variantID, warehouseID)
}

// Ledger asientos de un documento.
func (uc *ValuationUseCase) Ledger(ctx context.Context, companyID, referenceType, referenceID string) ([]*entity.StockLedgerEntry, error) {
	if referenceType == "" || referenceID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.ledgerRepo.ListByReference(ctx, companyID, referenceType, referenceID)
}

// Unsorted lotes pendientes de clasificar.
func (uc *ValuationUseCase) Unsorted(ctx context.Context, companyID, warehouseID string) ([]*entity.InventoryBatch, error) {
	return uc.batchRepo.ListUnsorted(ctx, companyID, warehouseID)
}

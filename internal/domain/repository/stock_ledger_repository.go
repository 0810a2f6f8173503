package repository

import (
	"context"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
)

// StockLedgerRepository kardex de lotes: solo inserción y lectura.
// Las lecturas devuelven los asientos en orden de inserción.
type StockLedgerRepository interface {
	Create(ctx context.Context, entry *entity.StockLedgerEntry) error
	ListByReference(ctx context.Context, companyID, referenceType, referenceID string) ([]*entity.StockLedgerEntry, error)
	// ListForLine asientos de un tipo para una línea de documento (ej. sale_out del ítem de un pedido).
	ListForLine(ctx context.Context, ref entity.Reference, entryType string) ([]*entity.StockLedgerEntry, error)
	ExistsForLine(ctx context.Context, ref entity.Reference, entryType string) (bool, error)
}

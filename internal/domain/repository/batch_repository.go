package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
)

// BatchRepository puerto de persistencia de lotes. Los métodos *ForUpdate bloquean las filas
// hasta el fin de la transacción (SELECT ... FOR UPDATE).
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.InventoryBatch) error
	GetByID(ctx context.Context, id string) (*entity.InventoryBatch, error)
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryBatch, error)

	// ListAvailableForUpdate lotes de la variante con remanente > 0, del más antiguo al más reciente
	// (created_at, id). warehouseID vacío = todas las bodegas.
	ListAvailableForUpdate(ctx context.Context, companyID, variantID, warehouseID string) ([]*entity.InventoryBatch, error)

	// ListForVariantForUpdate todos los lotes de la variante (incluidos agotados), orden FIFO, bloqueados.
	ListForVariantForUpdate(ctx context.Context, companyID, variantID, warehouseID string) ([]*entity.InventoryBatch, error)

	// ListByVariant lectura sin bloqueo, orden FIFO, incluye lotes agotados.
	ListByVariant(ctx context.Context, companyID, variantID, warehouseID string) ([]*entity.InventoryBatch, error)

	// ListUnsorted lotes sin variante con remanente > 0.
	ListUnsorted(ctx context.Context, companyID, warehouseID string) ([]*entity.InventoryBatch, error)

	UpdateRemaining(ctx context.Context, id string, remaining decimal.Decimal) error
}

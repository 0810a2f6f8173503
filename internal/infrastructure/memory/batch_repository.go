package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo lotes en memoria. Los métodos *ForUpdate no bloquean nada extra: la transacción
// ya es exclusiva.
type BatchRepo struct {
	v *view
}

func (r *BatchRepo) Create(_ context.Context, batch *entity.InventoryBatch) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.batches[batch.ID]; ok {
			return domain.ErrDuplicate
		}
		st.batches[batch.ID] = ptr(*batch)
		return nil
	})
}

func (r *BatchRepo) GetByID(_ context.Context, id string) (*entity.InventoryBatch, error) {
	var out *entity.InventoryBatch
	err := r.v.do(func(st *state) error {
		if b, ok := st.batches[id]; ok {
			out = ptr(*b)
		}
		return nil
	})
	return out, err
}

func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryBatch, error) {
	return r.GetByID(ctx, id)
}

func (r *BatchRepo) ListAvailableForUpdate(_ context.Context, companyID, variantID, warehouseID string) ([]*entity.InventoryBatch, error) {
	return r.list(func(b *entity.InventoryBatch) bool {
		return b.CompanyID == companyID && b.VariantIDOrEmpty() == variantID &&
			(warehouseID == "" || b.WarehouseID == warehouseID) &&
			b.RemainingQuantity.IsPositive()
	})
}

func (r *BatchRepo) ListForVariantForUpdate(ctx context.Context, companyID, variantID, warehouseID string) ([]*entity.InventoryBatch, error) {
	return r.ListByVariant(ctx, companyID, variantID, warehouseID)
}

func (r *BatchRepo) ListByVariant(_ context.Context, companyID, variantID, warehouseID string) ([]*entity.InventoryBatch, error) {
	return r.list(func(b *entity.InventoryBatch) bool {
		return b.CompanyID == companyID && b.VariantIDOrEmpty() == variantID &&
			(warehouseID == "" || b.WarehouseID == warehouseID)
	})
}

func (r *BatchRepo) ListUnsorted(_ context.Context, companyID, warehouseID string) ([]*entity.InventoryBatch, error) {
	return r.list(func(b *entity.InventoryBatch) bool {
		return b.CompanyID == companyID && b.IsUnsorted() &&
			(warehouseID == "" || b.WarehouseID == warehouseID) &&
			b.RemainingQuantity.IsPositive()
	})
}

func (r *BatchRepo) UpdateRemaining(_ context.Context, id string, remaining decimal.Decimal) error {
	return r.v.do(func(st *state) error {
		b, ok := st.batches[id]
		if !ok {
			return domain.ErrNotFound
		}
		b.RemainingQuantity = remaining
		b.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (r *BatchRepo) list(match func(b *entity.InventoryBatch) bool) ([]*entity.InventoryBatch, error) {
	var out []*entity.InventoryBatch
	err := r.v.do(func(st *state) error {
		for _, b := range st.batches {
			if match(b) {
				out = append(out, ptr(*b))
			}
		}
		return nil
	})
	inventory.SortFIFO(out)
	return out, err
}

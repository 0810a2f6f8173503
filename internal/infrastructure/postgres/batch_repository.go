package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `id, company_id, product_id, variant_id, warehouse_id, batch_label, unit_cost,
	initial_quantity, remaining_quantity, source, source_id, needs_review, created_at, updated_at`

// BatchRepo lotes de inventario sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

func (r *BatchRepo) Create(ctx context.Context, b *entity.InventoryBatch) error {
	query := `
		INSERT INTO inventory_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.CompanyID, b.ProductID, b.VariantID, b.WarehouseID, b.BatchLabel, b.UnitCost,
		b.InitialQuantity, b.RemainingQuantity, b.Source, b.SourceID, b.NeedsReview, b.CreatedAt, b.UpdatedAt,
	)
	return wrapInsert("inventory batch", err)
}

func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.InventoryBatch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM inventory_batches WHERE id = $1`, id)
}

func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryBatch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM inventory_batches WHERE id = $1 FOR UPDATE`, id)
}

func (r *BatchRepo) getOne(ctx context.Context, query, id string) (*entity.InventoryBatch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory batch: %w", err)
	}
	return b, nil
}

func (r *BatchRepo) ListAvailableForUpdate(ctx context.Context, companyID, variantID, warehouseID string) ([]*entity.InventoryBatch, error) {
	return r.listForVariant(ctx, companyID, variantID, warehouseID, true, true)
}

func (r *BatchRepo) ListForVariantForUpdate(ctx context.Context, companyID, variantID, warehouseID string) ([]*entity.InventoryBatch, error) {
	return r.listForVariant(ctx, companyID, variantID, warehouseID, false, true)
}

func (r *BatchRepo) ListByVariant(ctx context.Context, companyID, variantID, warehouseID string) ([]*entity.InventoryBatch, error) {
	return r.listForVariant(ctx, companyID, variantID, warehouseID, false, false)
}

// listForVariant el orden (created_at, id) es también el orden de bloqueo: dos transacciones que
// consumen la misma variante toman los locks en la misma secuencia.
func (r *BatchRepo) listForVariant(ctx context.Context, companyID, variantID, warehouseID string, onlyAvailable, lock bool) ([]*entity.InventoryBatch, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + batchColumns + ` FROM inventory_batches WHERE company_id = $1 AND variant_id = $2`)
	args := []any{companyID, variantID}
	if warehouseID != "" {
		args = append(args, warehouseID)
		sb.WriteString(fmt.Sprintf(` AND warehouse_id = $%d`, len(args)))
	}
	if onlyAvailable {
		sb.WriteString(` AND remaining_quantity > 0`)
	}
	sb.WriteString(` ORDER BY created_at, id`)
	if lock {
		sb.WriteString(` FOR UPDATE`)
	}
	return r.list(ctx, sb.String(), args...)
}

func (r *BatchRepo) ListUnsorted(ctx context.Context, companyID, warehouseID string) ([]*entity.InventoryBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches
		WHERE company_id = $1 AND variant_id IS NULL AND remaining_quantity > 0`
	args := []any{companyID}
	if warehouseID != "" {
		query += ` AND warehouse_id = $2`
		args = append(args, warehouseID)
	}
	return r.list(ctx, query+` ORDER BY created_at, id`, args...)
}

func (r *BatchRepo) UpdateRemaining(ctx context.Context, id string, remaining decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory_batches SET remaining_quantity = $2, updated_at = now() WHERE id = $1`, id, remaining)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("update inventory batch %s: %w", id, domain.ErrBatchOverDeplete)
		}
		return fmt.Errorf("update inventory batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BatchRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryBatch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory batches: %w", err)
	}
	defer rows.Close()
	var out []*entity.InventoryBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory batch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBatch(row pgx.Row) (*entity.InventoryBatch, error) {
	var b entity.InventoryBatch
	err := row.Scan(
		&b.ID, &b.CompanyID, &b.ProductID, &b.VariantID, &b.WarehouseID, &b.BatchLabel, &b.UnitCost,
		&b.InitialQuantity, &b.RemainingQuantity, &b.Source, &b.SourceID, &b.NeedsReview, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

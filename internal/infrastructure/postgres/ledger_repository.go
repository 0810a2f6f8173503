package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*LedgerRepo)(nil)

const ledgerColumns = `id, company_id, batch_id, product_id, variant_id, warehouse_id, type, quantity, unit_cost,
	reference_type, reference_id, reference_line_id, created_by, created_at`

// LedgerRepo kardex de lotes. El orden de inserción lo da la columna seq (BIGSERIAL).
type LedgerRepo struct {
	q Querier
}

func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

func (r *LedgerRepo) Create(ctx context.Context, e *entity.StockLedgerEntry) error {
	query := `
		INSERT INTO stock_ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CompanyID, e.BatchID, e.ProductID, e.VariantID, e.WarehouseID, e.Type, e.Quantity, e.UnitCost,
		e.ReferenceType, e.ReferenceID, e.ReferenceLineID, e.CreatedBy, e.CreatedAt,
	)
	return wrapInsert("stock ledger entry", err)
}

func (r *LedgerRepo) ListByReference(ctx context.Context, companyID, referenceType, referenceID string) ([]*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger
		WHERE company_id = $1 AND reference_type = $2 AND reference_id = $3
		ORDER BY seq`
	return r.list(ctx, query, companyID, referenceType, referenceID)
}

func (r *LedgerRepo) ListForLine(ctx context.Context, ref entity.Reference, entryType string) ([]*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger
		WHERE reference_type = $1 AND reference_id = $2 AND reference_line_id = $3 AND type = $4
		ORDER BY seq`
	return r.list(ctx, query, ref.Type, ref.ID, ref.LineID, entryType)
}

func (r *LedgerRepo) ExistsForLine(ctx context.Context, ref entity.Reference, entryType string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM stock_ledger
		WHERE reference_type = $1 AND reference_id = $2 AND reference_line_id = $3 AND type = $4)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, ref.Type, ref.ID, ref.LineID, entryType).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists stock ledger entry: %w", err)
	}
	return exists, nil
}

func (r *LedgerRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockLedgerEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock ledger: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockLedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock ledger: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanLedgerEntry(row pgx.Row) (*entity.StockLedgerEntry, error) {
	var e entity.StockLedgerEntry
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.BatchID, &e.ProductID, &e.VariantID, &e.WarehouseID, &e.Type, &e.Quantity, &e.UnitCost,
		&e.ReferenceType, &e.ReferenceID, &e.ReferenceLineID, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

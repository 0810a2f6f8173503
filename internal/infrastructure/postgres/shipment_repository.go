package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

const shipmentColumns = `id, company_id, warehouse_id, reference, currency, exchange_rate, status, allocation_method,
	created_by, created_at, received_at, finalized_at, updated_at`

// ShipmentRepo embarques de importación, ítems y costos adicionales.
type ShipmentRepo struct {
	q Querier
}

func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.WarehouseID, s.Reference, s.Currency, s.ExchangeRate, s.Status, s.AllocationMethod,
		s.CreatedBy, s.CreatedAt, s.ReceivedAt, s.FinalizedAt, s.UpdatedAt,
	)
	return wrapInsert("shipment", err)
}

func (r *ShipmentRepo) CreateItem(ctx context.Context, it *entity.ShipmentItem) error {
	query := `
		INSERT INTO shipment_items (id, shipment_id, product_id, variant_id, batch_label, quantity,
			received_quantity, unit_price_foreign, unit_weight, landed_unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.ShipmentID, it.ProductID, it.VariantID, it.BatchLabel, it.Quantity,
		it.ReceivedQuantity, it.UnitPriceForeign, it.UnitWeight, it.LandedUnitCost,
	)
	return wrapInsert("shipment item", err)
}

func (r *ShipmentRepo) CreateCost(ctx context.Context, c *entity.ShipmentCost) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO shipment_costs (id, shipment_id, kind, description, amount) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.ShipmentID, c.Kind, c.Description, c.Amount,
	)
	return wrapInsert("shipment cost", err)
}

func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	return r.getOne(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id)
}

func (r *ShipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Shipment, error) {
	return r.getOne(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1 FOR UPDATE`, id)
}

func (r *ShipmentRepo) getOne(ctx context.Context, query, id string) (*entity.Shipment, error) {
	var s entity.Shipment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CompanyID, &s.WarehouseID, &s.Reference, &s.Currency, &s.ExchangeRate, &s.Status, &s.AllocationMethod,
		&s.CreatedBy, &s.CreatedAt, &s.ReceivedAt, &s.FinalizedAt, &s.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return &s, nil
}

func (r *ShipmentRepo) ListItems(ctx context.Context, shipmentID string) ([]*entity.ShipmentItem, error) {
	query := `
		SELECT id, shipment_id, product_id, variant_id, batch_label, quantity,
			received_quantity, unit_price_foreign, unit_weight, landed_unit_cost
		FROM shipment_items WHERE shipment_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list shipment items: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.ShipmentItem, error) {
		var it entity.ShipmentItem
		err := row.Scan(&it.ID, &it.ShipmentID, &it.ProductID, &it.VariantID, &it.BatchLabel, &it.Quantity,
			&it.ReceivedQuantity, &it.UnitPriceForeign, &it.UnitWeight, &it.LandedUnitCost)
		return &it, err
	})
}

func (r *ShipmentRepo) ListCosts(ctx context.Context, shipmentID string) ([]*entity.ShipmentCost, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, shipment_id, kind, description, amount FROM shipment_costs WHERE shipment_id = $1 ORDER BY seq`,
		shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list shipment costs: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.ShipmentCost, error) {
		var c entity.ShipmentCost
		err := row.Scan(&c.ID, &c.ShipmentID, &c.Kind, &c.Description, &c.Amount)
		return &c, err
	})
}

func (r *ShipmentRepo) Update(ctx context.Context, s *entity.Shipment) error {
	query := `
		UPDATE shipments SET status = $2, allocation_method = $3, received_at = $4, finalized_at = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.Status, s.AllocationMethod, s.ReceivedAt, s.FinalizedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ShipmentRepo) UpdateItem(ctx context.Context, it *entity.ShipmentItem) error {
	query := `
		UPDATE shipment_items SET received_quantity = $2, unit_weight = $3, landed_unit_cost = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, it.ID, it.ReceivedQuantity, it.UnitWeight, it.LandedUnitCost)
	if err != nil {
		return fmt.Errorf("update shipment item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

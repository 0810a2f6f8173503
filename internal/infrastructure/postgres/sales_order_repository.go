package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

const orderColumns = `id, company_id, warehouse_id, customer_id, channel, status, payment_status, sub_total,
	discount_amount, tax_amount, total_amount, paid_amount, due_amount, created_by, created_at, updated_at`

// SalesOrderRepo pedidos de venta y sus líneas.
type SalesOrderRepo struct {
	q Querier
}

func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.WarehouseID, o.CustomerID, o.Channel, o.Status, o.PaymentStatus, o.SubTotal,
		o.DiscountAmount, o.TaxAmount, o.TotalAmount, o.PaidAmount, o.DueAmount, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	return wrapInsert("sales order", err)
}

func (r *SalesOrderRepo) CreateItem(ctx context.Context, it *entity.SalesOrderItem) error {
	query := `
		INSERT INTO sales_order_items (id, order_id, product_id, variant_id, quantity, unit_price, tax_rate, total_price, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.OrderID, it.ProductID, it.VariantID, it.Quantity, it.UnitPrice, it.TaxRate, it.TotalPrice, it.TotalCost,
	)
	return wrapInsert("sales order item", err)
}

func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM sales_orders WHERE id = $1`, id)
}

func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM sales_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *SalesOrderRepo) getOne(ctx context.Context, query, id string) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CompanyID, &o.WarehouseID, &o.CustomerID, &o.Channel, &o.Status, &o.PaymentStatus, &o.SubTotal,
		&o.DiscountAmount, &o.TaxAmount, &o.TotalAmount, &o.PaidAmount, &o.DueAmount, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	return &o, nil
}

func (r *SalesOrderRepo) ListItems(ctx context.Context, orderID string) ([]*entity.SalesOrderItem, error) {
	query := `
		SELECT id, order_id, product_id, variant_id, quantity, unit_price, tax_rate, total_price, total_cost
		FROM sales_order_items WHERE order_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.SalesOrderItem, error) {
		var it entity.SalesOrderItem
		err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.Quantity, &it.UnitPrice,
			&it.TaxRate, &it.TotalPrice, &it.TotalCost)
		return &it, err
	})
}

func (r *SalesOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE sales_orders SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

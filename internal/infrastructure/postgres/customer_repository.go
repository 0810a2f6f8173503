package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (id, company_id, name, email, phone, loyalty_points, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.CompanyID, c.Name, c.Email, c.Phone, c.LoyaltyPoints, c.CreatedAt, c.UpdatedAt,
	)
	return wrapInsert("customer", err)
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, name, email, phone, loyalty_points, created_at, updated_at
		FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.LoyaltyPoints, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// ListByCompany lista clientes de la empresa, ordenados por nombre.
func (r *CustomerRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, name, email, phone, loyalty_points, created_at, updated_at
		FROM customers WHERE company_id = $1
		ORDER BY name, id LIMIT $2 OFFSET $3`, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Customer, error) {
		var c entity.Customer
		err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.LoyaltyPoints, &c.CreatedAt, &c.UpdatedAt)
		return &c, err
	})
}

// AddLoyaltyPoints suma en una sola sentencia; no requiere leer el saldo.
func (r *CustomerRepo) AddLoyaltyPoints(ctx context.Context, id string, points int64) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE customers SET loyalty_points = loyalty_points + $2, updated_at = now() WHERE id = $1`, id, points)
	if err != nil {
		return fmt.Errorf("add loyalty points: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

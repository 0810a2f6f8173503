package repository

import (
	"context"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
)

// CustomerRepository puerto de persistencia de clientes.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error)
	AddLoyaltyPoints(ctx context.Context, id string, points int64) error
}

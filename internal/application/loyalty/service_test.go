package loyalty

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
	"github.com/jhoicas/costeo-fifo/internal/infrastructure/memory"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

func TestAwardPoints_UnaVezPorPedido(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "cu1", CompanyID: "c1", Name: "Ana"}))
	customer := "cu1"
	order := &entity.SalesOrder{ID: "o1", CompanyID: "c1", CustomerID: &customer, TotalAmount: decimal.RequireFromString("25999")}

	s := NewService(decimal.NewFromInt(1000), logger.Nop())

	points, err := s.AwardPoints(ctx, repos, order)
	require.NoError(t, err)
	assert.Equal(t, int64(25), points)

	points, err = s.AwardPoints(ctx, repos, order)
	require.NoError(t, err)
	assert.Zero(t, points)

	c, err := repos.Customers.GetByID(ctx, "cu1")
	require.NoError(t, err)
	assert.Equal(t, int64(25), c.LoyaltyPoints)
}

func TestAwardPoints_SinClienteNoAcumula(t *testing.T) {
	repos := memory.NewStore().Repos()
	s := NewService(decimal.NewFromInt(1000), logger.Nop())

	points, err := s.AwardPoints(context.Background(), repos, &entity.SalesOrder{ID: "o1", TotalAmount: decimal.NewFromInt(50000)})
	require.NoError(t, err)
	assert.Zero(t, points)
}

// staleLoyalty responde que el pedido no tiene puntos aunque ya existan.
type staleLoyalty struct {
	repository.LoyaltyRepository
}

func (staleLoyalty) HasEarned(context.Context, string) (bool, error) { return false, nil }

func TestAwardPoints_DuplicadoSePropaga(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "cu1", CompanyID: "c1", Name: "Ana"}))
	customer := "cu1"
	order := &entity.SalesOrder{ID: "o1", CompanyID: "c1", CustomerID: &customer, TotalAmount: decimal.NewFromInt(5000)}

	s := NewService(decimal.NewFromInt(1000), logger.Nop())
	_, err := s.AwardPoints(ctx, repos, order)
	require.NoError(t, err)

	repos.Loyalty = staleLoyalty{LoyaltyRepository: repos.Loyalty}
	points, err := s.AwardPoints(ctx, repos, order)
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Zero(t, points)

	c, err := repos.Customers.GetByID(ctx, "cu1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), c.LoyaltyPoints)
}

package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
)

func TestValuation_VarianteTrasVenta(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(t, "b1", "v1", t0, "5", "10")
	f.seedBatch(t, "b2", "v1", t0.Add(time.Hour), "5", "20")
	_, err := f.consume("v1", "3", saleRef("o1", "i1"))
	require.NoError(t, err)

	r := f.store.Repos()
	uc := inventory.NewValuationUseCase(r.Batches, r.Ledger, r.Products)

	v, err := uc.Variant(f.ctx, "c1", "v1", "")
	require.NoError(t, err)
	assert.Equal(t, "7", v.OnHand.String())
	assert.Equal(t, "120", v.FIFOValue.String())
	assert.Equal(t, 2, v.Batches)
	assert.True(t, v.AverageCost.Mul(v.OnHand).Sub(v.FIFOValue).Abs().LessThan(dec("0.0001")))

	batches, err := uc.Batches(f.ctx, "c1", "v1", "w1")
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "b1", batches[0].ID)

	entries, err := uc.Ledger(f.ctx, "c1", entity.RefSalesOrder, "o1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestValuation_Errores(t *testing.T) {
	f := newFixture(t)
	r := f.store.Repos()
	uc := inventory.NewValuationUseCase(r.Batches, r.Ledger, r.Products)

	_, err := uc.Variant(f.ctx, "c1", "nope", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Variant(f.ctx, "otra", "v1", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Ledger(f.ctx, "c1", "", "o1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/inventory"
)

func unsortedBatch(qty string) *entity.InventoryBatch {
	b := batch("x", t0, qty, "7.5")
	b.VariantID = nil
	return b
}

func TestPlanSort_RepartoCompleto(t *testing.T) {
	src := unsortedBatch("100")
	total, err := inventory.PlanSort(src, []inventory.SortAllocation{
		{VariantID: "v1", Quantity: dec("40")},
		{VariantID: "v2", Quantity: dec("60")},
	}, map[string]string{"v1": "prod-1", "v2": "prod-1"})
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("100")))
}

func TestPlanSort_VarianteDeOtroProducto(t *testing.T) {
	src := unsortedBatch("100")
	_, err := inventory.PlanSort(src, []inventory.SortAllocation{
		{VariantID: "v1", Quantity: dec("40")},
		{VariantID: "ajena", Quantity: dec("10")},
	}, map[string]string{"v1": "prod-1", "ajena": "prod-2"})
	assert.ErrorIs(t, err, domain.ErrCrossProduct)
}

func TestPlanSort_ExcedeRemanente(t *testing.T) {
	src := unsortedBatch("10")
	_, err := inventory.PlanSort(src, []inventory.SortAllocation{{VariantID: "v1", Quantity: dec("11")}},
		map[string]string{"v1": "prod-1"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestPlanSort_LoteYaClasificado(t *testing.T) {
	src := batch("x", t0, "10", "1")
	_, err := inventory.PlanSort(src, []inventory.SortAllocation{{VariantID: "v1", Quantity: dec("1")}},
		map[string]string{"v1": "prod-1"})
	assert.ErrorIs(t, err, domain.ErrAlreadySorted)
}

func TestPlanSort_VarianteDesconocida(t *testing.T) {
	src := unsortedBatch("10")
	_, err := inventory.PlanSort(src, []inventory.SortAllocation{{VariantID: "nope", Quantity: dec("1")}},
		map[string]string{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/inventory"
)

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func sampleItems() []inventory.AllocationItem {
	return []inventory.AllocationItem{
		{ItemID: "i1", Quantity: dec("10"), UnitPriceForeign: dec("2"), UnitWeight: decPtr("0.5")},
		{ItemID: "i2", Quantity: dec("4"), UnitPriceForeign: dec("5"), UnitWeight: decPtr("2")},
	}
}

// la suma de costo unitario * cantidad debe cuadrar con productos + costos adicionales
// con tolerancia de una unidad menor por ítem.
func assertAllocationTotal(t *testing.T, res *inventory.AllocationResult) {
	t.Helper()
	expected := res.TotalProductCost.Add(res.TotalExtraCost)
	diff := res.TotalLanded().Sub(expected).Abs()
	tolerance := dec("0.01").Mul(decimal.NewFromInt(int64(len(res.Lines))))
	assert.Truef(t, diff.LessThanOrEqual(tolerance), "total %s esperado %s", res.TotalLanded(), expected)
}

func TestAllocateLandedCost_PorValor(t *testing.T) {
	res, err := inventory.AllocateLandedCost(inventory.AllocationInput{
		Method:       inventory.AllocationValue,
		ExchangeRate: dec("100"),
		Items:        sampleItems(),
		ExtraCosts:   []decimal.Decimal{dec("600"), dec("200")},
	})
	require.NoError(t, err)

	// productos: 10*200 + 4*500 = 4000; ratio 800/4000 = 0.2
	assert.Equal(t, inventory.AllocationValue, res.Method)
	assert.True(t, res.TotalProductCost.Equal(dec("4000")))
	assert.True(t, res.Lines[0].LandedUnitCost.Equal(dec("240")), "i1 %s", res.Lines[0].LandedUnitCost)
	assert.True(t, res.Lines[1].LandedUnitCost.Equal(dec("600")), "i2 %s", res.Lines[1].LandedUnitCost)
	assertAllocationTotal(t, res)
}

func TestAllocateLandedCost_PorPeso(t *testing.T) {
	res, err := inventory.AllocateLandedCost(inventory.AllocationInput{
		Method:       inventory.AllocationWeight,
		ExchangeRate: dec("100"),
		Items:        sampleItems(),
		ExtraCosts:   []decimal.Decimal{dec("650")},
	})
	require.NoError(t, err)

	// peso: 10*0.5 + 4*2 = 13 kg; 650/13 = 50 por kg
	assert.True(t, res.Lines[0].LandedUnitCost.Equal(dec("225")), "i1 %s", res.Lines[0].LandedUnitCost)
	assert.True(t, res.Lines[1].LandedUnitCost.Equal(dec("600")), "i2 %s", res.Lines[1].LandedUnitCost)
	assertAllocationTotal(t, res)
}

func TestAllocateLandedCost_AutoEligePesoSiTodosLoTraen(t *testing.T) {
	res, err := inventory.AllocateLandedCost(inventory.AllocationInput{
		ExchangeRate: dec("1"),
		Items:        sampleItems(),
		ExtraCosts:   []decimal.Decimal{dec("13")},
	})
	require.NoError(t, err)
	assert.Equal(t, inventory.AllocationWeight, res.Method)
}

func TestAllocateLandedCost_AutoEligeValorSinPesos(t *testing.T) {
	items := sampleItems()
	items[1].UnitWeight = nil
	res, err := inventory.AllocateLandedCost(inventory.AllocationInput{
		ExchangeRate: dec("1"),
		Items:        items,
		ExtraCosts:   []decimal.Decimal{dec("3")},
	})
	require.NoError(t, err)
	assert.Equal(t, inventory.AllocationValue, res.Method)
	assertAllocationTotal(t, res)
}

func TestAllocateLandedCost_AutoCaeACantidad(t *testing.T) {
	items := []inventory.AllocationItem{
		{ItemID: "gift", Quantity: dec("3"), UnitPriceForeign: decimal.Zero},
		{ItemID: "paid", Quantity: dec("7"), UnitPriceForeign: dec("1")},
	}
	res, err := inventory.AllocateLandedCost(inventory.AllocationInput{
		ExchangeRate: dec("1"),
		Items:        items,
		ExtraCosts:   []decimal.Decimal{dec("10")},
	})
	require.NoError(t, err)
	assert.Equal(t, inventory.AllocationQuantity, res.Method)
	assert.True(t, res.Lines[0].LandedUnitCost.Equal(dec("1")))
	assert.True(t, res.Lines[1].LandedUnitCost.Equal(dec("2")))
	assertAllocationTotal(t, res)
}

func TestAllocateLandedCost_RedondeoCuadraDentroDeTolerancia(t *testing.T) {
	items := []inventory.AllocationItem{
		{ItemID: "a", Quantity: dec("3"), UnitPriceForeign: dec("1.11")},
		{ItemID: "b", Quantity: dec("7"), UnitPriceForeign: dec("2.37")},
		{ItemID: "c", Quantity: dec("11"), UnitPriceForeign: dec("0.59")},
	}
	res, err := inventory.AllocateLandedCost(inventory.AllocationInput{
		Method:       inventory.AllocationValue,
		ExchangeRate: dec("117.35"),
		Items:        items,
		ExtraCosts:   []decimal.Decimal{dec("1000"), dec("333.33")},
	})
	require.NoError(t, err)
	assertAllocationTotal(t, res)
}

func TestAllocateLandedCost_LineasGrandesCuadranTotal(t *testing.T) {
	res, err := inventory.AllocateLandedCost(inventory.AllocationInput{
		Method:       inventory.AllocationQuantity,
		ExchangeRate: dec("1"),
		Items: []inventory.AllocationItem{
			{ItemID: "a", Quantity: dec("20000"), UnitPriceForeign: dec("0.13")},
			{ItemID: "b", Quantity: dec("15000"), UnitPriceForeign: dec("0.07")},
		},
		ExtraCosts: []decimal.Decimal{dec("101.75")},
	})
	require.NoError(t, err)
	assert.True(t, res.TotalProductCost.Add(res.TotalExtraCost).Equal(dec("3751.75")))
	assertAllocationTotal(t, res)
	assert.Equal(t, int32(7), -res.Lines[0].LandedUnitCost.Exponent())
}

func TestAllocateLandedCost_ValorConCantidadesGrandes(t *testing.T) {
	res, err := inventory.AllocateLandedCost(inventory.AllocationInput{
		Method:       inventory.AllocationValue,
		ExchangeRate: dec("4012.37"),
		Items: []inventory.AllocationItem{
			{ItemID: "a", Quantity: dec("125000"), UnitPriceForeign: dec("0.0317")},
			{ItemID: "b", Quantity: dec("48000"), UnitPriceForeign: dec("1.09")},
			{ItemID: "c", Quantity: dec("7"), UnitPriceForeign: dec("12.5")},
		},
		ExtraCosts: []decimal.Decimal{dec("3500000"), dec("812345.67")},
	})
	require.NoError(t, err)
	assertAllocationTotal(t, res)
}

func TestLandedCostScale_CreceConCantidad(t *testing.T) {
	assert.Equal(t, int32(4), inventory.LandedCostScale(dec("0")))
	assert.Equal(t, int32(4), inventory.LandedCostScale(dec("11")))
	assert.Equal(t, int32(5), inventory.LandedCostScale(dec("250")))
	assert.Equal(t, int32(7), inventory.LandedCostScale(dec("20000")))
	assert.Equal(t, int32(7), inventory.LandedCostScale(dec("99999")))
	assert.Equal(t, int32(10), inventory.LandedCostScale(dec("5000000000")))
}

func TestAllocateLandedCost_NoAsignable(t *testing.T) {
	zeroCost := []inventory.AllocationItem{{ItemID: "a", Quantity: dec("5"), UnitPriceForeign: decimal.Zero}}
	_, err := inventory.AllocateLandedCost(inventory.AllocationInput{
		Method: inventory.AllocationValue, ExchangeRate: dec("1"), Items: zeroCost,
		ExtraCosts: []decimal.Decimal{dec("10")},
	})
	assert.ErrorIs(t, err, domain.ErrNonAllocatable)

	noWeight := []inventory.AllocationItem{{ItemID: "a", Quantity: dec("5"), UnitPriceForeign: dec("1")}}
	_, err = inventory.AllocateLandedCost(inventory.AllocationInput{
		Method: inventory.AllocationWeight, ExchangeRate: dec("1"), Items: noWeight,
		ExtraCosts: []decimal.Decimal{dec("10")},
	})
	assert.ErrorIs(t, err, domain.ErrNonAllocatable)

	nothingReceived := []inventory.AllocationItem{{ItemID: "a", Quantity: decimal.Zero, UnitPriceForeign: dec("1")}}
	_, err = inventory.AllocateLandedCost(inventory.AllocationInput{
		ExchangeRate: dec("1"), Items: nothingReceived,
	})
	var nae *domain.NonAllocatableError
	require.ErrorAs(t, err, &nae)
	assert.Equal(t, string(inventory.AllocationQuantity), nae.Method)
}

func TestAllocateLandedCost_EntradaInvalida(t *testing.T) {
	_, err := inventory.AllocateLandedCost(inventory.AllocationInput{ExchangeRate: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.AllocateLandedCost(inventory.AllocationInput{ExchangeRate: decimal.Zero, Items: sampleItems()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.AllocateLandedCost(inventory.AllocationInput{
		ExchangeRate: dec("1"), Items: sampleItems(), ExtraCosts: []decimal.Decimal{dec("-1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

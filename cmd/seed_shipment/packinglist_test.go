package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPackingList_Windows1252(t *testing.T) {
	// 0xF1 = ñ en Windows-1252
	raw := []byte("Producto;Variante;Lote;Cantidad;Precio_Unitario;Peso\r\n" +
		"CAM;CAM-S;A\xf1il-1;10;2,50;0,3\r\n" +
		"GOR;;;5;1.234,50;\r\n" +
		";;;;;\r\n")

	lines, err := readPackingList(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "Añil-1", lines[0].BatchLabel)
	assert.Equal(t, "CAM-S", lines[0].VariantSKU)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("2.5")))
	require.NotNil(t, lines[0].UnitWeight)
	assert.True(t, lines[0].UnitWeight.Equal(decimal.RequireFromString("0.3")))

	assert.Empty(t, lines[1].VariantSKU)
	assert.True(t, lines[1].UnitPrice.Equal(decimal.RequireFromString("1234.5")))
	assert.Nil(t, lines[1].UnitWeight)
}

func TestReadPackingList_Rechazos(t *testing.T) {
	cases := map[string]string{
		"sin columna precio": "producto;cantidad\nCAM;1\n",
		"cantidad cero":      "producto;cantidad;precio\nCAM;0;1\n",
		"precio no numérico": "producto;cantidad;precio\nCAM;1;abc\n",
		"sin filas":          "producto;cantidad;precio\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := readPackingList(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestWriteSeedSQL_GeneraEmbarque(t *testing.T) {
	hdr := shipmentHeader{
		CompanyID:    "c1",
		WarehouseID:  "w1",
		Reference:    "EMB-O'02",
		Currency:     "usd",
		ExchangeRate: decimal.RequireFromString("3950.5"),
		Costs:        []extraCost{{Kind: "freight", Amount: decimal.RequireFromString("1200000")}},
	}
	lines := []packingLine{
		{ProductSKU: "CAM", VariantSKU: "CAM-S", BatchLabel: "L1", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("2.5")},
		{ProductSKU: "GOR", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(3)},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSeedSQL(&buf, hdr, lines))
	sql := buf.String()

	assert.Contains(t, sql, "'EMB-O''02'")
	assert.Contains(t, sql, "'USD', 3950.5, 'draft'")
	assert.Contains(t, sql, "sku = 'CAM-S'")
	assert.Contains(t, sql, "NULL, 'EMB-O''02-2', 5, 3, NULL")
	assert.Contains(t, sql, "'freight', 1200000")
	assert.Equal(t, 2, strings.Count(sql, "INSERT INTO shipment_items"))
	assert.True(t, strings.HasSuffix(sql, "COMMIT;\n"))
}

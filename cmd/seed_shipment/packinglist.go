package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// packingLine fila de la lista de empaque del proveedor.
type packingLine struct {
	ProductSKU string
	VariantSKU string // vacío = llega sin clasificar
	BatchLabel string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal // moneda del proveedor
	UnitWeight *decimal.Decimal
}

// shipmentHeader datos del embarque que no vienen en el archivo.
type shipmentHeader struct {
	CompanyID    string
	WarehouseID  string
	Reference    string
	Currency     string
	ExchangeRate decimal.Decimal
	Costs        []extraCost
}

type extraCost struct {
	Kind   string
	Amount decimal.Decimal
}

var columnAliases = map[string]string{
	"sku":             "product",
	"producto":        "product",
	"sku_producto":    "product",
	"variante":        "variant",
	"sku_variante":    "variant",
	"lote":            "batch",
	"etiqueta_lote":   "batch",
	"cantidad":        "quantity",
	"precio":          "price",
	"precio_unitario": "price",
	"peso":            "weight",
	"peso_unitario":   "weight",
}

// readPackingList lee el CSV exportado por la hoja del proveedor (Windows-1252, separado por ';').
// Las columnas se reconocen por nombre; producto, cantidad y precio son obligatorias.
func readPackingList(r io.Reader) ([]packingLine, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.Windows1252.NewDecoder()))
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if col, ok := columnAliases[key]; ok {
			idx[col] = i
		}
	}
	for _, col := range []string{"product", "quantity", "price"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}

	var lines []packingLine
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", row, err)
		}
		field := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if field("product") == "" {
			continue
		}
		l := packingLine{ProductSKU: field("product"), VariantSKU: field("variant"), BatchLabel: field("batch")}
		if l.Quantity, err = parseAmount(field("quantity")); err != nil || !l.Quantity.IsPositive() {
			return nil, fmt.Errorf("fila %d: cantidad inválida %q", row, field("quantity"))
		}
		if l.UnitPrice, err = parseAmount(field("price")); err != nil || l.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("fila %d: precio inválido %q", row, field("price"))
		}
		if w := field("weight"); w != "" {
			weight, err := parseAmount(w)
			if err != nil || weight.IsNegative() {
				return nil, fmt.Errorf("fila %d: peso inválido %q", row, w)
			}
			l.UnitWeight = &weight
		}
		lines = append(lines, l)
	}
	if len(lines) == 0 {
		return nil, errors.New("la lista de empaque no tiene filas")
	}
	return lines, nil
}

// parseAmount acepta "1234.5", "1234,5" y "1.234,50".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

// writeSeedSQL escribe el embarque en draft con sus ítems y costos dentro de una transacción.
// Productos y variantes se resuelven por SKU dentro de la empresa.
func writeSeedSQL(w io.Writer, hdr shipmentHeader, lines []packingLine) error {
	shipmentID := uuid.New().String()
	var b strings.Builder
	fmt.Fprintf(&b, "-- Embarque %s (%d ítems) generado desde lista de empaque\n", hdr.Reference, len(lines))
	b.WriteString("BEGIN;\n\n")
	fmt.Fprintf(&b, "INSERT INTO shipments (id, company_id, warehouse_id, reference, currency, exchange_rate, status, created_by)\n")
	fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', %s, 'draft', 'seed_shipment');\n\n",
		shipmentID, escapeSQL(hdr.CompanyID), escapeSQL(hdr.WarehouseID), escapeSQL(hdr.Reference),
		escapeSQL(strings.ToUpper(hdr.Currency)), hdr.ExchangeRate.String())

	for i, l := range lines {
		label := l.BatchLabel
		if label == "" {
			label = fmt.Sprintf("%s-%d", hdr.Reference, i+1)
		}
		variant := "NULL"
		if l.VariantSKU != "" {
			variant = fmt.Sprintf("(SELECT id FROM product_variants WHERE company_id = '%s' AND sku = '%s')",
				escapeSQL(hdr.CompanyID), escapeSQL(l.VariantSKU))
		}
		weight := "NULL"
		if l.UnitWeight != nil {
			weight = l.UnitWeight.String()
		}
		b.WriteString("INSERT INTO shipment_items (id, shipment_id, product_id, variant_id, batch_label, quantity, unit_price_foreign, unit_weight)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', (SELECT id FROM products WHERE company_id = '%s' AND sku = '%s'), %s, '%s', %s, %s, %s);\n",
			uuid.New().String(), shipmentID, escapeSQL(hdr.CompanyID), escapeSQL(l.ProductSKU),
			variant, escapeSQL(label), l.Quantity.String(), l.UnitPrice.String(), weight)
	}
	if len(hdr.Costs) > 0 {
		b.WriteString("\n")
	}
	for _, c := range hdr.Costs {
		fmt.Fprintf(&b, "INSERT INTO shipment_costs (id, shipment_id, kind, amount) VALUES ('%s', '%s', '%s', %s);\n",
			uuid.New().String(), shipmentID, escapeSQL(c.Kind), c.Amount.String())
	}
	b.WriteString("\nCOMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

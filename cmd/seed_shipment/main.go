// seed_shipment convierte la lista de empaque de un proveedor (CSV en Windows-1252, separado por ';')
// en un script SQL que registra el embarque en draft. Luego se recibe y finaliza por la API.
//
// Uso:
//
//	go run ./cmd/seed_shipment -company <uuid> -warehouse <uuid> -ref EMB-2024-07 \
//	    -currency USD -rate 3950.5 -freight 1200000 -customs 850000 lista.csv
//
// Escribe en stdout salvo que se indique -out.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
)

func main() {
	var (
		hdr                             shipmentHeader
		rate, freight, customs, outPath string
	)
	flag.StringVar(&hdr.CompanyID, "company", "", "ID de la empresa")
	flag.StringVar(&hdr.WarehouseID, "warehouse", "", "ID de la bodega destino")
	flag.StringVar(&hdr.Reference, "ref", "", "referencia del embarque")
	flag.StringVar(&hdr.Currency, "currency", "USD", "moneda del proveedor (ISO 4217)")
	flag.StringVar(&rate, "rate", "", "tasa de cambio a moneda local")
	flag.StringVar(&freight, "freight", "", "flete en moneda local (opcional)")
	flag.StringVar(&customs, "customs", "", "aduana en moneda local (opcional)")
	flag.StringVar(&outPath, "out", "", "archivo de salida (por defecto stdout)")
	flag.Parse()

	if flag.NArg() != 1 || hdr.CompanyID == "" || hdr.WarehouseID == "" || hdr.Reference == "" || len(hdr.Currency) != 3 {
		flag.Usage()
		os.Exit(2)
	}
	var err error
	if hdr.ExchangeRate, err = parseAmount(rate); err != nil || !hdr.ExchangeRate.IsPositive() {
		fail("tasa de cambio inválida: %q", rate)
	}
	for _, c := range []struct{ kind, raw string }{{"freight", freight}, {"customs", customs}} {
		if c.raw == "" {
			continue
		}
		amount, err := parseAmount(c.raw)
		if err != nil || amount.IsNegative() {
			fail("monto de %s inválido: %q", c.kind, c.raw)
		}
		hdr.Costs = append(hdr.Costs, extraCost{Kind: c.kind, Amount: amount})
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fail("abrir CSV: %v", err)
	}
	defer f.Close()

	lines, err := readPackingList(f)
	if err != nil {
		fail("leer lista de empaque: %v", err)
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			fail("crear archivo: %v", err)
		}
		defer file.Close()
		out = file
	}
	if err := writeSeedSQL(out, hdr, lines); err != nil {
		fail("escribir SQL: %v", err)
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Quantity.Mul(l.UnitPrice))
	}
	fmt.Fprintf(os.Stderr, "Embarque %s: %d ítems, valor FOB %s %s\n", hdr.Reference, len(lines), total.StringFixed(2), hdr.Currency)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

package dto

import "github.com/shopspring/decimal"

// MarginsReportRequest parámetros para GET /api/analytics/margins.
type MarginsReportRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto primer día del mes actual
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; por defecto hoy
}

// MarginByChannelDTO ventas vs costo FIFO de un canal.
// Fórmula: margen = ingresos - cogs
type MarginByChannelDTO struct {
	Channel     string          `json:"channel"`
	OrderCount  int             `json:"order_count"`
	UnitsSold   decimal.Decimal `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossMargin decimal.Decimal `json:"gross_margin"`
	MarginPct   decimal.Decimal `json:"margin_pct"`  // GrossMargin / Revenue * 100
	RevenuePct  decimal.Decimal `json:"revenue_pct"` // participación % en ingresos totales
}

// ChannelMarginsDTO resumen del período con detalle por canal.
type ChannelMarginsDTO struct {
	StartDate        string               `json:"start_date"`
	EndDate          string               `json:"end_date"`
	TotalRevenue     decimal.Decimal      `json:"total_revenue"`
	TotalCOGS        decimal.Decimal      `json:"total_cogs"`
	TotalMargin      decimal.Decimal      `json:"total_margin"`
	OverallMarginPct decimal.Decimal      `json:"overall_margin_pct"`
	Channels         []MarginByChannelDTO `json:"channels"`
}

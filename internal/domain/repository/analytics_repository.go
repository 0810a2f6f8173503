package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ChannelMarginResult resultado crudo de ventas vs costo FIFO por canal.
type ChannelMarginResult struct {
	Channel    string
	OrderCount int
	UnitsSold  decimal.Decimal
	Revenue    decimal.Decimal // suma de total_price de los ítems
	COGS       decimal.Decimal // suma de total_cost (FIFO) de los ítems
}

// AnalyticsRepository consultas de solo lectura.
type AnalyticsRepository interface {
	// MarginsByChannel excluye pedidos cancelados y devueltos.
	MarginsByChannel(ctx context.Context, companyID string, from, to time.Time) ([]ChannelMarginResult, error)
}

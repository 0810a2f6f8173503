package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para rentabilidad por canal.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// MarginsByChannel agrupa ingresos y COGS FIFO por canal. El costo sale de total_cost, fijado al
// crear el pedido, no de un costo promedio del producto.
func (r *AnalyticsRepo) MarginsByChannel(ctx context.Context, companyID string, from, to time.Time) ([]repository.ChannelMarginResult, error) {
	const query = `
	SELECT
	    o.channel                          AS channel,
	    COUNT(DISTINCT o.id)               AS order_count,
	    COALESCE(SUM(i.quantity), 0)       AS units_sold,
	    COALESCE(SUM(i.total_price), 0)    AS revenue,
	    COALESCE(SUM(i.total_cost), 0)     AS cogs
	FROM sales_orders o
	JOIN sales_order_items i ON i.order_id = o.id
	WHERE o.company_id = $1
	  AND o.created_at >= $2 AND o.created_at < $3
	  AND o.status NOT IN ($4, $5)
	GROUP BY o.channel
	ORDER BY o.channel`

	rows, err := r.q.Query(ctx, query, companyID, from, to, entity.OrderCancelled, entity.OrderReturned)
	if err != nil {
		return nil, fmt.Errorf("analytics.MarginsByChannel: %w", err)
	}
	defer rows.Close()

	var results []repository.ChannelMarginResult
	for rows.Next() {
		var row repository.ChannelMarginResult
		if err := rows.Scan(&row.Channel, &row.OrderCount, &row.UnitsSold, &row.Revenue, &row.COGS); err != nil {
			return nil, fmt.Errorf("analytics.MarginsByChannel scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

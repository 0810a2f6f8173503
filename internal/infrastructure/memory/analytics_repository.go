package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregaciones sobre los pedidos en memoria.
type AnalyticsRepo struct {
	v *view
}

func (r *AnalyticsRepo) MarginsByChannel(_ context.Context, companyID string, from, to time.Time) ([]repository.ChannelMarginResult, error) {
	byChannel := map[string]*repository.ChannelMarginResult{}
	err := r.v.do(func(st *state) error {
		for _, o := range st.orders {
			if o.CompanyID != companyID || o.Status.RestoresStock() {
				continue
			}
			if o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
				continue
			}
			agg, ok := byChannel[string(o.Channel)]
			if !ok {
				agg = &repository.ChannelMarginResult{
					Channel: string(o.Channel), UnitsSold: decimal.Zero, Revenue: decimal.Zero, COGS: decimal.Zero,
				}
				byChannel[string(o.Channel)] = agg
			}
			agg.OrderCount++
			for _, it := range st.orderItems[o.ID] {
				agg.UnitsSold = agg.UnitsSold.Add(it.Quantity)
				agg.Revenue = agg.Revenue.Add(it.TotalPrice)
				agg.COGS = agg.COGS.Add(it.TotalCost)
			}
		}
		return nil
	})
	out := make([]repository.ChannelMarginResult, 0, len(byChannel))
	for _, agg := range byChannel {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Channel < out[j].Channel })
	return out, err
}


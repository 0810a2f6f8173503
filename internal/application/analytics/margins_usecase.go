// Package analytics reportes de rentabilidad a partir del costo FIFO fijado en cada línea de pedido.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

const dateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// MarginsUseCase márgenes por canal de venta.
type MarginsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewMarginsUseCase construye el caso de uso.
func NewMarginsUseCase(analyticsRepo repository.AnalyticsRepository) *MarginsUseCase {
	return &MarginsUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// MarginsByChannel ingresos vs COGS por canal en el período (pedidos cancelados y devueltos no cuentan).
func (uc *MarginsUseCase) MarginsByChannel(ctx context.Context, actor entity.Actor, req dto.MarginsReportRequest) (*dto.ChannelMarginsDTO, error) {
	start, end, err := parsePeriod(uc.now(), req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.MarginsByChannel(ctx, actor.CompanyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics: canales: %w", err)
	}

	var totalRevenue, totalCOGS decimal.Decimal
	for _, r := range rows {
		totalRevenue = totalRevenue.Add(r.Revenue)
		totalCOGS = totalCOGS.Add(r.COGS)
	}
	totalMargin := totalRevenue.Sub(totalCOGS)

	channels := make([]dto.MarginByChannelDTO, 0, len(rows))
	for _, r := range rows {
		margin := r.Revenue.Sub(r.COGS)
		channels = append(channels, dto.MarginByChannelDTO{
			Channel:     r.Channel,
			OrderCount:  r.OrderCount,
			UnitsSold:   r.UnitsSold,
			Revenue:     r.Revenue.Round(2),
			COGS:        r.COGS.Round(2),
			GrossMargin: margin.Round(2),
			MarginPct:   pct(margin, r.Revenue),
			RevenuePct:  pct(r.Revenue, totalRevenue),
		})
	}

	return &dto.ChannelMarginsDTO{
		StartDate:        start.Format(dateLayout),
		EndDate:          end.Format(dateLayout),
		TotalRevenue:     totalRevenue.Round(2),
		TotalCOGS:        totalCOGS.Round(2),
		TotalMargin:      totalMargin.Round(2),
		OverallMarginPct: pct(totalMargin, totalRevenue),
		Channels:         channels,
	}, nil
}

func pct(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

// parsePeriod por defecto desde el primer día del mes hasta hoy; end_date es inclusivo.
func parsePeriod(now time.Time, startStr, endStr string) (start, end time.Time, err error) {
	if endStr == "" {
		end = now
	} else {
		end, err = time.ParseInLocation(dateLayout, endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date inválido", domain.ErrInvalidInput)
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	} else {
		start, err = time.ParseInLocation(dateLayout, startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date inválido", domain.ErrInvalidInput)
		}
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date no puede ser posterior a end_date", domain.ErrInvalidInput)
	}
	return start, end, nil
}

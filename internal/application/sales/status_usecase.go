package sales

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/application/ports"
	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
	"github.com/jhoicas/costeo-fifo/pkg/tracing"
)

// StatusUseCase aplica la máquina de estados del pedido y sus efectos sobre stock y fidelización.
type StatusUseCase struct {
	txRunner inventory.TxRunner
	restorer *inventory.RestorationEngine
	loyalty  LoyaltyService
	courier  CourierNotifier
	locker   ports.Locker
	log      *logger.Logger
	now      func() time.Time
}

// NewStatusUseCase construye el caso de uso.
func NewStatusUseCase(
	txRunner inventory.TxRunner,
	restorer *inventory.RestorationEngine,
	loyalty LoyaltyService,
	courier CourierNotifier,
	locker ports.Locker,
	log *logger.Logger,
) *StatusUseCase {
	return &StatusUseCase{
		txRunner: txRunner,
		restorer: restorer,
		loyalty:  loyalty,
		courier:  courier,
		locker:   locker,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// UpdateStatus mueve el pedido al estado next. Desde un estado terminal devuelve ErrTerminalState;
// una transición fuera de la tabla devuelve ErrInvalidTransition. En ambos casos no se modifica nada.
func (uc *StatusUseCase) UpdateStatus(ctx context.Context, actor entity.Actor, orderID string, next entity.OrderStatus) (out *dto.OrderStatusResponse, err error) {
	ctx, span := tracing.Start(ctx, "sales.UpdateStatus",
		attribute.String("order_id", orderID),
		attribute.String("next", string(next)),
	)
	defer func() { tracing.End(span, err) }()

	if !actor.Valid() || orderID == "" || !next.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	lock, err := uc.locker.Obtain(ctx, "order:"+orderID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := lock.Release(context.WithoutCancel(ctx)); rerr != nil {
			uc.log.Warn().Err(rerr).Str("order_id", orderID).Msg("no se pudo liberar el lock del pedido")
		}
	}()

	var shipped *entity.SalesOrder
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		order, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil || order.CompanyID != actor.CompanyID {
			return domain.ErrNotFound
		}
		from := order.Status
		if from.IsTerminal() {
			return fmt.Errorf("%w: %s", domain.ErrTerminalState, from)
		}
		if !from.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, next)
		}

		out = &dto.OrderStatusResponse{OrderID: order.ID, From: string(from), To: string(next)}

		if next.RestoresStock() {
			items, err := repos.Orders.ListItems(ctx, order.ID)
			if err != nil {
				return err
			}
			for _, it := range items {
				res, err := uc.restorer.Restore(ctx, repos, inventory.RestoreInput{
					CompanyID:   order.CompanyID,
					VariantID:   it.VariantID,
					ProductID:   it.ProductID,
					WarehouseID: order.WarehouseID,
					Quantity:    it.Quantity,
					Reference:   entity.Reference{Type: entity.RefSalesOrder, ID: order.ID, LineID: it.ID},
					ActorID:     actor.UserID,
				})
				if err != nil {
					return err
				}
				if res.Skipped {
					out.SkippedLines++
				} else {
					out.RestoredLines++
				}
			}
		}

		at := uc.now()
		if err := repos.Orders.UpdateStatus(ctx, order.ID, next, at); err != nil {
			return fmt.Errorf("actualizar estado: %w", err)
		}
		order.Status = next
		order.UpdatedAt = at

		if next == entity.OrderDelivered {
			points, err := uc.loyalty.AwardPoints(ctx, repos, order)
			if err != nil {
				return err
			}
			out.LoyaltyPoints = points
		}
		if next == entity.OrderShipped {
			shipped = order
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, s := range next.AllowedNext() {
		out.AllowedNext = append(out.AllowedNext, string(s))
	}
	if out.AllowedNext == nil {
		out.AllowedNext = []string{}
	}

	if shipped != nil {
		// La venta ya está confirmada; un fallo del courier no la revierte.
		if nerr := uc.courier.NotifyShipped(ctx, shipped); nerr != nil {
			uc.log.Error().Err(nerr).Str("order_id", shipped.ID).Msg("fallo al notificar despacho")
		}
	}

	uc.log.Info().
		Str("order_id", orderID).
		Str("from", out.From).
		Str("to", out.To).
		Int("restored_lines", out.RestoredLines).
		Msg("estado de pedido actualizado")
	return out, nil
}

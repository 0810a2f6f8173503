package shipment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/application/ports"
	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	domaininv "github.com/jhoicas/costeo-fifo/internal/domain/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
	"github.com/jhoicas/costeo-fifo/pkg/tracing"
)

// FinalizeUseCase costea el embarque y abre un lote por ítem recibido.
type FinalizeUseCase struct {
	txRunner      inventory.TxRunner
	ledger        *inventory.BatchLedger
	locker        ports.Locker
	defaultMethod domaininv.AllocationMethod
	log           *logger.Logger
	now           func() time.Time
}

// NewFinalizeUseCase defaultMethod se usa cuando el request no indica método.
func NewFinalizeUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.BatchLedger,
	locker ports.Locker,
	defaultMethod string,
	log *logger.Logger,
) *FinalizeUseCase {
	m := domaininv.AllocationMethod(defaultMethod)
	if !m.IsValid() {
		m = domaininv.AllocationAuto
	}
	return &FinalizeUseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		locker:        locker,
		defaultMethod: m,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Finalize reparte los costos adicionales, fija el costo aterrizado de cada ítem, crea los lotes
// con su asiento shipment_in y deja el embarque en completed. Todo en una transacción.
func (uc *FinalizeUseCase) Finalize(ctx context.Context, actor entity.Actor, shipmentID, method string) (out *dto.ShipmentResponse, err error) {
	ctx, span := tracing.Start(ctx, "shipment.Finalize", attribute.String("shipment_id", shipmentID))
	defer func() { tracing.End(span, err) }()

	if !actor.Valid() || shipmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	m := uc.defaultMethod
	if method != "" {
		m = domaininv.AllocationMethod(method)
		if !m.IsValid() {
			return nil, fmt.Errorf("%w: método de asignación %q", domain.ErrInvalidInput, method)
		}
	}

	lock, err := uc.locker.Obtain(ctx, "shipment:"+shipmentID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := lock.Release(context.WithoutCancel(ctx)); rerr != nil {
			uc.log.Warn().Err(rerr).Str("shipment_id", shipmentID).Msg("no se pudo liberar el lock del embarque")
		}
	}()

	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		s, err := repos.Shipments.GetForUpdate(ctx, shipmentID)
		if err != nil {
			return err
		}
		if s == nil || s.CompanyID != actor.CompanyID {
			return domain.ErrNotFound
		}
		if s.Status == entity.ShipmentCompleted {
			return fmt.Errorf("%w: el embarque ya fue finalizado", domain.ErrConflict)
		}
		items, err := repos.Shipments.ListItems(ctx, s.ID)
		if err != nil {
			return err
		}
		costs, err := repos.Shipments.ListCosts(ctx, s.ID)
		if err != nil {
			return err
		}

		in := domaininv.AllocationInput{Method: m, ExchangeRate: s.ExchangeRate}
		for _, it := range items {
			in.Items = append(in.Items, domaininv.AllocationItem{
				ItemID:           it.ID,
				Quantity:         it.EffectiveReceived(),
				UnitPriceForeign: it.UnitPriceForeign,
				UnitWeight:       it.UnitWeight,
			})
		}
		for _, c := range costs {
			in.ExtraCosts = append(in.ExtraCosts, c.Amount)
		}
		alloc, err := domaininv.AllocateLandedCost(in)
		if err != nil {
			return err
		}
		landed := make(map[string]decimal.Decimal, len(alloc.Lines))
		for _, l := range alloc.Lines {
			landed[l.ItemID] = l.LandedUnitCost
		}

		now := uc.now()
		var batchIDs []string
		for _, it := range items {
			cost := landed[it.ID]
			it.LandedUnitCost = &cost
			if err := repos.Shipments.UpdateItem(ctx, it); err != nil {
				return fmt.Errorf("actualizar ítem de embarque: %w", err)
			}
			received := it.EffectiveReceived()
			if !received.IsPositive() {
				continue
			}
			batch := &entity.InventoryBatch{
				ID:              uuid.New().String(),
				CompanyID:       s.CompanyID,
				ProductID:       it.ProductID,
				VariantID:       it.VariantID,
				WarehouseID:     s.WarehouseID,
				BatchLabel:      it.BatchLabel,
				UnitCost:        cost,
				InitialQuantity: received,
				Source:          entity.BatchSourceShipment,
				SourceID:        s.ID,
				CreatedAt:       now,
			}
			if _, err := uc.ledger.Open(ctx, repos, batch, inventory.Movement{
				Type:      entity.LedgerShipmentIn,
				Reference: entity.Reference{Type: entity.RefShipment, ID: s.ID, LineID: it.ID},
				ActorID:   actor.UserID,
			}); err != nil {
				return err
			}
			batchIDs = append(batchIDs, batch.ID)
		}

		s.Status = entity.ShipmentCompleted
		s.AllocationMethod = string(alloc.Method)
		s.FinalizedAt = &now
		s.UpdatedAt = now
		if err := repos.Shipments.Update(ctx, s); err != nil {
			return fmt.Errorf("actualizar embarque: %w", err)
		}

		out = toShipmentResponse(s, items, costs)
		out.BatchIDs = batchIDs
		uc.log.Info().
			Str("shipment_id", s.ID).
			Str("method", string(alloc.Method)).
			Str("total_extra", alloc.TotalExtraCost.String()).
			Str("total_landed", alloc.TotalLanded().String()).
			Int("batches", len(batchIDs)).
			Msg("embarque finalizado")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

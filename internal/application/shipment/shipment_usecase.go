package shipment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

// ShipmentUseCase alta, recepción y consulta de embarques de importación.
type ShipmentUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ShipmentRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewShipmentUseCase repo se usa para lecturas fuera de transacción.
func NewShipmentUseCase(txRunner inventory.TxRunner, repo repository.ShipmentRepository, log *logger.Logger) *ShipmentUseCase {
	return &ShipmentUseCase{
		txRunner: txRunner,
		repo:     repo,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create registra el embarque en draft con sus ítems y costos.
func (uc *ShipmentUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	if !actor.Valid() || in.WarehouseID == "" || len(in.Items) == 0 || !in.ExchangeRate.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.ShipmentResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		wh, err := repos.Warehouses.GetByID(ctx, in.WarehouseID)
		if err != nil {
			return err
		}
		if wh == nil || wh.CompanyID != actor.CompanyID {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.WarehouseID)
		}

		now := uc.now()
		s := &entity.Shipment{
			ID:           uuid.New().String(),
			CompanyID:    actor.CompanyID,
			WarehouseID:  wh.ID,
			Reference:    in.Reference,
			Currency:     in.Currency,
			ExchangeRate: in.ExchangeRate,
			Status:       entity.ShipmentDraft,
			CreatedBy:    actor.UserID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := repos.Shipments.Create(ctx, s); err != nil {
			return fmt.Errorf("crear embarque: %w", err)
		}

		items := make([]*entity.ShipmentItem, 0, len(in.Items))
		for i, it := range in.Items {
			item, err := uc.newItem(ctx, repos, actor, s, i, it)
			if err != nil {
				return err
			}
			if err := repos.Shipments.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("crear ítem de embarque: %w", err)
			}
			items = append(items, item)
		}
		costs, err := addCosts(ctx, repos, s.ID, in.Costs)
		if err != nil {
			return err
		}
		out = toShipmentResponse(s, items, costs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("shipment_id", out.ID).Str("reference", out.Reference).Int("items", len(out.Items)).Msg("embarque creado")
	return out, nil
}

func (uc *ShipmentUseCase) newItem(ctx context.Context, repos repository.Repos, actor entity.Actor, s *entity.Shipment, idx int, it dto.CreateShipmentItemRequest) (*entity.ShipmentItem, error) {
	if !it.Quantity.IsPositive() || it.UnitPriceForeign.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	p, err := repos.Products.GetByID(ctx, it.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != actor.CompanyID {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
	}
	var variantID *string
	if it.VariantID != "" {
		v, err := repos.Products.GetVariant(ctx, it.VariantID)
		if err != nil {
			return nil, err
		}
		if v == nil || v.CompanyID != actor.CompanyID {
			return nil, fmt.Errorf("%w: variante %s", domain.ErrNotFound, it.VariantID)
		}
		if v.ProductID != p.ID {
			return nil, domain.ErrCrossProduct
		}
		id := v.ID
		variantID = &id
	}
	label := it.BatchLabel
	if label == "" {
		label = s.Reference + "-" + strconv.Itoa(idx+1)
	}
	return &entity.ShipmentItem{
		ID:               uuid.New().String(),
		ShipmentID:       s.ID,
		ProductID:        p.ID,
		VariantID:        variantID,
		BatchLabel:       label,
		Quantity:         it.Quantity,
		UnitPriceForeign: it.UnitPriceForeign,
		UnitWeight:       it.UnitWeight,
	}, nil
}

func addCosts(ctx context.Context, repos repository.Repos, shipmentID string, in []dto.ShipmentCostRequest) ([]*entity.ShipmentCost, error) {
	out := make([]*entity.ShipmentCost, 0, len(in))
	for _, c := range in {
		if c.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		cost := &entity.ShipmentCost{
			ID:          uuid.New().String(),
			ShipmentID:  shipmentID,
			Kind:        c.Kind,
			Description: c.Description,
			Amount:      c.Amount,
		}
		if err := repos.Shipments.CreateCost(ctx, cost); err != nil {
			return nil, fmt.Errorf("crear costo de embarque: %w", err)
		}
		out = append(out, cost)
	}
	return out, nil
}

// Receive registra cantidades recibidas, pesos medidos y costos locales. El embarque pasa a arrived.
// Solo se recibe una vez: un embarque arrived o completado devuelve ErrConflict sin sumar costos.
func (uc *ShipmentUseCase) Receive(ctx context.Context, actor entity.Actor, shipmentID string, in dto.ReceiveShipmentRequest) (*dto.ShipmentResponse, error) {
	if !actor.Valid() || shipmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.ShipmentResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		s, err := repos.Shipments.GetForUpdate(ctx, shipmentID)
		if err != nil {
			return err
		}
		if s == nil || s.CompanyID != actor.CompanyID {
			return domain.ErrNotFound
		}
		switch s.Status {
		case entity.ShipmentCompleted:
			return fmt.Errorf("%w: el embarque ya fue finalizado", domain.ErrConflict)
		case entity.ShipmentArrived:
			return fmt.Errorf("%w: el embarque ya fue recibido", domain.ErrConflict)
		}

		items, err := repos.Shipments.ListItems(ctx, s.ID)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.ShipmentItem, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}
		for _, r := range in.Items {
			item, ok := byID[r.ItemID]
			if !ok {
				return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, r.ItemID)
			}
			if r.ReceivedQuantity.IsNegative() {
				return domain.ErrInvalidInput
			}
			received := r.ReceivedQuantity
			item.ReceivedQuantity = &received
			if r.UnitWeight != nil {
				w := *r.UnitWeight
				item.UnitWeight = &w
			}
			if err := repos.Shipments.UpdateItem(ctx, item); err != nil {
				return fmt.Errorf("actualizar ítem de embarque: %w", err)
			}
		}
		if _, err := addCosts(ctx, repos, s.ID, in.Costs); err != nil {
			return err
		}

		now := uc.now()
		s.Status = entity.ShipmentArrived
		s.ReceivedAt = &now
		s.UpdatedAt = now
		if err := repos.Shipments.Update(ctx, s); err != nil {
			return fmt.Errorf("actualizar embarque: %w", err)
		}
		costs, err := repos.Shipments.ListCosts(ctx, s.ID)
		if err != nil {
			return err
		}
		out = toShipmentResponse(s, items, costs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("shipment_id", shipmentID).Msg("embarque recibido")
	return out, nil
}

// Get embarque con ítems y costos.
func (uc *ShipmentUseCase) Get(ctx context.Context, actor entity.Actor, shipmentID string) (*dto.ShipmentResponse, error) {
	s, err := uc.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repo.ListItems(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	costs, err := uc.repo.ListCosts(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	return toShipmentResponse(s, items, costs), nil
}

func toShipmentResponse(s *entity.Shipment, items []*entity.ShipmentItem, costs []*entity.ShipmentCost) *dto.ShipmentResponse {
	out := &dto.ShipmentResponse{
		ID:               s.ID,
		WarehouseID:      s.WarehouseID,
		Reference:        s.Reference,
		Currency:         s.Currency,
		ExchangeRate:     s.ExchangeRate,
		Status:           s.Status,
		AllocationMethod: s.AllocationMethod,
		TotalExtraCost:   decimal.Zero,
		CreatedAt:        s.CreatedAt,
		ReceivedAt:       s.ReceivedAt,
		FinalizedAt:      s.FinalizedAt,
		Items:            make([]dto.ShipmentItemResponse, 0, len(items)),
		Costs:            make([]dto.ShipmentCostResponse, 0, len(costs)),
	}
	for _, it := range items {
		r := dto.ShipmentItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			BatchLabel:       it.BatchLabel,
			Quantity:         it.Quantity,
			ReceivedQuantity: it.ReceivedQuantity,
			UnitPriceForeign: it.UnitPriceForeign,
			UnitWeight:       it.UnitWeight,
			LandedUnitCost:   it.LandedUnitCost,
		}
		if it.VariantID != nil {
			r.VariantID = *it.VariantID
		}
		out.Items = append(out.Items, r)
	}
	for _, c := range costs {
		out.TotalExtraCost = out.TotalExtraCost.Add(c.Amount)
		out.Costs = append(out.Costs, dto.ShipmentCostResponse{ID: c.ID, Kind: c.Kind, Description: c.Description, Amount: c.Amount})
	}
	return out
}

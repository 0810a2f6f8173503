package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/application/inventory"
	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
	"github.com/jhoicas/costeo-fifo/pkg/tracing"
)

// CheckoutUseCase crea el pedido, descuenta stock FIFO y fija el costo de cada línea en una sola transacción.
type CheckoutUseCase struct {
	txRunner inventory.TxRunner
	consumer *inventory.ConsumptionEngine
	pricing  PricingResolver
	loyalty  LoyaltyService
	log      *logger.Logger
	now      func() time.Time
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(
	txRunner inventory.TxRunner,
	consumer *inventory.ConsumptionEngine,
	pricing PricingResolver,
	loyalty LoyaltyService,
	log *logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner: txRunner,
		consumer: consumer,
		pricing:  pricing,
		loyalty:  loyalty,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// pricedLine línea ya resuelta, antes de tocar stock.
type pricedLine struct {
	variant    *entity.Variant
	quantity   decimal.Decimal
	unitPrice  decimal.Decimal
	taxRate    decimal.Decimal
	totalPrice decimal.Decimal
}

// Checkout ejecuta el flujo de venta. Cualquier error revierte el pedido y los descuentos de stock.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, actor entity.Actor, in dto.CheckoutRequest) (out *dto.SalesOrderResponse, err error) {
	ctx, span := tracing.Start(ctx, "sales.Checkout",
		attribute.String("channel", in.Channel),
		attribute.Int("items", len(in.Items)),
	)
	defer func() { tracing.End(span, err) }()

	if !actor.Valid() || in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	channel := entity.Channel(in.Channel)
	if channel == "" {
		channel = entity.ChannelWeb
	}
	if !channel.IsValid() {
		return nil, fmt.Errorf("%w: canal %q", domain.ErrInvalidInput, in.Channel)
	}
	if in.Discount.IsNegative() || in.PaidAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		// 1) Bodega y cliente
		wh, err := repos.Warehouses.GetByID(ctx, in.WarehouseID)
		if err != nil {
			return err
		}
		if wh == nil || wh.CompanyID != actor.CompanyID {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.WarehouseID)
		}
		var customerID *string
		if in.CustomerID != "" {
			c, err := repos.Customers.GetByID(ctx, in.CustomerID)
			if err != nil {
				return err
			}
			if c == nil || c.CompanyID != actor.CompanyID {
				return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
			}
			id := c.ID
			customerID = &id
		}

		// 2) Precios y mínimo mayorista, sin tocar stock
		lines, err := uc.priceLines(ctx, repos, actor, channel, in.Items)
		if err != nil {
			return err
		}

		// 3) Totales
		subTotal, taxTotal := decimal.Zero, decimal.Zero
		for _, l := range lines {
			subTotal = subTotal.Add(l.totalPrice)
			taxTotal = taxTotal.Add(l.totalPrice.Mul(l.taxRate))
		}
		taxTotal = taxTotal.Round(2)
		if in.Discount.GreaterThan(subTotal) {
			return fmt.Errorf("%w: el descuento %s supera el subtotal %s", domain.ErrInvalidInput, in.Discount.String(), subTotal.String())
		}
		total := subTotal.Sub(in.Discount).Add(taxTotal)
		paid := decimal.Min(in.PaidAmount, total)

		// 4) Cabecera
		now := uc.now()
		status := entity.OrderPending
		if channel.InPerson() {
			status = entity.OrderDelivered
		}
		order := &entity.SalesOrder{
			ID:             uuid.New().String(),
			CompanyID:      actor.CompanyID,
			WarehouseID:    wh.ID,
			CustomerID:     customerID,
			Channel:        channel,
			Status:         status,
			PaymentStatus:  entity.PaymentStatusFor(in.PaidAmount, total),
			SubTotal:       subTotal,
			DiscountAmount: in.Discount,
			TaxAmount:      taxTotal,
			TotalAmount:    total,
			PaidAmount:     paid,
			DueAmount:      total.Sub(paid),
			CreatedBy:      actor.UserID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repos.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("crear pedido: %w", err)
		}

		// 5) Descuento FIFO por línea
		items := make([]*entity.SalesOrderItem, 0, len(lines))
		for _, l := range lines {
			item := &entity.SalesOrderItem{
				ID:         uuid.New().String(),
				OrderID:    order.ID,
				ProductID:  l.variant.ProductID,
				VariantID:  l.variant.ID,
				Quantity:   l.quantity,
				UnitPrice:  l.unitPrice,
				TaxRate:    l.taxRate,
				TotalPrice: l.totalPrice,
			}
			res, err := uc.consumer.Consume(ctx, repos, inventory.ConsumeInput{
				CompanyID:   actor.CompanyID,
				VariantID:   l.variant.ID,
				WarehouseID: wh.ID,
				Quantity:    l.quantity,
				Reference:   entity.Reference{Type: entity.RefSalesOrder, ID: order.ID, LineID: item.ID},
				ActorID:     actor.UserID,
			})
			if err != nil {
				return err
			}
			item.TotalCost = res.CostOfGoodsSold.Round(2)
			if err := repos.Orders.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("crear línea de pedido: %w", err)
			}
			items = append(items, item)
		}

		// 6) Fidelización en entrega inmediata
		var points int64
		if order.Status == entity.OrderDelivered {
			points, err = uc.loyalty.AwardPoints(ctx, repos, order)
			if err != nil {
				return err
			}
		}

		out = toSalesOrderResponse(order, items)
		out.LoyaltyPoints = points
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", out.ID).
		Str("company_id", actor.CompanyID).
		Str("channel", out.Channel).
		Str("total", out.TotalAmount.String()).
		Str("cogs", out.TotalCost.String()).
		Msg("pedido creado")
	return out, nil
}

func (uc *CheckoutUseCase) priceLines(ctx context.Context, repos repository.Repos, actor entity.Actor, channel entity.Channel, reqItems []dto.CheckoutItemRequest) ([]pricedLine, error) {
	lines := make([]pricedLine, 0, len(reqItems))
	for _, it := range reqItems {
		if it.VariantID == "" || !it.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		v, err := repos.Products.GetVariant(ctx, it.VariantID)
		if err != nil {
			return nil, err
		}
		if v == nil || v.CompanyID != actor.CompanyID {
			return nil, fmt.Errorf("%w: variante %s", domain.ErrNotFound, it.VariantID)
		}

		price, err := uc.pricing.GetPrice(ctx, repos, v, channel)
		if err != nil {
			return nil, err
		}
		if !channel.InPerson() && it.UnitPrice != nil && it.UnitPrice.IsPositive() {
			price = *it.UnitPrice
		}

		if channel == entity.ChannelWholesale {
			moq, err := uc.pricing.MinimumOrderQty(ctx, repos, v, channel)
			if err != nil {
				return nil, err
			}
			if moq.IsPositive() && it.Quantity.LessThan(moq) {
				return nil, &domain.MOQViolationError{VariantID: v.ID, Quantity: it.Quantity, Minimum: moq}
			}
		}

		lines = append(lines, pricedLine{
			variant:    v,
			quantity:   it.Quantity,
			unitPrice:  price,
			taxRate:    v.TaxRate,
			totalPrice: it.Quantity.Mul(price),
		})
	}
	return lines, nil
}

func toSalesOrderResponse(o *entity.SalesOrder, items []*entity.SalesOrderItem) *dto.SalesOrderResponse {
	out := &dto.SalesOrderResponse{
		ID:             o.ID,
		CompanyID:      o.CompanyID,
		WarehouseID:    o.WarehouseID,
		CustomerID:     o.CustomerIDOrEmpty(),
		Channel:        string(o.Channel),
		Status:         string(o.Status),
		PaymentStatus:  string(o.PaymentStatus),
		SubTotal:       o.SubTotal,
		DiscountAmount: o.DiscountAmount,
		TaxAmount:      o.TaxAmount,
		TotalAmount:    o.TotalAmount,
		PaidAmount:     o.PaidAmount,
		DueAmount:      o.DueAmount,
		TotalCost:      decimal.Zero,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		Items:          make([]dto.SalesOrderItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.TotalCost = out.TotalCost.Add(it.TotalCost)
		out.Items = append(out.Items, dto.SalesOrderItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			VariantID:  it.VariantID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TaxRate:    it.TaxRate,
			TotalPrice: it.TotalPrice,
			TotalCost:  it.TotalCost,
		})
	}
	return out
}

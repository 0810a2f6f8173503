package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/application/sales"
	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

// SalesHandler pedidos de venta, caja POS y cambios de estado (protegido).
type SalesHandler struct {
	checkout *sales.CheckoutUseCase
	query    *sales.OrderQueryUseCase
	status   *sales.StatusUseCase
	validate *RequestValidator
	log      *logger.Logger
}

// NewSalesHandler construye el handler.
func NewSalesHandler(checkout *sales.CheckoutUseCase, query *sales.OrderQueryUseCase, status *sales.StatusUseCase, v *RequestValidator, log *logger.Logger) *SalesHandler {
	return &SalesHandler{checkout: checkout, query: query, status: status, validate: v, log: log}
}

// CreateOrder godoc
// @Summary      Crear pedido de venta
// @Description  Valora cada línea por FIFO dentro de una sola transacción. Si alguna variante no
//
//	tiene stock suficiente no se escribe nada.
//
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "bodega, cliente opcional, canal y líneas"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales-orders [post]
func (h *SalesHandler) CreateOrder(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	var in dto.CheckoutRequest
	if ok, err := h.validate.bind(c, &in); !ok {
		return err
	}
	if entity.Channel(in.Channel) == entity.ChannelPOS {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "las ventas de mostrador van por /api/pos/checkout"})
	}
	out, err := h.checkout.Checkout(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusCreated, "pedido creado", out)
}

// POSCheckout godoc
// @Summary      Venta de mostrador
// @Description  Canal pos: el pedido queda entregado y se otorgan puntos de fidelización.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "bodega y líneas; el canal se ignora"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pos/checkout [post]
func (h *SalesHandler) POSCheckout(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	var in dto.CheckoutRequest
	if ok, err := h.validate.bind(c, &in); !ok {
		return err
	}
	in.Channel = string(entity.ChannelPOS)
	out, err := h.checkout.Checkout(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusCreated, "venta registrada", out)
}

// GetOrder godoc
// @Summary      Obtener pedido
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id} [get]
func (h *SalesHandler) GetOrder(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	out, err := h.query.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "", out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  cancelled y returned devuelven el stock a los lotes; una línea ya restaurada no se repite.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.OrderStatusResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *SalesHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	var in dto.UpdateOrderStatusRequest
	if ok, err := h.validate.bind(c, &in); !ok {
		return err
	}
	out, err := h.status.UpdateStatus(c.UserContext(), actor, c.Params("id"), entity.OrderStatus(in.Status))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "estado actualizado", out)
}

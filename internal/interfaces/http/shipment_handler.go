package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/application/shipment"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

// ShipmentHandler embarques de importación: registro, recepción y cierre con costo aterrizado.
type ShipmentHandler struct {
	shipments *shipment.ShipmentUseCase
	finalizer *shipment.FinalizeUseCase
	validate  *RequestValidator
	log       *logger.Logger
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(shipments *shipment.ShipmentUseCase, finalizer *shipment.FinalizeUseCase, v *RequestValidator, log *logger.Logger) *ShipmentHandler {
	return &ShipmentHandler{shipments: shipments, finalizer: finalizer, validate: v, log: log}
}

// Create godoc
// @Summary      Registrar embarque
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "bodega, moneda, tasa, ítems y costos"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	var in dto.CreateShipmentRequest
	if ok, err := h.validate.bind(c, &in); !ok {
		return err
	}
	out, err := h.shipments.Create(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusCreated, "embarque registrado", out)
}

// GetByID godoc
// @Summary      Obtener embarque
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del embarque"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	out, err := h.shipments.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "", out)
}

// Receive godoc
// @Summary      Recibir embarque
// @Description  Registra cantidades recibidas, pesos medidos y costos adicionales.
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del embarque"
// @Param        body  body  dto.ReceiveShipmentRequest  true  "cantidades y costos"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/receive [post]
func (h *ShipmentHandler) Receive(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	var in dto.ReceiveShipmentRequest
	if ok, err := h.validate.bind(c, &in); !ok {
		return err
	}
	out, err := h.shipments.Receive(c.UserContext(), actor, c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "embarque recibido", out)
}

// Finalize godoc
// @Summary      Cerrar embarque
// @Description  Asigna los costos adicionales, fija el costo aterrizado y abre un lote por ítem recibido.
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true   "ID del embarque"
// @Param        body  body  dto.FinalizeShipmentRequest  false  "método de asignación"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/finalize [post]
func (h *ShipmentHandler) Finalize(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	var in dto.FinalizeShipmentRequest
	if len(c.Body()) > 0 {
		if ok, err := h.validate.bind(c, &in); !ok {
			return err
		}
	}
	out, err := h.finalizer.Finalize(c.UserContext(), actor, c.Params("id"), in.AllocationMethod)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "embarque cerrado", out)
}

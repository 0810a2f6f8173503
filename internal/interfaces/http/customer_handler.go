package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/application/usecase"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

// CustomerHandler clientes de la empresa; los puntos de fidelización arrancan en cero.
type CustomerHandler struct {
	uc       *usecase.CustomerUseCase
	validate *RequestValidator
	log      *logger.Logger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, v *RequestValidator, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, validate: v, log: log}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "nombre, email y teléfono"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	var in dto.CreateCustomerRequest
	if ok, err := h.validate.bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusCreated, "cliente creado", out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "", out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "default 20, max 100"
// @Param        offset  query  int  false  "default 0"
// @Success      200  {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	page, ok := h.validate.page(c)
	if !ok {
		return invalidPage(c)
	}
	out, err := h.uc.List(c.UserContext(), actor, page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "", out)
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// errorTable orden relevante: los errores tipados se comparan por su sentinel vía Is.
var errorTable = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrConcurrentRequest, fiber.StatusConflict, "CONCURRENT_REQUEST"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInsufficientStock, fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
	{domain.ErrMOQViolation, fiber.StatusUnprocessableEntity, "MOQ_VIOLATION"},
	{domain.ErrNonAllocatable, fiber.StatusUnprocessableEntity, "NON_ALLOCATABLE"},
	{domain.ErrTerminalState, fiber.StatusUnprocessableEntity, "TERMINAL_STATE"},
	{domain.ErrInvalidTransition, fiber.StatusUnprocessableEntity, "INVALID_TRANSITION"},
	{domain.ErrCrossProduct, fiber.StatusUnprocessableEntity, "CROSS_PRODUCT"},
	{domain.ErrAlreadySorted, fiber.StatusUnprocessableEntity, "ALREADY_SORTED"},
	{domain.ErrBatchOverDeplete, fiber.StatusUnprocessableEntity, "BATCH_OVER_DEPLETE"},
	{domain.ErrBatchOverCredit, fiber.StatusUnprocessableEntity, "BATCH_OVER_CREDIT"},
}

// respondError traduce errores de dominio a status y código. Lo no mapeado es 500 y se registra.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	logger.FromContext(c.UserContext(), log).Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func respondOK(c *fiber.Ctx, status int, msg string, data any) error {
	return c.Status(status).JSON(dto.Envelope{Success: true, Message: msg, Data: data})
}

func invalidToken(c *fiber.Ctx) error {
	return unauthorized(c, "UNAUTHORIZED", "token inválido")
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

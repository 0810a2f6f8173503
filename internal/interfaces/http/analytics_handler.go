package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/costeo-fifo/internal/application/analytics"
	"github.com/jhoicas/costeo-fifo/internal/application/dto"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

// AnalyticsHandler rentabilidad por canal a partir del costo FIFO de cada línea.
type AnalyticsHandler struct {
	uc  *analytics.MarginsUseCase
	log *logger.Logger
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.MarginsUseCase, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, log: log}
}

// GetMargins godoc
// @Summary      Márgenes por canal
// @Description  Ingresos, costo FIFO y margen bruto por canal. Excluye pedidos cancelados y devueltos.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin del período, inclusive (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.ChannelMarginsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/margins [get]
func (h *AnalyticsHandler) GetMargins(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return invalidToken(c)
	}
	var req dto.MarginsReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	report, err := h.uc.MarginsByChannel(c.UserContext(), actor, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusOK, "", report)
}

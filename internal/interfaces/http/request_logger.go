package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger asigna un request_id (o respeta el recibido), deja un logger con ese campo en el
// contexto de la petición y registra método, ruta, status y latencia al terminar.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		scoped := log.WithField("request_id", id)
		c.SetUserContext(scoped.WithContext(c.UserContext()))

		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := scoped.Info()
		if status >= fiber.StatusInternalServerError {
			ev = scoped.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("company_id", GetCompanyID(c)).
			Msg("http")
		return err
	}
}

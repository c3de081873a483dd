package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestLogger registra cada petición HTTP con el logger de la aplicación.
// Loguea método, ruta, estado y duración; los errores se propagan al
// ErrorHandler de Fiber después de registrarse.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		evt := log.Info()
		if err != nil || c.Response().StatusCode() >= fiber.StatusInternalServerError {
			evt = log.Error().Err(err)
		}
		evt.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("petición HTTP")

		return err
	}
}

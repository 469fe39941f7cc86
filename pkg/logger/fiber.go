package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// FiberMiddleware registra cada petición HTTP con método, ruta, estado y latencia.
func FiberMiddleware(l *Logger) fiber.Handler {
	access := l.ForComponent("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		evt := access.Info()
		if status >= fiber.StatusInternalServerError {
			evt = access.Error()
		} else if status >= fiber.StatusBadRequest {
			evt = access.Warn()
		}
		evt.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")

		return err
	}
}

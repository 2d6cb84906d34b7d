package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cosmic-portals/portals-api/pkg/metrics"
)

// MetricsMiddleware instrumenta cada petición: contador por método/ruta/status
// e histograma de duración. Usa la plantilla de ruta (c.Route().Path) para no
// explotar la cardinalidad con IDs.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

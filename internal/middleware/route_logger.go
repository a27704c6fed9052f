package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// RouteLogger writes one completion line per request: method, path, status,
// duration and the trace ID from Tracing. Generation endpoints are slow
// relative to the rest of the API, so the duration is the field to watch.
func RouteLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		evt := log.Info()
		status := c.Response().StatusCode()
		if status >= 500 {
			evt = log.Error()
		}
		evt.
			Str("trace_id", GetTraceID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("ms", time.Since(start).Milliseconds()).
			Msg("request completed")
		return err
	}
}

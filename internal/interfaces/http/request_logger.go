package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/epi-control/pkg/logger"
)

const unknownDevice = "unknown"

// RequestLogger registra cada requisição com request id, método, rota, status e latência.
// Erros internos capturados por writeError saem em nível Error com a causa.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		ev := log.Info()
		if cause, ok := c.Locals(localError).(error); ok {
			ev = log.Error().Err(cause)
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		rid, _ := c.Locals("requestid").(string)
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("requisição")
		return nil
	}
}

// requestDevice identifica o dispositivo da assinatura pelo User-Agent.
func requestDevice(c *fiber.Ctx) string {
	if ua := c.Get(fiber.HeaderUserAgent); ua != "" {
		return ua
	}
	return unknownDevice
}

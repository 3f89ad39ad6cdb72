package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Health Check Handlers
// ============================================================

// Pinger проверяет зависимость, без которой шлюз не готов.
type Pinger interface {
	Ping(path string) error
}

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe готов, когда upstream отвечает на свою readiness-пробу.
func ReadinessProbe(upstream Pinger, logger *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := upstream.Ping("/health/ready"); err != nil {
			logger.Warn("[GATEWAY] upstream not ready", zap.Error(err))
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not ready",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	}
}

// StartupProbe проверяет, что приложение успешно запустилось
func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}

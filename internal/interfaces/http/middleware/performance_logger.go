package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

var monitoredRoutes = []string{
	"/api/demands",
	"/api/timeline",
	"/api/export",
}

// PerformanceLogger mede o tempo de resposta das rotas de demandas.
func PerformanceLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// fiber reaproveita os buffers da requisição; o logger pode reter a entrada
		path := utils.CopyString(c.Path())

		shouldMonitor := false
		for _, route := range monitoredRoutes {
			if strings.HasPrefix(path, route) {
				shouldMonitor = true
				break
			}
		}
		if !shouldMonitor {
			return c.Next()
		}

		start := time.Now()

		// o erro é tratado aqui para que o status registrado seja o da resposta
		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		zap.L().Info("⏱️ [PERFORMANCE]",
			zap.String("method", c.Method()),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("query", utils.CopyString(string(c.Request().URI().QueryString()))),
			zap.Any("request_id", c.Locals("requestid")),
		)
		return nil
	}
}

package routes

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/kruetzmann2110/demandas/internal/interfaces/http/handlers"
	"github.com/kruetzmann2110/demandas/internal/interfaces/http/middleware"
)

// NewApp monta a aplicação fiber completa: configuração, middlewares e rotas.
func NewApp(h *handlers.Handlers, allowOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Sistema de Demandas",
		ErrorHandler: handlers.ErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		// Desabilitado modo Prefork: o processo guarda estado (pool, arquivo de usuários)
		Prefork:      false,
		BodyLimit:    10 * 1024 * 1024, // 10MB
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	middleware.SetupMiddlewares(app, allowOrigins)
	SetupRoutes(app, h)
	return app
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func SetupMiddlewares(app *fiber.App, allowOrigins string) {
	// panics viram 500 no envelope padrão via ErrorHandler
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// CORS configuration
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Forwarded-User, X-MS-CLIENT-PRINCIPAL-NAME",
		MaxAge:       300, // 5 minutes
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// ETag para a listagem e os catálogos, que mudam pouco
	app.Use(etag.New())

	app.Use(PerformanceLogger())
}

// RouteGroups define os grupos de rotas da API
type RouteGroups struct {
	Public fiber.Router
	API    fiber.Router
}

func SetupRouteGroups(app *fiber.App) RouteGroups {
	return RouteGroups{
		Public: app.Group("/"),
		API:    app.Group("/api"),
	}
}

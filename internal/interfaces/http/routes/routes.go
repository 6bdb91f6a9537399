package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kruetzmann2110/demandas/internal/interfaces/http/handlers"
	"github.com/kruetzmann2110/demandas/internal/interfaces/http/middleware"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers) {
	groups := middleware.SetupRouteGroups(app)

	// Health check
	groups.Public.Get("/health", handlers.Health)

	setupDemandRoutes(groups.API, h.Demand, h.Timeline)

	// Timeline legada (sem envelope)
	groups.API.Get("/timeline", h.Timeline.GetLegacyTimeline)
	groups.API.Post("/timeline", h.Timeline.AddLegacyTimelineEntry)

	// Usuários e permissões
	groups.API.Get("/current-user", h.User.GetCurrentUser)
	groups.API.Get("/users", h.User.GetUsers)
	groups.API.Get("/users/:username/permissions", h.User.GetPermissions)

	// Catálogos
	groups.API.Get("/temas", h.Catalog.GetTemas)
	groups.API.Get("/temas/:tema", h.Catalog.GetTema)
	groups.API.Get("/status-values", h.Catalog.GetStatusValues)

	groups.API.Get("/export", h.Demand.Export)
}

func setupDemandRoutes(api fiber.Router, demand *handlers.DemandHandler, timeline *handlers.TimelineHandler) {
	demands := api.Group("/demands")
	demands.Get("/", demand.GetDemands)
	demands.Post("/", demand.CreateDemand)
	demands.Put("/:id", demand.UpdateDemand)
	demands.Patch("/:id/update-field", demand.UpdateField)
	demands.Patch("/:id/timeline-edit", demand.TimelineEdit)
	demands.Get("/:id/timeline", timeline.GetTimeline)
	demands.Post("/:id/timeline", timeline.AddTimelineEntry)
}

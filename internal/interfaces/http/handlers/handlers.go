package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kruetzmann2110/demandas/internal/application/usecases"
	"github.com/kruetzmann2110/demandas/internal/utils"
)

// Handlers agrupa os handlers da API para o registro de rotas.
type Handlers struct {
	Demand   *DemandHandler
	Timeline *TimelineHandler
	User     *UserHandler
	Catalog  *CatalogHandler
}

// NewHandlers recebe o USERNAME do processo, lido uma vez na inicialização.
func NewHandlers(useCases *usecases.UseCases, environmentUser string) *Handlers {
	return &Handlers{
		Demand:   NewDemandHandler(useCases.Demand),
		Timeline: NewTimelineHandler(useCases.Timeline, environmentUser),
		User:     NewUserHandler(useCases.User, environmentUser),
		Catalog:  NewCatalogHandler(useCases.Catalog),
	}
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"status":    "OK",
		"message":   "Sistema de Demandas funcionando",
		"timestamp": utils.NowSaoPaulo(),
	})
}

package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/kruetzmann2110/demandas/internal/application/usecases"
)

// CatalogHandler serve as tabelas de apoio: temas e valores de status.
type CatalogHandler struct {
	catalogUseCase usecases.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase usecases.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{catalogUseCase: catalogUseCase}
}

func (h *CatalogHandler) GetTemas(c *fiber.Ctx) error {
	temas, err := h.catalogUseCase.ListTemas(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    temas,
	})
}

// GetTema responde 200 com success:false quando o tema não existe.
func (h *CatalogHandler) GetTema(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("tema"))
	if err != nil {
		name = c.Params("tema")
	}

	tema, err := h.catalogUseCase.FindTema(c.UserContext(), name)
	if err != nil {
		return err
	}
	if tema == nil {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "Tema não encontrado",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    tema,
	})
}

func (h *CatalogHandler) GetStatusValues(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.catalogUseCase.StatusValues(c.UserContext()),
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kruetzmann2110/demandas/internal/application/usecases"
)

type DemandHandler struct {
	demandUseCase usecases.DemandUseCase
}

func NewDemandHandler(demandUseCase usecases.DemandUseCase) *DemandHandler {
	return &DemandHandler{demandUseCase: demandUseCase}
}

func (h *DemandHandler) GetDemands(c *fiber.Ctx) error {
	demands, err := h.demandUseCase.ListWithTimeline(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    demands,
	})
}

func (h *DemandHandler) CreateDemand(c *fiber.Ctx) error {
	body, err := decodeBody(c)
	if err != nil {
		return err
	}

	id, err := h.demandUseCase.Create(c.UserContext(), body)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"id": id},
		"message": "Demanda criada com sucesso",
	})
}

func (h *DemandHandler) UpdateDemand(c *fiber.Ctx) error {
	id, err := demandID(c, "id")
	if err != nil {
		return err
	}
	body, err := decodeBody(c)
	if err != nil {
		return err
	}

	if err := h.demandUseCase.Update(c.UserContext(), id, body); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Demanda atualizada com sucesso",
	})
}

func (h *DemandHandler) UpdateField(c *fiber.Ctx) error {
	id, err := demandID(c, "id")
	if err != nil {
		return err
	}
	body, err := decodeBody(c)
	if err != nil {
		return err
	}

	if err := h.demandUseCase.UpdateField(c.UserContext(), id, body); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Campo atualizado com sucesso",
	})
}

func (h *DemandHandler) TimelineEdit(c *fiber.Ctx) error {
	id, err := demandID(c, "id")
	if err != nil {
		return err
	}
	body, err := decodeBody(c)
	if err != nil {
		return err
	}

	fields, err := h.demandUseCase.TimelineEdit(c.UserContext(), id, body)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"message":        "Campos atualizados com sucesso",
		"updated_fields": fields,
	})
}

func (h *DemandHandler) Export(c *fiber.Ctx) error {
	demands, err := h.demandUseCase.Export(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    demands,
		"message": "Dados de exportação carregados com sucesso",
	})
}

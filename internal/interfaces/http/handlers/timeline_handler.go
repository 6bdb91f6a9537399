package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/kruetzmann2110/demandas/internal/application/usecases"
)

type TimelineHandler struct {
	timelineUseCase usecases.TimelineUseCase
	environmentUser string
}

func NewTimelineHandler(timelineUseCase usecases.TimelineUseCase, environmentUser string) *TimelineHandler {
	return &TimelineHandler{timelineUseCase: timelineUseCase, environmentUser: environmentUser}
}

func (h *TimelineHandler) GetTimeline(c *fiber.Ctx) error {
	id, err := demandID(c, "id")
	if err != nil {
		return err
	}

	rows, err := h.timelineUseCase.ListByDemand(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rows,
	})
}

func (h *TimelineHandler) AddTimelineEntry(c *fiber.Ctx) error {
	id, err := demandID(c, "id")
	if err != nil {
		return err
	}
	body, err := decodeBody(c)
	if err != nil {
		return err
	}

	entry, err := h.timelineUseCase.Append(c.UserContext(), id, body, identityFrom(c, h.environmentUser))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"id": entry.ID},
		"message": "Entrada adicionada à timeline com sucesso",
	})
}

// GetLegacyTimeline responde com o array puro, sem envelope.
func (h *TimelineHandler) GetLegacyTimeline(c *fiber.Ctx) error {
	raw := c.Query("demand_id")
	if raw == "" {
		return fiber.NewError(fiber.StatusBadRequest, "demand_id é obrigatório")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return errInvalidDemandID
	}

	entries, err := h.timelineUseCase.ListLegacy(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

// AddLegacyTimelineEntry responde 201 com a linha criada, sem envelope.
func (h *TimelineHandler) AddLegacyTimelineEntry(c *fiber.Ctx) error {
	body, err := decodeBody(c)
	if err != nil {
		return err
	}

	entry, err := h.timelineUseCase.AppendLegacy(c.UserContext(), body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func identityFrom(c *fiber.Ctx, environmentUser string) usecases.Identity {
	return usecases.Identity{
		ForwardedUser:   utils.CopyString(c.Get("X-Forwarded-User")),
		ClientPrincipal: utils.CopyString(c.Get("X-MS-CLIENT-PRINCIPAL-NAME")),
		EnvironmentUser: environmentUser,
	}
}

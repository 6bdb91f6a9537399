package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kruetzmann2110/demandas/internal/application/usecases"
)

type UserHandler struct {
	userUseCase     usecases.UserUseCase
	environmentUser string
}

func NewUserHandler(userUseCase usecases.UserUseCase, environmentUser string) *UserHandler {
	return &UserHandler{userUseCase: userUseCase, environmentUser: environmentUser}
}

func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userUseCase.List(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
	})
}

// GetCurrentUser sempre responde 200: a cadeia de fallbacks termina num usuário padrão.
func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	current := h.userUseCase.CurrentUser(c.UserContext(), identityFrom(c, h.environmentUser))

	return c.JSON(fiber.Map{
		"success": true,
		"user":    current.User,
		"role":    current.Role,
		"source":  current.Source,
		"message": current.Message,
		"data":    current,
	})
}

// GetPermissions nunca devolve erro; falhas resultam nas permissões de colaborador.
func (h *UserHandler) GetPermissions(c *fiber.Ctx) error {
	permissions := h.userUseCase.Permissions(c.UserContext(), c.Params("username"))

	return c.JSON(fiber.Map{
		"success": true,
		"data":    permissions,
	})
}

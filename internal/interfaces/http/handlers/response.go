package handlers

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kruetzmann2110/demandas/internal/application/usecases"
)

var errInvalidDemandID = fiber.NewError(fiber.StatusBadRequest, "ID da demanda inválido")

// decodeBody lê o corpo como objeto JSON preservando números (json.Number),
// para que a conversão por tipo de coluna aconteça no caso de uso.
func decodeBody(c *fiber.Ctx) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	raw := c.Body()
	if len(bytes.TrimSpace(raw)) == 0 {
		return body, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "JSON inválido no corpo da requisição")
	}
	if body == nil {
		body = map[string]interface{}{}
	}
	return body, nil
}

func demandID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidDemandID
	}
	return id, nil
}

// ErrorHandler é o handler de erros do fiber: todo erro sai no envelope
// {success:false, error}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validation *usecases.ValidationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validation):
		resp := fiber.Map{"success": false, "error": validation.Message}
		if len(validation.Fields) > 0 {
			resp["fields"] = validation.Fields
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)

	case errors.Is(err, usecases.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})

	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"error":   fiberErr.Message,
		})
	}

	zap.L().Error("❌ Erro na requisição",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Any("request_id", c.Locals("requestid")),
		zap.Error(err))

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

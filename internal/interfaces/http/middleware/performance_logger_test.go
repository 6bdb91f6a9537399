package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPerformanceLoggerMonitoredRoutes(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	app := fiber.New()
	app.Use(PerformanceLogger())
	app.Get("/api/demands", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/api/export", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "x") })

	for _, path := range []string{"/api/demands?x=1", "/health", "/api/export"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	entries := logs.All()
	require.Len(t, entries, 2, "/health não é monitorada")

	first := entries[0].ContextMap()
	assert.Equal(t, "/api/demands", first["path"])
	assert.Equal(t, "x=1", first["query"])
	assert.EqualValues(t, http.StatusOK, first["status"])

	second := entries[1].ContextMap()
	assert.Equal(t, "/api/export", second["path"])
	assert.Equal(t, "", second["query"])
	assert.EqualValues(t, http.StatusTeapot, second["status"])
}

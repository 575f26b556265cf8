package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetlab/internal/domain"
)

func TestMount_DelegatesToModule(t *testing.T) {
	var seen []string
	module := ModuleFunc(func(r fiber.Router) {
		r.Post("/login", func(c *fiber.Ctx) error {
			seen = append(seen, c.Path())
			return c.SendString("login")
		})
		r.Get("/check", func(c *fiber.Ctx) error {
			seen = append(seen, c.Path())
			return c.SendString("check")
		})
	})

	app := fiber.New()
	Mount(app, module)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/auth/check", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "routes live only under the prefix")

	assert.Equal(t, []string{"/api/v1/auth/login", "/api/v1/auth/check"}, seen)
}

func TestMount_GroupHandlersRunFirst(t *testing.T) {
	app := fiber.New()
	guard := func(c *fiber.Ctx) error {
		c.Set("X-Guarded", "yes")
		return c.Next()
	}
	Mount(app, ModuleFunc(func(r fiber.Router) {
		r.Get("/me", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	}), guard)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "yes", resp.Header.Get("X-Guarded"))
}

func TestMount_NilModuleIsUnavailable(t *testing.T) {
	var got error
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			got = err
			return c.SendStatus(fiber.StatusNotImplemented)
		},
	})
	Mount(app, nil)

	for _, path := range []string{"/api/v1/auth/register", "/api/v1/auth/logout"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotImplemented, resp.StatusCode)
		assert.ErrorIs(t, got, domain.ErrAuthUnavailable)
	}
}

package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/xid"

	"leetlab/internal/config"
	"leetlab/internal/infra/logging"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Register attaches the global middleware chain to the app. ready may be nil,
// in which case readiness always succeeds.
func Register(app *fiber.App, cfg config.Config, ready Pinger) {
	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return xid.New().String()
		},
	}))

	app.Use(AccessLog())

	app.Use(newCORS(cfg.CORS.AllowOrigins))

	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			if ready == nil {
				return true
			}
			ctx, cancel := context.WithTimeout(c.Context(), time.Second)
			defer cancel()
			if err := ready.Ping(ctx); err != nil {
				logging.Warn("Readiness probe failed", "error", err)
				return false
			}
			return true
		},
	}))

	if cfg.Cookies.Secret != "" {
		app.Use(EncryptCookies(cfg.Cookies.Secret))
	}
	app.Use(ParseCookies())
	app.Use(ParseJSON(cfg.Server.JSONBodyLimit))
}

func newCORS(origins []string) fiber.Handler {
	if len(origins) == 0 {
		return cors.New()
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowCredentials: true,
	})
}

// AccessLog writes one log line per request. Errors from the chain are
// rendered through the app's error handler first so the logged status is final.
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		logging.Info("Request handled",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"latency_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}
}

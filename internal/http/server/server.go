package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	memoryStorage "github.com/gofiber/storage/memory/v2"

	"leetlab/internal/auth"
	"leetlab/internal/config"
	"leetlab/internal/domain"
	"leetlab/internal/http/handlers"
	"leetlab/internal/http/middleware"
	"leetlab/internal/infra/logging"
)

// Store is the shared limiter storage, also probed for readiness.
type Store interface {
	fiber.Storage
	middleware.Pinger
}

// Deps bundles what the HTTP app needs.
type Deps struct {
	Config config.Config
	Store  Store
	// Auth is the authentication route module; nil mounts auth.Unavailable.
	Auth auth.Module
}

// New creates and configures the Fiber app.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:               d.Config.Server.Prefork,
		BodyLimit:             bodyLimit(d.Config.Server.JSONBodyLimit),
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code, msg := middleware.StatusFor(err)
			if code >= fiber.StatusInternalServerError {
				logging.Error("Request failed", "path", c.Path(), "status", code, "error", err)
			} else {
				logging.Warn("Request failed", "path", c.Path(), "status", code, "message", msg)
			}
			return middleware.WriteError(c, code, msg)
		},
	})

	storage, ready := limiterStorage(d.Store)

	middleware.Register(app, d.Config, ready)
	RegisterRoutes(app, d, storage)

	// Ensure all responses, including 404s, return JSON
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})

	return app
}

// limiterStorage returns the shared store and its readiness probe. The memory
// fallback is only built when no store is supplied.
func limiterStorage(store Store) (fiber.Storage, middleware.Pinger) {
	if store == nil {
		return memoryStorage.New(), nil
	}
	return store, store
}

// bodyLimit keeps fasthttp's request cap well above the JSON limit so that
// oversize JSON bodies reach ParseJSON and get the JSON envelope.
func bodyLimit(jsonLimit int) int {
	if 2*jsonLimit > fiber.DefaultBodyLimit {
		return 2 * jsonLimit
	}
	return fiber.DefaultBodyLimit
}

// RegisterRoutes mounts the root greeting, the auth group and the ops routes.
func RegisterRoutes(app *fiber.App, d Deps, storage fiber.Storage) {
	app.Get("/", handlers.Home)

	auth.Mount(app, d.Auth, middleware.ClientRateLimit(middleware.RateLimitConfig{
		Limit:    d.Config.RateLimit.AuthLimit,
		Interval: d.Config.RateLimit.Interval,
	}, storage))
	logging.Debug("Auth routes mounted", "prefix", domain.AuthPrefix, "rate_limit", d.Config.RateLimit.AuthLimit)

	if d.Config.Server.EnableMonitor {
		app.Get("/ops/monitor", monitor.New())
	}
}

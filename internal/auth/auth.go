// Package auth defines the mount point of the authentication route module.
// The module itself is an external collaborator; this package only fixes where
// it lives and the contract it implements.
package auth

import (
	"github.com/gofiber/fiber/v2"

	"leetlab/internal/domain"
)

// Module registers the authentication endpoints onto the router it is given.
// Paths are relative to domain.AuthPrefix.
type Module interface {
	Register(router fiber.Router)
}

// ModuleFunc adapts a plain function to Module.
type ModuleFunc func(router fiber.Router)

// Register calls f(router).
func (f ModuleFunc) Register(router fiber.Router) { f(router) }

// Mount creates the auth group, applies the group-scoped handlers in order and
// hands the group to m. A nil m mounts Unavailable.
func Mount(app *fiber.App, m Module, handlers ...fiber.Handler) fiber.Router {
	if m == nil {
		m = Unavailable{}
	}
	group := app.Group(domain.AuthPrefix, handlers...)
	m.Register(group)
	return group
}

// Unavailable answers every request under the prefix with 501.
type Unavailable struct{}

// Register installs the catch-all handler.
func (Unavailable) Register(router fiber.Router) {
	router.All("/*", func(c *fiber.Ctx) error {
		return domain.ErrAuthUnavailable
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"leetlab/internal/domain"
)

// Home serves the static greeting on the root route.
func Home(c *fiber.Ctx) error {
	return c.SendString(domain.Greeting)
}

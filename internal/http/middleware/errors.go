package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"leetlab/internal/domain"
)

// StatusFor maps an error returned by a handler to an HTTP status and a
// client-safe message.
func StatusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, domain.ErrMalformedJSON):
		return fiber.StatusBadRequest, domain.ErrMalformedJSON.Error()
	case errors.Is(err, domain.ErrJSONBodyTooLarge):
		return fiber.StatusRequestEntityTooLarge, domain.ErrJSONBodyTooLarge.Error()
	case errors.Is(err, domain.ErrAuthUnavailable):
		return fiber.StatusNotImplemented, domain.ErrAuthUnavailable.Error()
	default:
		return fiber.StatusInternalServerError, "Internal Server Error"
	}
}

// WriteError renders the JSON error envelope.
func WriteError(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": msg,
		},
	})
}

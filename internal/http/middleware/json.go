package middleware

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"leetlab/internal/domain"
)

const jsonBodyKey = "json_body"

// ParseJSON decodes JSON request bodies and stores the result for downstream
// handlers. Only objects and arrays are accepted at the top level.
func ParseJSON(limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := c.Body()
		if len(body) == 0 || !c.Is("json") {
			return c.Next()
		}
		if len(body) > limit {
			return fmt.Errorf("%w: %d bytes exceeds %d", domain.ErrJSONBodyTooLarge, len(body), limit)
		}

		trimmed := bytes.TrimLeft(body, " \t\r\n")
		if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
			return fmt.Errorf("%w: top-level value must be an object or array", domain.ErrMalformedJSON)
		}

		var v any
		if err := c.App().Config().JSONDecoder(body, &v); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
		}
		c.Locals(jsonBodyKey, v)
		return c.Next()
	}
}

// JSONBody returns the decoded request body, if one was parsed.
func JSONBody(c *fiber.Ctx) (any, bool) {
	v := c.Locals(jsonBodyKey)
	if v == nil {
		return nil, false
	}
	return v, true
}

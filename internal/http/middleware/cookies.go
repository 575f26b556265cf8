package middleware

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
)

const cookiesKey = "cookies"

// EncryptCookies decrypts incoming cookie values and encrypts outgoing ones
// with the given base64 AES key. Values that fail to decrypt become empty.
func EncryptCookies(secret string) fiber.Handler {
	return encryptcookie.New(encryptcookie.Config{Key: secret})
}

// ParseCookies collects the request cookies into a name to value map.
// Percent-encoded values are decoded; for repeated names the first one wins.
func ParseCookies() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookies := make(map[string]string)
		c.Request().Header.VisitAllCookie(func(k, v []byte) {
			name := string(k)
			if _, seen := cookies[name]; seen {
				return
			}
			val := string(v)
			if dec, err := url.PathUnescape(val); err == nil {
				val = dec
			}
			cookies[name] = val
		})
		c.Locals(cookiesKey, cookies)
		return c.Next()
	}
}

// Cookies returns the cookies parsed for this request. The map is empty, not
// nil, when ParseCookies did not run or the request carried none.
func Cookies(c *fiber.Ctx) map[string]string {
	if m, ok := c.Locals(cookiesKey).(map[string]string); ok {
		return m
	}
	return map[string]string{}
}

package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"leetlab/internal/infra/logging"
)

// RateLimitConfig holds the per-client limit applied to the auth group.
type RateLimitConfig struct {
	Limit    int
	Interval time.Duration
}

// ClientRateLimit limits requests per client (IP + User-Agent) using a
// sliding window. A limit of zero disables it.
func ClientRateLimit(cfg RateLimitConfig, store fiber.Storage) fiber.Handler {
	if cfg.Limit <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	return limiter.New(limiter.Config{
		Max:               cfg.Limit,
		Expiration:        cfg.Interval,
		LimiterMiddleware: limiter.SlidingWindow{},
		Storage:           store,
		KeyGenerator:      clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			logging.Warn("Rate limit exceeded", "client", clientKey(c), "path", c.Path())
			return WriteError(c, fiber.StatusTooManyRequests, "Too Many Requests")
		},
	})
}

func clientKey(c *fiber.Ctx) string {
	sum := sha256.Sum256([]byte(c.IP() + c.Get(fiber.HeaderUserAgent)))
	return hex.EncodeToString(sum[:])
}

package ratelimit

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	memoryStorage "github.com/gofiber/storage/memory/v2"
	redisStorage "github.com/gofiber/storage/redis/v2"
	"github.com/redis/go-redis/v9"

	"leetlab/internal/infra/logging"
)

// RedisConfig selects the Redis instance backing the limiter. An empty Addr
// keeps counters in process memory.
type RedisConfig struct {
	Addr string
	DB   int
}

// Store is the fiber.Storage used by the rate limiters.
type Store struct {
	fiber.Storage
	conn redis.UniversalClient
}

// NewStore returns a Redis-backed store when Redis is configured and
// reachable, and an in-memory store otherwise. It never returns nil.
func NewStore(cfg RedisConfig) *Store {
	if cfg.Addr == "" {
		return &Store{Storage: memoryStorage.New()}
	}

	s, err := newRedisStore(cfg)
	if err != nil {
		logging.Error("Redis limiter store init failed, falling back to memory", "addr", cfg.Addr, "error", err)
		return &Store{Storage: memoryStorage.New()}
	}
	logging.Info("Using Redis for rate limiting", "addr", cfg.Addr, "db", cfg.DB)
	return s
}

// gofiber's redis storage panics when the initial ping fails.
func newRedisStore(cfg RedisConfig) (s *Store, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("redis storage: %v", r)
		}
	}()
	rs := redisStorage.New(redisStorage.Config{
		Addrs:    []string{cfg.Addr},
		Database: cfg.DB,
	})
	return &Store{Storage: rs, conn: rs.Conn()}, nil
}

// Backend names the storage kind: "redis" or "memory".
func (s *Store) Backend() string {
	if s.conn != nil {
		return "redis"
	}
	return "memory"
}

// Ping reports whether the store can serve requests. Memory stores are always ready.
func (s *Store) Ping(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Ping(ctx).Err()
}

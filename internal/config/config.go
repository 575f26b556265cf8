package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config.yaml"

// Config holds the runtime settings of the API process.
type Config struct {
	Server struct {
		Host          string `yaml:"host" env:"HOST"`
		Port          int    `yaml:"port" env:"PORT"`
		Prefork       bool   `yaml:"prefork"`
		JSONBodyLimit int    `yaml:"json_body_limit" env:"JSON_BODY_LIMIT"`
		EnableMonitor bool   `yaml:"enable_monitor" env:"ENABLE_MONITOR"`
	} `yaml:"server"`

	Cookies struct {
		Secret string `yaml:"secret" env:"COOKIE_SECRET"`
	} `yaml:"cookies"`

	CORS struct {
		AllowOrigins []string `yaml:"allow_origins" env:"CORS_ALLOW_ORIGINS" envSeparator:","`
	} `yaml:"cors"`

	RateLimit struct {
		AuthLimit int           `yaml:"auth_limit" env:"AUTH_RATE_LIMIT"`
		Interval  time.Duration `yaml:"interval" env:"AUTH_RATE_INTERVAL"`
	} `yaml:"rate_limit"`

	Redis struct {
		Addr string `yaml:"addr" env:"REDIS_ADDR"`
		DB   int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	Logger struct {
		File       string `yaml:"file" env:"LOG_FILE"`
		Level      string `yaml:"level" env:"LOG_LEVEL"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"logger"`
}

// Addr returns the host:port pair the server listens on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	var cfg Config
	cfg.Server.Port = 3000
	cfg.Server.JSONBodyLimit = 100 * 1024
	cfg.RateLimit.Interval = 15 * time.Minute
	cfg.Logger.Level = "info"
	cfg.Logger.MaxSizeMB = 10
	cfg.Logger.MaxBackups = 3
	cfg.Logger.MaxAgeDays = 7
	return cfg
}

// Load reads .env, then the YAML file named by CONFIG_PATH, then the process
// environment. It panics when the result is invalid.
func Load() Config {
	if err := loadDotEnv(".env"); err != nil {
		panic(fmt.Sprintf("failed to load .env: %v", err))
	}
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	return LoadFrom(path)
}

// LoadFrom builds the configuration from the given YAML file and the process
// environment. A missing file leaves the defaults in place.
func LoadFrom(path string) Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		panic(fmt.Sprintf("failed to read config %s: %v", path, err))
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			panic(fmt.Sprintf("failed to parse config %s: %v", path, err))
		}
	}

	if err := env.Parse(&cfg); err != nil {
		panic(fmt.Sprintf("failed to parse environment: %v", err))
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
	return cfg
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.JSONBodyLimit <= 0 {
		return fmt.Errorf("server.json_body_limit must be > 0")
	}
	if c.RateLimit.AuthLimit < 0 {
		return fmt.Errorf("rate_limit.auth_limit must be >= 0")
	}
	if c.RateLimit.AuthLimit > 0 && c.RateLimit.Interval <= 0 {
		return fmt.Errorf("rate_limit.interval must be > 0 when auth_limit is set")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis.db must be >= 0")
	}
	if c.Cookies.Secret != "" {
		key, err := base64.StdEncoding.DecodeString(c.Cookies.Secret)
		if err != nil {
			return fmt.Errorf("cookies.secret is not valid base64: %w", err)
		}
		switch len(key) {
		case 16, 24, 32:
		default:
			return fmt.Errorf("cookies.secret must decode to 16, 24 or 32 bytes, got %d", len(key))
		}
	}
	return nil
}

// loadDotEnv exports the variables of an optional dotenv file. Variables that
// are already set in the environment win.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

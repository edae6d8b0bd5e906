package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/blackbox-go/internal/factory"
	redisstorage "github.com/mcoot/blackbox-go/internal/storage/redis"
)

const envPrefix = "BLACKBOX_"

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration. Fields are read from BLACKBOX_* environment
// variables; persistent flags override them.
type Config struct {
	StorageType string        `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string        `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	LogLevel    slog.Level    `env:"LOG_LEVEL" envDefault:"WARN"`
	Output      string        `env:"OUTPUT" envDefault:"text"`
	GameTTL     time.Duration `env:"GAME_TTL" envDefault:"24h"`
	Verbose     bool
}

// LoadConfig reads the configuration from the process environment
func LoadConfig() (*Config, error) {
	return loadConfig(env.Options{Prefix: envPrefix})
}

// LoadConfigFrom reads the configuration from the given variables instead of
// the process environment
func LoadConfigFrom(environ map[string]string) (*Config, error) {
	return loadConfig(env.Options{Prefix: envPrefix, Environment: environ})
}

func loadConfig(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values that flags and environment may have set
func (c *Config) Validate() error {
	switch c.StorageType {
	case factory.StorageTypeMemory, factory.StorageTypeRedis:
	default:
		return fmt.Errorf("invalid storage type %q: must be memory or redis", c.StorageType)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("invalid output format %q: must be text or json", c.Output)
	}
	if c.GameTTL < 0 {
		return fmt.Errorf("invalid game TTL %s", c.GameTTL)
	}
	return nil
}

// Logger builds the structured logger for a CLI run. Verbose forces debug level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := c.LogLevel
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// FactoryConfig maps the CLI configuration onto the application factory
func (c *Config) FactoryConfig(logger *slog.Logger) factory.Config {
	cfg := factory.Config{
		Logger:      logger,
		StorageType: c.StorageType,
	}
	if c.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		redisCfg.GameTTL = c.GameTTL
		cfg.RedisConfig = &redisCfg
	}
	return cfg
}

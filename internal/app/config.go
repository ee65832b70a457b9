package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Environment     string `env:"KERNEL_ENV" envDefault:"dev"`
	Debug           bool   `env:"KERNEL_DEBUG"`
	RootPath        string `env:"KERNEL_ROOT"`
	ConfigExtension string `env:"KERNEL_CONFIG_EXT" envDefault:".hcl"`

	LogFormat string `env:"KERNEL_LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"KERNEL_LOG_LEVEL" envDefault:"info"`
	HTTPAddr  string `env:"KERNEL_HTTP_ADDR" envDefault:":8080"`
}

// LoadConfig reads the given dotenv files, skipping those that do not exist,
// then parses Config from the environment. Variables already set in the
// process win over dotenv values.
func LoadConfig(dotenvFiles ...string) (*Config, error) {
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return NewConfig(cfg)
}

// NewConfig validates cfg and normalizes its enumerated fields.
func NewConfig(cfg Config) (*Config, error) {
	cfg.Environment = strings.TrimSpace(cfg.Environment)
	if cfg.Environment == "" {
		return nil, errors.New("Environment is a required configuration field and cannot be empty")
	}

	if !strings.HasPrefix(cfg.ConfigExtension, ".") {
		return nil, fmt.Errorf("invalid config extension %q: must start with '.'", cfg.ConfigExtension)
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	return &cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

type Config struct {
	Stage        string `env:"STAGE,required"`
	Port         int    `env:"PORT" envDefault:"9191"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseURL  string `env:"DATABASE_URL"`
	MigrationDir string `env:"MIGRATION_DIR" envDefault:"file://db/migration"`
	RulesFile    string `env:"RULES_FILE"`
}

func (c Config) IsProd() bool {
	return c.Stage == StageProd
}

// LoadDotEnv reads path into the environment unless running
// in prod. A missing file is not an error.
func LoadDotEnv(path string) error {
	if os.Getenv("STAGE") == StageProd {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, fmt.Errorf("stage must be either dev or prod, got %q", cfg.Stage)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	return cfg, nil
}

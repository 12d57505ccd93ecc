package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds overrides read from LINGOTYPE_* environment variables.
// Empty values mean "not set".
type EnvConfig struct {
	Lang     string `env:"LANG"`
	File     string `env:"FILE"`
	LogLevel string `env:"LOG_LEVEL"`
	LogFile  string `env:"LOG_FILE"`
	DBPath   string `env:"DB"`
}

// LoadEnv parses LINGOTYPE_* variables from the process environment.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "LINGOTYPE_"}); err != nil {
		return EnvConfig{}, fmt.Errorf("error getting env configs: %w", err)
	}
	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Addr         string        `env:"CONTEST_ADDR" envDefault:":8080"`
	ControlCycle time.Duration `env:"CONTEST_CONTROL_CYCLE" envDefault:"33ms"`
	TuningFile   string        `env:"CONTEST_TUNING_FILE"`
	// DatabaseURL enables the postgres profile store when set.
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"CONTEST_LOG_LEVEL" envDefault:"info"`
	DevLogging  bool   `env:"CONTEST_LOG_DEV" envDefault:"false"`
}

// LoadServerConfig loads envFile (if it exists) into the process environment
// and parses ServerConfig from it. Variables already set win over the file.
func LoadServerConfig(envFile string) (ServerConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return ServerConfig{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ControlCycle <= 0 {
		return ServerConfig{}, fmt.Errorf("parse env: CONTEST_CONTROL_CYCLE must be positive, got %s", cfg.ControlCycle)
	}
	return cfg, nil
}

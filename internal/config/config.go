// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"svw.info/tenmatch/internal/domain"
)

type Config struct {
	Addr          string         `env:"TENMATCH_ADDR"           envDefault:":8080"`
	LogLevel      string         `env:"TENMATCH_LOG_LEVEL"      envDefault:"info"`
	Scoring       domain.Scoring `env:"TENMATCH_SCORING"        envDefault:"linear"`
	RoundDuration time.Duration  `env:"TENMATCH_ROUND_DURATION" envDefault:"120s"`
	SessionTTL    time.Duration  `env:"TENMATCH_SESSION_TTL"    envDefault:"30m"`
	SweepInterval time.Duration  `env:"TENMATCH_SWEEP_INTERVAL" envDefault:"1m"`
	HintMaxLen    int            `env:"TENMATCH_HINT_MAX_LEN"   envDefault:"6"`
}

// Load reads an optional .env file, then parses the environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.HintMaxLen < 2 {
		return Config{}, fmt.Errorf("TENMATCH_HINT_MAX_LEN must be at least 2, got %d", cfg.HintMaxLen)
	}
	if cfg.SweepInterval <= 0 {
		return Config{}, fmt.Errorf("TENMATCH_SWEEP_INTERVAL must be positive, got %s", cfg.SweepInterval)
	}
	return cfg, nil
}

// Level maps LogLevel onto logrus; unknown names fall back to info.
func (c Config) Level() logrus.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

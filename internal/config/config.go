// Package config loads runtime settings from the environment.
//
// Values come from the process environment, optionally seeded from a
// .env file, and are parsed into Config with caarlos0/env. Command line
// flags may override them afterwards.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// History backends.
const (
	HistorySQLite = "sqlite"
	HistoryMemory = "memory"
)

// Config holds every setting the game reads at startup.
type Config struct {
	// WordsFile is the dictionary path; empty selects the embedded list.
	WordsFile string `env:"WORDLE_WORDS_FILE"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFile receives the logs since the board owns the terminal; "-" is stderr.
	LogFile      string `env:"WORDLE_LOG_FILE" envDefault:"wordle.log"`
	RevealTarget bool   `env:"WORDLE_REVEAL_TARGET"`
	Daily        bool   `env:"WORDLE_DAILY"`
	DailySalt    string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	History      string `env:"WORDLE_HISTORY" envDefault:"sqlite"`
}

// LoadDotEnv loads the given .env files (default ".env") into the
// environment. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	switch c.History {
	case HistorySQLite, HistoryMemory:
	default:
		return fmt.Errorf("config: WORDLE_HISTORY must be %q or %q, got %q", HistorySQLite, HistoryMemory, c.History)
	}
	return nil
}

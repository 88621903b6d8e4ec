// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is the process configuration.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `env:"WORDBUDDY_DB"`

	// VocabPath points at a JSON, CSV or XLSX vocabulary file. Empty uses
	// the built-in pool.
	VocabPath string `env:"WORDBUDDY_VOCAB"`

	LogLevel string `env:"WORDBUDDY_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// LogFile is where the TUI writes its log. Empty resolves under the
	// XDG state directory.
	LogFile string `env:"WORDBUDDY_LOG_FILE"`

	QuizSeconds int `env:"WORDBUDDY_QUIZ_SECONDS" envDefault:"60" validate:"gte=5,lte=3600"`
	QuizLength  int `env:"WORDBUDDY_QUIZ_LENGTH" envDefault:"10" validate:"gte=1,lte=100"`

	// RemindAt is the HH:MM local time of the daily streak reminder. Empty
	// disables it.
	RemindAt string `env:"WORDBUDDY_REMIND_AT" validate:"omitempty,datetime=15:04"`
}

// QuizTimeLimit returns the timed-mode countdown.
func (c Config) QuizTimeLimit() time.Duration {
	return time.Duration(c.QuizSeconds) * time.Second
}

var validate = validator.New()

// Load reads an optional .env file from the working directory, then parses
// and validates the environment. Variables already set take precedence over
// the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads and validates the environment without touching .env.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// DefaultLogPath returns $XDG_STATE_HOME/wordbuddy/wordbuddy.log, falling
// back to ~/.local/state.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "wordbuddy", "wordbuddy.log"), nil
}

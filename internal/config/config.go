// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/korepetytor/internal/logging"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all application configuration.
type Config struct {
	DBPath         string // "" resolves to the XDG data dir
	LogMode        string // off | dev | prod
	LogFile        string // "" logs to stderr
	TranscriptsDir string // "" disables transcripts
	Adaptive       bool
	ReportDir      string
}

// Load reads a .env file from the working directory when present, then
// configuration from environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:         getEnv("KOREPETYTOR_DB", ""),
		LogMode:        strings.ToLower(getEnv("KOREPETYTOR_LOG", logging.ModeOff)),
		LogFile:        getEnv("KOREPETYTOR_LOG_FILE", ""),
		TranscriptsDir: getEnv("KOREPETYTOR_TRANSCRIPTS", ""),
		Adaptive:       getEnvBool("KOREPETYTOR_ADAPTIVE", false),
		ReportDir:      getEnv("KOREPETYTOR_REPORT_DIR", "."),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	switch c.LogMode {
	case logging.ModeOff, logging.ModeDev, logging.ModeProd:
	default:
		return fmt.Errorf("%w: KOREPETYTOR_LOG must be off, dev or prod, got %q", ErrInvalid, c.LogMode)
	}
	if c.ReportDir == "" {
		return fmt.Errorf("%w: KOREPETYTOR_REPORT_DIR cannot be empty", ErrInvalid)
	}
	if c.LogFile != "" && c.LogMode == logging.ModeOff {
		return fmt.Errorf("%w: KOREPETYTOR_LOG_FILE set while logging is off", ErrInvalid)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on", "tak":
		return true
	case "0", "false", "no", "off", "nie":
		return false
	default:
		return fallback
	}
}

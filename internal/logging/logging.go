// Package logging builds the zap logger shared by the application.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Logging modes.
const (
	ModeOff  = "off"
	ModeDev  = "dev"
	ModeProd = "prod"
)

// New returns a logger for mode. path redirects output to a file, which
// keeps log lines out of the terminal UI. Mode "off" returns a no-op
// logger.
func New(mode, path string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "", ModeOff:
		return zap.NewNop(), nil
	case ModeProd, "production":
		cfg = zap.NewProductionConfig()
	case ModeDev, "development":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log mode %q", mode)
	}
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/korepetytor/internal/config"
	"github.com/abhisek/korepetytor/internal/logging"
	"github.com/abhisek/korepetytor/internal/store"
)

// env bundles what every command needs: configuration, a logger and the
// open store.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
}

// setup loads configuration, applies flag overrides, and opens the store.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", zap.String("path", dbPath))

	return &env{cfg: cfg, log: log, store: st}, nil
}

// applyFlags copies explicitly set flags over cfg and re-validates it.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("log") {
		cfg.LogMode, _ = flags.GetString("log")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Lookup("adaptive") != nil && flags.Changed("adaptive") {
		cfg.Adaptive, _ = flags.GetBool("adaptive")
	}
	if flags.Lookup("transcripts") != nil && flags.Changed("transcripts") {
		cfg.TranscriptsDir, _ = flags.GetString("transcripts")
	}
	if flags.Lookup("dir") != nil && flags.Changed("dir") {
		cfg.ReportDir, _ = flags.GetString("dir")
	}
	return cfg.Validate()
}

func (e *env) Close() {
	_ = e.log.Sync()
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store", zap.Error(err))
	}
}

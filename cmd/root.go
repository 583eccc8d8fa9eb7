package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/korepetytor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "korepetytor",
	Short: "Polish-language math tutor",
	Long: "Korepetytor is a conversational math tutor. It asks for your name and school level,\n" +
		"then gives problems on equations, functions, geometry, fractions and percentages.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides KOREPETYTOR_DB env var)")
	pf.String("log", "", "Log mode: off, dev or prod (overrides KOREPETYTOR_LOG)")
	pf.String("log-file", "", "Write logs to this file (overrides KOREPETYTOR_LOG_FILE)")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}

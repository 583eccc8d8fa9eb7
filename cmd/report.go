package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/korepetytor/internal/report"
	"github.com/abhisek/korepetytor/internal/stats"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a PNG progress report for a student",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		if student == "" {
			return errors.New("--student is required")
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		o, err := stats.Load(cmd.Context(), e.store.EventRepo(), student)
		if err != nil {
			return err
		}
		path, err := report.Write(e.cfg.ReportDir, o, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Raport zapisany:", path)
		return nil
	},
}

func init() {
	reportCmd.Flags().String("student", "", "Student name (required)")
	reportCmd.Flags().String("dir", "", "Output directory (overrides KOREPETYTOR_REPORT_DIR)")
}

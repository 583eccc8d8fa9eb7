package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/korepetytor/internal/stats"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all recorded data of a student",
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

		key := stats.StudentKey(student)
		if err := e.store.EventRepo().DeleteStudent(cmd.Context(), key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Usunięto dane ucznia %q.\n", key)
		return nil
	},
}

func init() {
	resetCmd.Flags().String("student", "", "Student name (required)")
}

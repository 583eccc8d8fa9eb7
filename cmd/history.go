package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/korepetytor/internal/dialog"
	"github.com/abhisek/korepetytor/internal/stats"
	"github.com/abhisek/korepetytor/internal/store"
	"github.com/abhisek/korepetytor/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List a student's recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")
		if student == "" {
			return errors.New("--student is required")
		}
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		return printHistory(cmd.Context(), cmd.OutOrStdout(), e.store.EventRepo(), student, limit)
	},
}

func init() {
	historyCmd.Flags().String("student", "", "Student name (required)")
	historyCmd.Flags().IntP("limit", "n", 10, "Number of sessions to show")
}

func printHistory(ctx context.Context, out io.Writer, repo store.EventRepo, student string, limit int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sessions, err := repo.QuerySessions(ctx, stats.StudentKey(student), store.QueryOpts{Limit: limit})
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintf(out, "Brak sesji dla %q.\n", student)
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Data", "Poziom", "Wynik", "Skuteczność", "Czas")
	for _, s := range sessions {
		acc := "-"
		if s.Attempted > 0 {
			acc = stats.Percent(float64(s.Correct)/float64(s.Attempted)) + "%"
		}
		level := "-"
		if s.Level != "" {
			level = dialog.Level(s.Level).DisplayName()
		}
		t.Row(
			s.Timestamp.Format("2006-01-02 15:04"),
			level,
			fmt.Sprintf("%d/%d", s.Correct, s.Attempted),
			acc,
			(time.Duration(s.DurationSecs) * time.Second).String(),
		)
	}
	fmt.Fprintln(out, t.Render())
	return nil
}

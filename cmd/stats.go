package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/korepetytor/internal/stats"
	"github.com/abhisek/korepetytor/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics and recommendations",
	Long:  "Show a student's performance summary and study recommendations.\nWithout --student, list the students with recorded sessions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		student, _ := cmd.Flags().GetString("student")
		return printStats(cmd.Context(), cmd.OutOrStdout(), e.store.EventRepo(), student)
	},
}

func init() {
	statsCmd.Flags().String("student", "", "Student name")
}

func printStats(ctx context.Context, out io.Writer, repo store.EventRepo, student string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if student == "" {
		return printStudents(ctx, out, repo)
	}

	o, err := stats.Load(ctx, repo, student)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, o.Summary())
	fmt.Fprintln(out, "💡 Rekomendacje:")
	fmt.Fprintln(out, o.Recommendations())
	return nil
}

func printStudents(ctx context.Context, out io.Writer, repo store.EventRepo) error {
	students, err := repo.Students(ctx)
	if err != nil {
		return err
	}
	if len(students) == 0 {
		fmt.Fprintln(out, "Brak zapisanych sesji.")
		return nil
	}
	fmt.Fprintln(out, "Uczniowie:")
	for _, s := range students {
		fmt.Fprintln(out, "  -", s)
	}
	fmt.Fprintln(out, "\nUżyj --student, aby zobaczyć statystyki.")
	return nil
}

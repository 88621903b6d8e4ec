package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordbuddy/internal/badges"
	"github.com/abhisek/wordbuddy/internal/progress"
	"github.com/abhisek/wordbuddy/internal/store"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		prog := progress.NewStore(st.ProgressRepo(), progress.WithLogger(cliLogger()))
		if err := prog.Load(ctx); err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		rec := prog.Snapshot()

		fmt.Printf("Level %d  (%d/100 XP, %d total)\n", rec.Level(), rec.XPInLevel(), rec.XP)
		fmt.Printf("Answered %d, correct %d (%d%%)\n", rec.Total, rec.Correct, rec.Accuracy())
		last := rec.LastStudyDate
		if last == "" {
			last = "never"
		}
		fmt.Printf("Streak %d days, last studied %s\n", rec.Streak, last)

		fmt.Println()
		fmt.Printf("%-10s  %8s  %8s  %8s\n", "Category", "Answered", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 40))
		for _, c := range vocab.AllCategories() {
			cs := rec.Category[c]
			fmt.Printf("%-10s  %8d  %8d  %7d%%\n", c.DisplayName(), cs.Total, cs.Correct, rec.CategoryAccuracy(c))
		}

		fmt.Println()
		fmt.Println("Badges")
		for _, b := range badges.Catalog() {
			mark := "  "
			if rec.HasBadge(b.ID) {
				mark = b.ID.Icon()
			}
			fmt.Printf("  %s %s\n", mark, b.Label)
		}

		since, _ := cmd.Flags().GetString("since")
		until, _ := cmd.Flags().GetString("until")
		opts, err := historyRange(since, until, time.Local)
		if err != nil {
			return err
		}
		opts.Limit, _ = cmd.Flags().GetInt("recent")
		sessions, err := st.SessionRepo().QuerySessionSummaries(ctx, opts)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(sessions) > 0 {
			fmt.Println()
			fmt.Println("Recent quizzes")
			for _, s := range sessions {
				fmt.Printf("  %s  %-12s  %d/%d  %3d%%\n",
					s.Timestamp.Local().Format("2006-01-02 15:04"), s.Mode,
					s.CorrectAnswers, s.QuestionsServed, s.Accuracy())
			}
		}
		return nil
	},
}

// historyRange turns inclusive YYYY-MM-DD bounds into a session query.
// Either bound may be empty.
func historyRange(since, until string, loc *time.Location) (store.QueryOpts, error) {
	var opts store.QueryOpts
	if since != "" {
		d, err := time.ParseInLocation(progress.DateLayout, since, loc)
		if err != nil {
			return opts, fmt.Errorf("invalid --since %q, want YYYY-MM-DD", since)
		}
		opts.From = d
	}
	if until != "" {
		d, err := time.ParseInLocation(progress.DateLayout, until, loc)
		if err != nil {
			return opts, fmt.Errorf("invalid --until %q, want YYYY-MM-DD", until)
		}
		opts.To = d.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
	if !opts.From.IsZero() && !opts.To.IsZero() && opts.To.Before(opts.From) {
		return opts, fmt.Errorf("--until %s is before --since %s", until, since)
	}
	return opts, nil
}

func init() {
	f := statsCmd.Flags()
	f.String("since", "", "Only list quizzes on or after this date (YYYY-MM-DD)")
	f.String("until", "", "Only list quizzes on or before this date (YYYY-MM-DD)")
	f.Int("recent", 5, "Number of quizzes to list (0 = all in range)")
}

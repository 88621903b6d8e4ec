package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordbuddy/internal/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner progress",
	Long:  "Reset clears progress (XP, streak, badges). With --all it also clears settings, flashcard state and quiz history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		all, _ := cmd.Flags().GetBool("all")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		prog := progress.NewStore(st.ProgressRepo(), progress.WithLogger(cliLogger()))
		if err := prog.Reset(ctx); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		if all {
			if err := st.SettingsRepo().Clear(ctx); err != nil {
				return fmt.Errorf("clear settings: %w", err)
			}
			if err := st.CardRepo().Clear(ctx); err != nil {
				return fmt.Errorf("clear card state: %w", err)
			}
			if err := st.SessionRepo().Clear(ctx); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Println("All learner data cleared.")
			return nil
		}
		fmt.Println("Progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also clear settings, flashcard state and quiz history")
}

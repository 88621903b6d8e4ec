package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordbuddy/internal/deck"
	"github.com/abhisek/wordbuddy/internal/quiz"
	"github.com/abhisek/wordbuddy/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long:  "Without flags, prints the current settings. Any flag given is changed and saved.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		doc := st.SettingsRepo()
		s, err := settings.Load(ctx, doc)
		if err != nil {
			cliLogger().Warn("settings had invalid fields, using defaults for them", "error", err)
		}

		flags := cmd.Flags()
		changed := false
		if flags.Changed("name") {
			s.Name, _ = flags.GetString("name")
			changed = true
		}
		if flags.Changed("theme") {
			s.Theme, _ = flags.GetString("theme")
			changed = true
		}
		if flags.Changed("card-mode") {
			v, _ := flags.GetString("card-mode")
			s.CardMode = deck.Mode(v)
			changed = true
		}
		if flags.Changed("quiz-direction") {
			v, _ := flags.GetString("quiz-direction")
			s.QuizDirection = quiz.Direction(v)
			changed = true
		}
		if flags.Changed("speech") {
			s.Speech, _ = flags.GetBool("speech")
			changed = true
		}
		if flags.Changed("badge-notifications") {
			s.BadgeNotifications, _ = flags.GetBool("badge-notifications")
			changed = true
		}

		if changed {
			if err := settings.Save(ctx, doc, s); err != nil {
				return err
			}
			s = s.Normalize()
		}

		fmt.Printf("%-20s %s\n", "name", s.DisplayName())
		fmt.Printf("%-20s %s\n", "theme", s.Theme)
		fmt.Printf("%-20s %s\n", "card-mode", s.CardMode)
		fmt.Printf("%-20s %s\n", "quiz-direction", s.QuizDirection)
		fmt.Printf("%-20s %t\n", "speech", s.Speech)
		fmt.Printf("%-20s %t\n", "badge-notifications", s.BadgeNotifications)
		return nil
	},
}

func init() {
	f := settingsCmd.Flags()
	f.String("name", "", "Display name on the ranking board")
	f.String("theme", "", "Color theme (auto, light, dark)")
	f.String("card-mode", "", "Flashcard mode (en-ja, ja-en, both)")
	f.String("quiz-direction", "", "Quiz direction (en-ja, ja-en)")
	f.Bool("speech", true, "Read words aloud")
	f.Bool("badge-notifications", true, "Show a notice when a badge is earned")
}

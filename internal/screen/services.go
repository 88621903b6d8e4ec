package screen

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordbuddy/internal/badges"
	"github.com/abhisek/wordbuddy/internal/deck"
	"github.com/abhisek/wordbuddy/internal/progress"
	"github.com/abhisek/wordbuddy/internal/quiz"
	"github.com/abhisek/wordbuddy/internal/settings"
	"github.com/abhisek/wordbuddy/internal/speech"
	"github.com/abhisek/wordbuddy/internal/store"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

// Services are the collaborators shared by every screen. All fields are
// set by the app before the first screen is built; screens only run on the
// Bubble Tea goroutine, so Settings is read and written without locking.
type Services struct {
	Pool        vocab.Pool
	Progress    *progress.Store
	Quiz        *quiz.Session
	Settings    *settings.Settings
	SettingsDoc settings.Document
	Cards       deck.Document
	History     store.SessionRepo
	Speaker     speech.Speaker
	Logger      *slog.Logger
}

// BadgesEarnedMsg announces badges newly earned by an answer.
type BadgesEarnedMsg struct {
	IDs []badges.ID
}

// SettingsChangedMsg is sent after the settings were saved.
type SettingsChangedMsg struct {
	Settings settings.Settings
}

// QuizExpiredMsg is sent when the quiz countdown ended a session.
type QuizExpiredMsg struct{}

// AnnounceBadges returns a command announcing ids, or nil when ids is empty.
func AnnounceBadges(ids []badges.ID) tea.Cmd {
	if len(ids) == 0 {
		return nil
	}
	return func() tea.Msg { return BadgesEarnedMsg{IDs: ids} }
}

// Speak reads text aloud when speech is enabled.
func (s *Services) Speak(text string) {
	if s.Speaker == nil || s.Settings == nil || !s.Settings.Speech || text == "" {
		return
	}
	s.Speaker.Speak(text)
}

// SaveSettings validates and stores next, then makes it current.
func (s *Services) SaveSettings(ctx context.Context, next settings.Settings) error {
	if err := settings.Save(ctx, s.SettingsDoc, next); err != nil {
		return err
	}
	*s.Settings = next.Normalize()
	return nil
}

// LoadCards reads the flashcard state, falling back to an empty state.
func (s *Services) LoadCards(ctx context.Context) deck.CardState {
	st, err := deck.LoadState(ctx, s.Cards)
	if err != nil {
		s.Logger.Warn("card state unreadable, starting empty", "error", err)
	}
	return st
}

// SaveCards stores the flashcard state. Failures are logged.
func (s *Services) SaveCards(ctx context.Context, st deck.CardState) {
	if err := deck.SaveState(ctx, s.Cards, st); err != nil {
		s.Logger.Warn("card state not saved", "error", err)
	}
}

package app

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordbuddy/internal/badges"
	"github.com/abhisek/wordbuddy/internal/quiz"
	"github.com/abhisek/wordbuddy/internal/reminder"
	"github.com/abhisek/wordbuddy/internal/router"
	"github.com/abhisek/wordbuddy/internal/screen"
	"github.com/abhisek/wordbuddy/internal/screen/screentest"
	"github.com/abhisek/wordbuddy/internal/screens/home"
	"github.com/abhisek/wordbuddy/internal/screens/welcome"
	"github.com/abhisek/wordbuddy/internal/settings"
	"github.com/abhisek/wordbuddy/internal/store"
	"github.com/abhisek/wordbuddy/internal/ui/theme"
)

type stubScreen struct {
	escapes    bool
	gotEscapes int
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "esc" {
		s.gotEscapes++
	}
	return s, nil
}
func (s *stubScreen) View(int, int) string { return "stub" }
func (s *stubScreen) Title() string        { return "Stub" }
func (s *stubScreen) HandlesEsc() bool     { return s.escapes }

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func newModel(t *testing.T) AppModel {
	env := screentest.New(t)
	m := newAppModel(env.Services, false)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestNewAppModel_StartScreen(t *testing.T) {
	env := screentest.New(t)

	assert.IsType(t, &home.HomeScreen{}, newAppModel(env.Services, false).router.Active())
	assert.IsType(t, &welcome.WelcomeScreen{}, newAppModel(env.Services, true).router.Active())
}

func TestEscPopsPushedScreen(t *testing.T) {
	m := newModel(t)
	m, _ = update(t, m, router.PushScreenMsg{Screen: &stubScreen{}})
	require.Equal(t, 2, m.router.Depth())

	m, cmd := update(t, m, screentest.Special(tea.KeyEscape))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, 1, m.router.Depth())
}

func TestEscGoesToScreenThatHandlesIt(t *testing.T) {
	m := newModel(t)
	stub := &stubScreen{escapes: true}
	m, _ = update(t, m, router.PushScreenMsg{Screen: stub})

	m, _ = update(t, m, screentest.Special(tea.KeyEscape))
	assert.Equal(t, 1, stub.gotEscapes)
	assert.Equal(t, 2, m.router.Depth())
}

func TestEscAtRootDoesNothing(t *testing.T) {
	m := newModel(t)
	_, cmd := update(t, m, screentest.Special(tea.KeyEscape))
	assert.Nil(t, cmd)
}

func TestBadgeToast(t *testing.T) {
	m := newModel(t)

	m, cmd := update(t, m, screen.BadgesEarnedMsg{IDs: []badges.ID{badges.FirstStudy}})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.toast, badges.FirstStudy.Label())
	assert.Contains(t, m.render(), "New badge!")

	m, _ = update(t, m, toastExpiredMsg{gen: m.toastGen - 1})
	assert.NotEmpty(t, m.toast)
	m, _ = update(t, m, toastExpiredMsg{gen: m.toastGen})
	assert.Empty(t, m.toast)
}

func TestBadgeToastHonorsSetting(t *testing.T) {
	m := newModel(t)
	m.svc.Settings.BadgeNotifications = false

	m, cmd := update(t, m, screen.BadgesEarnedMsg{IDs: []badges.ID{badges.XP100}})
	assert.Nil(t, cmd)
	assert.Empty(t, m.toast)
}

func TestReminderToast(t *testing.T) {
	m := newModel(t)
	m, _ = update(t, m, reminder.Notice{Streak: 4})
	assert.Contains(t, m.toast, "4-day streak")
}

func TestSettingsChangeAppliesTheme(t *testing.T) {
	t.Cleanup(func() { theme.Apply(settings.ThemeDark, true) })
	m := newModel(t)

	update(t, m, screen.SettingsChangedMsg{Settings: settings.Settings{Theme: settings.ThemeLight}})
	assert.Equal(t, settings.ThemeLight, theme.Current())
}

func TestBackgroundDecidesAutoTheme(t *testing.T) {
	t.Cleanup(func() { theme.Apply(settings.ThemeDark, true) })
	m := newModel(t)
	require.Equal(t, settings.ThemeAuto, m.svc.Settings.Theme)

	m, _ = update(t, m, tea.BackgroundColorMsg{Color: lightGray{}})
	assert.False(t, m.dark)
	assert.Equal(t, settings.ThemeLight, theme.Current())
}

type lightGray struct{}

func (lightGray) RGBA() (r, g, b, a uint32) { return 0xeeee, 0xeeee, 0xeeee, 0xffff }

func TestViewShowsHeaderAndHints(t *testing.T) {
	m := newModel(t)
	out := m.render()
	assert.Contains(t, out, "WordBuddy")
	assert.Contains(t, out, "Ctrl+C")
}

func TestRelayDropsWithoutProgram(t *testing.T) {
	var r Relay
	assert.NotPanics(t, func() { r.Send(screen.QuizExpiredMsg{}) })
}

func TestRecordSessionEnd(t *testing.T) {
	env := screentest.New(t)
	record := RecordSessionEnd(env.Services.History, env.Services.Logger)

	record(quiz.Summary{
		SessionID: "s-1",
		Setup:     quiz.Setup{Mode: quiz.ModeSurvival, Direction: quiz.DirJAEN, Category: "it"},
		Answered:  5,
		Correct:   4,
		Duration:  42 * time.Second,
	})

	got, err := env.Services.History.QuerySessionSummaries(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s-1", got[0].SessionID)
	assert.Equal(t, string(quiz.ModeSurvival), got[0].Mode)
	assert.Equal(t, 5, got[0].QuestionsServed)
	assert.Equal(t, 4, got[0].CorrectAnswers)
	assert.Equal(t, 42, got[0].DurationSecs)
}

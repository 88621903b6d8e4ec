package settings

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbuddy/internal/deck"
	"github.com/abhisek/wordbuddy/internal/quiz"
	"github.com/abhisek/wordbuddy/internal/screen"
	prefs "github.com/abhisek/wordbuddy/internal/settings"
	"github.com/abhisek/wordbuddy/internal/ui/components"
	"github.com/abhisek/wordbuddy/internal/ui/layout"
	"github.com/abhisek/wordbuddy/internal/ui/theme"
)

const (
	rowName = iota
	rowTheme
	rowCardMode
	rowQuizDirection
	rowSpeech
	rowBadges
	rowCount
)

var rowLabels = [rowCount]string{"Name", "Theme", "Card mode", "Quiz direction", "Speech", "Badge notices"}

var (
	themes     = []string{prefs.ThemeAuto, prefs.ThemeLight, prefs.ThemeDark}
	cardModes  = []string{string(deck.ModeENJA), string(deck.ModeJAEN), string(deck.ModeBoth)}
	directions = []string{string(quiz.DirENJA), string(quiz.DirJAEN)}
)

// SettingsScreen edits the learner's preferences. Every change is saved
// right away.
type SettingsScreen struct {
	svc     *screen.Services
	row     int
	editing bool
	input   components.TextInput
	errMsg  string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)
var _ screen.EscapeHandler = (*SettingsScreen)(nil)

// New creates a SettingsScreen.
func New(svc *screen.Services) *SettingsScreen {
	return &SettingsScreen{svc: svc}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

// HandlesEsc keeps esc on the screen while the name is being edited.
func (s *SettingsScreen) HandlesEsc() bool {
	return s.editing
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Edit name"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.editing {
		return s, s.updateName(msg)
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.row > 0 {
			s.row--
		}
	case "down", "j":
		if s.row < rowCount-1 {
			s.row++
		}
	case "enter":
		if s.row == rowName {
			s.editing = true
			s.input = components.NewTextInput("Your name", s.svc.Settings.Name, prefs.MaxNameLength)
			return s, s.input.Init()
		}
		return s, s.change(1)
	case "left", "h":
		return s, s.change(-1)
	case "right", "l", "space", " ":
		return s, s.change(1)
	}
	return s, nil
}

func (s *SettingsScreen) updateName(msg tea.Msg) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "esc":
			s.editing = false
			return nil
		case "enter":
			next := *s.svc.Settings
			next.Name = s.input.Value()
			cmd := s.save(next)
			if s.errMsg != "" {
				s.input.SetError(s.errMsg)
				return nil
			}
			s.editing = false
			return cmd
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// change steps the value on the current row by d.
func (s *SettingsScreen) change(d int) tea.Cmd {
	next := *s.svc.Settings
	switch s.row {
	case rowTheme:
		next.Theme = step(themes, next.Theme, d)
	case rowCardMode:
		next.CardMode = deck.Mode(step(cardModes, string(next.CardMode), d))
	case rowQuizDirection:
		next.QuizDirection = quiz.Direction(step(directions, string(next.QuizDirection), d))
	case rowSpeech:
		next.Speech = !next.Speech
	case rowBadges:
		next.BadgeNotifications = !next.BadgeNotifications
	default:
		return nil
	}
	return s.save(next)
}

func (s *SettingsScreen) save(next prefs.Settings) tea.Cmd {
	s.errMsg = ""
	if err := s.svc.SaveSettings(context.Background(), next); err != nil {
		s.errMsg = err.Error()
		s.svc.Logger.Warn("settings not saved", "error", err)
		return nil
	}
	saved := *s.svc.Settings
	return func() tea.Msg { return screen.SettingsChangedMsg{Settings: saved} }
}

// step moves d places from cur in values, wrapping around.
func step(values []string, cur string, d int) string {
	i := max(slices.Index(values, cur), 0)
	n := len(values)
	return values[((i+d)%n+n)%n]
}

func (s *SettingsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	cur := *s.svc.Settings
	values := [rowCount]string{
		cur.DisplayName(),
		cur.Theme,
		string(cur.CardMode),
		string(cur.QuizDirection),
		onOff(cur.Speech),
		onOff(cur.BadgeNotifications),
	}

	var b strings.Builder
	for i := range rowCount {
		label := lipgloss.NewStyle().Width(16).Foreground(theme.TextDim).Render(rowLabels[i])
		value := values[i]
		switch {
		case i == rowName && s.editing:
			value = s.input.View()
		case i == s.row:
			value = theme.Selected.Render("◂ " + value + " ▸")
		default:
			value = theme.Unselected.Render("  " + value)
		}
		b.WriteString(label + value + "\n")
	}
	if s.errMsg != "" && !s.editing {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("theme in use: %s", theme.Current())))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Panel(b.String(), cw))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

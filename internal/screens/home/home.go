package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbuddy/internal/progress"
	"github.com/abhisek/wordbuddy/internal/router"
	"github.com/abhisek/wordbuddy/internal/screen"
	"github.com/abhisek/wordbuddy/internal/screens/cards"
	"github.com/abhisek/wordbuddy/internal/screens/history"
	progressscreen "github.com/abhisek/wordbuddy/internal/screens/progress"
	quizscreen "github.com/abhisek/wordbuddy/internal/screens/quiz"
	settingsscreen "github.com/abhisek/wordbuddy/internal/screens/settings"
	"github.com/abhisek/wordbuddy/internal/ui/components"
	"github.com/abhisek/wordbuddy/internal/ui/layout"
	"github.com/abhisek/wordbuddy/internal/ui/theme"
)

// HomeScreen is the main menu with a progress dashboard.
type HomeScreen struct {
	svc      *screen.Services
	menu     components.Menu
	record   progress.Record
	today    string
	lastCard string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(svc *screen.Services) *HomeScreen {
	h := &HomeScreen{svc: svc}
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "FLASHCARDS", Hint: "flip and mark cards", Action: push(func() screen.Screen { return cards.New(svc) })},
		{Label: "QUIZ", Hint: "4-choice questions", Action: push(func() screen.Screen { return quizscreen.New(svc) })},
		{Label: "PROGRESS", Hint: "badges and ranking", Action: push(func() screen.Screen { return progressscreen.New(svc) })},
		{Label: "HISTORY", Hint: "past quizzes", Action: push(func() screen.Screen { return history.New(svc.History) })},
		{Label: "SETTINGS", Action: push(func() screen.Screen { return settingsscreen.New(svc) })},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.refresh()
	return h
}

func (h *HomeScreen) refresh() {
	h.record = h.svc.Progress.Snapshot()
	h.today = h.svc.Progress.Today()
	h.lastCard = ""
	st := h.svc.LoadCards(context.Background())
	if it, ok := h.svc.Pool.ByID(st.LastCardID); ok {
		h.lastCard = it.EN
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumeMsg, router.RootMsg, screen.SettingsChangedMsg:
		h.refresh()
		return h, nil
	case tea.KeyPressMsg:
		if msg.String() == "q" {
			return h, tea.Quit
		}
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var sections []string
	sections = append(sections, center.Render(components.Banner(cw, compact)))
	if !compact {
		sections = append(sections, center.Render(RenderMascot(mascotFor(h.record, h.today))))
	}
	sections = append(sections, h.renderStats(cw, compact))
	if h.lastCard != "" {
		sections = append(sections, center.Render(theme.Hint.Render("Last card: "+h.lastCard)))
	}
	sections = append(sections, center.Render(h.menu.View()))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) renderStats(cw int, compact bool) string {
	r := h.record
	level := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	streak := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	acc := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	today := theme.Hint.Render("not studied today")
	if r.StudiedOn(h.today) {
		today = theme.Correct.Render("✓ studied today")
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			level.Render(fmt.Sprintf("Lv%d", r.Level())),
			streak.Render(fmt.Sprintf("★%d", r.Streak)),
			acc.Render(fmt.Sprintf("%d%%", r.Accuracy())))
	} else {
		stats = fmt.Sprintf("%s  %s  %s\n%s",
			level.Render(fmt.Sprintf("LV %d  (%d XP)", r.Level(), r.XP)),
			streak.Render(fmt.Sprintf("★ %d DAY STREAK", r.Streak)),
			acc.Render(fmt.Sprintf("%d%% ACCURACY", r.Accuracy())),
			today)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbuddy/internal/router"
	"github.com/abhisek/wordbuddy/internal/screen"
	"github.com/abhisek/wordbuddy/internal/settings"
	"github.com/abhisek/wordbuddy/internal/ui/components"
	"github.com/abhisek/wordbuddy/internal/ui/layout"
	"github.com/abhisek/wordbuddy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

const mascotArt = `  ╭───────────╮
  │  ┌─────┐  │
  │  │ ◉ ◉ │  │
  │  │  ▽  │  │
  │  ├─────┤  │
  │  │ ABC │  │
  │  └─────┘  │
  ╰───────────╯`

var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen plays a short intro on first run and asks for the name
// shown on the ranking board.
type WelcomeScreen struct {
	svc          *screen.Services
	homeFactory  func() screen.Screen
	input        components.TextInput
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with homeFactory's
// screen once the name is saved.
func New(svc *screen.Services, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		svc:         svc,
		homeFactory: homeFactory,
		input:       components.NewTextInput("Your name (optional)", svc.Settings.Name, settings.MaxNameLength),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if !w.asking() {
		return []layout.KeyHint{{Key: "any key", Description: "Skip"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(tick(), w.input.Init())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) asking() bool {
	return w.elapsed >= totalDur
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		if !w.asking() {
			w.elapsed = totalDur
			return w, nil
		}
		if msg.String() == "enter" {
			return w, w.finish()
		}
	}

	if w.asking() {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *WelcomeScreen) finish() tea.Cmd {
	if w.transitioned {
		return nil
	}
	next := *w.svc.Settings
	next.Name = w.input.Value()
	if err := w.svc.SaveSettings(context.Background(), next); err != nil {
		w.input.SetError(err.Error())
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt)
	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		for i, pair := range [][2]string{{s1, s2}, {}, {}, {s2, s1}, {}, {}, {s1, s2}} {
			if pair[0] != "" && i < len(lines) {
				lines[i] = pair[0] + "  " + lines[i] + "  " + pair[1]
			}
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			components.Banner(width, layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight)),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Learn a few English words every day."),
		)
	}

	if w.asking() {
		sections = append(sections,
			"",
			theme.Hint.Render("What should we call you?"),
			w.input.View(),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

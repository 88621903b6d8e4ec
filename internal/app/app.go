package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbuddy/internal/quiz"
	"github.com/abhisek/wordbuddy/internal/reminder"
	"github.com/abhisek/wordbuddy/internal/router"
	"github.com/abhisek/wordbuddy/internal/screen"
	"github.com/abhisek/wordbuddy/internal/screens/home"
	"github.com/abhisek/wordbuddy/internal/screens/welcome"
	"github.com/abhisek/wordbuddy/internal/store"
	"github.com/abhisek/wordbuddy/internal/ui/layout"
	"github.com/abhisek/wordbuddy/internal/ui/theme"
)

const toastDuration = 3 * time.Second

// Options configure Run.
type Options struct {
	Services *screen.Services
	// FirstRun starts on the welcome screen instead of home.
	FirstRun bool
	// Relay is bound to the program so background goroutines can reach it.
	Relay    *Relay
}

// Relay forwards messages from other goroutines to the running program.
// Messages sent before the program starts are dropped.
type Relay struct {
	mu sync.Mutex
	p  *tea.Program
}

// Send delivers msg to the program if one is running.
func (r *Relay) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (r *Relay) bind(p *tea.Program) {
	r.mu.Lock()
	r.p = p
	r.mu.Unlock()
}

type toastExpiredMsg struct{ gen int }

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	svc    *screen.Services
	width  int
	height int
	dark   bool

	toast    string
	toastGen int
}

func newAppModel(svc *screen.Services, firstRun bool) AppModel {
	homeFactory := func() screen.Screen { return home.New(svc) }
	var start screen.Screen
	if firstRun {
		start = welcome.New(svc, homeFactory)
	} else {
		start = homeFactory()
	}
	theme.Apply(svc.Settings.Theme, true)
	return AppModel{
		router: router.New(start),
		svc:    svc,
		dark:   true,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(tea.RequestBackgroundColor, m.router.Active().Init())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.BackgroundColorMsg:
		m.dark = msg.IsDark()
		theme.Apply(m.svc.Settings.Theme, m.dark)
		return m, nil

	case screen.SettingsChangedMsg:
		theme.Apply(msg.Settings.Theme, m.dark)

	case screen.BadgesEarnedMsg:
		if !m.svc.Settings.BadgeNotifications {
			return m, nil
		}
		labels := make([]string, len(msg.IDs))
		for i, id := range msg.IDs {
			labels[i] = id.Icon() + " " + id.Label()
		}
		return m.showToast("New badge! " + strings.Join(labels, ", "))

	case reminder.Notice:
		return m.showToast(fmt.Sprintf("Study today to keep your %d-day streak!", msg.Streak))

	case toastExpiredMsg:
		if msg.gen == m.toastGen {
			m.toast = ""
		}
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) showToast(text string) (tea.Model, tea.Cmd) {
	m.toast = text
	m.toastGen++
	gen := m.toastGen
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{gen: gen}
	})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the whole frame for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	rec := m.svc.Progress.Snapshot()
	header := layout.RenderHeader(active.Title(), layout.HeaderStats{
		Level:     rec.Level(),
		XPInLevel: rec.XPInLevel(),
		Streak:    rec.Streak,
	}, m.width)

	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	toast := ""
	if m.toast != "" {
		toast = layout.RenderToast(m.toast, m.width)
		footerHeight += lipgloss.Height(toast)
	}
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	if toast != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, toast)
	}
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts.Services, opts.FirstRun))
	if opts.Relay != nil {
		opts.Relay.bind(p)
		defer opts.Relay.bind(nil)
	}
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

// RecordSessionEnd returns a quiz end hook that appends the session's end
// event to the history. Failures are logged.
func RecordSessionEnd(repo store.SessionRepo, logger *slog.Logger) func(quiz.Summary) {
	return func(sum quiz.Summary) {
		err := repo.AppendSessionEvent(context.Background(), store.SessionEventData{
			SessionID:       sum.SessionID,
			Action:          store.ActionEnd,
			Mode:            string(sum.Setup.Mode),
			Direction:       string(sum.Setup.Direction),
			Category:        sum.Setup.Category,
			Review:          sum.Review,
			QuestionsServed: sum.Answered,
			CorrectAnswers:  sum.Correct,
			DurationSecs:    int(sum.Duration.Round(time.Second) / time.Second),
		})
		if err != nil {
			logger.Warn("quiz end not recorded", "session_id", sum.SessionID, "error", err)
		}
	}
}

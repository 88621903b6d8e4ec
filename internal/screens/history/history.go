package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbuddy/internal/deck"
	"github.com/abhisek/wordbuddy/internal/quiz"
	"github.com/abhisek/wordbuddy/internal/screen"
	"github.com/abhisek/wordbuddy/internal/store"
	"github.com/abhisek/wordbuddy/internal/ui/layout"
	"github.com/abhisek/wordbuddy/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Older    bool
	Err      error
}

// HistoryScreen lists past quiz sessions, newest first.
type HistoryScreen struct {
	repo     store.SessionRepo
	sessions []store.SessionSummaryRecord
	selected int
	expanded map[int]bool
	loaded   bool
	more     bool // the last page was full, older sessions may exist
	fetching bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen reading from repo.
func New(repo store.SessionRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.fetch(0)
}

// fetch loads one page of sessions older than sequence before, or the
// newest page when before is zero.
func (s *HistoryScreen) fetch(before int64) tea.Cmd {
	s.fetching = true
	return func() tea.Msg {
		sessions, err := s.repo.QuerySessionSummaries(context.Background(),
			store.QueryOpts{Limit: pageSize, Before: before})
		return historyLoadedMsg{Sessions: sessions, Older: before > 0, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.fetching = false
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		if msg.Older {
			s.sessions = append(s.sessions, msg.Sessions...)
		} else {
			s.sessions = msg.Sessions
		}
		s.more = len(msg.Sessions) == pageSize
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			if s.selected == len(s.sessions)-1 && s.more && !s.fetching {
				return s, s.fetch(s.sessions[s.selected].Sequence)
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Take one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection on screen.
	first := 0
	if visible := height - 2; visible > 0 && s.selected >= visible {
		first = s.selected - visible + 1
	}

	for i := first; i < len(s.sessions); i++ {
		sess := s.sessions[i]
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		kind := modeLabel(sess.Mode)
		if sess.Review {
			kind = "Review"
		}
		line := fmt.Sprintf("%s%s  %-12s  %d/%d  %3d%%  %s",
			prefix,
			sess.Timestamp.Local().Format("Jan 02 15:04"),
			kind,
			sess.CorrectAnswers, sess.QuestionsServed,
			sess.Accuracy(),
			duration(sess.DurationSecs))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    direction %s   category %s", sess.Direction, categoryLabel(sess.Category))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func modeLabel(mode string) string {
	m, err := quiz.ParseMode(mode)
	if err != nil {
		return mode
	}
	return m.DisplayName()
}

func categoryLabel(c string) string {
	if c == "" || c == deck.All {
		return "all"
	}
	return c
}

func duration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

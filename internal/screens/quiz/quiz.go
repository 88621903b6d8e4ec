package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordbuddy/internal/deck"
	qz "github.com/abhisek/wordbuddy/internal/quiz"
	"github.com/abhisek/wordbuddy/internal/router"
	"github.com/abhisek/wordbuddy/internal/screen"
	"github.com/abhisek/wordbuddy/internal/store"
	"github.com/abhisek/wordbuddy/internal/ui/components"
	"github.com/abhisek/wordbuddy/internal/ui/layout"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

type stage int

const (
	stageSetup stage = iota
	stageRunning
	stageConfirmQuit
	stageResult
)

// Setup rows.
const (
	rowMode = iota
	rowDirection
	rowCategory
	rowStart
)

// Result buttons.
var resultButtons = []string{"Retry", "Review", "Setup", "Home"}

// QuizScreen hosts the quiz session: setup, questions and the result.
type QuizScreen struct {
	svc   *screen.Services
	stage stage

	// setup
	row        int
	modes      []qz.Mode
	directions []qz.Direction
	categories []string
	mode       int
	direction  int
	category   int

	// running
	question qz.Question
	choice   components.Choice
	last     *qz.Feedback
	tickGen  int

	// result
	summary qz.Summary
	button  int
	notice  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a QuizScreen on the setup stage. The direction starts at the
// learner's preferred quiz direction.
func New(svc *screen.Services) *QuizScreen {
	s := &QuizScreen{
		svc:        svc,
		modes:      qz.Modes(),
		directions: []qz.Direction{qz.DirENJA, qz.DirJAEN},
		categories: []string{deck.All},
	}
	for _, c := range vocab.AllCategories() {
		s.categories = append(s.categories, string(c))
	}
	for i, d := range s.directions {
		if d == svc.Settings.QuizDirection {
			s.direction = i
		}
	}
	svc.Quiz.Reset()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	if s.stage == stageResult && s.summary.Review {
		return "Quiz Review"
	}
	return "Quiz"
}

// HandlesEsc keeps esc on the screen while a session runs so that leaving
// asks for confirmation first.
func (s *QuizScreen) HandlesEsc() bool {
	return s.stage == stageRunning || s.stage == stageConfirmQuit
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.stage {
	case stageRunning:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Choose"},
			{Key: "Tab", Description: "Skip"},
			{Key: "s", Description: "Speak"},
			{Key: "Esc", Description: "End"},
		}
	case stageConfirmQuit:
		return []layout.KeyHint{
			{Key: "y", Description: "End quiz"},
			{Key: "n", Description: "Keep going"},
		}
	case stageResult:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Row"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if msg.gen != s.tickGen || (s.stage != stageRunning && s.stage != stageConfirmQuit) {
			return s, nil
		}
		if s.svc.Quiz.Phase() == qz.PhaseEnded {
			s.showResult()
			return s, nil
		}
		return s, tickCmd(s.tickGen)

	case screen.QuizExpiredMsg:
		if s.stage == stageRunning || s.stage == stageConfirmQuit {
			s.showResult()
		}
		return s, nil

	case tea.KeyPressMsg:
		switch s.stage {
		case stageSetup:
			return s, s.updateSetup(msg)
		case stageRunning:
			return s, s.updateRunning(msg)
		case stageConfirmQuit:
			return s, s.updateConfirm(msg)
		case stageResult:
			return s, s.updateResult(msg)
		}
	}
	return s, nil
}

func (s *QuizScreen) updateSetup(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if s.row > 0 {
			s.row--
		}
	case "down", "j", "tab":
		if s.row < rowStart {
			s.row++
		}
	case "left", "h":
		s.shift(-1)
	case "right", "l":
		s.shift(1)
	case "enter":
		return s.start(func() { s.svc.Quiz.Start(s.setup()) })
	}
	return nil
}

func (s *QuizScreen) shift(d int) {
	wrap := func(i, n int) int { return (i + d + n) % n }
	switch s.row {
	case rowMode:
		s.mode = wrap(s.mode, len(s.modes))
	case rowDirection:
		s.direction = wrap(s.direction, len(s.directions))
	case rowCategory:
		s.category = wrap(s.category, len(s.categories))
	}
}

func (s *QuizScreen) setup() qz.Setup {
	return qz.Setup{
		Mode:      s.modes[s.mode],
		Direction: s.directions[s.direction],
		Category:  s.categories[s.category],
	}
}

// start runs begin, records the history entry and shows the first question.
func (s *QuizScreen) start(begin func()) tea.Cmd {
	begin()
	s.last = nil
	s.notice = ""
	s.stage = stageRunning
	s.tickGen++

	st := s.svc.Quiz.Snapshot()
	err := s.svc.History.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID: st.SessionID,
		Action:    store.ActionStart,
		Mode:      string(st.Setup.Mode),
		Direction: string(st.Setup.Direction),
		Category:  st.Setup.Category,
		Review:    st.Review,
	})
	if err != nil {
		s.svc.Logger.Warn("quiz start not recorded", "session_id", st.SessionID, "error", err)
	}

	s.present()
	return tickCmd(s.tickGen)
}

// present loads the current question, or shows the result when the
// session has run out of questions.
func (s *QuizScreen) present() {
	q, ok := s.svc.Quiz.Current()
	if !ok {
		s.showResult()
		return
	}
	s.question = q
	s.choice = components.NewChoice(q.Options)
}

func (s *QuizScreen) updateRunning(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.stage = stageConfirmQuit
		return nil
	case "tab":
		s.last = nil
		s.svc.Quiz.Skip()
		s.present()
		return nil
	case "s":
		s.svc.Speak(s.question.Item.EN)
		return nil
	}

	s.choice, _ = s.choice.Update(msg)
	picked, ok := s.choice.Picked()
	if !ok {
		return nil
	}
	fb, ok := s.svc.Quiz.Submit(context.Background(), picked)
	if !ok {
		s.showResult()
		return nil
	}
	s.last = &fb
	if fb.Ended {
		s.showResult()
	} else {
		s.present()
	}
	return screen.AnnounceBadges(fb.Badges)
}

func (s *QuizScreen) updateConfirm(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		s.showResult()
	case "n", "N", "esc":
		if s.svc.Quiz.Phase() == qz.PhaseEnded {
			s.showResult()
			return nil
		}
		s.stage = stageRunning
	}
	return nil
}

// showResult ends the session if it still runs and shows its summary.
func (s *QuizScreen) showResult() {
	s.summary = s.svc.Quiz.End()
	s.stage = stageResult
	s.button = 0
}

func (s *QuizScreen) updateResult(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		if s.button > 0 {
			s.button--
		}
		return nil
	case "right", "l", "tab":
		if s.button < len(resultButtons)-1 {
			s.button++
		}
		return nil
	case "r":
		s.button = 0
	case "v":
		s.button = 1
	case "enter":
	default:
		return nil
	}

	switch resultButtons[s.button] {
	case "Retry":
		return s.start(func() { s.svc.Quiz.Retry() })
	case "Review":
		if len(s.summary.Missed) == 0 {
			s.notice = "Nothing to review. Every answer was right!"
			return nil
		}
		return s.start(func() { s.svc.Quiz.Review() })
	case "Setup":
		s.svc.Quiz.Reset()
		s.stage = stageSetup
		return nil
	default:
		return func() tea.Msg { return router.PopToRootMsg{} }
	}
}

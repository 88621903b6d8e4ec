// Package quiz implements the multiple-choice quiz session.
package quiz

import (
	"fmt"
	"time"

	"github.com/abhisek/wordbuddy/internal/badges"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

// Mode selects how a session builds its questions and when it ends.
type Mode string

const (
	// ModeFixed asks a fixed number of questions.
	ModeFixed Mode = "fixed-count"
	// ModeSurvival ends on the first wrong answer.
	ModeSurvival Mode = "survival"
	// ModeTimed ends when the countdown runs out.
	ModeTimed Mode = "timed"
)

// Modes returns every mode in menu order.
func Modes() []Mode {
	return []Mode{ModeFixed, ModeSurvival, ModeTimed}
}

// DisplayName returns a human-readable label.
func (m Mode) DisplayName() string {
	switch m {
	case ModeFixed:
		return "10 questions"
	case ModeSurvival:
		return "Survival"
	case ModeTimed:
		return "Time attack"
	}
	return string(m)
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeFixed, ModeSurvival, ModeTimed:
		return m, nil
	}
	return "", fmt.Errorf("unknown quiz mode %q", s)
}

// Direction selects the prompt and answer languages.
type Direction string

const (
	// DirENJA prompts in English and answers in Japanese.
	DirENJA Direction = "en-ja"
	// DirJAEN prompts in Japanese and answers in English.
	DirJAEN Direction = "ja-en"
)

// ParseDirection parses a direction name.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case DirENJA, DirJAEN:
		return d, nil
	}
	return "", fmt.Errorf("unknown quiz direction %q", s)
}

func (d Direction) prompt(it vocab.Item) string {
	if d == DirJAEN {
		return it.JA
	}
	return it.EN
}

func (d Direction) answer(it vocab.Item) string {
	if d == DirJAEN {
		return it.EN
	}
	return it.JA
}

// Phase is the session lifecycle stage.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseRunning
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Setup is what the learner picks before starting.
type Setup struct {
	Mode      Mode
	Direction Direction
	// Category is a category name or deck.All.
	Category string
}

// Question is the presented question.
type Question struct {
	Item    vocab.Item
	Prompt  string
	Answer  string
	Options []string
	// Number is 1-based.
	Number int
	// Count is the length of the question sequence.
	Count int
}

// Feedback describes the outcome of one submitted answer.
type Feedback struct {
	Item    vocab.Item
	Chosen  string
	Answer  string
	Correct bool
	// Badges lists badges newly earned by this answer.
	Badges []badges.ID
	// Ended is set when this answer finished the session.
	Ended bool
}

// Summary is the result of an ended session.
type Summary struct {
	SessionID string
	Setup     Setup
	Review    bool
	// Answered counts answered and skipped questions, at least 1.
	Answered        int
	Correct         int
	AccuracyPercent int
	CorrectFraction string
	AvgSeconds      int
	Duration        time.Duration
	Missed          []vocab.Item
	StartedAt       time.Time
	EndedAt         time.Time
}

// State is a read-only snapshot of a session.
type State struct {
	SessionID    string
	Setup        Setup
	Review       bool
	Phase        Phase
	Questions    []vocab.Item
	CurrentIndex int
	CorrectCount int
	Missed       []vocab.Item
	StartedAt    time.Time
	EndedAt      time.Time
	Expired      bool
}

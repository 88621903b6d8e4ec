package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordbuddy/internal/deck"
	"github.com/abhisek/wordbuddy/internal/progress"
	"github.com/abhisek/wordbuddy/internal/router"
	"github.com/abhisek/wordbuddy/internal/screen/screentest"
	"github.com/abhisek/wordbuddy/internal/screens/cards"
	quizscreen "github.com/abhisek/wordbuddy/internal/screens/quiz"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

func TestHome_MenuPushesScreens(t *testing.T) {
	env := screentest.New(t)
	h := New(env.Services)

	_, cmd := h.Update(screentest.Special(tea.KeyEnter))
	msgs := screentest.Run(cmd)
	require.Len(t, msgs, 1)
	push, ok := msgs[0].(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &cards.CardsScreen{}, push.Screen)

	h.Update(screentest.Special(tea.KeyDown))
	_, cmd = h.Update(screentest.Special(tea.KeyEnter))
	msgs = screentest.Run(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, &quizscreen.QuizScreen{}, msgs[0].(router.PushScreenMsg).Screen)
}

func TestHome_QuitKey(t *testing.T) {
	env := screentest.New(t)
	_, cmd := New(env.Services).Update(screentest.Key('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHome_RefreshOnResume(t *testing.T) {
	env := screentest.New(t)
	h := New(env.Services)
	assert.Equal(t, 0, h.record.Total)

	env.Services.Progress.RegisterAnswer(context.Background(), vocab.CategoryDaily, true)
	env.Services.SaveCards(context.Background(), deck.CardState{LastCardID: "b1"})
	h.Update(router.ResumeMsg{})

	assert.Equal(t, 1, h.record.Total)
	assert.Equal(t, "budget", h.lastCard)
	assert.Contains(t, h.View(100, 40), "Last card: budget")
}

func TestHome_View(t *testing.T) {
	env := screentest.New(t)
	view := New(env.Services).View(100, 40)
	for _, label := range []string{"FLASHCARDS", "QUIZ", "PROGRESS", "HISTORY", "SETTINGS", "QUIT"} {
		assert.Contains(t, view, label)
	}
	assert.Contains(t, view, "not studied today")
}

func TestMascotFor(t *testing.T) {
	const today = "2024-05-02"
	tests := []struct {
		name string
		rec  progress.Record
		want MascotVariant
	}{
		{"new learner", progress.Record{}, MascotIdle},
		{"studied today", progress.Record{Streak: 3, LastStudyDate: today}, MascotCelebrating},
		{"streak at risk", progress.Record{Streak: 3, LastStudyDate: "2024-05-01"}, MascotAlert},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mascotFor(tt.rec, today))
		})
	}
}

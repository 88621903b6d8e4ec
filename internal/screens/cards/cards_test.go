package cards

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordbuddy/internal/badges"
	"github.com/abhisek/wordbuddy/internal/deck"
	"github.com/abhisek/wordbuddy/internal/screen"
	"github.com/abhisek/wordbuddy/internal/screen/screentest"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

func press(t *testing.T, c *CardsScreen, keys ...tea.KeyPressMsg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = c.Update(k)
	}
	return cmd
}

func current(t *testing.T, c *CardsScreen) vocab.Item {
	t.Helper()
	it, ok := c.browser.Current()
	require.True(t, ok)
	return it
}

func TestCards_FlipAndNavigate(t *testing.T) {
	env := screentest.New(t)
	c := newWithRand(env.Services, screentest.InOrder{})

	first := current(t, c)
	assert.Contains(t, c.View(100, 30), first.EN)
	assert.NotContains(t, c.View(100, 30), first.JA)

	press(t, c, screentest.Key(' '))
	assert.Contains(t, c.View(100, 30), first.JA)

	press(t, c, screentest.Special(tea.KeyRight))
	assert.NotEqual(t, first.ID, current(t, c).ID)
	press(t, c, screentest.Special(tea.KeyLeft))
	assert.Equal(t, first.ID, current(t, c).ID)
}

func TestCards_MarkKnownRecordsAnswerAndPersists(t *testing.T) {
	env := screentest.New(t)
	c := newWithRand(env.Services, screentest.InOrder{})
	first := current(t, c)

	cmd := press(t, c, screentest.Key('y'))

	rec := env.Services.Progress.Snapshot()
	assert.Equal(t, 1, rec.Total)
	assert.Equal(t, 1, rec.Correct)

	msgs := screentest.Run(cmd)
	require.Len(t, msgs, 1)
	earned, ok := msgs[0].(screen.BadgesEarnedMsg)
	require.True(t, ok)
	assert.Contains(t, earned.IDs, badges.FirstStudy)

	st, err := deck.LoadState(context.Background(), env.Services.Cards)
	require.NoError(t, err)
	assert.True(t, st.Known[first.ID])
	assert.Equal(t, current(t, c).ID, st.LastCardID)
}

func TestCards_MarkUnknownIsWrongAnswer(t *testing.T) {
	env := screentest.New(t)
	c := newWithRand(env.Services, screentest.InOrder{})

	press(t, c, screentest.Key('n'))

	rec := env.Services.Progress.Snapshot()
	assert.Equal(t, 1, rec.Total)
	assert.Equal(t, 0, rec.Correct)
	assert.Equal(t, 2, rec.XP)
}

func TestCards_ResumesAtLastCard(t *testing.T) {
	env := screentest.New(t)
	c := newWithRand(env.Services, screentest.InOrder{})
	press(t, c, screentest.Special(tea.KeyRight), screentest.Special(tea.KeyRight))
	want := current(t, c).ID

	again := newWithRand(env.Services, screentest.InOrder{})
	assert.Equal(t, want, current(t, again).ID)
}

func TestCards_CategoryCycle(t *testing.T) {
	env := screentest.New(t)
	c := newWithRand(env.Services, screentest.InOrder{})

	press(t, c, screentest.Key('c'))
	cat, _ := c.browser.Filter()
	assert.Equal(t, string(vocab.CategoryDaily), cat)
	assert.Equal(t, 3, c.browser.Len())

	press(t, c, screentest.Key('c'), screentest.Key('c'), screentest.Key('c'))
	cat, _ = c.browser.Filter()
	assert.Equal(t, deck.All, cat)
}

func TestCards_EmptyFilter(t *testing.T) {
	env := screentest.New(t)
	c := newWithRand(env.Services, screentest.InOrder{})

	// IT has no level 1 card.
	c.browser.SetFilter(string(vocab.CategoryIT), "1")
	assert.Contains(t, c.View(100, 30), "No cards match")
	press(t, c, screentest.Key('y'))
	assert.Equal(t, 0, env.Services.Progress.Snapshot().Total)
}

func TestCards_ModeCycleSavesSetting(t *testing.T) {
	env := screentest.New(t)
	c := newWithRand(env.Services, screentest.InOrder{})

	press(t, c, screentest.Key('m'))
	assert.Equal(t, deck.ModeJAEN, c.browser.Mode())
	assert.Equal(t, deck.ModeJAEN, env.Services.Settings.CardMode)
}

func TestCards_SpeakRespectsSetting(t *testing.T) {
	env := screentest.New(t)
	c := newWithRand(env.Services, screentest.InOrder{})
	first := current(t, c)

	press(t, c, screentest.Key('s'))
	assert.Equal(t, []string{first.EN}, env.Speaker.Spoken)

	env.Services.Settings.Speech = false
	press(t, c, screentest.Key('s'))
	assert.Len(t, env.Speaker.Spoken, 1)
}

package settings

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordbuddy/internal/deck"
	"github.com/abhisek/wordbuddy/internal/screen"
	"github.com/abhisek/wordbuddy/internal/screen/screentest"
	prefs "github.com/abhisek/wordbuddy/internal/settings"
)

func press(s *SettingsScreen, keys ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = s.Update(k)
	}
	return cmd
}

var (
	down  = screentest.Special(tea.KeyDown)
	right = screentest.Special(tea.KeyRight)
	left  = screentest.Special(tea.KeyLeft)
	enter = screentest.Special(tea.KeyEnter)
)

func stored(t *testing.T, env *screentest.Env) prefs.Settings {
	t.Helper()
	s, err := prefs.Load(context.Background(), env.Services.SettingsDoc)
	require.NoError(t, err)
	return s
}

func TestSettings_ThemeChangeSavesAndAnnounces(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Services)

	cmd := press(s, down, right)

	assert.Equal(t, prefs.ThemeLight, env.Services.Settings.Theme)
	assert.Equal(t, prefs.ThemeLight, stored(t, env).Theme)
	msgs := screentest.Run(cmd)
	require.Len(t, msgs, 1)
	changed, ok := msgs[0].(screen.SettingsChangedMsg)
	require.True(t, ok)
	assert.Equal(t, prefs.ThemeLight, changed.Settings.Theme)

	press(s, left, left)
	assert.Equal(t, prefs.ThemeDark, env.Services.Settings.Theme)
}

func TestSettings_Toggles(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Services)

	press(s, down, down, right)
	assert.Equal(t, deck.ModeJAEN, env.Services.Settings.CardMode)

	press(s, down, down, enter)
	assert.False(t, env.Services.Settings.Speech)
	press(s, down, right)
	assert.False(t, env.Services.Settings.BadgeNotifications)
	assert.False(t, stored(t, env).BadgeNotifications)
}

func TestSettings_EditName(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Services)

	press(s, enter)
	require.True(t, s.editing)
	assert.True(t, s.HandlesEsc())
	for _, r := range "Mio" {
		press(s, screentest.Key(r))
	}
	press(s, enter)

	assert.False(t, s.editing)
	assert.Equal(t, "Mio", env.Services.Settings.Name)
	assert.Equal(t, "Mio", stored(t, env).Name)
}

func TestSettings_EditNameCancel(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Services)

	press(s, enter, screentest.Key('Z'), screentest.Special(tea.KeyEscape))
	assert.False(t, s.editing)
	assert.Empty(t, env.Services.Settings.Name)
}

func TestSettings_View(t *testing.T) {
	env := screentest.New(t)
	view := New(env.Services).View(100, 30)
	for _, label := range rowLabels {
		assert.Contains(t, view, label)
	}
	assert.True(t, strings.Contains(view, "You"))
}

func TestStep(t *testing.T) {
	assert.Equal(t, "b", step([]string{"a", "b", "c"}, "a", 1))
	assert.Equal(t, "c", step([]string{"a", "b", "c"}, "a", -1))
	assert.Equal(t, "b", step([]string{"a", "b", "c"}, "bogus", 1))
}

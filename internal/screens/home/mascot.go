package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbuddy/internal/progress"
	"github.com/abhisek/wordbuddy/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // studied today
	MascotAlert                     // streak at risk
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ABC │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ABC │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ ABC │
└─────┘`

// mascotFor picks the variant for the learner's day.
func mascotFor(rec progress.Record, today string) MascotVariant {
	switch {
	case rec.StudiedOn(today):
		return MascotCelebrating
	case rec.Streak > 0:
		return MascotAlert
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for v.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Highlight
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}

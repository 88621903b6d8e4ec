package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// timerTickMsg redraws the countdown and notices a session that ended
// while no key was pressed. Ticks from an older session carry a stale gen.
type timerTickMsg struct {
	gen int
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}

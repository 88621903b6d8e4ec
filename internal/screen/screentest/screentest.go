// Package screentest builds screen.Services backed by an in-memory
// database for screen tests.
package screentest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordbuddy/internal/logging"
	"github.com/abhisek/wordbuddy/internal/progress"
	"github.com/abhisek/wordbuddy/internal/quiz"
	"github.com/abhisek/wordbuddy/internal/screen"
	"github.com/abhisek/wordbuddy/internal/settings"
	"github.com/abhisek/wordbuddy/internal/store"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

// Pool is the vocabulary used by New.
func Pool() vocab.Pool {
	return vocab.Pool{
		{ID: "d1", EN: "apple", JA: "りんご", ExampleEN: "I ate an apple.", Category: vocab.CategoryDaily, Level: 1},
		{ID: "d2", EN: "door", JA: "ドア", ExampleEN: "Close the door.", Category: vocab.CategoryDaily, Level: 1},
		{ID: "d3", EN: "window", JA: "窓", ExampleEN: "Open the window.", Category: vocab.CategoryDaily, Level: 2},
		{ID: "b1", EN: "budget", JA: "予算", ExampleEN: "We are over budget.", Category: vocab.CategoryBusiness, Level: 2},
		{ID: "b2", EN: "invoice", JA: "請求書", ExampleEN: "Send the invoice.", Category: vocab.CategoryBusiness, Level: 2},
		{ID: "i1", EN: "cache", JA: "キャッシュ", ExampleEN: "Clear the cache.", Category: vocab.CategoryIT, Level: 2},
		{ID: "i2", EN: "deploy", JA: "デプロイする", ExampleEN: "Deploy on Friday.", Category: vocab.CategoryIT, Level: 3},
	}
}

// InOrder is a Rand that leaves every list unchanged.
type InOrder struct{}

// Shuffle does nothing.
func (InOrder) Shuffle(int, func(i, j int)) {}

// Speaker records what was spoken.
type Speaker struct {
	mu     sync.Mutex
	Spoken []string
}

// Speak records text.
func (s *Speaker) Speak(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Spoken = append(s.Spoken, text)
}

// Env is a test environment.
type Env struct {
	Services *screen.Services
	Store    *store.Store
	Speaker  *Speaker
	// Ended receives every quiz summary, in order.
	Ended []quiz.Summary

	pending func()
}

// Expire fires the most recently armed quiz countdown.
func (e *Env) Expire() {
	if e.pending != nil {
		e.pending()
	}
}

// New opens a fresh in-memory database and wires Services over it. The
// quiz countdown never fires on its own; see Expire.
func New(t *testing.T, opts ...quiz.Option) *Env {
	t.Helper()

	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger := logging.Discard()
	prog := progress.NewStore(st.ProgressRepo(), progress.WithLogger(logger))
	require.NoError(t, prog.Load(context.Background()))

	env := &Env{Store: st, Speaker: &Speaker{}}
	s := settings.Default()
	pool := Pool()

	base := []quiz.Option{
		quiz.WithRand(InOrder{}),
		quiz.WithLogger(logger),
		quiz.WithAfterFunc(func(_ time.Duration, f func()) quiz.Timer {
			env.pending = f
			return stopped{}
		}),
		quiz.WithOnEnd(func(sum quiz.Summary) { env.Ended = append(env.Ended, sum) }),
	}
	env.Services = &screen.Services{
		Pool:        pool,
		Progress:    prog,
		Quiz:        quiz.NewSession(pool, prog, append(base, opts...)...),
		Settings:    &s,
		SettingsDoc: st.SettingsRepo(),
		Cards:       st.CardRepo(),
		History:     st.SessionRepo(),
		Speaker:     env.Speaker,
		Logger:      logger,
	}
	return env
}

type stopped struct{}

func (stopped) Stop() bool { return true }

// Key returns a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special returns a key press for a non-printable key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Run executes cmd and every command it batches, returning the messages
// produced. Commands that wait on a timer must not be passed.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

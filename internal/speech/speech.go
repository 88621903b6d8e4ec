// Package speech reads English words aloud through the platform's
// text-to-speech command.
package speech

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"sync"
)

// Speaker speaks text without blocking the caller.
type Speaker interface {
	Speak(text string)
}

// Nop is a Speaker that does nothing.
type Nop struct{}

// Speak implements Speaker.
func (Nop) Speak(string) {}

// engines are tried in order; the first found on PATH is used.
var engines = []struct {
	name string
	args []string
}{
	{"say", nil},
	{"espeak-ng", []string{"-v", "en-us"}},
	{"espeak", []string{"-v", "en-us"}},
}

// New returns a Command speaker for the first available engine, or Nop.
func New(logger *slog.Logger) Speaker {
	for _, e := range engines {
		if path, err := exec.LookPath(e.name); err == nil {
			logger.Debug("speech engine found", "engine", path)
			return NewCommand(path, e.args, logger)
		}
	}
	logger.Debug("no speech engine found")
	return Nop{}
}

// runFunc runs one utterance and returns when it finishes or ctx ends.
type runFunc func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Command speaks by running an external program. A new utterance cancels
// the one still playing.
type Command struct {
	mu     sync.Mutex
	name   string
	args   []string
	cancel context.CancelFunc
	run    runFunc
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewCommand creates a speaker that runs name with args followed by the text.
func NewCommand(name string, args []string, logger *slog.Logger) *Command {
	return &Command{name: name, args: args, run: runCommand, logger: logger}
}

// Speak implements Speaker.
func (c *Command) Speak(text string) {
	if text == "" {
		return
	}
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Unlock()

	args := append(append([]string(nil), c.args...), text)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		if err := c.run(ctx, c.name, args...); err != nil && !errors.Is(ctx.Err(), context.Canceled) {
			c.logger.Warn("speech failed", "engine", c.name, "err", err)
		}
	}()
}

// Close stops any utterance in progress and waits for it to exit.
func (c *Command) Close() error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
	c.wg.Wait()
	return nil
}

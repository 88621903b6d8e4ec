package quiz

import "time"

// Timer is a cancellable pending callback. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// countdown is the handle for a timed session's deadline. Each arm bumps
// the generation so a callback from an earlier arm can be recognised and
// dropped even if Stop raced with it firing.
type countdown struct {
	after    AfterFunc
	timer    Timer
	gen      uint64
	deadline time.Time
}

// arm cancels any pending timer and schedules fire(gen) after d.
func (c *countdown) arm(now time.Time, d time.Duration, fire func(gen uint64)) {
	c.cancel()
	gen := c.gen
	c.deadline = now.Add(d)
	c.timer = c.after(d, func() { fire(gen) })
}

// cancel stops the pending timer and invalidates its generation.
func (c *countdown) cancel() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	c.deadline = time.Time{}
}

// live reports whether gen belongs to the currently armed timer.
func (c *countdown) live(gen uint64) bool {
	return c.timer != nil && gen == c.gen
}

func (c *countdown) remaining(now time.Time) time.Duration {
	if c.deadline.IsZero() {
		return 0
	}
	if d := c.deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

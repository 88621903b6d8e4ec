// Package reminder runs the daily "streak at risk" check.
package reminder

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/abhisek/wordbuddy/internal/progress"
)

// Source provides the progress the reminder looks at.
type Source interface {
	Snapshot() progress.Record
	Today() string
}

// Notice is sent when the learner has a streak going but has not studied
// today.
type Notice struct {
	Streak int
}

// Reminder schedules a daily check at a fixed local time.
type Reminder struct {
	scheduler *gocron.Scheduler
	at        string
	src       Source
	notify    func(Notice)
	logger    *slog.Logger
}

// New creates a reminder that checks every day at at (HH:MM, local time).
func New(at string, src Source, notify func(Notice), logger *slog.Logger) (*Reminder, error) {
	r := &Reminder{
		scheduler: gocron.NewScheduler(time.Local),
		at:        at,
		src:       src,
		notify:    notify,
		logger:    logger,
	}
	r.scheduler.SingletonModeAll()
	if _, err := r.scheduler.Every(1).Day().At(at).Do(r.Check); err != nil {
		return nil, fmt.Errorf("schedule reminder at %q: %w", at, err)
	}
	return r, nil
}

// Start begins running the schedule in the background.
func (r *Reminder) Start() {
	r.scheduler.StartAsync()
	r.logger.Info("streak reminder scheduled", "at", r.at, "next_run", r.NextRun())
}

// Stop terminates the schedule.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

// NextRun returns when the check runs next.
func (r *Reminder) NextRun() time.Time {
	jobs := r.scheduler.Jobs()
	if len(jobs) == 0 {
		return time.Time{}
	}
	return jobs[0].NextRun()
}

// Check sends a Notice if a streak would be lost by not studying today.
// A streak whose last study day is before yesterday is already broken and
// gets no notice. It reports whether a notice was sent.
func (r *Reminder) Check() bool {
	rec := r.src.Snapshot()
	if rec.Streak == 0 || !studiedDayBefore(rec.LastStudyDate, r.src.Today()) {
		return false
	}
	r.logger.Info("streak at risk", "streak", rec.Streak, "last_study", rec.LastStudyDate)
	r.notify(Notice{Streak: rec.Streak})
	return true
}

func studiedDayBefore(last, today string) bool {
	l, err := time.Parse(progress.DateLayout, last)
	if err != nil {
		return false
	}
	t, err := time.Parse(progress.DateLayout, today)
	if err != nil {
		return false
	}
	return l.AddDate(0, 0, 1).Equal(t)
}

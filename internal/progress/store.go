package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/wordbuddy/internal/badges"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

// Persister stores the progress document.
type Persister interface {
	// Load returns the stored document, or nil if none exists.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored document.
	Save(ctx context.Context, data []byte) error

	// Clear deletes the stored document.
	Clear(ctx context.Context) error
}

// Store owns the progress record. All mutations are serialized and each is
// followed by a flush to the Persister.
type Store struct {
	mu        sync.Mutex
	rec       Record
	persister Persister
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to determine "today" for the daily streak.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for absorbed persistence errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store holding the default record. A nil persister
// keeps progress in memory only.
func NewStore(p Persister, opts ...Option) *Store {
	s := &Store{
		rec:       Default(),
		persister: p,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory record with the persisted one merged over the
// defaults. Malformed fields fall back to defaults and are only logged.
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	raw, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	rec, fallbacks := Merge(raw)
	if len(fallbacks) > 0 {
		s.logger.Warn("progress document had malformed fields, using defaults",
			"fields", fallbacks)
	}

	s.mu.Lock()
	s.rec = rec
	s.mu.Unlock()
	return nil
}

// RegisterAnswer records one answer and returns the badges it newly earned.
// A category that is empty or unknown is counted globally only.
func (s *Store) RegisterAnswer(ctx context.Context, category vocab.Category, correct bool) []badges.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &s.rec
	r.Total++
	st, tracked := r.Category[category]
	tracked = tracked && category.Valid()
	if tracked {
		st.Total++
	}

	if correct {
		r.Correct++
		if tracked {
			st.Correct++
		}
		r.CorrectStreak++
		r.XP += xpCorrect
	} else {
		r.CorrectStreak = 0
		r.XP += xpWrong
	}
	if tracked {
		r.Category[category] = st
	}

	UpdateStreak(r, DateOf(s.now()))

	var added []badges.ID
	r.Badges, added = badges.Merge(r.Badges, badges.Evaluate(r.facts(), category))

	s.logger.Debug("answer registered",
		"category", category,
		"correct", correct,
		"xp", r.XP,
		"streak", r.Streak,
		"new_badges", added)

	s.flush(ctx)
	return added
}

// Snapshot returns a copy of the current record.
func (s *Store) Snapshot() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

// Today returns the current calendar date according to the store clock.
func (s *Store) Today() string {
	return DateOf(s.now())
}

// Reset restores the default record and deletes the persisted document.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec = Default()
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Clear(ctx); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

// flush writes the record; callers hold s.mu.
func (s *Store) flush(ctx context.Context) {
	if s.persister == nil {
		return
	}
	data, err := json.Marshal(s.rec)
	if err != nil {
		s.logger.Warn("marshal progress", "err", err)
		return
	}
	if err := s.persister.Save(ctx, data); err != nil {
		s.logger.Warn("persist progress", "err", err)
	}
}

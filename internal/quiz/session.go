package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wordbuddy/internal/deck"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

const (
	// DefaultLength is the number of questions in a fixed-count session.
	DefaultLength = 10

	// DefaultTimeLimit is the countdown of a timed session.
	DefaultTimeLimit = 60 * time.Second

	maxOptions = 4
)

// Session runs one quiz at a time over a vocabulary pool. It is safe for
// use from the UI goroutine and the countdown goroutine.
type Session struct {
	mu sync.Mutex

	pool     []vocab.Item
	recorder deck.Recorder
	rng      deck.Rand
	now      func() time.Time
	newID    func() string
	length   int
	limit    time.Duration
	onEnd    func(Summary)
	onExpire func()
	logger   *slog.Logger

	setup     Setup
	review    bool
	id        string
	phase     Phase
	questions []vocab.Item
	idx       int
	correct   int
	missed    []vocab.Item
	startedAt time.Time
	endedAt   time.Time
	expired   bool
	current   *Question
	summary   *Summary
	timer     countdown
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the randomness source for question order and options.
func WithRand(r deck.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithClock sets the clock used for timing statistics and the countdown display.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithAfterFunc sets the timer factory used for the countdown.
func WithAfterFunc(f AfterFunc) Option {
	return func(s *Session) { s.timer.after = f }
}

// WithLength sets the fixed-count session length.
func WithLength(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.length = n
		}
	}
}

// WithTimeLimit sets the timed session countdown.
func WithTimeLimit(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.limit = d
		}
	}
}

// WithOnEnd registers a callback run once per session when it ends.
// It runs without the session lock held.
func WithOnEnd(f func(Summary)) Option {
	return func(s *Session) { s.onEnd = f }
}

// WithOnExpire registers a callback run when the countdown ends a session.
// It runs on the timer goroutine.
func WithOnExpire(f func()) Option {
	return func(s *Session) { s.onExpire = f }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithIDFunc overrides session id generation.
func WithIDFunc(f func() string) Option {
	return func(s *Session) { s.newID = f }
}

// NewSession creates a session in the setup phase. recorder receives one
// answer event per submitted answer and may be nil.
func NewSession(pool []vocab.Item, recorder deck.Recorder, opts ...Option) *Session {
	s := &Session{
		pool:     pool,
		recorder: recorder,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:      time.Now,
		newID:    uuid.NewString,
		length:   DefaultLength,
		limit:    DefaultTimeLimit,
		logger:   slog.Default(),
		setup:    Setup{Mode: ModeFixed, Direction: DirENJA, Category: deck.All},
	}
	s.timer.after = stdAfterFunc
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a new session. Any running session and its countdown are
// discarded. An empty filtered pool gives a session that ends on the
// first call to Current.
func (s *Session) Start(setup Setup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start(setup)
}

// start builds the questions for setup and begins; callers hold s.mu.
func (s *Session) start(setup Setup) {
	qs := deck.Shuffle(s.rng, deck.Filter(s.pool, setup.Category, deck.All))
	if setup.Mode == ModeFixed && len(qs) > s.length {
		qs = qs[:s.length]
	}
	s.begin(setup, qs, false)
}

// Retry starts a new session with the last setup. It only leaves an ended
// session and reports false otherwise.
func (s *Session) Retry() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseEnded {
		return false
	}
	s.start(s.setup)
	return true
}

// Review starts a session over the missed items of the ended session, in
// the same direction. It reports false when the session has not ended or
// nothing was missed.
func (s *Session) Review() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseEnded || len(s.missed) == 0 {
		return false
	}
	setup := Setup{Mode: ModeFixed, Direction: s.setup.Direction, Category: deck.All}
	s.begin(setup, slices.Clone(s.missed), true)
	return true
}

// begin resets counters and enters the running phase; callers hold s.mu.
func (s *Session) begin(setup Setup, questions []vocab.Item, review bool) {
	s.timer.cancel()
	if !review {
		s.setup = setup
	}
	s.review = review
	s.id = s.newID()
	s.phase = PhaseRunning
	s.questions = questions
	s.idx = 0
	s.correct = 0
	s.missed = nil
	s.startedAt = s.now()
	s.endedAt = time.Time{}
	s.expired = false
	s.current = nil
	s.summary = nil

	if setup.Mode == ModeTimed && !review {
		s.timer.arm(s.startedAt, s.limit, s.expire)
	}

	s.logger.Debug("quiz started",
		"session_id", s.id,
		"mode", setup.Mode,
		"direction", setup.Direction,
		"category", setup.Category,
		"review", review,
		"questions", len(questions))
}

// Current returns the presented question. When no question remains the
// session ends and ok is false.
func (s *Session) Current() (q Question, ok bool) {
	s.mu.Lock()
	if s.phase != PhaseRunning {
		s.mu.Unlock()
		return Question{}, false
	}
	if s.current != nil {
		q = *s.current
		s.mu.Unlock()
		return q, true
	}
	if s.idx >= len(s.questions) {
		sum, first := s.finish()
		s.mu.Unlock()
		s.notifyEnd(sum, first)
		return Question{}, false
	}
	s.current = s.present()
	q = *s.current
	s.mu.Unlock()
	return q, true
}

// present builds the question at idx; callers hold s.mu.
func (s *Session) present() *Question {
	it := s.questions[s.idx]
	dir := s.activeDirection()
	answer := dir.answer(it)

	others := make([]vocab.Item, 0, len(s.pool))
	for _, p := range s.pool {
		if p.ID != it.ID {
			others = append(others, p)
		}
	}
	others = deck.Shuffle(s.rng, others)

	options := []string{answer}
	for len(options) < maxOptions && len(others) > 0 {
		cand := dir.answer(others[len(others)-1])
		others = others[:len(others)-1]
		if cand == "" || slices.Contains(options, cand) {
			continue
		}
		options = append(options, cand)
	}
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &Question{
		Item:    it,
		Prompt:  dir.prompt(it),
		Answer:  answer,
		Options: options,
		Number:  s.idx + 1,
		Count:   len(s.questions),
	}
}

func (s *Session) activeDirection() Direction {
	if s.setup.Direction == "" {
		return DirENJA
	}
	return s.setup.Direction
}

// Submit answers the presented question with the chosen option text.
// ok is false when no question is being presented.
func (s *Session) Submit(ctx context.Context, choice string) (fb Feedback, ok bool) {
	s.mu.Lock()
	if s.phase != PhaseRunning || s.current == nil {
		s.mu.Unlock()
		return Feedback{}, false
	}
	q := *s.current
	correct := choice == q.Answer
	if correct {
		s.correct++
	} else {
		s.missed = append(s.missed, q.Item)
	}
	s.idx++
	s.current = nil

	fb = Feedback{Item: q.Item, Chosen: choice, Answer: q.Answer, Correct: correct}

	var (
		sum   Summary
		first bool
	)
	switch {
	case !correct && s.setup.Mode == ModeSurvival && !s.review:
		sum, first = s.finish()
		fb.Ended = true
	case s.idx >= len(s.questions):
		sum, first = s.finish()
		fb.Ended = true
	}
	s.mu.Unlock()

	// The store takes its own lock; recording outside ours keeps the
	// countdown goroutine from waiting on persistence.
	if s.recorder != nil {
		fb.Badges = s.recorder.RegisterAnswer(ctx, q.Item.Category, correct)
	}
	s.notifyEnd(sum, first)
	return fb, true
}

// Skip moves past the presented question without recording an answer.
func (s *Session) Skip() bool {
	s.mu.Lock()
	if s.phase != PhaseRunning {
		s.mu.Unlock()
		return false
	}
	s.idx++
	s.current = nil
	var (
		sum   Summary
		first bool
	)
	if s.idx >= len(s.questions) {
		sum, first = s.finish()
	}
	s.mu.Unlock()
	s.notifyEnd(sum, first)
	return true
}

// End ends a running session and returns its summary. On an ended session
// it returns the same summary again.
func (s *Session) End() Summary {
	s.mu.Lock()
	if s.phase == PhaseSetup {
		s.mu.Unlock()
		return Summary{Answered: 1, CorrectFraction: "0/1"}
	}
	sum, first := s.finish()
	s.mu.Unlock()
	s.notifyEnd(sum, first)
	return sum
}

// Reset returns to setup, dropping the session and cancelling its countdown.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.cancel()
	s.phase = PhaseSetup
	s.questions = nil
	s.idx = 0
	s.correct = 0
	s.missed = nil
	s.current = nil
	s.summary = nil
	s.expired = false
	s.review = false
}

// Phase returns the lifecycle stage.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// LastSetup returns the setup of the most recent non-review session.
func (s *Session) LastSetup() Setup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setup
}

// Remaining returns the time left on the countdown, or 0 when none runs.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.remaining(s.now())
}

// Timed reports whether a countdown is running.
func (s *Session) Timed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.timer.deadline.IsZero()
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		SessionID:    s.id,
		Setup:        s.setup,
		Review:       s.review,
		Phase:        s.phase,
		Questions:    slices.Clone(s.questions),
		CurrentIndex: s.idx,
		CorrectCount: s.correct,
		Missed:       slices.Clone(s.missed),
		StartedAt:    s.startedAt,
		EndedAt:      s.endedAt,
		Expired:      s.expired,
	}
}

// expire runs on the timer goroutine.
func (s *Session) expire(gen uint64) {
	s.mu.Lock()
	if !s.timer.live(gen) || s.phase != PhaseRunning {
		s.mu.Unlock()
		return
	}
	s.expired = true
	sum, first := s.finish()
	s.mu.Unlock()

	s.logger.Debug("quiz countdown expired", "session_id", sum.SessionID)
	s.notifyEnd(sum, first)
	if s.onExpire != nil {
		s.onExpire()
	}
}

// finish moves to the ended phase and computes the summary once. first is
// true on the call that ended the session. Callers hold s.mu.
func (s *Session) finish() (sum Summary, first bool) {
	if s.summary != nil {
		return *s.summary, false
	}
	s.timer.cancel()
	s.phase = PhaseEnded
	s.current = nil
	s.endedAt = s.now()

	answered := max(1, s.idx)
	elapsed := s.endedAt.Sub(s.startedAt)
	sum = Summary{
		SessionID:       s.id,
		Setup:           s.setup,
		Review:          s.review,
		Answered:        answered,
		Correct:         s.correct,
		AccuracyPercent: int(math.Round(float64(s.correct) / float64(answered) * 100)),
		CorrectFraction: fmt.Sprintf("%d/%d", s.correct, answered),
		AvgSeconds:      int(math.Round(elapsed.Seconds() / float64(answered))),
		Duration:        elapsed,
		Missed:          slices.Clone(s.missed),
		StartedAt:       s.startedAt,
		EndedAt:         s.endedAt,
	}
	s.summary = &sum
	return sum, true
}

func (s *Session) notifyEnd(sum Summary, first bool) {
	if !first {
		return
	}
	s.logger.Info("quiz ended",
		"session_id", sum.SessionID,
		"mode", sum.Setup.Mode,
		"review", sum.Review,
		"correct", sum.Correct,
		"answered", sum.Answered,
		"accuracy", sum.AccuracyPercent)
	if s.onEnd != nil {
		s.onEnd(sum)
	}
}

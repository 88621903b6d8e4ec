package progress

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordbuddy/internal/badges"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

type memPersister struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	saveErr error
}

func (m *memPersister) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func (m *memPersister) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memPersister) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advanceDays(n int) { c.t = c.t.AddDate(0, 0, n) }

func newTestStore(t *testing.T, p Persister) (*Store, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)}
	s := NewStore(p,
		WithClock(clk.now),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return s, clk
}

func TestRegisterAnswer_Correct(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()

	added := s.RegisterAnswer(ctx, vocab.CategoryDaily, true)
	rec := s.Snapshot()

	assert.Equal(t, 1, rec.Total)
	assert.Equal(t, 1, rec.Correct)
	assert.Equal(t, 1, rec.CorrectStreak)
	assert.Equal(t, 10, rec.XP)
	assert.Equal(t, 1, rec.Streak)
	assert.Equal(t, "2024-01-01", rec.LastStudyDate)
	assert.Equal(t, CategoryStats{Total: 1, Correct: 1}, rec.Category[vocab.CategoryDaily])
	assert.Equal(t, []badges.ID{badges.FirstStudy}, added)
	assert.Equal(t, []badges.ID{badges.FirstStudy}, rec.Badges)
}

func TestRegisterAnswer_Wrong(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()

	s.RegisterAnswer(ctx, vocab.CategoryIT, true)
	s.RegisterAnswer(ctx, vocab.CategoryIT, false)
	rec := s.Snapshot()

	assert.Equal(t, 2, rec.Total)
	assert.Equal(t, 1, rec.Correct)
	assert.Equal(t, 0, rec.CorrectStreak)
	assert.Equal(t, 12, rec.XP)
	assert.Equal(t, CategoryStats{Total: 2, Correct: 1}, rec.Category[vocab.CategoryIT])
}

func TestRegisterAnswer_UnknownCategoryCountsGlobally(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()

	s.RegisterAnswer(ctx, "", true)
	s.RegisterAnswer(ctx, "cooking", false)
	rec := s.Snapshot()

	assert.Equal(t, 2, rec.Total)
	assert.Len(t, rec.Category, 3)
	for _, c := range vocab.AllCategories() {
		assert.Zero(t, rec.Category[c].Total, c)
	}
}

func TestRegisterAnswer_TenCorrectSurvivesWrongAnswer(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()

	var earned []badges.ID
	for range 10 {
		earned = append(earned, s.RegisterAnswer(ctx, vocab.CategoryDaily, true)...)
	}
	assert.Contains(t, earned, badges.TenCorrect)
	assert.Contains(t, earned, badges.XP100)

	added := s.RegisterAnswer(ctx, vocab.CategoryDaily, false)
	assert.Empty(t, added)

	rec := s.Snapshot()
	assert.Equal(t, 0, rec.CorrectStreak)
	assert.True(t, rec.HasBadge(badges.TenCorrect))
}

func TestRegisterAnswer_CategoryBadge(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()

	for range 19 {
		s.RegisterAnswer(ctx, vocab.CategoryBusiness, false)
	}
	assert.False(t, s.Snapshot().HasBadge(badges.CategoryBadge(vocab.CategoryBusiness)))

	added := s.RegisterAnswer(ctx, vocab.CategoryBusiness, false)
	assert.Equal(t, []badges.ID{badges.CategoryBadge(vocab.CategoryBusiness)}, added)
}

func TestRegisterAnswer_Invariants(t *testing.T) {
	s, clk := newTestStore(t, nil)
	ctx := context.Background()

	prevXP := 0
	var prevBadges []badges.ID
	for i := range 60 {
		cat := vocab.AllCategories()[i%3]
		s.RegisterAnswer(ctx, cat, i%4 != 0)
		if i%7 == 0 {
			clk.advanceDays(1)
		}

		rec := s.Snapshot()
		require.LessOrEqual(t, rec.Correct, rec.Total)
		for _, c := range vocab.AllCategories() {
			require.LessOrEqual(t, rec.Category[c].Correct, rec.Category[c].Total)
		}
		require.Greater(t, rec.XP, prevXP)
		require.GreaterOrEqual(t, rec.Streak, 1)
		for _, b := range prevBadges {
			require.True(t, rec.HasBadge(b), "badge %s was lost", b)
		}
		prevXP = rec.XP
		prevBadges = rec.Badges
	}
}

func TestRegisterAnswer_DailyStreak(t *testing.T) {
	s, clk := newTestStore(t, nil)
	ctx := context.Background()

	s.RegisterAnswer(ctx, vocab.CategoryDaily, true)
	s.RegisterAnswer(ctx, vocab.CategoryDaily, true)
	assert.Equal(t, 1, s.Snapshot().Streak)

	clk.advanceDays(1)
	s.RegisterAnswer(ctx, vocab.CategoryDaily, true)
	assert.Equal(t, 2, s.Snapshot().Streak)

	clk.advanceDays(3)
	s.RegisterAnswer(ctx, vocab.CategoryDaily, true)
	assert.Equal(t, 1, s.Snapshot().Streak)
	assert.Equal(t, "2024-01-05", s.Snapshot().LastStudyDate)
}

func TestRegisterAnswer_Persists(t *testing.T) {
	p := &memPersister{}
	s, _ := newTestStore(t, p)
	ctx := context.Background()

	s.RegisterAnswer(ctx, vocab.CategoryIT, true)
	require.Equal(t, 1, p.saves)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(p.data, &doc))
	assert.EqualValues(t, 1, doc["total"])
	assert.Equal(t, "2024-01-01", doc["lastStudy"])
	assert.Contains(t, doc, "correctStreak")

	reloaded, _ := newTestStore(t, p)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, s.Snapshot(), reloaded.Snapshot())
}

func TestRegisterAnswer_PersistErrorAbsorbed(t *testing.T) {
	p := &memPersister{saveErr: errors.New("disk full")}
	s, _ := newTestStore(t, p)

	s.RegisterAnswer(context.Background(), vocab.CategoryDaily, true)
	assert.Equal(t, 1, s.Snapshot().Total)
	assert.Equal(t, 1, p.saves)
}

func TestRegisterAnswer_Concurrent(t *testing.T) {
	s, _ := newTestStore(t, &memPersister{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(correct bool) {
			defer wg.Done()
			s.RegisterAnswer(ctx, vocab.CategoryDaily, correct)
		}(i%2 == 0)
	}
	wg.Wait()

	rec := s.Snapshot()
	assert.Equal(t, 50, rec.Total)
	assert.Equal(t, 25, rec.Correct)
	assert.Equal(t, 25*10+25*2, rec.XP)
	assert.Equal(t, CategoryStats{Total: 50, Correct: 25}, rec.Category[vocab.CategoryDaily])
}

func TestLoad_MalformedFallsBack(t *testing.T) {
	p := &memPersister{data: []byte(`{"total":"many","correct":3,"xp":40}`)}
	s, _ := newTestStore(t, p)

	require.NoError(t, s.Load(context.Background()))
	rec := s.Snapshot()
	assert.Equal(t, 0, rec.Total)
	// correct > total after the fallback, so correct is reset too.
	assert.Equal(t, 0, rec.Correct)
	assert.Equal(t, 40, rec.XP)
}

func TestReset(t *testing.T) {
	p := &memPersister{}
	s, _ := newTestStore(t, p)
	ctx := context.Background()

	s.RegisterAnswer(ctx, vocab.CategoryDaily, true)
	require.NoError(t, s.Reset(ctx))

	assert.Equal(t, Default(), s.Snapshot())
	assert.Nil(t, p.data)
}

func TestSnapshotIsCopy(t *testing.T) {
	s, _ := newTestStore(t, nil)
	s.RegisterAnswer(context.Background(), vocab.CategoryDaily, true)

	snap := s.Snapshot()
	snap.Badges[0] = "tampered"
	snap.Category[vocab.CategoryDaily] = CategoryStats{Total: 99}

	rec := s.Snapshot()
	assert.Equal(t, badges.FirstStudy, rec.Badges[0])
	assert.Equal(t, 1, rec.Category[vocab.CategoryDaily].Total)
}

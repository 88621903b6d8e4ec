package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestDocumentSaveLoadClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil document, got %q", data)
	}

	if err := repo.Save(ctx, []byte(`{"total":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, []byte(`{"total":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	data, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `{"total":2}` {
		t.Errorf("document = %q, want overwritten value", data)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	data, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil after clear, got %q", data)
	}
}

func TestDocumentsAreIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SettingsRepo().Save(ctx, []byte(`{"name":"Aki"}`)); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if err := s.CardRepo().Save(ctx, []byte(`{"known":{}}`)); err != nil {
		t.Fatalf("save cards: %v", err)
	}
	if err := s.CardRepo().Clear(ctx); err != nil {
		t.Fatalf("clear cards: %v", err)
	}

	data, err := s.SettingsRepo().Load(ctx)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if string(data) != `{"name":"Aki"}` {
		t.Errorf("settings = %q, clearing cards must not touch it", data)
	}
}

func TestSessionEventsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("sess-%d", i)
		if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: id, Action: ActionStart, Mode: "timed"}); err != nil {
			t.Fatalf("append start %d: %v", i, err)
		}
		err := repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID:       id,
			Action:          ActionEnd,
			Mode:            "timed",
			Direction:       "en-ja",
			Category:        "it",
			Review:          i == 2,
			QuestionsServed: 10,
			CorrectAnswers:  i + 7,
			DurationSecs:    60,
		})
		if err != nil {
			t.Fatalf("append end %d: %v", i, err)
		}
	}

	recs, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d summaries, want 3 (end events only)", len(recs))
	}
	if recs[0].SessionID != "sess-2" {
		t.Errorf("first = %s, want newest sess-2", recs[0].SessionID)
	}
	if !recs[0].Review || recs[1].Review {
		t.Errorf("review flags = %v, %v", recs[0].Review, recs[1].Review)
	}
	if recs[0].CorrectAnswers != 9 || recs[0].Accuracy() != 90 {
		t.Errorf("correct/accuracy = %d/%d, want 9/90", recs[0].CorrectAnswers, recs[0].Accuracy())
	}
	if recs[0].Category != "it" || recs[0].Direction != "en-ja" || recs[0].DurationSecs != 60 {
		t.Errorf("unexpected record %+v", recs[0])
	}
	if recs[0].Sequence <= recs[1].Sequence {
		t.Errorf("sequences not descending: %d, %d", recs[0].Sequence, recs[1].Sequence)
	}

	limited, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited = %d, want 2", len(limited))
	}

	older, err := repo.QuerySessionSummaries(ctx, QueryOpts{Before: recs[0].Sequence})
	if err != nil {
		t.Fatalf("query before: %v", err)
	}
	if len(older) != 2 || older[0].SessionID != "sess-1" {
		t.Errorf("before filter returned %+v", older)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	recs, err = repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query after clear: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d summaries after clear", len(recs))
	}
}

func TestSessionSummaryTimeFilter(t *testing.T) {
	s := openTestStore(t)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	repo := s.SessionRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		clock = clock.Add(24 * time.Hour)
		if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: fmt.Sprint(i), Action: ActionEnd}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	recs, err := repo.QuerySessionSummaries(ctx, QueryOpts{From: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d, want 2", len(recs))
	}
	if !recs[1].Timestamp.Equal(time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("timestamp = %v", recs[1].Timestamp)
	}

	recs, err = repo.QuerySessionSummaries(ctx, QueryOpts{
		From: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 5, 3, 23, 59, 59, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("query range: %v", err)
	}
	if len(recs) != 2 || recs[0].SessionID != "1" || recs[1].SessionID != "0" {
		t.Errorf("range returned %+v", recs)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestMigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wb.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		if err := s.ProgressRepo().Save(context.Background(), []byte("{}")); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		s.Close()
	}

	var mode string
	s, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WORDBUDDY_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	want := filepath.Join(dir, "wordbuddy", "wordbuddy.db")
	if p != want {
		t.Errorf("path = %q, want %q", p, want)
	}
	if _, err := os.Stat(filepath.Dir(p)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}

	explicit := filepath.Join(dir, "custom", "x.db")
	t.Setenv("WORDBUDDY_DB", explicit)
	p, err = DefaultDBPath()
	if err != nil || p != explicit {
		t.Errorf("env override = %q, %v", p, err)
	}
}

package reminder

import (
	"io"
	"log/slog"
	"testing"

	"github.com/abhisek/wordbuddy/internal/progress"
)

type fakeSource struct {
	rec   progress.Record
	today string
}

func (f fakeSource) Snapshot() progress.Record { return f.rec }
func (f fakeSource) Today() string             { return f.today }

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		streak int
		last   string
		want   bool
	}{
		{"never studied", 0, "", false},
		{"studied today", 3, "2024-01-02", false},
		{"streak at risk", 3, "2024-01-01", true},
		{"gap already broken", 7, "2023-12-29", false},
		{"unreadable date", 3, "yesterday", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := progress.Default()
			rec.Streak = tt.streak
			rec.LastStudyDate = tt.last

			var got []Notice
			r, err := New("20:00", fakeSource{rec: rec, today: "2024-01-02"}, func(n Notice) { got = append(got, n) }, discard())
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			if sent := r.Check(); sent != tt.want {
				t.Errorf("Check = %v, want %v", sent, tt.want)
			}
			if tt.want && (len(got) != 1 || got[0].Streak != tt.streak) {
				t.Errorf("notices = %v", got)
			}
		})
	}
}

func TestNew_Schedules(t *testing.T) {
	r, err := New("07:30", fakeSource{rec: progress.Default()}, func(Notice) {}, discard())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	r.Start()
	defer r.Stop()

	next := r.NextRun()
	if next.IsZero() {
		t.Fatal("no next run")
	}
	if next.Hour() != 7 || next.Minute() != 30 {
		t.Errorf("next run = %v, want 07:30", next)
	}
}

func TestNew_BadTime(t *testing.T) {
	if _, err := New("7pm", fakeSource{}, func(Notice) {}, discard()); err == nil {
		t.Error("expected error for malformed time")
	}
}

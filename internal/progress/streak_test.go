package progress

import "testing"

func TestUpdateStreak(t *testing.T) {
	tests := []struct {
		name       string
		last       string
		streak     int
		today      string
		wantStreak int
	}{
		{"first study", "", 0, "2024-01-01", 1},
		{"same day", "2024-01-01", 5, "2024-01-01", 5},
		{"next day", "2024-01-01", 5, "2024-01-02", 6},
		{"gap resets", "2024-01-01", 5, "2024-01-05", 1},
		{"month boundary", "2024-01-31", 2, "2024-02-01", 3},
		{"leap day", "2024-02-28", 2, "2024-02-29", 3},
		{"clock went backwards", "2024-01-05", 4, "2024-01-04", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Default()
			r.LastStudyDate = tt.last
			r.Streak = tt.streak
			UpdateStreak(&r, tt.today)
			if r.Streak != tt.wantStreak {
				t.Errorf("Streak = %d, want %d", r.Streak, tt.wantStreak)
			}
			if r.LastStudyDate != tt.today {
				t.Errorf("LastStudyDate = %q, want %q", r.LastStudyDate, tt.today)
			}
		})
	}
}

package progress

import "time"

// DateLayout is the calendar-date format used for LastStudyDate.
const DateLayout = "2006-01-02"

// DateOf returns the local calendar date of t.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// UpdateStreak applies one day of activity on today (YYYY-MM-DD) to r.
// Several answers on the same day count once; a gap of more than one day,
// or a clock that moved backwards, starts a new streak.
func UpdateStreak(r *Record, today string) {
	if r.LastStudyDate == "" {
		r.Streak = 1
		r.LastStudyDate = today
		return
	}
	if r.LastStudyDate == today {
		return
	}
	if daysBetween(r.LastStudyDate, today) == 1 {
		r.Streak++
	} else {
		r.Streak = 1
	}
	r.LastStudyDate = today
}

// daysBetween returns the whole number of days from a to b, or 0 when
// either date does not parse.
func daysBetween(a, b string) int {
	ta, err := time.Parse(DateLayout, a)
	if err != nil {
		return 0
	}
	tb, err := time.Parse(DateLayout, b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

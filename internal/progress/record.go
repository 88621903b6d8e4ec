package progress

import (
	"math"
	"slices"

	"github.com/abhisek/wordbuddy/internal/badges"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

const (
	xpCorrect  = 10
	xpWrong    = 2
	xpPerLevel = 100
)

// CategoryStats counts answers within one category.
type CategoryStats struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// Record is the learner's durable progress. Field names in JSON match the
// persisted document format.
type Record struct {
	Total         int                              `json:"total"`
	Correct       int                              `json:"correct"`
	Streak        int                              `json:"streak"`
	LastStudyDate string                           `json:"lastStudy"`
	XP            int                              `json:"xp"`
	CorrectStreak int                              `json:"correctStreak"`
	Badges        []badges.ID                      `json:"badges"`
	Category      map[vocab.Category]CategoryStats `json:"category"`
}

// Default returns a fresh record with every category present.
func Default() Record {
	cats := make(map[vocab.Category]CategoryStats, 3)
	for _, c := range vocab.AllCategories() {
		cats[c] = CategoryStats{}
	}
	return Record{
		Badges:   []badges.ID{},
		Category: cats,
	}
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.Badges = slices.Clone(r.Badges)
	if out.Badges == nil {
		out.Badges = []badges.ID{}
	}
	out.Category = make(map[vocab.Category]CategoryStats, len(r.Category))
	for k, v := range r.Category {
		out.Category[k] = v
	}
	return out
}

// Level is 1 for 0-99 XP, 2 for 100-199 XP, and so on.
func (r Record) Level() int {
	return r.XP/xpPerLevel + 1
}

// XPInLevel is the XP earned inside the current level.
func (r Record) XPInLevel() int {
	return r.XP % xpPerLevel
}

// Accuracy is the lifetime accuracy as a rounded percentage, 0 before any answer.
func (r Record) Accuracy() int {
	return percent(r.Correct, r.Total)
}

// CategoryAccuracy is the rounded accuracy percentage within c.
func (r Record) CategoryAccuracy(c vocab.Category) int {
	st := r.Category[c]
	return percent(st.Correct, st.Total)
}

// HasBadge reports whether the badge has been earned.
func (r Record) HasBadge(id badges.ID) bool {
	return badges.Has(r.Badges, id)
}

// StudiedOn reports whether an answer was recorded on the given date (YYYY-MM-DD).
func (r Record) StudiedOn(date string) bool {
	return r.LastStudyDate != "" && r.LastStudyDate == date
}

func (r Record) facts() badges.Facts {
	totals := make(map[vocab.Category]int, len(r.Category))
	for c, st := range r.Category {
		totals[c] = st.Total
	}
	return badges.Facts{
		Total:         r.Total,
		CorrectStreak: r.CorrectStreak,
		XP:            r.XP,
		CategoryTotal: totals,
	}
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

package progress

import (
	"math"
	"time"

	"github.com/tidwall/gjson"

	"github.com/abhisek/wordbuddy/internal/badges"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

// Merge decodes a persisted progress document over the defaults field by
// field. A field that is missing keeps its default; a field with the wrong
// type or an out-of-range value also keeps its default and is reported in
// fallbacks. Unknown fields are ignored. A document that is not valid JSON
// yields the defaults with fallbacks = ["*"].
func Merge(raw []byte) (rec Record, fallbacks []string) {
	rec = Default()
	if len(raw) == 0 {
		return rec, nil
	}
	if !gjson.ValidBytes(raw) {
		return rec, []string{"*"}
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return rec, []string{"*"}
	}

	count := func(path string, dst *int) {
		v := doc.Get(path)
		if !v.Exists() {
			return
		}
		n, ok := asCount(v)
		if !ok {
			fallbacks = append(fallbacks, path)
			return
		}
		*dst = n
	}

	count("total", &rec.Total)
	count("correct", &rec.Correct)
	count("streak", &rec.Streak)
	count("xp", &rec.XP)
	count("correctStreak", &rec.CorrectStreak)

	if v := doc.Get("lastStudy"); v.Exists() {
		if isDate(v) {
			rec.LastStudyDate = v.Str
		} else {
			fallbacks = append(fallbacks, "lastStudy")
		}
	}

	if v := doc.Get("badges"); v.Exists() {
		if v.IsArray() {
			for _, b := range v.Array() {
				if b.Type == gjson.String && !badges.Has(rec.Badges, badges.ID(b.Str)) {
					rec.Badges = append(rec.Badges, badges.ID(b.Str))
				}
			}
		} else {
			fallbacks = append(fallbacks, "badges")
		}
	}

	for _, c := range vocab.AllCategories() {
		st := rec.Category[c]
		count("category."+string(c)+".total", &st.Total)
		count("category."+string(c)+".correct", &st.Correct)
		if st.Correct > st.Total {
			fallbacks = append(fallbacks, "category."+string(c))
			st = CategoryStats{}
		}
		rec.Category[c] = st
	}

	if rec.Correct > rec.Total {
		fallbacks = append(fallbacks, "correct")
		rec.Correct = 0
	}
	if rec.LastStudyDate != "" && rec.Streak < 1 {
		fallbacks = append(fallbacks, "streak")
		rec.Streak = 1
	}
	return rec, fallbacks
}

// asCount accepts a non-negative integral JSON number.
func asCount(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	if v.Num < 0 || v.Num != math.Trunc(v.Num) || v.Num > math.MaxInt32 {
		return 0, false
	}
	return int(v.Num), true
}

// isDate accepts an empty string or a YYYY-MM-DD date.
func isDate(v gjson.Result) bool {
	if v.Type != gjson.String {
		return false
	}
	if v.Str == "" {
		return true
	}
	_, err := time.Parse(DateLayout, v.Str)
	return err == nil
}

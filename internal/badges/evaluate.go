package badges

import "github.com/abhisek/wordbuddy/internal/vocab"

const (
	tenCorrectThreshold = 10
	xpThreshold         = 100
	categoryThreshold   = 20
)

// Facts is the slice of progress state badge rules look at.
type Facts struct {
	Total         int
	CorrectStreak int
	XP            int
	CategoryTotal map[vocab.Category]int
}

// Evaluate returns every badge whose threshold is currently met. Rules are
// level checks, not edge triggers, so evaluating the same facts twice gives
// the same result. The category rule only looks at the category that was
// just answered; an empty or unknown category skips it.
func Evaluate(f Facts, answered vocab.Category) []ID {
	var earned []ID
	if f.Total > 0 {
		earned = append(earned, FirstStudy)
	}
	if f.CorrectStreak >= tenCorrectThreshold {
		earned = append(earned, TenCorrect)
	}
	if f.XP >= xpThreshold {
		earned = append(earned, XP100)
	}
	if answered.Valid() && f.CategoryTotal[answered] >= categoryThreshold {
		earned = append(earned, CategoryBadge(answered))
	}
	return earned
}

// Merge adds earned badges that are not already held, preserving the order
// of held. It returns the merged set and the ids that were newly added.
func Merge(held, earned []ID) (merged, added []ID) {
	merged = append([]ID(nil), held...)
	have := make(map[ID]bool, len(held))
	for _, id := range held {
		have[id] = true
	}
	for _, id := range earned {
		if have[id] {
			continue
		}
		have[id] = true
		merged = append(merged, id)
		added = append(added, id)
	}
	return merged, added
}

// Has reports whether id is in set.
func Has(set []ID, id ID) bool {
	for _, s := range set {
		if s == id {
			return true
		}
	}
	return false
}

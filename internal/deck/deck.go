// Package deck holds the sampling primitives shared by flashcards and the
// quiz, and the flashcard browser.
package deck

import (
	"slices"
	"strconv"

	"github.com/abhisek/wordbuddy/internal/vocab"
)

// All is the filter wildcard for category and level.
const All = "all"

// Rand is the randomness source used for shuffling. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Shuffle(n int, swap func(i, j int))
}

// Filter returns the items matching category and level, in pool order.
// Either argument may be All.
func Filter(pool []vocab.Item, category, level string) []vocab.Item {
	out := make([]vocab.Item, 0, len(pool))
	for _, it := range pool {
		if category != All && category != "" && string(it.Category) != category {
			continue
		}
		if level != All && level != "" && strconv.Itoa(it.Level) != level {
			continue
		}
		out = append(out, it)
	}
	return out
}

// SortUnknownFirst places items not marked known before known ones. The
// sort is stable, so order within each group is kept.
func SortUnknownFirst(list []vocab.Item, known map[string]bool) {
	slices.SortStableFunc(list, func(a, b vocab.Item) int {
		return rank(known[a.ID]) - rank(known[b.ID])
	})
}

func rank(known bool) int {
	if known {
		return 1
	}
	return 0
}

// Shuffle returns a uniformly permuted copy of list.
func Shuffle(rng Rand, list []vocab.Item) []vocab.Item {
	out := slices.Clone(list)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

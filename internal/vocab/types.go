package vocab

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category groups vocabulary by the context it is used in.
type Category string

const (
	CategoryDaily    Category = "daily"
	CategoryBusiness Category = "business"
	CategoryIT       Category = "it"
)

// ErrUnknownCategory is returned when a category name is not one of the known categories.
var ErrUnknownCategory = errors.New("vocab: unknown category")

// ErrInvalidPool is returned when a vocabulary file cannot be turned into a pool.
var ErrInvalidPool = errors.New("vocab: invalid vocabulary pool")

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{CategoryDaily, CategoryBusiness, CategoryIT}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryDaily, CategoryBusiness, CategoryIT:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryDaily:
		return "Daily"
	case CategoryBusiness:
		return "Business"
	case CategoryIT:
		return "IT"
	default:
		return string(c)
	}
}

// Tag returns the upper-cased category tag shown on a flashcard.
func (c Category) Tag() string {
	return cases.Upper(language.Und).String(string(c))
}

// ParseCategory parses a category name.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Item is a single vocabulary entry. Items are read-only once loaded.
type Item struct {
	ID        string   `json:"id"`
	EN        string   `json:"en"`
	JA        string   `json:"ja"`
	ExampleEN string   `json:"example_en"`
	Category  Category `json:"category"`
	Level     int      `json:"level"`
}

// Pool is an ordered vocabulary pool.
type Pool []Item

// ByID returns the item with the given id.
func (p Pool) ByID(id string) (Item, bool) {
	for _, it := range p {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// CountByCategory returns the number of items per category.
func (p Pool) CountByCategory() map[Category]int {
	counts := make(map[Category]int, 3)
	for _, it := range p {
		counts[it.Category]++
	}
	return counts
}

// Levels returns the distinct levels present in the pool, ascending.
func (p Pool) Levels() []int {
	seen := make(map[int]bool)
	var levels []int
	for _, it := range p {
		if !seen[it.Level] {
			seen[it.Level] = true
			levels = append(levels, it.Level)
		}
	}
	slices.Sort(levels)
	return levels
}

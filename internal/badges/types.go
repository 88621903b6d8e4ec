package badges

import "github.com/abhisek/wordbuddy/internal/vocab"

// ID identifies an achievement badge.
type ID string

const (
	FirstStudy ID = "first-study"
	TenCorrect ID = "ten-correct"
	XP100      ID = "xp-100"
)

// CategoryBadge returns the badge for answering 20 questions in a category.
func CategoryBadge(c vocab.Category) ID {
	return ID(string(c) + "-20")
}

// Badge is a catalog entry.
type Badge struct {
	ID    ID
	Label string
}

// Catalog returns all badges in display order.
func Catalog() []Badge {
	return []Badge{
		{ID: FirstStudy, Label: "初回学習"},
		{ID: TenCorrect, Label: "10連続正解"},
		{ID: CategoryBadge(vocab.CategoryDaily), Label: "Daily 20問"},
		{ID: CategoryBadge(vocab.CategoryBusiness), Label: "Business 20問"},
		{ID: CategoryBadge(vocab.CategoryIT), Label: "IT 20問"},
		{ID: XP100, Label: "XP 100"},
	}
}

// Label returns the catalog label for id, or the id itself if unknown.
func (id ID) Label() string {
	for _, b := range Catalog() {
		if b.ID == id {
			return b.Label
		}
	}
	return string(id)
}

// Icon returns the display icon for the badge.
func (id ID) Icon() string {
	switch id {
	case FirstStudy:
		return "🌱"
	case TenCorrect:
		return "🔥"
	case XP100:
		return "⚡"
	default:
		return "🏅"
	}
}

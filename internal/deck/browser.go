package deck

import (
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/wordbuddy/internal/badges"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

// Mode controls which side of a card is shown before it is flipped.
type Mode string

const (
	ModeENJA Mode = "en-ja"
	ModeJAEN Mode = "ja-en"
	ModeBoth Mode = "both"
)

// ParseMode parses a card display mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeENJA, ModeJAEN, ModeBoth:
		return m, nil
	}
	return "", fmt.Errorf("unknown card mode %q", s)
}

// Recorder receives the answer events produced by marking cards.
type Recorder interface {
	RegisterAnswer(ctx context.Context, category vocab.Category, correct bool) []badges.ID
}

// Browser is a cursor over a filtered list of flashcards.
type Browser struct {
	pool     []vocab.Item
	state    CardState
	recorder Recorder
	rng      Rand

	list     []vocab.Item
	idx      int
	revealed bool
	mode     Mode
	category string
	level    string
}

// NewBrowser creates a browser over pool showing every card, unknown first.
// recorder may be nil.
func NewBrowser(pool []vocab.Item, state CardState, recorder Recorder, rng Rand) *Browser {
	b := &Browser{
		pool:     pool,
		state:    state.Clone(),
		recorder: recorder,
		rng:      rng,
		mode:     ModeENJA,
	}
	b.SetFilter(All, All)
	return b
}

// SetFilter rebuilds the list from the pool and returns to the first card.
func (b *Browser) SetFilter(category, level string) {
	b.category, b.level = category, level
	b.list = Filter(b.pool, category, level)
	SortUnknownFirst(b.list, b.state.Known)
	b.idx = 0
	b.revealed = false
	b.touch()
}

// Filter returns the active category and level filters.
func (b *Browser) Filter() (category, level string) {
	return b.category, b.level
}

// SetMode changes the display mode and hides the answer side again.
func (b *Browser) SetMode(m Mode) {
	b.mode = m
	b.revealed = false
}

// Mode returns the display mode.
func (b *Browser) Mode() Mode { return b.mode }

// Len returns the number of cards in the filtered list.
func (b *Browser) Len() int { return len(b.list) }

// Position returns the 1-based index of the current card, or 0 when empty.
func (b *Browser) Position() int {
	if len(b.list) == 0 {
		return 0
	}
	return b.idx + 1
}

// Current returns the card under the cursor.
func (b *Browser) Current() (vocab.Item, bool) {
	if len(b.list) == 0 {
		return vocab.Item{}, false
	}
	return b.list[b.idx], true
}

// Next moves forward, wrapping to the first card.
func (b *Browser) Next() {
	if len(b.list) == 0 {
		return
	}
	b.idx = (b.idx + 1) % len(b.list)
	b.revealed = false
	b.touch()
}

// Prev moves back, wrapping to the last card.
func (b *Browser) Prev() {
	if len(b.list) == 0 {
		return
	}
	b.idx = (b.idx - 1 + len(b.list)) % len(b.list)
	b.revealed = false
	b.touch()
}

// Seek moves to the card with id if it is in the filtered list.
func (b *Browser) Seek(id string) bool {
	for i, it := range b.list {
		if it.ID == id {
			b.idx = i
			b.revealed = false
			b.touch()
			return true
		}
	}
	return false
}

// Flip toggles the hidden side.
func (b *Browser) Flip() {
	b.revealed = !b.revealed
}

// Revealed reports whether the card has been flipped.
func (b *Browser) Revealed() bool { return b.revealed }

// Visible reports which sides of the current card are shown.
func (b *Browser) Visible() (front, back bool) {
	switch b.mode {
	case ModeJAEN:
		return b.revealed, true
	case ModeBoth:
		return true, true
	default:
		return true, b.revealed
	}
}

// Shuffle reorders the filtered list and returns to the first card.
func (b *Browser) Shuffle() {
	b.list = Shuffle(b.rng, b.list)
	b.idx = 0
	b.revealed = false
	b.touch()
}

// MarkKnown records the current card as known, counts it as a correct
// answer and advances. It returns any badges the answer earned.
func (b *Browser) MarkKnown(ctx context.Context) []badges.ID {
	return b.mark(ctx, true)
}

// MarkUnknown records the current card as not known, counts it as a wrong
// answer and advances.
func (b *Browser) MarkUnknown(ctx context.Context) []badges.ID {
	return b.mark(ctx, false)
}

func (b *Browser) mark(ctx context.Context, known bool) []badges.ID {
	it, ok := b.Current()
	if !ok {
		return nil
	}
	b.state.Known[it.ID] = known
	var earned []badges.ID
	if b.recorder != nil {
		earned = b.recorder.RegisterAnswer(ctx, it.Category, known)
	}
	b.Next()
	return earned
}

// ToggleFavorite adds or removes the current card from favorites and
// reports whether it is now a favorite.
func (b *Browser) ToggleFavorite() bool {
	it, ok := b.Current()
	if !ok {
		return false
	}
	if i := slices.Index(b.state.Favorites, it.ID); i >= 0 {
		b.state.Favorites = slices.Delete(b.state.Favorites, i, i+1)
		return false
	}
	b.state.Favorites = append(b.state.Favorites, it.ID)
	return true
}

// State returns a copy of the card state for persistence.
func (b *Browser) State() CardState {
	return b.state.Clone()
}

func (b *Browser) touch() {
	if it, ok := b.Current(); ok {
		b.state.LastCardID = it.ID
	}
}

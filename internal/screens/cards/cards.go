package cards

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbuddy/internal/deck"
	"github.com/abhisek/wordbuddy/internal/screen"
	"github.com/abhisek/wordbuddy/internal/ui/components"
	"github.com/abhisek/wordbuddy/internal/ui/layout"
	"github.com/abhisek/wordbuddy/internal/ui/theme"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

var modes = []deck.Mode{deck.ModeENJA, deck.ModeJAEN, deck.ModeBoth}

// CardsScreen browses flashcards.
type CardsScreen struct {
	svc        *screen.Services
	browser    *deck.Browser
	categories []string
	levels     []string
}

var _ screen.Screen = (*CardsScreen)(nil)
var _ screen.KeyHintProvider = (*CardsScreen)(nil)

// New creates a CardsScreen resuming at the last viewed card.
func New(svc *screen.Services) *CardsScreen {
	return newWithRand(svc, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

func newWithRand(svc *screen.Services, rng deck.Rand) *CardsScreen {
	state := svc.LoadCards(context.Background())
	b := deck.NewBrowser(svc.Pool, state, svc.Progress, rng)
	b.SetMode(svc.Settings.CardMode)
	b.Seek(state.LastCardID)

	c := &CardsScreen{
		svc:        svc,
		browser:    b,
		categories: []string{deck.All},
		levels:     []string{deck.All},
	}
	for _, cat := range vocab.AllCategories() {
		c.categories = append(c.categories, string(cat))
	}
	for _, l := range svc.Pool.Levels() {
		c.levels = append(c.levels, strconv.Itoa(l))
	}
	return c
}

func (c *CardsScreen) Init() tea.Cmd {
	return nil
}

func (c *CardsScreen) Title() string {
	return "Flashcards"
}

func (c *CardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "y/n", Description: "Known/Not yet"},
		{Key: "f", Description: "Favorite"},
		{Key: "r", Description: "Shuffle"},
		{Key: "c/v/m", Description: "Category/Level/Mode"},
		{Key: "s", Description: "Speak"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}
	ctx := context.Background()

	switch kmsg.String() {
	case "space", " ", "enter":
		c.browser.Flip()
		return c, nil
	case "right", "l":
		c.browser.Next()
	case "left", "h":
		c.browser.Prev()
	case "y":
		earned := c.browser.MarkKnown(ctx)
		c.save(ctx)
		return c, screen.AnnounceBadges(earned)
	case "n":
		earned := c.browser.MarkUnknown(ctx)
		c.save(ctx)
		return c, screen.AnnounceBadges(earned)
	case "f":
		c.browser.ToggleFavorite()
	case "r":
		c.browser.Shuffle()
	case "c":
		cat, level := c.browser.Filter()
		c.browser.SetFilter(cycle(c.categories, cat), level)
	case "v":
		cat, level := c.browser.Filter()
		c.browser.SetFilter(cat, cycle(c.levels, level))
	case "m":
		c.cycleMode(ctx)
		return c, nil
	case "s":
		if it, ok := c.browser.Current(); ok {
			c.svc.Speak(it.EN)
		}
		return c, nil
	default:
		return c, nil
	}
	c.save(ctx)
	return c, nil
}

func (c *CardsScreen) save(ctx context.Context) {
	c.svc.SaveCards(ctx, c.browser.State())
}

func (c *CardsScreen) cycleMode(ctx context.Context) {
	next := deck.Mode(cycle(modeNames(), string(c.browser.Mode())))
	c.browser.SetMode(next)

	s := *c.svc.Settings
	s.CardMode = next
	if err := c.svc.SaveSettings(ctx, s); err != nil {
		c.svc.Logger.Warn("card mode not saved", "error", err)
	}
}

func modeNames() []string {
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = string(m)
	}
	return out
}

// cycle returns the value after cur in values, wrapping around.
func cycle(values []string, cur string) string {
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
}

func (c *CardsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	cat, level := c.browser.Filter()

	filters := theme.Hint.Render(fmt.Sprintf("category: %s   level: %s   mode: %s",
		cat, level, c.browser.Mode()))

	it, ok := c.browser.Current()
	if !ok {
		body := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("No cards match this filter.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center, filters, "", body))
	}

	st := c.browser.State()
	var marks []string
	if st.Known[it.ID] {
		marks = append(marks, theme.Correct.Render("✓ known"))
	}
	if st.IsFavorite(it.ID) {
		marks = append(marks, lipgloss.NewStyle().Foreground(theme.Highlight).Render("★"))
	}
	tag := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("[%s] Lv%d", it.Category.Tag(), it.Level))
	top := tag
	if len(marks) > 0 {
		top += "   " + strings.Join(marks, " ")
	}

	front, back := c.browser.Visible()
	hidden := theme.Hint.Render("(space to flip)")
	word := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	en, ja := hidden, hidden
	if front {
		en = word.Render(it.EN)
	}
	if back {
		ja = word.Render(it.JA)
	}
	lines := []string{top, "", en, "", ja}
	if front && it.ExampleEN != "" {
		lines = append(lines, "", theme.Hint.Render(it.ExampleEN))
	}

	card := components.Panel(strings.Join(lines, "\n"), cw)
	pos := theme.Subtitle.Render(fmt.Sprintf("%d / %d   known %d", c.browser.Position(), c.browser.Len(), st.KnownCount()))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, filters, "", card, "", pos))
}

package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbuddy/internal/ui/theme"
)

// Choice is a multiple-choice selector. The component does not know the
// answer until Reveal is called.
type Choice struct {
	Options  []string
	Selected int
	// Chosen is the index picked with enter or a number key, -1 before.
	Chosen   int
	answer   string
	revealed bool
}

// NewChoice creates a selector over options.
func NewChoice(options []string) Choice {
	return Choice{Options: options, Chosen: -1}
}

// Update handles cursor keys, enter and the number keys 1-9.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Chosen >= 0 || len(c.Options) == 0 {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Chosen = c.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				c.Selected = i
				c.Chosen = i
			}
		}
	}
	return c, nil
}

// Picked returns the chosen option text.
func (c Choice) Picked() (string, bool) {
	if c.Chosen < 0 {
		return "", false
	}
	return c.Options[c.Chosen], true
}

// Reveal marks the correct answer so the view can color the options.
func (c *Choice) Reveal(answer string) {
	c.answer = answer
	c.revealed = true
}

// View renders the options as a numbered list.
func (c Choice) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case c.revealed && opt == c.answer:
			style = theme.Correct
		case c.revealed && i == c.Chosen:
			style = theme.Incorrect
		case c.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

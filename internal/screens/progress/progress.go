package progress

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbuddy/internal/badges"
	prog "github.com/abhisek/wordbuddy/internal/progress"
	"github.com/abhisek/wordbuddy/internal/screen"
	"github.com/abhisek/wordbuddy/internal/ui/components"
	"github.com/abhisek/wordbuddy/internal/ui/layout"
	"github.com/abhisek/wordbuddy/internal/ui/theme"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

// ProgressScreen shows lifetime statistics, badges and the ranking board.
type ProgressScreen struct {
	svc    *screen.Services
	record prog.Record
	name   string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a ProgressScreen from the current progress snapshot.
func New(svc *screen.Services) *ProgressScreen {
	return &ProgressScreen{
		svc:    svc,
		record: svc.Progress.Snapshot(),
		name:   svc.Settings.DisplayName(),
	}
}

func (p *ProgressScreen) Init() tea.Cmd {
	return nil
}

func (p *ProgressScreen) Title() string {
	return "Progress"
}

func (p *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	r := p.record

	heading := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	big := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)

	var b strings.Builder
	b.WriteString(big.Render(fmt.Sprintf("Lv. %d", r.Level())))
	b.WriteString("   ")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d / 100 XP", r.XPInLevel())))
	b.WriteString("\n")
	xp := components.NewProgressBar("", r.XPInLevel(), cw)
	xp.ShowPercent = false
	xp.Fill = theme.Highlight
	b.WriteString(xp.View())
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n\n",
		stat("accuracy", fmt.Sprintf("%d%%", r.Accuracy())),
		stat("answered", fmt.Sprint(r.Total)),
		stat("correct", fmt.Sprint(r.Correct)),
		stat("streak", fmt.Sprintf("%d days", r.Streak)),
	))

	b.WriteString(heading.Render("By category"))
	b.WriteString("\n")
	for _, c := range vocab.AllCategories() {
		bar := components.NewProgressBar(c.DisplayName(), r.CategoryAccuracy(c), cw)
		bar.LabelWidth = 10
		b.WriteString(bar.View())
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d answered", r.Category[c].Total)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(heading.Render("Badges"))
	b.WriteString("\n")
	b.WriteString(renderBadges(r))
	b.WriteString("\n\n")

	b.WriteString(heading.Render("Ranking"))
	b.WriteString("\n")
	b.WriteString(renderRanking(prog.Ranking(p.name, r.XP)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Width(cw+12).Render(b.String()))
}

func stat(label, value string) string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(value) + " " +
		theme.Hint.Render(label)
}

func renderBadges(r prog.Record) string {
	var parts []string
	for _, badge := range badges.Catalog() {
		if r.HasBadge(badge.ID) {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Highlight).
				Render(badge.ID.Icon()+" "+badge.Label))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Border).
				Render("🔒 "+badge.Label))
		}
	}
	return strings.Join(parts, "   ")
}

func renderRanking(entries []prog.RankEntry) string {
	var b strings.Builder
	for i, e := range entries {
		line := fmt.Sprintf("%d. %-16s %5d XP", i+1, e.Name, e.Score)
		if e.You {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

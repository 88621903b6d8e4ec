package quiz

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbuddy/internal/deck"
	qz "github.com/abhisek/wordbuddy/internal/quiz"
	"github.com/abhisek/wordbuddy/internal/ui/components"
	"github.com/abhisek/wordbuddy/internal/ui/theme"
	"github.com/abhisek/wordbuddy/internal/vocab"
)

func (s *QuizScreen) View(width, height int) string {
	var body string
	switch s.stage {
	case stageRunning:
		body = s.renderQuestion(width)
	case stageConfirmQuit:
		body = renderQuitConfirm()
	case stageResult:
		body = s.renderResult(width)
	default:
		body = s.renderSetup(width)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *QuizScreen) renderSetup(width int) string {
	cw := components.ContentWidth(width)
	rows := []struct {
		label string
		value string
	}{
		{"Mode", s.modes[s.mode].DisplayName()},
		{"Direction", directionLabel(s.directions[s.direction])},
		{"Category", categoryLabel(s.categories[s.category])},
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Quiz setup"))
	b.WriteString("\n\n")
	for i, r := range rows {
		label := lipgloss.NewStyle().Width(12).Foreground(theme.TextDim).Render(r.label)
		value := "  " + r.value + "  "
		if i == s.row {
			value = theme.Selected.Render("◂ " + r.value + " ▸")
		} else {
			value = theme.Unselected.Render(value)
		}
		b.WriteString(label + value + "\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center,
		components.Button("Start", s.row == rowStart, 16)))
	return components.Panel(b.String(), cw)
}

func directionLabel(d qz.Direction) string {
	if d == qz.DirJAEN {
		return "日本語 → English"
	}
	return "English → 日本語"
}

func categoryLabel(c string) string {
	if c == deck.All {
		return "All"
	}
	return vocab.Category(c).DisplayName()
}

func (s *QuizScreen) renderQuestion(width int) string {
	cw := components.ContentWidth(width)
	q := s.question
	st := s.svc.Quiz.Snapshot()

	progress := fmt.Sprintf("Question %d", q.Number)
	if st.Setup.Mode == qz.ModeFixed || st.Review {
		progress = fmt.Sprintf("Question %d / %d", q.Number, q.Count)
	}
	status := theme.Hint.Render(progress) + "   " +
		theme.Correct.Render(fmt.Sprintf("✓ %d", st.CorrectCount))
	if s.svc.Quiz.Timed() {
		status += "   " + renderTimer(s.svc.Quiz.Remaining())
	}

	var b strings.Builder
	b.WriteString(status)
	b.WriteString("\n\n")
	tag := lipgloss.NewStyle().Foreground(theme.Secondary).Render("[" + q.Item.Category.Tag() + "]")
	b.WriteString(tag + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())

	if s.last != nil {
		b.WriteString("\n")
		b.WriteString(renderFeedback(*s.last))
	}

	return lipgloss.NewStyle().Width(cw).Render(b.String())
}

func renderTimer(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	style := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	if secs <= 10 {
		style = style.Foreground(theme.Error)
	}
	return style.Render(fmt.Sprintf("⏱ %ds", secs))
}

func renderFeedback(fb qz.Feedback) string {
	if fb.Correct {
		return theme.Correct.Render("✓ Correct! " + fb.Item.EN + " = " + fb.Item.JA)
	}
	return theme.Incorrect.Render("✗ " + fb.Item.EN + " = " + fb.Item.JA)
}

func renderQuitConfirm() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("End this quiz?"),
		"",
		theme.Hint.Render("y: end and see the result    n: keep going"),
	)
}

func (s *QuizScreen) renderResult(width int) string {
	cw := components.ContentWidth(width)
	sum := s.summary

	title := "Quiz complete!"
	if sum.Review {
		title = "Review complete!"
	}

	big := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statBlock(big.Render(fmt.Sprintf("%d%%", sum.AccuracyPercent)), dim.Render("accuracy")),
		statBlock(big.Render(sum.CorrectFraction), dim.Render("correct")),
		statBlock(big.Render(fmt.Sprintf("%ds", sum.AvgSeconds)), dim.Render("per question")),
	)

	sections := []string{theme.Title.Width(cw).Render(title), "", stats}

	if len(sum.Missed) > 0 {
		sections = append(sections, "", dim.Render("To review"))
		for _, it := range sum.Missed {
			sections = append(sections, theme.Incorrect.Render(it.EN+" / "+it.JA))
		}
	} else {
		sections = append(sections, "", theme.Correct.Render("No mistakes!"))
	}

	sections = append(sections, "", components.ButtonRow(resultButtons, s.button, 12))
	if s.notice != "" {
		sections = append(sections, theme.Hint.Render(s.notice))
	}
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

func statBlock(value, label string) string {
	return lipgloss.NewStyle().Width(16).Align(lipgloss.Center).
		Render(value + "\n" + label)
}

package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sched "github.com/abhisek/kanaz/internal/drill"
	"github.com/abhisek/kanaz/internal/ui/layout"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

func (s *DrillScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.showingQuit:
		return renderQuitConfirm(width)
	}
	return s.renderRound(width)
}

// renderRound draws the info line, the kana card, the answer input and
// any feedback for the current round.
func (s *DrillScreen) renderRound(width int) string {
	var b strings.Builder

	sum := s.sess.Summary()
	info := fmt.Sprintf("round %d   %s %d   %s %d   %s %d",
		sum.Rounds+1,
		theme.Correct.Render("✓"), sum.Corrects,
		theme.Skipped.Render("→"), sum.Skips,
		theme.Incorrect.Render("✗"), sum.Mistakes,
	)
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), info))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.KanaCard.Render(s.card.Kana)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	b.WriteString("\n\n")

	if s.feedback != nil {
		b.WriteString(s.renderFeedback(width))
	}

	if s.warnMsg != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Warning), s.warnMsg))
	}

	return b.String()
}

func (s *DrillScreen) renderFeedback(width int) string {
	fb := s.feedback
	var lines []string

	switch fb.Outcome {
	case sched.Correct:
		lines = append(lines, theme.Correct.Render(
			fmt.Sprintf("Correct! %s is %s  (%.1fs)", fb.Card.Kana, fb.Card.Roumaji, fb.Elapsed.Seconds())))
		if fb.Streak > 1 {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Render(
				fmt.Sprintf("★ %d in a row", fb.Streak)))
		}
	case sched.Skipped:
		lines = append(lines, theme.Skipped.Render(
			fmt.Sprintf("Skipped. %s is %s", fb.Card.Kana, fb.Card.Roumaji)))
	case sched.Incorrect:
		lines = append(lines, theme.Incorrect.Render(
			fmt.Sprintf("Not quite, %q is wrong. Try again.", strings.TrimSpace(fb.Answer))))
		lines = append(lines, theme.Hint.Render("type skip to reveal the answer"))
	}

	if fb.StreakBroken > 1 {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("streak of %d broken", fb.StreakBroken)))
	}
	if fb.Terminal {
		lines = append(lines, "", theme.Hint.Render("Press any key for the next kana..."))
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, l)
	}
	return strings.Join(out, "\n")
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(width, theme.Body.Bold(true), "End session?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Subtitle, "Your progress is already saved."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error),
		fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

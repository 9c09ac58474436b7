package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/difficulty"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/session"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	title := "Session complete!"
	if sum.Rounds == 0 {
		title = "No rounds this time"
	}
	b.WriteString(layout.Centered(width, theme.Title, title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(layout.Centered(width, theme.Subtitle,
		fmt.Sprintf("%s   Duration: %d:%02d", difficulty.Tier(sum.Tier), mins, secs)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Rounds: %d     Correct: %d     Skipped: %d     Mistakes: %d",
		sum.Rounds, sum.Corrects, sum.Skips, sum.Mistakes)
	b.WriteString(layout.Centered(width, theme.Body, stats))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Accuracy", sum.Accuracy, true, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if sum.BestStreak > 0 {
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
			fmt.Sprintf("★ Best streak: %d", sum.BestStreak)))
		b.WriteString("\n")
	}

	return b.String()
}

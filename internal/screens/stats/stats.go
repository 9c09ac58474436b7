package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/drill"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/stats"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

const recentSessions = 5

type statsLoadedMsg struct {
	Report stats.Report
	Err    error
}

// StatsScreen shows the card table, per-type accuracy and recent sessions.
type StatsScreen struct {
	scheduler *drill.Scheduler
	eventRepo store.EventRepo
	report    stats.Report
	offset    int
	pageSize  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen. eventRepo may be nil.
func New(scheduler *drill.Scheduler, eventRepo store.EventRepo) *StatsScreen {
	return &StatsScreen{
		scheduler: scheduler,
		eventRepo: eventRepo,
		pageSize:  10,
	}
}

func (s *StatsScreen) Init() tea.Cmd {
	// Card rows are read now, on the update goroutine; only the event
	// queries run in the command.
	cards := s.scheduler.Cards()
	recs := s.scheduler.Records().Clone()
	events := s.eventRepo
	return func() tea.Msg {
		rep, err := stats.Build(context.Background(), cards, recs, events, recentSessions)
		return statsLoadedMsg{Report: rep, Err: err}
	}
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "PgUp/PgDn", Description: "Page"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.report = msg.Report
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.scroll(-1)
		case "down", "j":
			s.scroll(1)
		case "pgup":
			s.scroll(-s.pageSize)
		case "pgdown", " ":
			s.scroll(s.pageSize)
		case "home", "g":
			s.offset = 0
		}
	}
	return s, nil
}

func (s *StatsScreen) scroll(delta int) {
	maxOffset := max(len(s.report.Cards)-s.pageSize, 0)
	s.offset = min(max(s.offset+delta, 0), maxOffset)
}

func (s *StatsScreen) View(width, height int) string {
	if !s.loaded {
		return layout.Centered(width, theme.Subtitle, "\n\n  Loading statistics...")
	}

	// Table chrome is 4 lines; leave room for the side panel text below
	// on short terminals.
	s.pageSize = max(height-4, 3)
	if layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		s.pageSize = max(height-12, 3)
	}
	s.scroll(0)

	table := components.CardTable(s.report.Cards, s.offset, s.pageSize)

	var side strings.Builder
	side.WriteString(theme.TableHeader.Render("Accuracy by type"))
	side.WriteString("\n\n")
	side.WriteString(components.TypeAccuracyBars(s.report.Types, 40))
	side.WriteString("\n\n")
	side.WriteString(theme.TableHeader.Render("Recent sessions"))
	side.WriteString("\n\n")
	side.WriteString(components.SessionLines(s.report.Sessions))
	if s.errMsg != "" {
		side.WriteString("\n\n")
		side.WriteString(theme.Incorrect.Render("Event log: " + s.errMsg))
	}

	footer := theme.Hint.Render(fmt.Sprintf("rows %d-%d of %d, heaviest first",
		min(s.offset+1, len(s.report.Cards)),
		min(s.offset+s.pageSize, len(s.report.Cards)),
		len(s.report.Cards)))

	var body string
	if layout.IsCompactWidth(width) || lipgloss.Width(table)+44 > width {
		body = lipgloss.JoinVertical(lipgloss.Left, table, footer, "", side.String())
	} else {
		left := lipgloss.JoinVertical(lipgloss.Left, table, footer)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", side.String())
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

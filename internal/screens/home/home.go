package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/difficulty"
	"github.com/abhisek/kanaz/internal/drill"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	drillscreen "github.com/abhisek/kanaz/internal/screens/drill"
	statsscreen "github.com/abhisek/kanaz/internal/screens/stats"
	"github.com/abhisek/kanaz/internal/session"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

const bannerArt = `╭─────────────╮
│   か  な    │
╰─────────────╯`

// Options wires the home screen to the running drill engine.
type Options struct {
	Scheduler   *drill.Scheduler
	Events      store.EventRepo
	DefaultTier difficulty.Tier

	// NewSession starts a session for the chosen tier.
	NewSession func(difficulty.Tier) (*session.Session, error)

	Logger *zap.Logger
}

// startFailedMsg reports a session that could not be created.
type startFailedMsg struct{ err error }

// HomeScreen is the main menu: one entry per tier, stats and quit.
type HomeScreen struct {
	opts   Options
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	h := &HomeScreen{opts: opts}

	index := opts.Scheduler.Index()
	items := make([]components.MenuItem, 0, len(difficulty.Tiers)+2)
	for _, tier := range difficulty.Tiers {
		size := index.PoolSize(tier)
		items = append(items, components.MenuItem{
			Label:    tier.String(),
			Detail:   fmt.Sprintf("%d kana", size),
			Disabled: size < 2,
			Action:   h.startAction(tier),
		})
	}
	items = append(items,
		components.MenuItem{Label: "Statistics", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: statsscreen.New(opts.Scheduler, opts.Events)}
			}
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	h.menu = components.NewMenu(items)
	if i := int(opts.DefaultTier) - 1; i >= 0 && i < len(difficulty.Tiers) && !items[i].Disabled {
		h.menu.Selected = i
	}
	return h
}

func (h *HomeScreen) startAction(tier difficulty.Tier) func() tea.Cmd {
	return func() tea.Cmd {
		sess, err := h.opts.NewSession(tier)
		if err != nil {
			h.opts.Logger.Error("start session failed", zap.Int("tier", int(tier)), zap.Error(err))
			return func() tea.Msg { return startFailedMsg{err: err} }
		}
		scr := drillscreen.New(sess, h.opts.Logger)
		return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-5", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startFailedMsg:
		h.errMsg = msg.err.Error()
		return h, nil
	case tea.KeyMsg:
		h.errMsg = ""
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(bannerArt),
		theme.Subtitle.Render("hiragana drill"),
		"",
		h.renderOverview(),
		"",
		h.menu.View(),
	)
	if h.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render("Error: "+h.errMsg))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderOverview summarizes the record set: how many cards have been
// seen and which one is weighted heaviest.
func (h *HomeScreen) renderOverview() string {
	sched := h.opts.Scheduler
	cards := sched.Cards()

	practiced := 0
	heaviest, heaviestW := -1, 0.0
	for _, c := range cards {
		rec := sched.Record(c.ID)
		if rec == nil {
			continue
		}
		if rec.TimesPracticed > 0 || rec.Mistakes > 0 {
			practiced++
		}
		if rec.Weight > heaviestW {
			heaviest, heaviestW = c.ID, rec.Weight
		}
	}

	parts := []string{
		fmt.Sprintf("%d kana", len(cards)),
		fmt.Sprintf("%d practiced", practiced),
	}
	if heaviest >= 0 && practiced > 0 {
		parts = append(parts, fmt.Sprintf("hardest %s (%.2f)", cards[heaviest].Kana, heaviestW))
	}
	return theme.Hint.Render(strings.Join(parts, "  ·  "))
}

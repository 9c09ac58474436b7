package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/difficulty"
	"github.com/abhisek/kanaz/internal/drill"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/screens/home"
	"github.com/abhisek/kanaz/internal/screens/welcome"
	"github.com/abhisek/kanaz/internal/session"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/ui/layout"
)

// Options holds the dependencies the screens need.
type Options struct {
	Scheduler   *drill.Scheduler
	Events      store.EventRepo
	DefaultTier difficulty.Tier
	NewSession  func(difficulty.Tier) (*session.Session, error)
	Logger      *zap.Logger

	// SkipSplash starts on the home screen directly.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	logger *zap.Logger
	width  int
	height int
}

// newAppModel creates a new AppModel rooted at the splash or home screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	homeFactory := func() screen.Screen {
		return home.New(home.Options{
			Scheduler:   opts.Scheduler,
			Events:      opts.Events,
			DefaultTier: opts.DefaultTier,
			NewSession:  opts.NewSession,
			Logger:      opts.Logger,
		})
	}

	var root screen.Screen
	if opts.SkipSplash {
		root = homeFactory()
	} else {
		root = welcome.New(homeFactory)
	}
	return AppModel{
		router: router.New(root),
		logger: opts.Logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.logger.Debug("quit requested")
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the framed active screen for the current window size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()

	var status *layout.Status
	if p, ok := active.(screen.StatusProvider); ok {
		st := p.Status()
		status = &st
	}
	header := layout.RenderHeader(active.Title(), status, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

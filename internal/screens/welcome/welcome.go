package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	revealEvery  = 200 * time.Millisecond
	bannerAt     = 1200 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// splashKana are revealed one at a time above the banner.
var splashKana = []string{"あ", "か", "さ", "た", "な"}

type tickMsg time.Time

// WelcomeScreen shows a short splash before handing over to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with homeFactory's screen.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) revealed() int {
	return min(int(w.elapsed/revealEvery), len(splashKana))
}

func (w *WelcomeScreen) View(width, height int) string {
	kanaStyle := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true)
	pending := lipgloss.NewStyle().Foreground(theme.Border)

	row := make([]string, len(splashKana))
	for i, k := range splashKana {
		if i < w.revealed() {
			row[i] = kanaStyle.Render(k)
		} else {
			row[i] = pending.Render("・")
		}
	}
	sections := []string{strings.Join(row, "  ")}

	if w.elapsed >= bannerAt {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Render("hiragana, one kana at a time")
		sections = append(sections, "", RenderBanner(width), "", tagline)
	}

	sections = append(sections, "", theme.Hint.Render("press any key to continue"))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

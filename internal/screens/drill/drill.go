package drill

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/corpus"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/screens/summary"
	"github.com/abhisek/kanaz/internal/session"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
)

// DrillScreen runs rounds of a session: it shows a kana, reads the
// roumaji and reports how the answer was scored.
type DrillScreen struct {
	sess   *session.Session
	ctx    context.Context
	logger *zap.Logger

	input    components.TextInput
	card     corpus.Card
	feedback *session.Feedback

	showingQuit bool
	started     bool
	ended       bool
	errMsg      string
	warnMsg     string
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.StatusProvider = (*DrillScreen)(nil)
var _ screen.EscapeHandler = (*DrillScreen)(nil)

// New creates a DrillScreen for sess.
func New(sess *session.Session, logger *zap.Logger) *DrillScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DrillScreen{
		sess:   sess,
		ctx:    context.Background(),
		logger: logger,
		input:  newInput(),
	}
}

func newInput() components.TextInput {
	return components.NewTextInput("roumaji, or skip", true, 16)
}

func (s *DrillScreen) Init() tea.Cmd {
	if !s.started {
		s.started = true
		s.sess.Start(s.ctx)
		s.nextRound()
	}
	return s.input.Init()
}

func (s *DrillScreen) Title() string {
	return "Drill"
}

func (s *DrillScreen) HandlesEscape() bool {
	return true
}

func (s *DrillScreen) Status() layout.Status {
	return layout.Status{Tier: s.sess.Tier.String(), Streak: s.sess.Streak()}
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.showingQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.awaitingNext():
		return []layout.KeyHint{{Key: "any key", Description: "Next kana"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "skip", Description: "Reveal"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		return s.handleKey(kmsg)
	}

	// Cursor blink and paste go to the input while it is live.
	if s.acceptingInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, s.endSession(false)
	}

	if s.showingQuit {
		switch key {
		case "y", "Y":
			s.showingQuit = false
			return s, s.endSession(true)
		case "n", "N", "esc":
			s.showingQuit = false
		}
		return s, nil
	}

	if s.awaitingNext() {
		s.nextRound()
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuit = true
		return s, nil
	case "enter":
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit scores the typed answer. Empty input is ignored.
func (s *DrillScreen) submit() (screen.Screen, tea.Cmd) {
	answer := s.input.Value()
	if strings.TrimSpace(answer) == "" {
		return s, nil
	}

	fb, err := s.sess.Answer(s.ctx, answer)
	switch {
	case errors.Is(err, session.ErrSave):
		s.warnMsg = "Progress not saved: " + err.Error()
	case err != nil:
		s.logger.Error("answer failed", zap.Error(err))
		s.errMsg = err.Error()
		return s, nil
	default:
		s.warnMsg = ""
	}

	s.feedback = &fb
	if fb.Terminal {
		s.input.Submit(fb.Success)
	} else {
		s.input.Reset()
	}
	return s, nil
}

// nextRound clears feedback and draws the next card.
func (s *DrillScreen) nextRound() {
	s.feedback = nil
	s.input.Reset()

	card, err := s.sess.Next()
	if err != nil {
		s.logger.Error("next card failed", zap.Error(err))
		s.errMsg = err.Error()
		return
	}
	s.card = card
}

// endSession closes the session and shows the summary, or just goes
// back when there is nothing worth summarizing.
func (s *DrillScreen) endSession(showSummary bool) tea.Cmd {
	if s.ended {
		return nil
	}
	s.ended = true
	sum := s.sess.End(s.ctx)

	if !showSummary {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	scr := summary.New(sum)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: scr} }
}

// awaitingNext is true while a closed round's feedback is on screen.
func (s *DrillScreen) awaitingNext() bool {
	return s.feedback != nil && s.feedback.Terminal
}

func (s *DrillScreen) acceptingInput() bool {
	return s.errMsg == "" && !s.showingQuit && !s.awaitingNext() && !s.ended
}

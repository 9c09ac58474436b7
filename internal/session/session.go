package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/corpus"
	"github.com/abhisek/kanaz/internal/difficulty"
	"github.com/abhisek/kanaz/internal/drill"
	"github.com/abhisek/kanaz/internal/progress"
	"github.com/abhisek/kanaz/internal/store"
)

var (
	// ErrNoRound is returned by Answer when no card is on screen.
	ErrNoRound = errors.New("session: no round in progress")

	// ErrSave wraps progress persistence failures. The in-memory
	// records stay valid, so callers may keep drilling.
	ErrSave = errors.New("session: save progress")
)

// Event actions recorded in the session log.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// ProgressSaver persists the full record set.
type ProgressSaver interface {
	Save(recs progress.Records) error
}

// Options configures a Session.
type Options struct {
	Tier      difficulty.Tier
	Scheduler *drill.Scheduler

	// Progress is saved after every closed round when Save is set.
	Progress ProgressSaver
	Save     bool

	// Events receives round and session events. Nil disables the log.
	Events store.EventRepo

	Logger *zap.Logger
	Clock  func() time.Time
}

// Feedback describes how an answer was resolved.
type Feedback struct {
	Outcome drill.Outcome
	Card    corpus.Card
	Answer  string
	Success bool

	// Streak is the streak after the answer. StreakBroken holds the
	// streak that this answer ended, or 0.
	Streak       int
	StreakBroken int

	// Terminal is false for Incorrect: the same card stays on screen.
	Terminal bool

	Weight  float64
	Elapsed time.Duration
}

// Session runs drill rounds for one tier and records what happens.
type Session struct {
	ID   string
	Tier difficulty.Tier

	scheduler *drill.Scheduler
	progress  ProgressSaver
	save      bool
	events    store.EventRepo
	logger    *zap.Logger
	now       func() time.Time

	current    *corpus.Card
	roundStart time.Time

	startedAt time.Time
	endedAt   time.Time

	rounds     int
	corrects   int
	skips      int
	mistakes   int
	bestStreak int
}

// New creates a Session. The tier is validated up front so a bad tier
// fails before the first round.
func New(opts Options) (*Session, error) {
	if opts.Scheduler == nil {
		return nil, errors.New("session: scheduler is required")
	}
	if err := difficulty.Validate(opts.Tier); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	id := uuid.New().String()
	return &Session{
		ID:        id,
		Tier:      opts.Tier,
		scheduler: opts.Scheduler,
		progress:  opts.Progress,
		save:      opts.Save && opts.Progress != nil,
		events:    opts.Events,
		logger:    logger.With(zap.String("session_id", id)),
		now:       now,
	}, nil
}

// Start marks the beginning of the session.
func (s *Session) Start(ctx context.Context) {
	s.startedAt = s.now()
	s.logger.Info("session started", zap.Int("tier", int(s.Tier)))
	s.appendSession(ctx, ActionStart)
}

// End marks the end of the session and returns its summary.
func (s *Session) End(ctx context.Context) Summary {
	s.endedAt = s.now()
	s.current = nil
	sum := buildSummary(s)
	s.logger.Info("session ended",
		zap.Int("rounds", sum.Rounds),
		zap.Int("corrects", sum.Corrects),
		zap.Duration("duration", sum.Duration),
	)
	s.appendSession(ctx, ActionEnd)
	return sum
}

// Summary returns the totals so far.
func (s *Session) Summary() Summary {
	return buildSummary(s)
}

// Current returns the card on screen, if any.
func (s *Session) Current() (corpus.Card, bool) {
	if s.current == nil {
		return corpus.Card{}, false
	}
	return *s.current, true
}

// Streak returns the scheduler's current streak.
func (s *Session) Streak() int {
	return s.scheduler.Streak()
}

// Next selects the next card and starts the round timer. Calling Next
// while a round is open returns the open card.
func (s *Session) Next() (corpus.Card, error) {
	if s.current != nil {
		return *s.current, nil
	}

	id, err := s.scheduler.Select(s.Tier)
	if err != nil {
		return corpus.Card{}, fmt.Errorf("select card: %w", err)
	}
	card, ok := s.scheduler.Card(id)
	if !ok {
		return corpus.Card{}, fmt.Errorf("select card: %w: %d", drill.ErrUnknownCard, id)
	}

	s.current = &card
	s.roundStart = s.now()
	s.logger.Debug("round started", zap.Int("card_id", id), zap.String("kana", card.Kana))
	return card, nil
}

// Answer classifies input against the open card and resolves it.
// A save failure is returned wrapped in ErrSave together with valid
// feedback.
func (s *Session) Answer(ctx context.Context, input string) (Feedback, error) {
	if s.current == nil {
		return Feedback{}, ErrNoRound
	}
	card := *s.current
	outcome := Classify(input, card)
	// A wall clock stepping back must not turn the time penalty negative.
	elapsed := max(s.now().Sub(s.roundStart), 0)
	prevStreak := s.scheduler.Streak()

	_, success, err := s.scheduler.Resolve(card.ID, outcome, elapsed)
	if err != nil {
		return Feedback{}, fmt.Errorf("resolve card %d: %w", card.ID, err)
	}

	fb := Feedback{
		Outcome:  outcome,
		Card:     card,
		Answer:   input,
		Success:  success,
		Streak:   s.scheduler.Streak(),
		Terminal: outcome.Terminal(),
		Elapsed:  elapsed,
	}
	if rec := s.scheduler.Record(card.ID); rec != nil {
		fb.Weight = rec.Weight
	}
	if !success && prevStreak > 0 {
		fb.StreakBroken = prevStreak
	}

	switch outcome {
	case drill.Correct:
		s.corrects++
		s.rounds++
	case drill.Skipped:
		s.skips++
		s.rounds++
	case drill.Incorrect:
		s.mistakes++
	}
	s.bestStreak = max(s.bestStreak, fb.Streak)

	s.logger.Debug("answer resolved",
		zap.Int("card_id", card.ID),
		zap.Stringer("outcome", outcome),
		zap.Duration("elapsed", elapsed),
		zap.Float64("weight", fb.Weight),
	)
	s.appendRound(ctx, fb)

	if !fb.Terminal {
		return fb, nil
	}
	s.current = nil

	if s.save {
		if err := s.progress.Save(s.scheduler.Records()); err != nil {
			s.logger.Error("save progress failed", zap.Error(err))
			return fb, fmt.Errorf("%w: %v", ErrSave, err)
		}
	}
	return fb, nil
}

func (s *Session) appendRound(ctx context.Context, fb Feedback) {
	if s.events == nil {
		return
	}
	err := s.events.AppendRound(ctx, store.RoundEventData{
		SessionID:   s.ID,
		CardID:      fb.Card.ID,
		Kana:        fb.Card.Kana,
		CardType:    string(fb.Card.Type),
		Tier:        int(s.Tier),
		Outcome:     fb.Outcome.String(),
		Answer:      fb.Answer,
		ElapsedMs:   fb.Elapsed.Milliseconds(),
		WeightAfter: fb.Weight,
		StreakAfter: fb.Streak,
	})
	if err != nil {
		s.logger.Warn("append round event failed", zap.Error(err))
	}
}

func (s *Session) appendSession(ctx context.Context, action string) {
	if s.events == nil {
		return
	}
	data := store.SessionEventData{
		SessionID: s.ID,
		Action:    action,
		Tier:      int(s.Tier),
	}
	if action == ActionEnd {
		sum := buildSummary(s)
		data.Rounds = sum.Rounds
		data.Corrects = sum.Corrects
		data.Skips = sum.Skips
		data.Mistakes = sum.Mistakes
		data.BestStreak = sum.BestStreak
		data.DurationSecs = int(sum.Duration.Seconds())
	}
	if err := s.events.AppendSession(ctx, data); err != nil {
		s.logger.Warn("append session event failed", zap.String("action", action), zap.Error(err))
	}
}

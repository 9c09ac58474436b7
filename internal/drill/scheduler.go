package drill

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/kanaz/internal/corpus"
	"github.com/abhisek/kanaz/internal/difficulty"
	"github.com/abhisek/kanaz/internal/progress"
)

// Scheduler picks the next card to drill and updates its record after each
// answer. It owns the session state: the last shown card and the streak.
// A Scheduler is not safe for concurrent use.
type Scheduler struct {
	cards   []corpus.Card
	index   *difficulty.Index
	records progress.Records
	params  Params
	rng     *rand.Rand
	now     func() time.Time

	lastShown *int
	streak    int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithParams overrides the default update parameters.
func WithParams(p Params) Option {
	return func(s *Scheduler) { s.params = p }
}

// WithRand sets the random source used for selection.
func WithRand(r *rand.Rand) Option {
	return func(s *Scheduler) { s.rng = r }
}

// WithClock sets the clock used to stamp practice times.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// NewScheduler creates a Scheduler over cards and their records. The records
// are updated in place.
func NewScheduler(cards []corpus.Card, records progress.Records, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		cards:   cards,
		index:   difficulty.NewIndex(cards),
		records: records,
		params:  DefaultParams(),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.params.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Select draws the next card for tier, weighted by record weight and never
// repeating the previous round's card.
func (s *Scheduler) Select(tier difficulty.Tier) (int, error) {
	ids, err := s.index.EligibleIDs(tier, s.lastShown)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: tier %d", ErrEmptyPool, int(tier))
	}

	weights := make([]float64, len(ids))
	for i, id := range ids {
		rec, ok := s.records[id]
		if !ok {
			return 0, fmt.Errorf("%w: no record for card %d", ErrUnknownCard, id)
		}
		weights[i] = rec.Weight
	}

	return WeightedChoice(ids, weights, s.rng.Float64())
}

// Resolve applies outcome to card id. Incorrect attempts update the record
// but leave the round open; Correct and Skipped close it, add the time
// penalty for elapsed and mark id as last shown. It returns id and whether
// the answer was correct.
func (s *Scheduler) Resolve(id int, outcome Outcome, elapsed time.Duration) (int, bool, error) {
	rec, ok := s.records[id]
	if !ok {
		return id, false, fmt.Errorf("%w: %d", ErrUnknownCard, id)
	}
	if !outcome.Valid() {
		return id, false, fmt.Errorf("%w: %d", ErrInvalidOutcome, int(outcome))
	}
	if elapsed < 0 {
		return id, false, fmt.Errorf("%w: %v", ErrNegativeElapsed, elapsed)
	}

	p := s.params
	success := false

	switch outcome {
	case Correct:
		rec.TimesPracticed++
		rec.Corrects++
		if rec.Weight > MinWeightAfterCorrect {
			rec.Weight = max(rec.Weight-p.LearningRate, MinWeightAfterCorrect)
		}
		s.streak++
		success = true

	case Skipped:
		rec.Mistakes++
		if rec.Weight < p.LearningLimit {
			rec.Weight = min(rec.Weight+p.LearningRate, p.LearningLimit)
		}
		s.streak = 0

	case Incorrect:
		// Unlike Skipped, retries are not capped at LearningLimit.
		rec.Mistakes++
		rec.Weight += p.LearningRate
		s.streak = 0
		return id, false, nil
	}

	s.settle(id, rec, elapsed)
	return id, success, nil
}

// settle closes a round: it stamps the practice time and adds the time
// penalty when it keeps the weight strictly below the limit.
func (s *Scheduler) settle(id int, rec *progress.Record, elapsed time.Duration) {
	rec.LastPractice = progress.Stamp(s.now())

	penalty := s.params.SecondWeight * elapsed.Seconds()
	if rec.Weight < s.params.LearningLimit && rec.Weight+penalty < s.params.LearningLimit {
		rec.Weight += penalty
	}

	last := id
	s.lastShown = &last
}

// Card returns the corpus card with the given ID.
func (s *Scheduler) Card(id int) (corpus.Card, bool) {
	if id < 0 || id >= len(s.cards) {
		return corpus.Card{}, false
	}
	return s.cards[id], true
}

// Cards returns the corpus.
func (s *Scheduler) Cards() []corpus.Card {
	return s.cards
}

// Index returns the difficulty index over the corpus.
func (s *Scheduler) Index() *difficulty.Index {
	return s.index
}

// Record returns the record for card id, or nil.
func (s *Scheduler) Record(id int) *progress.Record {
	return s.records[id]
}

// Records returns the live record set.
func (s *Scheduler) Records() progress.Records {
	return s.records
}

// Streak returns the number of consecutive correct rounds.
func (s *Scheduler) Streak() int {
	return s.streak
}

// LastShown returns the card of the last closed round, if any.
func (s *Scheduler) LastShown() (int, bool) {
	if s.lastShown == nil {
		return 0, false
	}
	return *s.lastShown, true
}

// Params returns the update parameters in use.
func (s *Scheduler) Params() Params {
	return s.params
}

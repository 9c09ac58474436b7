package drill

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/kanaz/internal/corpus"
	"github.com/abhisek/kanaz/internal/difficulty"
	"github.com/abhisek/kanaz/internal/progress"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testCorpus returns 5 gojuuon, 3 dakuon and 2 youon cards.
func testCorpus() []corpus.Card {
	specs := []struct {
		kana, roumaji string
		typ           corpus.Type
	}{
		{"あ", "a", corpus.TypeGojuuon},
		{"い", "i", corpus.TypeGojuuon},
		{"う", "u", corpus.TypeGojuuon},
		{"え", "e", corpus.TypeGojuuon},
		{"お", "o", corpus.TypeGojuuon},
		{"が", "ga", corpus.TypeDakuon},
		{"ぎ", "gi", corpus.TypeDakuon},
		{"ぐ", "gu", corpus.TypeDakuon},
		{"きゃ", "kya", corpus.TypeYouon},
		{"きゅ", "kyu", corpus.TypeYouon},
	}
	cards := make([]corpus.Card, len(specs))
	for i, sp := range specs {
		cards[i] = corpus.Card{ID: i, Kana: sp.kana, Roumaji: sp.roumaji, Type: sp.typ}
	}
	return cards
}

func newTestScheduler(t *testing.T, opts ...Option) *Scheduler {
	t.Helper()
	cards := testCorpus()
	base := []Option{
		WithRand(rand.New(rand.NewPCG(1, 1))),
		WithClock(func() time.Time { return testNow }),
	}
	s, err := NewScheduler(cards, progress.Defaults(cards, testNow.Add(-time.Hour)), append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	return s
}

func assertWeight(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("weight = %v, want %v", got, want)
	}
}

func TestResolveCorrectScenario(t *testing.T) {
	s := newTestScheduler(t)

	id, ok, err := s.Resolve(0, Correct, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id != 0 || !ok {
		t.Errorf("Resolve = (%d, %v), want (0, true)", id, ok)
	}

	rec := s.Record(0)
	assertWeight(t, rec.Weight, 0.9)
	if rec.TimesPracticed != 1 || rec.Corrects != 1 || rec.Mistakes != 0 {
		t.Errorf("counters = practiced %d corrects %d mistakes %d", rec.TimesPracticed, rec.Corrects, rec.Mistakes)
	}
	if s.Streak() != 1 {
		t.Errorf("streak = %d, want 1", s.Streak())
	}
	if !rec.LastPractice.Equal(testNow) {
		t.Errorf("LastPractice = %v, want %v", rec.LastPractice, testNow)
	}
	if last, ok := s.LastShown(); !ok || last != 0 {
		t.Errorf("LastShown = (%d, %v), want (0, true)", last, ok)
	}
}

func TestResolveSkippedScenario(t *testing.T) {
	s := newTestScheduler(t)
	s.Resolve(1, Correct, 0)

	_, ok, err := s.Resolve(0, Skipped, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ok {
		t.Error("skip should not be a success")
	}

	rec := s.Record(0)
	assertWeight(t, rec.Weight, 1.1)
	if rec.Mistakes != 1 || rec.TimesPracticed != 0 {
		t.Errorf("mistakes = %d practiced = %d, want 1 and 0", rec.Mistakes, rec.TimesPracticed)
	}
	if s.Streak() != 0 {
		t.Errorf("streak = %d, want 0", s.Streak())
	}
}

func TestResolveIncorrectKeepsRoundOpen(t *testing.T) {
	s := newTestScheduler(t)
	s.Resolve(3, Correct, 0)
	before := s.Record(0).LastPractice

	_, ok, err := s.Resolve(0, Incorrect, 30*time.Second)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ok {
		t.Error("incorrect should not be a success")
	}

	rec := s.Record(0)
	assertWeight(t, rec.Weight, 1.1)
	if rec.Mistakes != 1 {
		t.Errorf("mistakes = %d, want 1", rec.Mistakes)
	}
	if s.Streak() != 0 {
		t.Errorf("streak = %d, want 0", s.Streak())
	}
	if !rec.LastPractice.Equal(before) {
		t.Error("incorrect attempt should not stamp practice time")
	}
	if last, _ := s.LastShown(); last != 3 {
		t.Errorf("LastShown = %d, want 3 (round still open)", last)
	}
}

func TestIncorrectIsNotCapped(t *testing.T) {
	s := newTestScheduler(t)
	s.Record(0).Weight = 4.95

	for i := 0; i < 3; i++ {
		s.Resolve(0, Incorrect, 0)
	}
	assertWeight(t, s.Record(0).Weight, 5.25)
}

func TestSkippedIsCapped(t *testing.T) {
	s := newTestScheduler(t)
	limit := s.Params().LearningLimit

	for i := 0; i < 100; i++ {
		s.Resolve(0, Skipped, 0)
		if w := s.Record(0).Weight; w > limit {
			t.Fatalf("after %d skips weight = %v exceeds limit %v", i+1, w, limit)
		}
	}
	assertWeight(t, s.Record(0).Weight, limit)
}

func TestSkippedAboveLimitUnchanged(t *testing.T) {
	s := newTestScheduler(t)
	s.Record(0).Weight = 6

	s.Resolve(0, Skipped, 0)
	assertWeight(t, s.Record(0).Weight, 6)
}

func TestCorrectFloor(t *testing.T) {
	for _, start := range []float64{1.0, 0.55, 0.61, 3.33} {
		s := newTestScheduler(t)
		s.Record(0).Weight = start

		for i := 0; i < 50; i++ {
			s.Resolve(0, Correct, 0)
			if w := s.Record(0).Weight; w < MinWeightAfterCorrect {
				t.Fatalf("start %v: weight %v dropped below floor after %d corrects", start, w, i+1)
			}
		}
		assertWeight(t, s.Record(0).Weight, MinWeightAfterCorrect)
	}
}

func TestCorrectBelowFloorUnchanged(t *testing.T) {
	s := newTestScheduler(t)
	s.Record(0).Weight = 0.3

	s.Resolve(0, Correct, 0)
	assertWeight(t, s.Record(0).Weight, 0.3)
}

func TestTimePenalty(t *testing.T) {
	// Binary-exact parameters keep the boundary free of rounding noise.
	p := Params{LearningRate: 0.25, LearningLimit: 5, SecondWeight: 0.25}

	tests := []struct {
		name    string
		start   float64
		outcome Outcome
		elapsed time.Duration
		want    float64
	}{
		{"applied below limit", 4.5, Correct, 2 * time.Second, 4.75},
		{"not applied when reaching limit exactly", 4.5, Correct, 3 * time.Second, 4.25},
		{"not applied past limit", 4.5, Correct, 10 * time.Second, 4.25},
		{"skip at limit gets no penalty", 4.75, Skipped, time.Second, 5},
		{"skip below limit", 1, Skipped, 4 * time.Second, 2.25},
		{"zero elapsed", 2, Correct, 0, 1.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScheduler(t, WithParams(p))
			s.Record(0).Weight = tt.start
			s.Resolve(0, tt.outcome, tt.elapsed)
			assertWeight(t, s.Record(0).Weight, tt.want)
		})
	}
}

func TestTimePenaltyDefaultParams(t *testing.T) {
	// 4.95 - 0.1 = 4.85; 4.85 + 0.01*10 = 4.95 < 5, so the penalty applies.
	s := newTestScheduler(t)
	s.Record(0).Weight = 4.95

	s.Resolve(0, Correct, 10*time.Second)
	assertWeight(t, s.Record(0).Weight, 4.95)
}

func TestStreak(t *testing.T) {
	s := newTestScheduler(t)
	seq := []struct {
		outcome Outcome
		want    int
	}{
		{Correct, 1},
		{Correct, 2},
		{Correct, 3},
		{Incorrect, 0},
		{Correct, 1},
		{Skipped, 0},
		{Correct, 1},
	}
	for i, step := range seq {
		s.Resolve(i%5, step.outcome, 0)
		if s.Streak() != step.want {
			t.Fatalf("step %d (%s): streak = %d, want %d", i, step.outcome, s.Streak(), step.want)
		}
	}
}

func TestResolveErrorsLeaveStateUntouched(t *testing.T) {
	s := newTestScheduler(t)
	s.Resolve(2, Correct, 0)
	snapshot := s.Records().Clone()

	if _, _, err := s.Resolve(99, Correct, 0); !errors.Is(err, ErrUnknownCard) {
		t.Errorf("unknown card err = %v", err)
	}
	if _, _, err := s.Resolve(0, Outcome(9), 0); !errors.Is(err, ErrInvalidOutcome) {
		t.Errorf("invalid outcome err = %v", err)
	}
	if _, _, err := s.Resolve(0, Correct, -200*time.Second); !errors.Is(err, ErrNegativeElapsed) {
		t.Errorf("negative elapsed err = %v", err)
	}
	if s.Streak() != 1 {
		t.Errorf("streak changed to %d", s.Streak())
	}
	for id, r := range snapshot {
		if *s.Record(id) != *r {
			t.Errorf("record %d changed", id)
		}
	}
}

func TestSelectHonorsTierAndAntiRepeat(t *testing.T) {
	s := newTestScheduler(t)
	cards := testCorpus()
	rng := rand.New(rand.NewPCG(9, 9))
	outcomes := []Outcome{Correct, Skipped}

	for _, tier := range difficulty.Tiers {
		for i := 0; i < 300; i++ {
			last, hasLast := s.LastShown()
			id, err := s.Select(tier)
			if err != nil {
				t.Fatalf("tier %d: Select: %v", tier, err)
			}
			if !tier.Allows(cards[id].Type) {
				t.Fatalf("tier %d: selected %s card %d", tier, cards[id].Type, id)
			}
			if hasLast && id == last {
				t.Fatalf("tier %d: selected last shown card %d", tier, id)
			}
			s.Resolve(id, outcomes[rng.IntN(len(outcomes))], time.Duration(rng.IntN(20))*time.Second)
		}
	}
}

func TestSelectDoesNotMutate(t *testing.T) {
	s := newTestScheduler(t)
	before := s.Records().Clone()

	for i := 0; i < 20; i++ {
		if _, err := s.Select(difficulty.TierYouon); err != nil {
			t.Fatal(err)
		}
	}
	if _, ok := s.LastShown(); ok {
		t.Error("Select should not set last shown")
	}
	for id, r := range before {
		if *s.Record(id) != *r {
			t.Errorf("record %d changed by Select", id)
		}
	}
}

func TestSelectPrefersHeavyCards(t *testing.T) {
	s := newTestScheduler(t)
	for id := 0; id < 5; id++ {
		s.Record(id).Weight = 0.5
	}
	s.Record(4).Weight = 5

	counts := map[int]int{}
	for i := 0; i < 2000; i++ {
		id, err := s.Select(difficulty.TierGojuuon)
		if err != nil {
			t.Fatal(err)
		}
		counts[id]++
	}
	if counts[4] < 1000 {
		t.Errorf("heavy card drawn %d/2000 times, expected a clear majority", counts[4])
	}
}

func TestSelectErrors(t *testing.T) {
	t.Run("invalid tier", func(t *testing.T) {
		s := newTestScheduler(t)
		for _, tier := range []difficulty.Tier{0, 4} {
			if _, err := s.Select(tier); !errors.Is(err, difficulty.ErrInvalidTier) {
				t.Errorf("tier %d: err = %v, want ErrInvalidTier", tier, err)
			}
		}
	})

	t.Run("empty after exclusion", func(t *testing.T) {
		cards := []corpus.Card{{ID: 0, Kana: "あ", Roumaji: "a", Type: corpus.TypeGojuuon}}
		s, err := NewScheduler(cards, progress.Defaults(cards, testNow))
		if err != nil {
			t.Fatal(err)
		}
		id, err := s.Select(difficulty.TierGojuuon)
		if err != nil || id != 0 {
			t.Fatalf("first Select = (%d, %v)", id, err)
		}
		s.Resolve(id, Correct, 0)
		if _, err := s.Select(difficulty.TierGojuuon); !errors.Is(err, ErrEmptyPool) {
			t.Errorf("err = %v, want ErrEmptyPool", err)
		}
	})

	t.Run("empty tier", func(t *testing.T) {
		cards := []corpus.Card{{ID: 0, Kana: "が", Roumaji: "ga", Type: corpus.TypeDakuon}}
		s, _ := NewScheduler(cards, progress.Defaults(cards, testNow))
		if _, err := s.Select(difficulty.TierGojuuon); !errors.Is(err, ErrEmptyPool) {
			t.Errorf("err = %v, want ErrEmptyPool", err)
		}
	})

	t.Run("degenerate weights", func(t *testing.T) {
		s := newTestScheduler(t)
		for id := 0; id < 5; id++ {
			s.Record(id).Weight = 0
		}
		if _, err := s.Select(difficulty.TierGojuuon); !errors.Is(err, ErrDegenerateWeights) {
			t.Errorf("err = %v, want ErrDegenerateWeights", err)
		}
	})

	t.Run("missing record", func(t *testing.T) {
		cards := testCorpus()
		recs := progress.Defaults(cards, testNow)
		delete(recs, 3)
		s, _ := NewScheduler(cards, recs)
		if _, err := s.Select(difficulty.TierGojuuon); !errors.Is(err, ErrUnknownCard) {
			t.Errorf("err = %v, want ErrUnknownCard", err)
		}
	})
}

func TestTierOnePoolSize(t *testing.T) {
	s := newTestScheduler(t)
	ids, _ := s.Index().EligibleIDs(difficulty.TierGojuuon, nil)
	if len(ids) != 5 {
		t.Errorf("tier 1 pool = %d, want 5", len(ids))
	}

	s.Resolve(2, Correct, 0)
	last, _ := s.LastShown()
	ids, _ = s.Index().EligibleIDs(difficulty.TierGojuuon, &last)
	if len(ids) != 4 {
		t.Errorf("tier 1 pool after showing a gojuuon = %d, want 4", len(ids))
	}
}

func TestNewSchedulerValidatesParams(t *testing.T) {
	cards := testCorpus()
	bad := []Params{
		{LearningRate: 0, LearningLimit: 5, SecondWeight: 0.01},
		{LearningRate: 0.1, LearningLimit: 0.5, SecondWeight: 0.01},
		{LearningRate: 0.1, LearningLimit: 5, SecondWeight: -1},
		{LearningRate: math.NaN(), LearningLimit: 5, SecondWeight: 0},
	}
	for _, p := range bad {
		_, err := NewScheduler(cards, progress.Defaults(cards, testNow), WithParams(p))
		if !errors.Is(err, ErrInvalidParams) {
			t.Errorf("params %+v: err = %v, want ErrInvalidParams", p, err)
		}
	}
}

func TestNegativeElapsedKeepsWeightNonNegative(t *testing.T) {
	s := newTestScheduler(t)
	for _, o := range []Outcome{Correct, Skipped, Incorrect} {
		if _, _, err := s.Resolve(0, o, -200*time.Second); !errors.Is(err, ErrNegativeElapsed) {
			t.Errorf("%v: err = %v, want ErrNegativeElapsed", o, err)
		}
	}
	assertWeight(t, s.Record(0).Weight, progress.DefaultWeight)
	if _, ok := s.LastShown(); ok {
		t.Error("rejected resolve should not settle the round")
	}
}

func TestSettleStampsMillisecondPrecision(t *testing.T) {
	at := testNow.Add(1234567 * time.Nanosecond)
	s := newTestScheduler(t, WithClock(func() time.Time { return at }))
	if _, _, err := s.Resolve(0, Correct, 0); err != nil {
		t.Fatal(err)
	}
	want := testNow.Add(time.Millisecond)
	if got := s.Record(0).LastPractice; !got.Equal(want) {
		t.Errorf("LastPractice = %v, want %v", got, want)
	}
}

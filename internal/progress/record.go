package progress

import (
	"sort"
	"time"

	"github.com/abhisek/kanaz/internal/corpus"
)

// DefaultWeight is the selection weight of a card that has never been drilled.
const DefaultWeight = 1.0

// Record is the learner's performance on a single card.
type Record struct {
	// Weight is the selection propensity. Higher means the card is drawn more often.
	Weight         float64
	Type           corpus.Type
	LastPractice   time.Time
	TimesPracticed int
	Mistakes       int
	Corrects       int
}

// Accuracy returns corrects / (corrects + mistakes), or 0 with no answers.
func (r *Record) Accuracy() float64 {
	total := r.Corrects + r.Mistakes
	if total == 0 {
		return 0
	}
	return float64(r.Corrects) / float64(total)
}

// Records maps card ID to its record.
type Records map[int]*Record

// NewDefaultRecord creates the record for a card that has never been drilled.
func NewDefaultRecord(card corpus.Card, now time.Time) *Record {
	return &Record{
		Weight:       DefaultWeight,
		Type:         card.Type,
		LastPractice: Stamp(now),
	}
}

// Defaults builds one default record per card.
func Defaults(cards []corpus.Card, now time.Time) Records {
	recs := make(Records, len(cards))
	for _, c := range cards {
		recs[c.ID] = NewDefaultRecord(c, now)
	}
	return recs
}

// IDs returns the record IDs in ascending order.
func (rs Records) IDs() []int {
	ids := make([]int, 0, len(rs))
	for id := range rs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clone returns a deep copy of rs.
func (rs Records) Clone() Records {
	out := make(Records, len(rs))
	for id, r := range rs {
		cp := *r
		out[id] = &cp
	}
	return out
}

// Stamp reduces t to the millisecond precision kept in the progress file.
func Stamp(t time.Time) time.Time {
	return time.UnixMilli(t.UnixMilli()).UTC()
}

package difficulty

import "github.com/abhisek/kanaz/internal/corpus"

// Index derives the eligible card IDs per tier from the corpus.
type Index struct {
	cards  []corpus.Card
	counts map[corpus.Type]int
}

// NewIndex creates an Index over cards.
func NewIndex(cards []corpus.Card) *Index {
	return &Index{cards: cards, counts: corpus.CountByType(cards)}
}

// EligibleIDs returns, in ascending order, the IDs of cards allowed at tier,
// excluding exclude when it is non-nil. The result is computed on every call
// because the excluded card changes each round.
func (ix *Index) EligibleIDs(tier Tier, exclude *int) ([]int, error) {
	if err := Validate(tier); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(ix.cards))
	for _, c := range ix.cards {
		if !tier.Allows(c.Type) {
			continue
		}
		if exclude != nil && c.ID == *exclude {
			continue
		}
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// PoolSize returns how many cards tier drills, before any exclusion.
func (ix *Index) PoolSize(tier Tier) int {
	n := 0
	for _, t := range tier.Types() {
		n += ix.counts[t]
	}
	return n
}

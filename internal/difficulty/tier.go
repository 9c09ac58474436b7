package difficulty

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/kanaz/internal/corpus"
)

// ErrInvalidTier is returned for a tier outside 1..3.
var ErrInvalidTier = errors.New("invalid difficulty tier")

// Tier selects which card types are drilled. Each tier includes the types of
// the tiers below it.
type Tier int

const (
	TierGojuuon Tier = 1
	TierDakuon  Tier = 2
	TierYouon   Tier = 3
)

// Tiers lists every valid tier in ascending order.
var Tiers = []Tier{TierGojuuon, TierDakuon, TierYouon}

var allowed = map[Tier][]corpus.Type{
	TierGojuuon: {corpus.TypeGojuuon},
	TierDakuon:  {corpus.TypeGojuuon, corpus.TypeDakuon},
	TierYouon:   {corpus.TypeGojuuon, corpus.TypeDakuon, corpus.TypeYouon},
}

// Valid reports whether t is one of 1, 2 or 3.
func (t Tier) Valid() bool {
	_, ok := allowed[t]
	return ok
}

// Types returns the card types drilled at tier t, or nil for an invalid tier.
func (t Tier) Types() []corpus.Type {
	return allowed[t]
}

// Allows reports whether cards of type ct are drilled at tier t.
func (t Tier) Allows(ct corpus.Type) bool {
	return slices.Contains(t.Types(), ct)
}

func (t Tier) String() string {
	switch t {
	case TierGojuuon:
		return "Gojuuon"
	case TierDakuon:
		return "Gojuuon + Dakuon"
	case TierYouon:
		return "All kana"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Validate returns an error wrapping ErrInvalidTier if t is not valid.
func Validate(t Tier) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d (want 1-3)", ErrInvalidTier, int(t))
	}
	return nil
}

// ParseTier parses a tier number such as "2".
func ParseTier(s string) (Tier, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTier, s)
	}
	t := Tier(n)
	if err := Validate(t); err != nil {
		return 0, err
	}
	return t, nil
}

package corpus

import (
	"fmt"
	"strings"
)

// Type classifies a kana card. It also decides which difficulty tiers include the card.
type Type string

const (
	TypeGojuuon Type = "gojuuon" // plain
	TypeDakuon  Type = "dakuon"  // voiced
	TypeYouon   Type = "youon"   // palatalized
)

// AllTypes lists every card type in tier order.
var AllTypes = []Type{TypeGojuuon, TypeDakuon, TypeYouon}

// Valid reports whether t is a known card type.
func (t Type) Valid() bool {
	switch t {
	case TypeGojuuon, TypeDakuon, TypeYouon:
		return true
	}
	return false
}

// ParseType converts s to a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown card type %q", s)
	}
	return t, nil
}

// Card is a single drillable symbol. ID is the card's position in the corpus file.
type Card struct {
	ID      int
	Kana    string
	Roumaji string
	Type    Type
}

// Matches reports whether answer is the card's roumaji, ignoring case and
// surrounding whitespace.
func (c Card) Matches(answer string) bool {
	return Normalize(answer) == Normalize(c.Roumaji)
}

// Normalize lowercases and trims a learner answer.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CountByType returns how many cards of each type the corpus holds.
func CountByType(cards []Card) map[Type]int {
	counts := make(map[Type]int, len(AllTypes))
	for _, c := range cards {
		counts[c.Type]++
	}
	return counts
}

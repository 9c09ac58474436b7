package session

import (
	"strings"

	"github.com/abhisek/kanaz/internal/corpus"
	"github.com/abhisek/kanaz/internal/drill"
)

// SkipKeyword gives up on the current card when typed as the first word.
const SkipKeyword = "skip"

// Classify maps learner input for card to a drill outcome.
func Classify(input string, card corpus.Card) drill.Outcome {
	fields := strings.Fields(corpus.Normalize(input))
	if len(fields) > 0 && fields[0] == SkipKeyword {
		return drill.Skipped
	}
	if card.Matches(input) {
		return drill.Correct
	}
	return drill.Incorrect
}

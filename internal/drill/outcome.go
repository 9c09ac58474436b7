package drill

import "fmt"

// Outcome is the caller's classification of a learner response.
type Outcome int

const (
	// Correct ends the round successfully.
	Correct Outcome = iota
	// Skipped ends the round unsuccessfully.
	Skipped
	// Incorrect is a wrong attempt; the round continues with the same card.
	Incorrect
)

// Terminal reports whether o ends a round.
func (o Outcome) Terminal() bool {
	return o == Correct || o == Skipped
}

func (o Outcome) Valid() bool {
	return o == Correct || o == Skipped || o == Incorrect
}

func (o Outcome) String() string {
	switch o {
	case Correct:
		return "correct"
	case Skipped:
		return "skipped"
	case Incorrect:
		return "incorrect"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

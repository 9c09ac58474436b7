package drill

import "fmt"

// MinWeightAfterCorrect is the floor a correct answer can push a weight down to.
const MinWeightAfterCorrect = 0.5

// Params tunes the weight-update rules.
type Params struct {
	// LearningRate is added on a miss and subtracted on a correct answer.
	LearningRate float64
	// LearningLimit caps the weight reached through skips and the time penalty.
	LearningLimit float64
	// SecondWeight is the weight added per second spent on a round.
	SecondWeight float64
}

// DefaultParams returns the standard tuning.
func DefaultParams() Params {
	return Params{
		LearningRate:  0.1,
		LearningLimit: 5,
		SecondWeight:  0.01,
	}
}

// Validate checks that p can drive the update rules.
func (p Params) Validate() error {
	if !(p.LearningRate > 0) {
		return fmt.Errorf("%w: learning rate %v must be positive", ErrInvalidParams, p.LearningRate)
	}
	if !(p.LearningLimit > MinWeightAfterCorrect) {
		return fmt.Errorf("%w: learning limit %v must exceed %v", ErrInvalidParams, p.LearningLimit, MinWeightAfterCorrect)
	}
	if !(p.SecondWeight >= 0) {
		return fmt.Errorf("%w: second weight %v must not be negative", ErrInvalidParams, p.SecondWeight)
	}
	return nil
}

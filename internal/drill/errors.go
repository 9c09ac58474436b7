package drill

import "errors"

// Sentinel errors for the drill package. Check with errors.Is.
var (
	ErrEmptyPool         = errors.New("drill: no eligible cards")
	ErrDegenerateWeights = errors.New("drill: selection weights do not sum to a positive value")
	ErrUnknownCard       = errors.New("drill: unknown card")
	ErrInvalidOutcome    = errors.New("drill: invalid outcome")
	ErrInvalidParams     = errors.New("drill: parameters out of bounds")
	ErrNegativeElapsed   = errors.New("drill: negative elapsed time")
)

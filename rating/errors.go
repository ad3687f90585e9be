package rating

import "errors"

var (
	// ErrInvalidOutcome means a result was recorded with an outcome other
	// than Win, Loss, or Draw. The model only defines scores 1, 0, and 0.5.
	ErrInvalidOutcome = errors.New("rating: outcome must be Win, Loss, or Draw")

	// ErrDivergence means the volatility solve hit its iteration cap or
	// produced a non-finite value. The update that triggered it commits
	// nothing.
	ErrDivergence = errors.New("rating: volatility solver diverged")
)

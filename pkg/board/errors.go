package board

import (
	"errors"
	"fmt"
)

// ErrInvariant is the root of all blackboard invariant violations.
// Invariant violations are programming errors: they must never occur in
// correct operation and are treated as fatal, not recovered.
var ErrInvariant = errors.New("blackboard invariant violation")

// ErrPermanentHypothesis is returned when retracting a permanent hypothesis
// is attempted.
var ErrPermanentHypothesis = fmt.Errorf("%w: permanent hypothesis cannot be retracted", ErrInvariant)

// ErrDuplicateCandidate is returned when a candidate whose identity already
// exists in the pool is admitted.
var ErrDuplicateCandidate = fmt.Errorf("%w: candidate already in pool", ErrInvariant)

// IsInvariantViolation reports whether err is a blackboard invariant
// violation.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInvariant)
}

package library

import "errors"

// Domain errors. Callers distinguish failure modes with errors.Is; the
// wrapped message carries the human-readable detail.
var (
	// ErrNotFound is the store-level lookup failure. The service wraps it
	// into the entity-specific errors below.
	ErrNotFound = errors.New("record not found")

	ErrMemberNotFound    = errors.New("member not found")
	ErrBookNotFound      = errors.New("book not found")
	ErrLoanNotFound      = errors.New("loan not found")
	ErrBookUnavailable   = errors.New("book is not available for borrowing")
	ErrLoanLimitExceeded = errors.New("member has reached the maximum loan limit")
	ErrLoanNotActive     = errors.New("loan is not active")
)

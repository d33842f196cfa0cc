package matchers

import "errors"

// ExpectationNotMet reports that a quantified check did not hold
// within its wait budget. Inside the synchronization loop it doubles
// as the retry signal for composite checks; at the public API it is
// the terminal failure the caller sees.
type ExpectationNotMet struct {
	Msg string
}

// Error implements the error interface.
func (e *ExpectationNotMet) Error() string { return e.Msg }

// Retriable marks the error as safe to retry within the wait budget.
func (e *ExpectationNotMet) Retriable() bool { return true }

// IsExpectationNotMet reports whether err is an unmet expectation, as
// opposed to a configuration or driver failure.
func IsExpectationNotMet(err error) bool {
	var e *ExpectationNotMet
	return errors.As(err, &e)
}

func notMet(msg string) error {
	return &ExpectationNotMet{Msg: msg}
}

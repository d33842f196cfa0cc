package document

// InvalidatedError signals that the document mutated while an
// evaluation was in progress, so the result would describe a state
// that no longer exists. It is the one driver error the
// synchronization loop retries; every other evaluator error is fatal.
type InvalidatedError struct {
	// Reason describes what changed, when the driver knows.
	Reason string
}

// Error implements the error interface.
func (e *InvalidatedError) Error() string {
	if e.Reason == "" {
		return "document invalidated during evaluation"
	}
	return "document invalidated during evaluation: " + e.Reason
}

// Retriable marks the error as safe to retry within the wait budget.
func (e *InvalidatedError) Retriable() bool { return true }

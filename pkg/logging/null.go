package logging

// NullLogger discards all log output. It is the default logger for
// the matchers layer and is useful in tests.
type NullLogger struct{}

// Debug is a no-op.
func (NullLogger) Debug(_ string, _ ...Field) {}

// Info is a no-op.
func (NullLogger) Info(_ string, _ ...Field) {}

// Warn is a no-op.
func (NullLogger) Warn(_ string, _ ...Field) {}

// Error is a no-op.
func (NullLogger) Error(_ string, _ ...Field) {}

// WithFields returns the NullLogger itself.
func (NullLogger) WithFields(_ ...Field) Logger {
	return NullLogger{}
}

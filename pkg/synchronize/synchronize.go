// Package synchronize implements the retry engine behind every
// expectation: re-evaluate a check against a moving document until it
// succeeds or its wait budget expires. Success returns immediately;
// retriable failures are polled; everything else aborts on first
// occurrence.
package synchronize

import (
	"errors"
	"time"

	"digital.vasic.expectations/pkg/config"
	"digital.vasic.expectations/pkg/logging"
)

// retriable is the marker interface that separates retry signals from
// terminal failures. document.InvalidatedError and the matchers'
// ExpectationNotMet implement it; the loop never inspects concrete
// error types.
type retriable interface {
	Retriable() bool
}

// IsRetriable reports whether err may be retried within the wait
// budget.
func IsRetriable(err error) bool {
	var r retriable
	return errors.As(err, &r) && r.Retriable()
}

// Synchronizer runs check bodies under a wait budget. It serves one
// logical assertion at a time and is not safe for concurrent use;
// independent assertion calls use independent Synchronizers.
type Synchronizer struct {
	interval time.Duration
	log      logging.Logger

	// clock hooks, overridable in tests
	now   func() time.Time
	sleep func(time.Duration)

	// inFlight marks a Synchronize call in progress. Nested calls run
	// their body once and let the outer loop own the budget, so a
	// composite check shares one deadline across its members.
	inFlight bool
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithPollInterval sets the pause between retry attempts. Values
// under config.MinPollInterval are clamped to it.
func WithPollInterval(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d < config.MinPollInterval {
			d = config.MinPollInterval
		}
		s.interval = d
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(log logging.Logger) Option {
	return func(s *Synchronizer) {
		s.log = log
	}
}

// WithClock replaces the time source and sleep function. This is
// intended for testing only.
func WithClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(s *Synchronizer) {
		s.now = now
		s.sleep = sleep
	}
}

// New creates a Synchronizer with the supplied options.
func New(opts ...Option) *Synchronizer {
	s := &Synchronizer{
		interval: config.DefaultPollInterval,
		log:      logging.NullLogger{},
		now:      time.Now,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synchronize invokes body until it returns nil or the wait budget
// expires. The body always runs at least once, so a zero wait means
// "try once", not "never try".
//
// A nil return is final: no further polling happens even if time
// remains. A retriable error is retried after a short pause while
// time remains; once the deadline has passed the most recent error is
// returned as-is, so the caller sees the same diagnostic a single
// failed attempt would have produced. Any other error is returned
// immediately.
//
// When called from inside a body already running under Synchronize,
// the nested call runs its body exactly once and propagates the
// outcome to the outer loop. The group therefore shares one deadline
// instead of each member re-applying a full budget.
func (s *Synchronizer) Synchronize(wait time.Duration, body func() error) error {
	if s.inFlight {
		return body()
	}
	s.inFlight = true
	defer func() { s.inFlight = false }()

	deadline := s.now().Add(wait)

	for attempt := 1; ; attempt++ {
		err := body()
		if err == nil {
			return nil
		}
		if !IsRetriable(err) {
			return err
		}
		if !s.now().Before(deadline) {
			s.log.Debug(
				"wait budget exhausted",
				logging.DurationField("wait", wait),
				logging.IntField("attempts", attempt),
				logging.ErrorField(err),
			)
			return err
		}

		s.log.Debug(
			"check not satisfied, retrying",
			logging.IntField("attempt", attempt),
			logging.ErrorField(err),
		)
		s.sleep(s.interval)
	}
}

package synchronize

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// retriableErr is a stand-in for the domain's retry signals.
type retriableErr struct{ msg string }

func (e *retriableErr) Error() string   { return e.msg }
func (e *retriableErr) Retriable() bool { return true }

// fakeClock advances time only when the synchronizer sleeps, so
// deadline behavior is deterministic.
type fakeClock struct {
	t      time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.t = c.t.Add(d)
}

func newTestSynchronizer(c *fakeClock) *Synchronizer {
	return New(WithClock(c.now, c.sleep))
}

func TestIsRetriable(t *testing.T) {
	assert.True(t, IsRetriable(&retriableErr{msg: "changed"}))
	assert.False(t, IsRetriable(errors.New("fatal")))
	assert.False(t, IsRetriable(nil))
}

func TestSynchronize_ImmediateSuccess(t *testing.T) {
	clock := newFakeClock()
	s := newTestSynchronizer(clock)

	calls := 0
	err := s.Synchronize(10*time.Second, func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.sleeps, "success must return without waiting out the budget")
}

func TestSynchronize_RetriesUntilSuccess(t *testing.T) {
	clock := newFakeClock()
	s := newTestSynchronizer(clock)

	calls := 0
	err := s.Synchronize(10*time.Second, func() error {
		calls++
		if calls < 3 {
			return &retriableErr{msg: "not yet"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, clock.sleeps, 2)
}

func TestSynchronize_BudgetExpiryReturnsLastError(t *testing.T) {
	clock := newFakeClock()
	s := newTestSynchronizer(clock)

	calls := 0
	err := s.Synchronize(120*time.Millisecond, func() error {
		calls++
		return &retriableErr{msg: fmt.Sprintf("attempt %d", calls)}
	})

	require.Error(t, err)
	// The caller sees the most recent failure, not a synthetic timeout.
	var re *retriableErr
	require.ErrorAs(t, err, &re)
	assert.Equal(t, fmt.Sprintf("attempt %d", calls), re.msg)
	assert.Greater(t, calls, 1)
}

func TestSynchronize_FatalErrorAbortsImmediately(t *testing.T) {
	clock := newFakeClock()
	s := newTestSynchronizer(clock)

	fatal := errors.New("malformed query")
	calls := 0
	err := s.Synchronize(10*time.Second, func() error {
		calls++
		return fatal
	})

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.sleeps)
}

func TestSynchronize_ZeroWaitTriesOnce(t *testing.T) {
	clock := newFakeClock()
	s := newTestSynchronizer(clock)

	calls := 0
	err := s.Synchronize(0, func() error {
		calls++
		return &retriableErr{msg: "no"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.sleeps)
}

func TestSynchronize_NestedCallRunsOnce(t *testing.T) {
	clock := newFakeClock()
	s := newTestSynchronizer(clock)

	innerCalls := 0
	outerCalls := 0
	err := s.Synchronize(5*time.Second, func() error {
		outerCalls++
		// The inner call must not apply its own budget: its failure
		// propagates to the outer loop on every outer attempt.
		return s.Synchronize(time.Hour, func() error {
			innerCalls++
			if outerCalls < 3 {
				return &retriableErr{msg: "inner not yet"}
			}
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 3, outerCalls)
	assert.Equal(t, 3, innerCalls)
}

func TestSynchronize_NestedFatalPropagates(t *testing.T) {
	clock := newFakeClock()
	s := newTestSynchronizer(clock)

	fatal := errors.New("bad options")
	err := s.Synchronize(5*time.Second, func() error {
		return s.Synchronize(time.Hour, func() error {
			return fatal
		})
	})

	assert.ErrorIs(t, err, fatal)
}

func TestSynchronize_InFlightClearedAfterReturn(t *testing.T) {
	clock := newFakeClock()
	s := newTestSynchronizer(clock)

	require.NoError(t, s.Synchronize(time.Second, func() error { return nil }))

	// A second top-level call gets its own budget and retries again.
	calls := 0
	err := s.Synchronize(time.Second, func() error {
		calls++
		if calls < 2 {
			return &retriableErr{msg: "again"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithPollInterval_Clamped(t *testing.T) {
	clock := newFakeClock()
	s := New(
		WithClock(clock.now, clock.sleep),
		WithPollInterval(time.Millisecond),
	)

	calls := 0
	_ = s.Synchronize(time.Second, func() error {
		calls++
		if calls < 2 {
			return &retriableErr{msg: "once more"}
		}
		return nil
	})

	require.Len(t, clock.sleeps, 1)
	assert.Equal(t, 10*time.Millisecond, clock.sleeps[0])
}

func TestSynchronize_RealClockSuccessIsFast(t *testing.T) {
	s := New()

	start := time.Now()
	err := s.Synchronize(10*time.Second, func() error { return nil })
	require.NoError(t, err)

	assert.Less(t, time.Since(start), time.Second)
}

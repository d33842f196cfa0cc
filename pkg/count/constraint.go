// Package count implements the quantity constraint an expectation
// places on the number of matches: exactly n, at least n, at most n,
// a closed range, or the default of at least one. A Constraint is a
// pure predicate over an observed count; it carries no knowledge of
// where the count came from.
package count

import (
	"errors"
	"fmt"
	"strings"
)

type variant int

const (
	atLeastOne variant = iota // default when no quantity option given
	exact
	minimum
	maximum
	between
)

// Spec carries the raw quantity options as supplied by the caller.
// At most one of the four fields may be set; Build rejects conflicts.
type Spec struct {
	Count   *int
	Minimum *int
	Maximum *int
	Between *Range
}

// Range is a closed interval of acceptable counts.
type Range struct {
	Lo int
	Hi int
}

// Constraint is an immutable quantity predicate. The zero value is
// the default "at least one" constraint.
type Constraint struct {
	kind variant
	n    int
	lo   int
	hi   int
}

// Build validates a Spec and returns the Constraint it describes.
// Supplying more than one quantity option, a negative bound, or an
// inverted range is a caller error and is reported immediately; it is
// never retried.
func Build(s Spec) (Constraint, error) {
	var set []string
	if s.Count != nil {
		set = append(set, "count")
	}
	if s.Minimum != nil {
		set = append(set, "minimum")
	}
	if s.Maximum != nil {
		set = append(set, "maximum")
	}
	if s.Between != nil {
		set = append(set, "between")
	}
	if len(set) > 1 {
		return Constraint{}, fmt.Errorf(
			"quantity options %s are mutually exclusive",
			strings.Join(set, " and "),
		)
	}

	switch {
	case s.Count != nil:
		if *s.Count < 0 {
			return Constraint{}, fmt.Errorf("count must not be negative, got %d", *s.Count)
		}
		return Constraint{kind: exact, n: *s.Count}, nil

	case s.Minimum != nil:
		if *s.Minimum < 0 {
			return Constraint{}, fmt.Errorf("minimum must not be negative, got %d", *s.Minimum)
		}
		return Constraint{kind: minimum, n: *s.Minimum}, nil

	case s.Maximum != nil:
		if *s.Maximum < 0 {
			return Constraint{}, fmt.Errorf("maximum must not be negative, got %d", *s.Maximum)
		}
		return Constraint{kind: maximum, n: *s.Maximum}, nil

	case s.Between != nil:
		if s.Between.Lo < 0 {
			return Constraint{}, fmt.Errorf("between lower bound must not be negative, got %d", s.Between.Lo)
		}
		if s.Between.Lo > s.Between.Hi {
			return Constraint{}, errors.New("between bounds are inverted")
		}
		return Constraint{kind: between, lo: s.Between.Lo, hi: s.Between.Hi}, nil

	default:
		return Constraint{kind: atLeastOne}, nil
	}
}

// Check reports whether an observed occurrence count satisfies the
// constraint.
func (c Constraint) Check(observed int) bool {
	switch c.kind {
	case exact:
		return observed == c.n
	case minimum:
		return observed >= c.n
	case maximum:
		return observed <= c.n
	case between:
		return c.lo <= observed && observed <= c.hi
	default:
		return observed >= 1
	}
}

// Explicit reports whether the caller supplied a quantity option, as
// opposed to relying on the at-least-one default.
func (c Constraint) Explicit() bool {
	return c.kind != atLeastOne
}

// ExpectsNone reports whether the caller explicitly asked for a
// quantity that zero matches satisfy (count=0, maximum=0, or a range
// including 0). It is derived from the constraint itself, never from
// an observed count: a presence check that happened to observe zero
// matches does not expect none.
func (c Constraint) ExpectsNone() bool {
	return c.Explicit() && c.Check(0)
}

// Describe renders the constraint as a human phrase for failure
// messages: "exactly 4 times", "at least 1 time", "between 2 and 5
// times".
func (c Constraint) Describe() string {
	switch c.kind {
	case exact:
		return "exactly " + Times(c.n)
	case minimum:
		return "at least " + Times(c.n)
	case maximum:
		return "at most " + Times(c.n)
	case between:
		return fmt.Sprintf("between %d and %d times", c.lo, c.hi)
	default:
		return "at least " + Times(1)
	}
}

// Times renders a count with its unit for failure messages ("1 time",
// "4 times").
func Times(n int) string {
	if n == 1 {
		return "1 time"
	}
	return fmt.Sprintf("%d times", n)
}

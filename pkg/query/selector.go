package query

import (
	"time"

	"digital.vasic.expectations/pkg/count"
	"digital.vasic.expectations/pkg/document"
)

// SelectorQuery resolves a selector target against a scope and checks
// how many elements match. It is immutable after construction:
// created once per assertion call and discarded after resolution.
type SelectorQuery struct {
	eval       document.Evaluator
	sel        document.Selector
	constraint count.Constraint
	wait       time.Duration
	filters    document.Filters
}

// NewSelector builds a SelectorQuery. It validates the recognized
// options eagerly and returns a *ConfigurationError on conflicting
// quantity options, invalid bounds, or an empty locator.
func NewSelector(eval document.Evaluator, kind, locator string, opts ...Option) (*SelectorQuery, error) {
	if eval == nil {
		return nil, configErr("no evaluator supplied")
	}
	if locator == "" {
		return nil, configErr("empty locator")
	}

	s := collect(opts)
	c, err := count.Build(s.spec)
	if err != nil {
		return nil, configErr(err.Error())
	}
	if s.wait != nil && *s.wait < 0 {
		return nil, configErr("wait must not be negative")
	}

	return &SelectorQuery{
		eval:       eval,
		sel:        document.Selector{Kind: kind, Locator: locator},
		constraint: c,
		wait:       s.waitBudget(),
		filters:    s.driverFilters(),
	}, nil
}

// Wait returns the query's effective wait budget.
func (q *SelectorQuery) Wait() time.Duration { return q.wait }

// Constraint returns the query's quantity constraint.
func (q *SelectorQuery) Constraint() count.Constraint { return q.constraint }

// Selector returns the match target.
func (q *SelectorQuery) Selector() document.Selector { return q.sel }

// Resolve evaluates the query against the given scope exactly once.
// Driver errors, including document.InvalidatedError, pass through
// unmodified; classifying them is the synchronizer's responsibility.
func (q *SelectorQuery) Resolve(scope document.Node) (*Result, error) {
	nodes, err := q.eval.Select(scope, q.sel, q.filters)
	if err != nil {
		return nil, err
	}
	return newResult(q.sel.String(), q.constraint, nodes, len(nodes)), nil
}

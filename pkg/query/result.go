package query

import (
	"fmt"

	"digital.vasic.expectations/pkg/count"
	"digital.vasic.expectations/pkg/document"
)

// Result is the snapshot of one evaluation: the matches observed at a
// single instant and whether they satisfy the query's constraint. A
// Result is never mutated; each poll iteration produces a fresh one.
type Result struct {
	target     string
	constraint count.Constraint
	nodes      []document.Node
	n          int
}

func newResult(target string, c count.Constraint, nodes []document.Node, n int) *Result {
	return &Result{target: target, constraint: c, nodes: nodes, n: n}
}

// Count returns the observed occurrence count.
func (r *Result) Count() int { return r.n }

// Nodes returns the matched elements, in document order. Text query
// results carry no nodes.
func (r *Result) Nodes() []document.Node { return r.nodes }

// Satisfied reports whether the observed count meets the constraint.
func (r *Result) Satisfied() bool { return r.constraint.Check(r.n) }

// ExpectsNone reports whether the query's constraint explicitly
// allows zero matches. See count.Constraint.ExpectsNone.
func (r *Result) ExpectsNone() bool { return r.constraint.ExpectsNone() }

// Contains reports whether the given node is one of the matches. The
// test is identity-based: it relies on the driver's guarantee that
// equal handles refer to the same underlying element.
func (r *Result) Contains(n document.Node) bool {
	for _, m := range r.nodes {
		if m == n {
			return true
		}
	}
	return false
}

// FailureMessage describes why a positive expectation failed.
func (r *Result) FailureMessage() string {
	return fmt.Sprintf(
		"expected to find %s %s but found %s",
		r.target, r.constraint.Describe(), count.Times(r.n),
	)
}

// NegativeFailureMessage describes why a negative expectation failed.
func (r *Result) NegativeFailureMessage() string {
	return fmt.Sprintf(
		"expected not to find %s %s but found %s",
		r.target, r.constraint.Describe(), count.Times(r.n),
	)
}

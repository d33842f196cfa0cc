package query

import (
	"regexp"
	"time"

	"digital.vasic.expectations/pkg/count"
	"digital.vasic.expectations/pkg/document"
)

// TextQuery counts how many times a text pattern occurs in a scope's
// visible text.
type TextQuery struct {
	eval       document.Evaluator
	pat        document.TextPattern
	constraint count.Constraint
	wait       time.Duration
	filters    document.Filters
}

// NewText builds a TextQuery for an exact (whitespace-normalized)
// text fragment.
func NewText(eval document.Evaluator, text string, opts ...Option) (*TextQuery, error) {
	if text == "" {
		return nil, configErr("empty text")
	}
	return newText(eval, document.TextPattern{Exact: text}, opts)
}

// NewTextMatching builds a TextQuery for a regular expression.
func NewTextMatching(eval document.Evaluator, re *regexp.Regexp, opts ...Option) (*TextQuery, error) {
	if re == nil {
		return nil, configErr("nil text pattern")
	}
	return newText(eval, document.TextPattern{Regexp: re}, opts)
}

func newText(eval document.Evaluator, pat document.TextPattern, opts []Option) (*TextQuery, error) {
	if eval == nil {
		return nil, configErr("no evaluator supplied")
	}

	s := collect(opts)
	c, err := count.Build(s.spec)
	if err != nil {
		return nil, configErr(err.Error())
	}
	if s.wait != nil && *s.wait < 0 {
		return nil, configErr("wait must not be negative")
	}

	return &TextQuery{
		eval:       eval,
		pat:        pat,
		constraint: c,
		wait:       s.waitBudget(),
		filters:    s.driverFilters(),
	}, nil
}

// Wait returns the query's effective wait budget.
func (q *TextQuery) Wait() time.Duration { return q.wait }

// Constraint returns the query's quantity constraint.
func (q *TextQuery) Constraint() count.Constraint { return q.constraint }

// Resolve counts the pattern's occurrences in the scope exactly once.
// Driver errors pass through unmodified.
func (q *TextQuery) Resolve(scope document.Node) (*Result, error) {
	n, err := q.eval.CountText(scope, q.pat, q.filters)
	if err != nil {
		return nil, err
	}
	return newResult(q.pat.String(), q.constraint, nil, n), nil
}

// Package matchers exposes the public expectation surface: assert
// that a selector, text fragment, or style is (or is not) present in
// a live document, retrying under a wait budget until the expectation
// holds or the budget expires.
//
// Assert* methods return nil on success and *ExpectationNotMet when
// the check did not hold in time. Has* methods return false instead
// of the ExpectationNotMet and propagate every other error kind
// unchanged.
package matchers

import (
	"digital.vasic.expectations/pkg/config"
	"digital.vasic.expectations/pkg/document"
	"digital.vasic.expectations/pkg/logging"
	"digital.vasic.expectations/pkg/query"
	"digital.vasic.expectations/pkg/synchronize"
)

// Matchers binds a current node (or document root), a document
// driver, and the process defaults into the assertion API. A Matchers
// serves one assertion at a time and is not safe for concurrent use;
// construct one per logical session.
type Matchers struct {
	node   document.Node
	origin document.Node
	eval   document.Evaluator
	styles document.StyleReader
	cfg    *config.Config
	sync   *synchronize.Synchronizer
	log    logging.Logger
}

// Option configures a Matchers.
type Option func(*Matchers)

// WithConfig sets the process defaults (wait budget, default selector
// kind, poll interval).
func WithConfig(cfg *config.Config) Option {
	return func(m *Matchers) { m.cfg = cfg }
}

// WithStyleReader enables style assertions for drivers that support
// them.
func WithStyleReader(r document.StyleReader) Option {
	return func(m *Matchers) { m.styles = r }
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(log logging.Logger) Option {
	return func(m *Matchers) { m.log = log }
}

// WithOrigin sets the scope the bound node was originally found in.
// Match assertions fall back to it when the node has no parent.
func WithOrigin(scope document.Node) Option {
	return func(m *Matchers) { m.origin = scope }
}

// New creates a Matchers bound to the given node. The node is both
// the scope searched by presence assertions and the subject of match
// assertions; for whole-document checks, pass the document root.
func New(node document.Node, eval document.Evaluator, opts ...Option) *Matchers {
	m := &Matchers{
		node:   node,
		origin: node,
		eval:   eval,
		log:    logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cfg == nil {
		m.cfg = config.New()
	}
	if r, ok := eval.(document.StyleReader); ok && m.styles == nil {
		m.styles = r
	}
	m.sync = synchronize.New(
		synchronize.WithPollInterval(m.cfg.PollInterval),
		synchronize.WithLogger(m.log),
	)
	return m
}

// selectorQuery builds a SelectorQuery carrying the configured
// default wait, after checking the kind is registered.
func (m *Matchers) selectorQuery(kind, locator string, opts []query.Option) (*query.SelectorQuery, error) {
	if !m.cfg.IsKind(kind) {
		return nil, &query.ConfigurationError{Reason: "unknown selector kind: " + kind}
	}
	all := make([]query.Option, 0, len(opts)+1)
	all = append(all, query.DefaultWait(m.cfg.Wait))
	all = append(all, opts...)
	return query.NewSelector(m.eval, kind, locator, all...)
}

// AssertSelector asserts that the selector matches within the scope,
// satisfying any quantity options, within the wait budget. A query
// whose constraint is explicitly satisfiable by zero matches (count=0,
// maximum=0, a range including 0) passes on zero occurrences; a plain
// presence check does not.
func (m *Matchers) AssertSelector(kind, locator string, opts ...query.Option) error {
	q, err := m.selectorQuery(kind, locator, opts)
	if err != nil {
		return err
	}
	return m.sync.Synchronize(q.Wait(), func() error {
		result, err := q.Resolve(m.node)
		if err != nil {
			return err
		}
		if !(result.Satisfied() && (result.Count() > 0 || result.ExpectsNone())) {
			return notMet(result.FailureMessage())
		}
		return nil
	})
}

// AssertNoSelector asserts that the selector does not match within
// the scope. Quantity options are an integral part of the target: a
// page with 4 anchors satisfies AssertNoSelector("css", "a",
// query.Count(5)) because "5 anchors" is what must be absent.
func (m *Matchers) AssertNoSelector(kind, locator string, opts ...query.Option) error {
	q, err := m.selectorQuery(kind, locator, opts)
	if err != nil {
		return err
	}
	return m.sync.Synchronize(q.Wait(), func() error {
		result, err := q.Resolve(m.node)
		if err != nil {
			return err
		}
		if result.Satisfied() && (result.Count() > 0 || result.ExpectsNone()) {
			return notMet(result.NegativeFailureMessage())
		}
		return nil
	})
}

// RefuteSelector is an alias for AssertNoSelector.
func (m *Matchers) RefuteSelector(kind, locator string, opts ...query.Option) error {
	return m.AssertNoSelector(kind, locator, opts...)
}

// HasSelector reports whether the selector matches within the scope.
// Configuration and driver errors propagate; only an unmet
// expectation converts to false.
func (m *Matchers) HasSelector(kind, locator string, opts ...query.Option) (bool, error) {
	return suppressNotMet(m.AssertSelector(kind, locator, opts...))
}

// HasNoSelector reports whether the selector does not match within
// the scope.
func (m *Matchers) HasNoSelector(kind, locator string, opts ...query.Option) (bool, error) {
	return suppressNotMet(m.AssertNoSelector(kind, locator, opts...))
}

// suppressNotMet converts an unmet expectation into a plain false.
// Every other error kind propagates unchanged.
func suppressNotMet(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if IsExpectationNotMet(err) {
		return false, nil
	}
	return false, err
}

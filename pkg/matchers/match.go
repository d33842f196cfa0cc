package matchers

import (
	"digital.vasic.expectations/pkg/document"
	"digital.vasic.expectations/pkg/query"
)

// matchScope is the scope a match assertion resolves against: the
// bound node's parent, or the originating scope when the node has no
// parent.
func (m *Matchers) matchScope() document.Node {
	if parent, ok := m.node.Parent(); ok {
		return parent
	}
	return m.origin
}

// AssertMatchesSelector asserts that the bound node itself matches
// the given selector. The query resolves against the node's parent
// scope and the node must be a member of the result set: the same
// element handle, not a structurally equal one.
func (m *Matchers) AssertMatchesSelector(kind, locator string, opts ...query.Option) error {
	q, err := m.selectorQuery(kind, locator, opts)
	if err != nil {
		return err
	}
	scope := m.matchScope()
	return m.sync.Synchronize(q.Wait(), func() error {
		result, err := q.Resolve(scope)
		if err != nil {
			return err
		}
		if !result.Contains(m.node) {
			return notMet("Item does not match the provided selector")
		}
		return nil
	})
}

// AssertNotMatchSelector asserts that the bound node does not match
// the given selector.
func (m *Matchers) AssertNotMatchSelector(kind, locator string, opts ...query.Option) error {
	q, err := m.selectorQuery(kind, locator, opts)
	if err != nil {
		return err
	}
	scope := m.matchScope()
	return m.sync.Synchronize(q.Wait(), func() error {
		result, err := q.Resolve(scope)
		if err != nil {
			return err
		}
		if result.Contains(m.node) {
			return notMet("Item matched the provided selector")
		}
		return nil
	})
}

// RefuteMatchesSelector is an alias for AssertNotMatchSelector.
func (m *Matchers) RefuteMatchesSelector(kind, locator string, opts ...query.Option) error {
	return m.AssertNotMatchSelector(kind, locator, opts...)
}

// MatchesSelector reports whether the bound node matches the
// selector.
func (m *Matchers) MatchesSelector(kind, locator string, opts ...query.Option) (bool, error) {
	return suppressNotMet(m.AssertMatchesSelector(kind, locator, opts...))
}

// NotMatchSelector reports whether the bound node does not match the
// selector.
func (m *Matchers) NotMatchSelector(kind, locator string, opts ...query.Option) (bool, error) {
	return suppressNotMet(m.AssertNotMatchSelector(kind, locator, opts...))
}

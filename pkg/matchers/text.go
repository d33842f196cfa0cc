package matchers

import (
	"regexp"

	"digital.vasic.expectations/pkg/query"
)

func (m *Matchers) textQuery(text string, opts []query.Option) (*query.TextQuery, error) {
	all := make([]query.Option, 0, len(opts)+1)
	all = append(all, query.DefaultWait(m.cfg.Wait))
	all = append(all, opts...)
	return query.NewText(m.eval, text, all...)
}

func (m *Matchers) textMatchingQuery(re *regexp.Regexp, opts []query.Option) (*query.TextQuery, error) {
	all := make([]query.Option, 0, len(opts)+1)
	all = append(all, query.DefaultWait(m.cfg.Wait))
	all = append(all, opts...)
	return query.NewTextMatching(m.eval, re, all...)
}

func (m *Matchers) assertText(q *query.TextQuery) error {
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

func (m *Matchers) assertNoText(q *query.TextQuery) error {
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

// AssertText asserts that the scope's visible text contains the given
// fragment, satisfying any quantity options, within the wait budget.
// Whitespace is normalized on both sides by the driver.
func (m *Matchers) AssertText(text string, opts ...query.Option) error {
	q, err := m.textQuery(text, opts)
	if err != nil {
		return err
	}
	return m.assertText(q)
}

// AssertNoText asserts that the scope's visible text does not contain
// the given fragment.
func (m *Matchers) AssertNoText(text string, opts ...query.Option) error {
	q, err := m.textQuery(text, opts)
	if err != nil {
		return err
	}
	return m.assertNoText(q)
}

// AssertTextMatching asserts that the scope's visible text matches
// the regular expression, satisfying any quantity options.
func (m *Matchers) AssertTextMatching(re *regexp.Regexp, opts ...query.Option) error {
	q, err := m.textMatchingQuery(re, opts)
	if err != nil {
		return err
	}
	return m.assertText(q)
}

// AssertNoTextMatching asserts that the scope's visible text does not
// match the regular expression.
func (m *Matchers) AssertNoTextMatching(re *regexp.Regexp, opts ...query.Option) error {
	q, err := m.textMatchingQuery(re, opts)
	if err != nil {
		return err
	}
	return m.assertNoText(q)
}

// HasText reports whether the scope's visible text contains the given
// fragment.
func (m *Matchers) HasText(text string, opts ...query.Option) (bool, error) {
	return suppressNotMet(m.AssertText(text, opts...))
}

// HasContent is an alias for HasText.
func (m *Matchers) HasContent(text string, opts ...query.Option) (bool, error) {
	return m.HasText(text, opts...)
}

// HasNoText reports whether the scope's visible text does not contain
// the given fragment.
func (m *Matchers) HasNoText(text string, opts ...query.Option) (bool, error) {
	return suppressNotMet(m.AssertNoText(text, opts...))
}

// HasNoContent is an alias for HasNoText.
func (m *Matchers) HasNoContent(text string, opts ...query.Option) (bool, error) {
	return m.HasNoText(text, opts...)
}

// HasTextMatching reports whether the scope's visible text matches
// the regular expression.
func (m *Matchers) HasTextMatching(re *regexp.Regexp, opts ...query.Option) (bool, error) {
	return suppressNotMet(m.AssertTextMatching(re, opts...))
}

// HasNoTextMatching reports whether the scope's visible text does not
// match the regular expression.
func (m *Matchers) HasNoTextMatching(re *regexp.Regexp, opts ...query.Option) (bool, error) {
	return suppressNotMet(m.AssertNoTextMatching(re, opts...))
}

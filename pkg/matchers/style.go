package matchers

import (
	"digital.vasic.expectations/pkg/query"
)

// AssertStyle asserts that the bound node currently has the given
// styles. Values are matched as substrings of the actual property
// value; use query.StylePattern for regular expressions. The check is
// retried under the wait budget like any other expectation.
func (m *Matchers) AssertStyle(styles map[string]string, opts ...query.Option) error {
	if m.styles == nil {
		return &query.ConfigurationError{Reason: "driver does not support style queries"}
	}

	all := make([]query.Option, 0, len(opts)+1)
	all = append(all, query.DefaultWait(m.cfg.Wait))
	all = append(all, opts...)
	q, err := query.NewStyle(m.styles, styles, all...)
	if err != nil {
		return err
	}

	return m.sync.Synchronize(q.Wait(), func() error {
		result, err := q.Resolve(m.node)
		if err != nil {
			return err
		}
		if !result.Satisfied() {
			return notMet(result.FailureMessage())
		}
		return nil
	})
}

// HasStyle reports whether the bound node currently has the given
// styles.
func (m *Matchers) HasStyle(styles map[string]string, opts ...query.Option) (bool, error) {
	return suppressNotMet(m.AssertStyle(styles, opts...))
}

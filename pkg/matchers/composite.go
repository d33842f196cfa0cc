package matchers

import (
	"digital.vasic.expectations/pkg/logging"
	"digital.vasic.expectations/pkg/query"
)

// normalize resolves the first positional argument of the composite
// operations: when it is not a registered selector kind it is treated
// as an additional locator and the configured default kind applies.
func (m *Matchers) normalize(kindOrLocator string, locators []string) (string, []string) {
	if m.cfg.IsKind(kindOrLocator) {
		return kindOrLocator, locators
	}
	return m.cfg.Kind, append([]string{kindOrLocator}, locators...)
}

// AssertAllOfSelectors asserts that every locator is present within
// the scope. The wait option applies to the whole group: all locators
// must be present within one shared budget, evaluated sequentially,
// failing fast on the first locator that does not satisfy in time.
// Per-locator wait options are not honored separately.
func (m *Matchers) AssertAllOfSelectors(kindOrLocator string, locators []string, opts ...query.Option) error {
	kind, locs := m.normalize(kindOrLocator, locators)
	if len(locs) == 0 {
		return &query.ConfigurationError{Reason: "no locators given"}
	}

	wait := query.GroupWait(m.cfg.Wait, opts...)
	m.log.Debug(
		"asserting all of selectors",
		logging.StringField("kind", kind),
		logging.IntField("locators", len(locs)),
		logging.DurationField("wait", wait),
	)

	return m.sync.Synchronize(wait, func() error {
		for _, loc := range locs {
			if err := m.AssertSelector(kind, loc, opts...); err != nil {
				return err
			}
		}
		return nil
	})
}

// AssertNoneOfSelectors asserts that none of the locators are present
// within the scope, under one shared wait budget.
func (m *Matchers) AssertNoneOfSelectors(kindOrLocator string, locators []string, opts ...query.Option) error {
	kind, locs := m.normalize(kindOrLocator, locators)
	if len(locs) == 0 {
		return &query.ConfigurationError{Reason: "no locators given"}
	}

	wait := query.GroupWait(m.cfg.Wait, opts...)

	return m.sync.Synchronize(wait, func() error {
		for _, loc := range locs {
			if err := m.AssertNoSelector(kind, loc, opts...); err != nil {
				return err
			}
		}
		return nil
	})
}

// HasAllOfSelectors reports whether every locator is present within
// the scope.
func (m *Matchers) HasAllOfSelectors(kindOrLocator string, locators []string, opts ...query.Option) (bool, error) {
	return suppressNotMet(m.AssertAllOfSelectors(kindOrLocator, locators, opts...))
}

// HasNoneOfSelectors reports whether none of the locators are present
// within the scope.
func (m *Matchers) HasNoneOfSelectors(kindOrLocator string, locators []string, opts ...query.Option) (bool, error) {
	return suppressNotMet(m.AssertNoneOfSelectors(kindOrLocator, locators, opts...))
}

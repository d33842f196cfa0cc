// Package query turns a match target plus caller options into a
// resolvable query. Resolving a query asks the document driver for
// the current matches exactly once and wraps the outcome in a Result;
// retrying is the synchronizer's job, never the query's.
package query

import (
	"regexp"
	"time"

	"digital.vasic.expectations/pkg/count"
	"digital.vasic.expectations/pkg/document"
)

// settings collects the recognized options plus the opaque filter
// bag. Recognized keys are validated at query construction; filter
// entries are forwarded to the driver verbatim.
type settings struct {
	spec    count.Spec
	wait    *time.Duration
	defWait time.Duration
	text    string
	textRe  *regexp.Regexp
	visible *bool
	filters document.Filters
}

// Option configures a query.
type Option func(*settings)

// Count requires the target to occur exactly n times.
func Count(n int) Option {
	return func(s *settings) { s.spec.Count = &n }
}

// Minimum requires the target to occur at least n times.
func Minimum(n int) Option {
	return func(s *settings) { s.spec.Minimum = &n }
}

// Maximum requires the target to occur at most n times.
func Maximum(n int) Option {
	return func(s *settings) { s.spec.Maximum = &n }
}

// Between requires the occurrence count to fall in the closed range
// [lo, hi].
func Between(lo, hi int) Option {
	return func(s *settings) { s.spec.Between = &count.Range{Lo: lo, Hi: hi} }
}

// Wait sets the wait budget for this query. An explicit zero means
// "evaluate exactly once, no retry".
func Wait(d time.Duration) Option {
	return func(s *settings) { s.wait = &d }
}

// DefaultWait sets the budget applied when no explicit Wait option is
// given. The matchers layer supplies it from its Config; callers
// normally never use it directly.
func DefaultWait(d time.Duration) Option {
	return func(s *settings) { s.defWait = d }
}

// WithText restricts selector matches to elements containing the
// given text.
func WithText(text string) Option {
	return func(s *settings) { s.text = text }
}

// MatchingText restricts selector matches to elements whose text
// matches the regular expression.
func MatchingText(re *regexp.Regexp) Option {
	return func(s *settings) { s.textRe = re }
}

// Visible restricts matches to visible (true) or to all (false)
// elements.
func Visible(v bool) Option {
	return func(s *settings) { s.visible = &v }
}

// Filter forwards a driver-specific filter option verbatim.
func Filter(key string, value any) Option {
	return func(s *settings) {
		if s.filters == nil {
			s.filters = document.Filters{}
		}
		s.filters[key] = value
	}
}

func collect(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// wait resolves the effective budget: the explicit Wait option when
// present, the default otherwise.
func (s *settings) waitBudget() time.Duration {
	if s.wait != nil {
		return *s.wait
	}
	return s.defWait
}

// driverFilters merges the recognized text/visible options into the
// opaque filter bag handed to the driver.
func (s *settings) driverFilters() document.Filters {
	f := s.filters.Clone()
	if s.text != "" {
		f["text"] = s.text
	}
	if s.textRe != nil {
		f["text"] = s.textRe
	}
	if s.visible != nil {
		f["visible"] = *s.visible
	}
	return f
}

// GroupWait returns the wait budget a composite all-of/none-of
// operation shares across its members: the explicit Wait option when
// one is given, the supplied default otherwise.
func GroupWait(def time.Duration, opts ...Option) time.Duration {
	s := collect(opts)
	s.defWait = def
	return s.waitBudget()
}

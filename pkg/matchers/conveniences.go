package matchers

import (
	"digital.vasic.expectations/pkg/query"
)

// Shorthands for the well-known selector kinds. Each delegates to the
// corresponding selector operation with the kind filled in.

// HasCSS reports whether the CSS selector matches within the scope.
func (m *Matchers) HasCSS(locator string, opts ...query.Option) (bool, error) {
	return m.HasSelector("css", locator, opts...)
}

// HasNoCSS reports whether the CSS selector does not match within the
// scope.
func (m *Matchers) HasNoCSS(locator string, opts ...query.Option) (bool, error) {
	return m.HasNoSelector("css", locator, opts...)
}

// HasXPath reports whether the XPath expression matches within the
// scope.
func (m *Matchers) HasXPath(locator string, opts ...query.Option) (bool, error) {
	return m.HasSelector("xpath", locator, opts...)
}

// HasNoXPath reports whether the XPath expression does not match
// within the scope.
func (m *Matchers) HasNoXPath(locator string, opts ...query.Option) (bool, error) {
	return m.HasNoSelector("xpath", locator, opts...)
}

// MatchesCSS reports whether the bound node matches the CSS selector.
func (m *Matchers) MatchesCSS(locator string, opts ...query.Option) (bool, error) {
	return m.MatchesSelector("css", locator, opts...)
}

// NotMatchCSS reports whether the bound node does not match the CSS
// selector.
func (m *Matchers) NotMatchCSS(locator string, opts ...query.Option) (bool, error) {
	return m.NotMatchSelector("css", locator, opts...)
}

// MatchesXPath reports whether the bound node matches the XPath
// expression.
func (m *Matchers) MatchesXPath(locator string, opts ...query.Option) (bool, error) {
	return m.MatchesSelector("xpath", locator, opts...)
}

// NotMatchXPath reports whether the bound node does not match the
// XPath expression.
func (m *Matchers) NotMatchXPath(locator string, opts ...query.Option) (bool, error) {
	return m.NotMatchSelector("xpath", locator, opts...)
}

// HasButton reports whether a button with the given text, value, or
// id exists within the scope.
func (m *Matchers) HasButton(locator string, opts ...query.Option) (bool, error) {
	return m.HasSelector("button", locator, opts...)
}

// HasNoButton reports whether no button with the given text, value,
// or id exists within the scope.
func (m *Matchers) HasNoButton(locator string, opts ...query.Option) (bool, error) {
	return m.HasNoSelector("button", locator, opts...)
}

// HasLink reports whether a link with the given text or id exists
// within the scope.
func (m *Matchers) HasLink(locator string, opts ...query.Option) (bool, error) {
	return m.HasSelector("link", locator, opts...)
}

// HasNoLink reports whether no link with the given text or id exists
// within the scope.
func (m *Matchers) HasNoLink(locator string, opts ...query.Option) (bool, error) {
	return m.HasNoSelector("link", locator, opts...)
}

// HasField reports whether a form field with the given label, name,
// or id exists within the scope.
func (m *Matchers) HasField(locator string, opts ...query.Option) (bool, error) {
	return m.HasSelector("field", locator, opts...)
}

// HasNoField reports whether no form field with the given label,
// name, or id exists within the scope.
func (m *Matchers) HasNoField(locator string, opts ...query.Option) (bool, error) {
	return m.HasNoSelector("field", locator, opts...)
}

// HasCheckedField reports whether a checked checkbox or radio button
// with the given label, name, or id exists within the scope.
func (m *Matchers) HasCheckedField(locator string, opts ...query.Option) (bool, error) {
	return m.HasSelector("field", locator, withChecked(true, opts)...)
}

// HasNoCheckedField reports whether no checked checkbox or radio
// button with the given label, name, or id exists within the scope.
func (m *Matchers) HasNoCheckedField(locator string, opts ...query.Option) (bool, error) {
	return m.HasNoSelector("field", locator, withChecked(true, opts)...)
}

// HasUncheckedField reports whether an unchecked checkbox or radio
// button with the given label, name, or id exists within the scope.
func (m *Matchers) HasUncheckedField(locator string, opts ...query.Option) (bool, error) {
	return m.HasSelector("field", locator, withChecked(false, opts)...)
}

// HasNoUncheckedField reports whether no unchecked checkbox or radio
// button with the given label, name, or id exists within the scope.
func (m *Matchers) HasNoUncheckedField(locator string, opts ...query.Option) (bool, error) {
	return m.HasNoSelector("field", locator, withChecked(false, opts)...)
}

func withChecked(want bool, opts []query.Option) []query.Option {
	all := make([]query.Option, 0, len(opts)+1)
	all = append(all, query.Filter("checked", want))
	all = append(all, opts...)
	return all
}

// HasTable reports whether a table with the given id or caption
// exists within the scope.
func (m *Matchers) HasTable(locator string, opts ...query.Option) (bool, error) {
	return m.HasSelector("table", locator, opts...)
}

// HasNoTable reports whether no table with the given id or caption
// exists within the scope.
func (m *Matchers) HasNoTable(locator string, opts ...query.Option) (bool, error) {
	return m.HasNoSelector("table", locator, opts...)
}

// HasSelect reports whether a select box with the given label, name,
// or id exists within the scope.
func (m *Matchers) HasSelect(locator string, opts ...query.Option) (bool, error) {
	return m.HasSelector("select", locator, opts...)
}

// HasNoSelect reports whether no select box with the given label,
// name, or id exists within the scope.
func (m *Matchers) HasNoSelect(locator string, opts ...query.Option) (bool, error) {
	return m.HasNoSelector("select", locator, opts...)
}

// Package document defines the narrow contracts between the
// expectations core and the document driver that actually locates
// elements. The core never inspects a document itself; it only asks
// an Evaluator how many matches a target has right now.
package document

import (
	"regexp"
	"strconv"
)

// Node is an opaque handle to a document element or to the document
// root. Drivers must return handles that are comparable with == and
// that compare equal if and only if they refer to the same underlying
// element. Membership checks in the matchers layer rely on this
// identity semantics.
type Node interface {
	// Parent returns the node's parent element. The document root
	// reports false.
	Parent() (Node, bool)
}

// Selector names a match target: a selector kind (e.g. "css",
// "xpath", "button") and a locator expression interpreted by the
// driver. The core never parses the locator.
type Selector struct {
	Kind    string
	Locator string
}

// String renders the selector for failure messages.
func (s Selector) String() string {
	return s.Kind + " " + strconv.Quote(s.Locator)
}

// TextPattern describes the text a TextQuery counts occurrences of.
// When Regexp is set it takes precedence over Exact.
type TextPattern struct {
	Exact  string
	Regexp *regexp.Regexp
}

// String renders the pattern for failure messages.
func (p TextPattern) String() string {
	if p.Regexp != nil {
		return "text matching " + strconv.Quote(p.Regexp.String())
	}
	return "text " + strconv.Quote(p.Exact)
}

// Filters is an opaque bag of driver-specific filter options. The
// core forwards it verbatim on every evaluation; well-known keys such
// as "text" and "visible" are populated by the query layer from its
// recognized options.
type Filters map[string]any

// Clone returns a shallow copy so a query can add its own entries
// without mutating caller-supplied maps.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f)+2)
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Evaluator locates matches for a target within a scope. It is
// implemented by document drivers. Evaluations observe the document
// at one instant; if the document mutates mid-evaluation the driver
// returns an InvalidatedError and the caller re-evaluates.
type Evaluator interface {
	// Select returns the elements matching sel inside scope, in
	// document order, after applying the given filters.
	Select(scope Node, sel Selector, f Filters) ([]Node, error)

	// CountText returns how many times the pattern occurs in the
	// visible text of scope, after applying the given filters.
	CountText(scope Node, pat TextPattern, f Filters) (int, error)
}

// StyleReader reports computed style values for a node. It is
// optional; drivers without style support simply do not implement it.
type StyleReader interface {
	// Styles returns the current values of the named style
	// properties on n. Missing properties map to "".
	Styles(n Node, names []string) (map[string]string, error)
}

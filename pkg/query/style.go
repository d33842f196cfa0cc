package query

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"digital.vasic.expectations/pkg/document"
)

// StyleQuery checks that a node's computed styles contain the
// expected values. Expected values are matched as substrings of the
// actual property value; a regular expression can be supplied per
// property with StylePattern.
type StyleQuery struct {
	reader   document.StyleReader
	expected map[string]*regexp.Regexp
	display  map[string]string
	wait     time.Duration
}

// StylePattern replaces the substring match for one property with a
// regular expression.
func StylePattern(property string, re *regexp.Regexp) Option {
	return Filter("style:"+property, re)
}

// NewStyle builds a StyleQuery. Values in styles are matched as
// substrings of the actual property value.
func NewStyle(reader document.StyleReader, styles map[string]string, opts ...Option) (*StyleQuery, error) {
	if reader == nil {
		return nil, configErr("no style reader supplied")
	}
	if len(styles) == 0 {
		return nil, configErr("no styles given")
	}

	s := collect(opts)
	if s.wait != nil && *s.wait < 0 {
		return nil, configErr("wait must not be negative")
	}

	expected := make(map[string]*regexp.Regexp, len(styles))
	display := make(map[string]string, len(styles))
	for prop, val := range styles {
		expected[prop] = regexp.MustCompile(regexp.QuoteMeta(val))
		display[prop] = val
	}
	for key, val := range s.filters {
		prop, ok := strings.CutPrefix(key, "style:")
		if !ok {
			continue
		}
		re, ok := val.(*regexp.Regexp)
		if !ok || re == nil {
			return nil, configErr("style pattern for " + prop + " is not a regular expression")
		}
		expected[prop] = re
		display[prop] = re.String()
	}

	return &StyleQuery{
		reader:   reader,
		expected: expected,
		display:  display,
		wait:     s.waitBudget(),
	}, nil
}

// Wait returns the query's effective wait budget.
func (q *StyleQuery) Wait() time.Duration { return q.wait }

// StyleResult is the snapshot of one style evaluation.
type StyleResult struct {
	ok       bool
	expected map[string]string
	actual   map[string]string
}

// Satisfied reports whether every expected style matched.
func (r *StyleResult) Satisfied() bool { return r.ok }

// FailureMessage describes the mismatch, naming expected and actual
// styles.
func (r *StyleResult) FailureMessage() string {
	return fmt.Sprintf(
		"expected node to have styles %s, actual styles were %s",
		describeStyles(r.expected), describeStyles(r.actual),
	)
}

// Resolve reads the node's current styles exactly once and checks
// them against the expectations. Driver errors pass through
// unmodified.
func (q *StyleQuery) Resolve(n document.Node) (*StyleResult, error) {
	names := make([]string, 0, len(q.expected))
	for prop := range q.expected {
		names = append(names, prop)
	}

	actual, err := q.reader.Styles(n, names)
	if err != nil {
		return nil, err
	}

	ok := true
	for prop, re := range q.expected {
		if !re.MatchString(actual[prop]) {
			ok = false
			break
		}
	}

	return &StyleResult{ok: ok, expected: q.display, actual: actual}, nil
}

func describeStyles(styles map[string]string) string {
	props := make([]string, 0, len(styles))
	for prop := range styles {
		props = append(props, prop)
	}
	sort.Strings(props)

	parts := make([]string, 0, len(props))
	for _, prop := range props {
		parts = append(parts, fmt.Sprintf("%s: %q", prop, styles[prop]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

package htmldoc

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"digital.vasic.expectations/pkg/document"
)

// Select returns the elements matching sel inside scope, in document
// order. Supported kinds: "css" (a subset: tag, #id, .class
// conjunctions and descendant combination by whitespace) and the
// element kinds "button", "link", "field", "select", "table".
func (d *Document) Select(scope document.Node, sel document.Selector, f document.Filters) ([]document.Node, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	el, err := d.resolve(scope)
	if err != nil {
		return nil, err
	}

	var matched []*html.Node
	switch sel.Kind {
	case "css":
		steps, err := parseCSS(sel.Locator)
		if err != nil {
			return nil, err
		}
		matched = selectCSS(el, steps)
	case "button", "link", "field", "select", "table":
		matched = selectElementKind(el, sel.Kind, sel.Locator)
	default:
		return nil, fmt.Errorf("selector kind %q is not supported by the htmldoc driver", sel.Kind)
	}

	matched, err = applyFilters(matched, f)
	if err != nil {
		return nil, err
	}

	gen := d.gen
	out := make([]document.Node, len(matched))
	for i, m := range matched {
		out[i] = node{doc: d, el: m, gen: gen}
	}
	return out, nil
}

// cssStep is one element test of a descendant chain: an optional tag
// name plus any number of #id and .class requirements.
type cssStep struct {
	tag     string
	id      string
	classes []string
}

func parseCSS(locator string) ([]cssStep, error) {
	fields := strings.Fields(locator)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty css selector")
	}

	steps := make([]cssStep, 0, len(fields))
	for _, field := range fields {
		step, err := parseCSSStep(field)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseCSSStep(s string) (cssStep, error) {
	var step cssStep
	rest := s

	i := 0
	for i < len(rest) && rest[i] != '#' && rest[i] != '.' {
		i++
	}
	step.tag = strings.ToLower(rest[:i])
	rest = rest[i:]

	for rest != "" {
		marker := rest[0]
		rest = rest[1:]
		j := 0
		for j < len(rest) && rest[j] != '#' && rest[j] != '.' {
			j++
		}
		name := rest[:j]
		rest = rest[j:]
		if name == "" {
			return cssStep{}, fmt.Errorf("invalid css selector %q", s)
		}
		switch marker {
		case '#':
			if step.id != "" {
				return cssStep{}, fmt.Errorf("invalid css selector %q: multiple ids", s)
			}
			step.id = name
		case '.':
			step.classes = append(step.classes, name)
		}
	}

	if step.tag == "" && step.id == "" && len(step.classes) == 0 {
		return cssStep{}, fmt.Errorf("empty css selector step in %q", s)
	}
	if step.tag != "" && !validTag(step.tag) {
		return cssStep{}, fmt.Errorf("unsupported css selector %q", s)
	}
	return step, nil
}

func validTag(tag string) bool {
	for _, r := range tag {
		ok := r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !ok {
			return false
		}
	}
	return true
}

func (s cssStep) matches(el *html.Node) bool {
	if el.Type != html.ElementNode {
		return false
	}
	if s.tag != "" && el.Data != s.tag {
		return false
	}
	if s.id != "" && attr(el, "id") != s.id {
		return false
	}
	if len(s.classes) > 0 {
		have := strings.Fields(attr(el, "class"))
		for _, want := range s.classes {
			found := false
			for _, c := range have {
				if c == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// selectCSS evaluates a descendant chain: each step narrows to the
// descendants of the previous step's matches.
func selectCSS(scope *html.Node, steps []cssStep) []*html.Node {
	candidates := []*html.Node{scope}
	for _, step := range steps {
		seen := make(map[*html.Node]struct{})
		var next []*html.Node
		for _, c := range candidates {
			walkDescendants(c, func(el *html.Node) {
				if _, dup := seen[el]; dup {
					return
				}
				if step.matches(el) {
					seen[el] = struct{}{}
					next = append(next, el)
				}
			})
		}
		candidates = next
	}
	return candidates
}

// selectElementKind implements the element-kind selectors: the
// locator matches an element's id, name, value, or visible text
// depending on the kind.
func selectElementKind(scope *html.Node, kind, locator string) []*html.Node {
	var out []*html.Node
	walkDescendants(scope, func(el *html.Node) {
		if matchesElementKind(el, kind, locator) {
			out = append(out, el)
		}
	})
	return out
}

func matchesElementKind(el *html.Node, kind, locator string) bool {
	switch kind {
	case "button":
		if el.Data == "button" {
			return attr(el, "id") == locator || textOf(el, false) == locator
		}
		if el.Data == "input" {
			t := attr(el, "type")
			if t == "submit" || t == "button" || t == "reset" || t == "image" {
				return attr(el, "id") == locator || attr(el, "value") == locator
			}
		}
		return false
	case "link":
		return el.Data == "a" && attr(el, "href") != "" &&
			(attr(el, "id") == locator || textOf(el, false) == locator)
	case "field":
		if el.Data != "input" && el.Data != "textarea" && el.Data != "select" {
			return false
		}
		return attr(el, "id") == locator || attr(el, "name") == locator ||
			attr(el, "placeholder") == locator
	case "select":
		return el.Data == "select" &&
			(attr(el, "id") == locator || attr(el, "name") == locator)
	case "table":
		if el.Data != "table" {
			return false
		}
		if attr(el, "id") == locator {
			return true
		}
		caption := findChild(el, "caption")
		return caption != nil && textOf(caption, false) == locator
	default:
		return false
	}
}

// applyFilters narrows matches by the recognized filter keys. Unknown
// keys are an evaluation error so typos fail loudly instead of
// silently matching everything.
func applyFilters(matched []*html.Node, f document.Filters) ([]*html.Node, error) {
	for key, val := range f {
		switch key {
		case "text":
			var keep func(*html.Node) bool
			switch want := val.(type) {
			case string:
				norm := normalize(want)
				keep = func(el *html.Node) bool {
					return strings.Contains(textOf(el, false), norm)
				}
			case *regexp.Regexp:
				keep = func(el *html.Node) bool {
					return want.MatchString(textOf(el, false))
				}
			default:
				return nil, fmt.Errorf("text filter must be a string or regexp, got %T", val)
			}
			matched = filterNodes(matched, keep)
		case "visible":
			want, ok := val.(bool)
			if !ok {
				return nil, fmt.Errorf("visible filter must be a bool, got %T", val)
			}
			if want {
				matched = filterNodes(matched, isVisible)
			}
		case "checked":
			want, ok := val.(bool)
			if !ok {
				return nil, fmt.Errorf("checked filter must be a bool, got %T", val)
			}
			matched = filterNodes(matched, func(el *html.Node) bool {
				return hasAttr(el, "checked") == want
			})
		default:
			return nil, fmt.Errorf("unsupported filter %q", key)
		}
	}
	return matched, nil
}

func filterNodes(nodes []*html.Node, keep func(*html.Node) bool) []*html.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

// isVisible reports whether no ancestor (nor the element itself)
// hides the element via the hidden attribute or display:none.
func isVisible(el *html.Node) bool {
	for n := el; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if hasAttr(n, "hidden") {
			return false
		}
		if strings.Contains(strings.ReplaceAll(attr(n, "style"), " ", ""), "display:none") {
			return false
		}
	}
	return true
}

func walkDescendants(n *html.Node, visit func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			visit(c)
		}
		walkDescendants(c, visit)
	}
}

func findChild(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
	}
	return nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

package htmldoc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"digital.vasic.expectations/pkg/document"
)

// CountText returns how many times the pattern occurs in the scope's
// text. Exact patterns are whitespace-normalized on both sides and
// counted without overlap; regexp patterns are counted by match.
// The "visible" filter restricts the text to visible elements.
func (d *Document) CountText(scope document.Node, pat document.TextPattern, f document.Filters) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	el, err := d.resolve(scope)
	if err != nil {
		return 0, err
	}

	visibleOnly := false
	for key, val := range f {
		switch key {
		case "visible":
			want, ok := val.(bool)
			if !ok {
				return 0, fmt.Errorf("visible filter must be a bool, got %T", val)
			}
			visibleOnly = want
		default:
			return 0, fmt.Errorf("unsupported filter %q", key)
		}
	}

	text := textOf(el, visibleOnly)

	if pat.Regexp != nil {
		return len(pat.Regexp.FindAllStringIndex(text, -1)), nil
	}

	want := normalize(pat.Exact)
	if want == "" {
		return 0, nil
	}
	return strings.Count(text, want), nil
}

// textOf returns the whitespace-normalized text content of an
// element's subtree, skipping script and style elements.
func textOf(n *html.Node, visibleOnly bool) string {
	var b strings.Builder
	collectText(n, visibleOnly, &b)
	return normalize(b.String())
}

func collectText(n *html.Node, visibleOnly bool, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
			b.WriteByte(' ')
		case html.ElementNode:
			if c.Data == "script" || c.Data == "style" {
				continue
			}
			if visibleOnly && !elementVisible(c) {
				continue
			}
			collectText(c, visibleOnly, b)
		}
	}
}

// elementVisible checks only the element itself; ancestors are
// covered by the recursive walk skipping hidden subtrees.
func elementVisible(el *html.Node) bool {
	if hasAttr(el, "hidden") {
		return false
	}
	return !strings.Contains(strings.ReplaceAll(attr(el, "style"), " ", ""), "display:none")
}

// normalize collapses all whitespace runs to single spaces and trims
// the ends.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

package htmldoc

import (
	"strings"

	"digital.vasic.expectations/pkg/document"
)

// Styles reports the node's inline style values for the requested
// properties. Properties inherited or set by stylesheets are not
// resolved; a missing property maps to "".
func (d *Document) Styles(n document.Node, names []string) (map[string]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	el, err := d.resolve(n)
	if err != nil {
		return nil, err
	}

	declared := parseInlineStyle(attr(el, "style"))

	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = declared[name]
	}
	return out, nil
}

func parseInlineStyle(style string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(strings.ToLower(prop))
		val = strings.TrimSpace(val)
		if prop != "" && val != "" {
			out[prop] = val
		}
	}
	return out
}

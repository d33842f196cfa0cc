package remote

import (
	"fmt"
	"regexp"

	"digital.vasic.expectations/pkg/document"
)

// Protocol operations.
const (
	opRoot      = "root"
	opSelect    = "select"
	opCountText = "count_text"
	opStyles    = "styles"
)

// errKindInvalidated is the host's "document changed mid-evaluation"
// signal.
const errKindInvalidated = "invalidated"

// request is one evaluation request. Fields are populated per op.
type request struct {
	ID      uint64         `json:"id"`
	Op      string         `json:"op"`
	Scope   string         `json:"scope,omitempty"`
	Kind    string         `json:"kind,omitempty"`
	Locator string         `json:"locator,omitempty"`
	Text    string         `json:"text,omitempty"`
	Pattern string         `json:"pattern,omitempty"`
	Names   []string       `json:"names,omitempty"`
	Filters map[string]any `json:"filters,omitempty"`
}

// wireNode is the host's representation of an element handle: a
// stable ID plus the parent's ID ("" at the root).
type wireNode struct {
	ID     string `json:"id"`
	Parent string `json:"parent,omitempty"`
}

// response answers one request. Exactly one payload field is set on
// success, matching the request op.
type response struct {
	ID     uint64            `json:"id"`
	Error  *wireError        `json:"error,omitempty"`
	Node   *wireNode         `json:"node,omitempty"`
	Nodes  []wireNode        `json:"nodes,omitempty"`
	Count  int               `json:"count,omitempty"`
	Styles map[string]string `json:"styles,omitempty"`
}

// wireError is a host-reported failure.
type wireError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Select implements document.Evaluator over the wire.
func (c *Client) Select(scope document.Node, sel document.Selector, f document.Filters) ([]document.Node, error) {
	id, err := c.scopeID(scope)
	if err != nil {
		return nil, err
	}

	resp, err := c.roundTrip(request{
		Op:      opSelect,
		Scope:   id,
		Kind:    sel.Kind,
		Locator: sel.Locator,
		Filters: marshalFilters(f),
	})
	if err != nil {
		return nil, err
	}

	out := make([]document.Node, len(resp.Nodes))
	for i, w := range resp.Nodes {
		out[i] = c.handle(w)
	}
	return out, nil
}

// CountText implements document.Evaluator over the wire. Regular
// expression patterns travel as their source text; the host evaluates
// them.
func (c *Client) CountText(scope document.Node, pat document.TextPattern, f document.Filters) (int, error) {
	id, err := c.scopeID(scope)
	if err != nil {
		return 0, err
	}

	req := request{
		Op:      opCountText,
		Scope:   id,
		Filters: marshalFilters(f),
	}
	if pat.Regexp != nil {
		req.Pattern = pat.Regexp.String()
	} else {
		req.Text = pat.Exact
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return 0, err
	}
	if resp.Count < 0 {
		return 0, fmt.Errorf("document host reported a negative count: %d", resp.Count)
	}
	return resp.Count, nil
}

// Styles implements document.StyleReader over the wire.
func (c *Client) Styles(n document.Node, names []string) (map[string]string, error) {
	id, err := c.scopeID(n)
	if err != nil {
		return nil, err
	}

	resp, err := c.roundTrip(request{
		Op:    opStyles,
		Scope: id,
		Names: names,
	})
	if err != nil {
		return nil, err
	}
	if resp.Styles == nil {
		return map[string]string{}, nil
	}
	return resp.Styles, nil
}

// marshalFilters renders the filter bag in wire form. Regular
// expressions become {"pattern": source} objects so the host can tell
// them apart from literal text.
func marshalFilters(f document.Filters) map[string]any {
	if len(f) == 0 {
		return nil
	}
	out := make(map[string]any, len(f))
	for k, v := range f {
		if re, ok := v.(*regexp.Regexp); ok {
			out[k] = map[string]string{"pattern": re.String()}
			continue
		}
		out[k] = v
	}
	return out
}

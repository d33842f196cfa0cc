// Package htmldoc is an in-memory document driver over parsed HTML.
// It implements the document contracts for tests and for callers
// working with static or programmatically mutated markup. Replacing
// the content invalidates handles minted against the previous
// content, so evaluations against stale handles report
// document.InvalidatedError exactly like a live driver would.
package htmldoc

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"digital.vasic.expectations/pkg/document"
)

// Document holds a parsed HTML tree plus a generation counter bumped
// on every Replace. It implements document.Evaluator and
// document.StyleReader. Safe for concurrent use: evaluations take a
// read lock, Replace takes the write lock.
type Document struct {
	mu   sync.RWMutex
	root *html.Node
	gen  uint64
}

// Parse builds a Document from HTML source.
func Parse(src string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// Replace swaps the document content for new markup, simulating an
// asynchronous mutation. Handles minted before the swap are stale:
// their next evaluation reports document.InvalidatedError.
func (d *Document) Replace(src string) error {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return fmt.Errorf("failed to parse replacement document: %w", err)
	}

	d.mu.Lock()
	d.root = root
	d.gen++
	d.mu.Unlock()
	return nil
}

// Root returns a handle to the document root, the scope for
// whole-document assertions. Unlike element handles, the root handle
// survives Replace: the document persists across content swaps even
// though its elements do not.
func (d *Document) Root() document.Node {
	return node{doc: d, root: true}
}

// node is a value-type handle so that two handles to the same element
// at the same generation compare equal with ==, which the matchers
// layer relies on for identity membership tests.
type node struct {
	doc  *Document
	el   *html.Node
	gen  uint64
	root bool
}

// Parent returns the enclosing element, reporting false at the
// document root.
func (n node) Parent() (document.Node, bool) {
	if n.root {
		return nil, false
	}
	p := n.el.Parent
	for p != nil && p.Type != html.ElementNode && p.Type != html.DocumentNode {
		p = p.Parent
	}
	if p == nil {
		return nil, false
	}
	return node{doc: n.doc, el: p, gen: n.gen}, true
}

// resolve checks that a handle belongs to this document and is still
// current, returning the underlying element.
func (d *Document) resolve(h document.Node) (*html.Node, error) {
	nd, ok := h.(node)
	if !ok || nd.doc != d {
		return nil, fmt.Errorf("scope is not a handle into this document")
	}
	if nd.root {
		return d.root, nil
	}
	if nd.gen != d.gen {
		return nil, &document.InvalidatedError{Reason: "document content replaced"}
	}
	return nd.el, nil
}

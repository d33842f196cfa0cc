// Package remote adapts a live document host reachable over a
// WebSocket into the document contracts. Each evaluation is one JSON
// request/response round trip; the host assigns stable element IDs,
// so handles minted on different evaluations compare equal when they
// name the same element. A host-reported "invalidated" error maps to
// document.InvalidatedError and is retried by the synchronizer like
// any other transient signal.
package remote

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"digital.vasic.expectations/pkg/document"
	"digital.vasic.expectations/pkg/logging"
)

// Client speaks the evaluation protocol over a WebSocket connection.
// Requests are serialized: one in flight at a time.
type Client struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	log    logging.Logger
	nextID uint64

	// parents records the parent ID the host reported for each
	// element, keyed by element ID. Parent lineage lives here rather
	// than in the handles so that handle equality is exactly
	// (client, id).
	parents map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for protocol diagnostics.
func WithLogger(log logging.Logger) Option {
	return func(c *Client) { c.log = log }
}

// Dial connects to a document host.
func Dial(url string, opts ...Option) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial document host %s: %w", url, err)
	}
	return NewClient(conn, opts...), nil
}

// NewClient wraps an established connection. The client owns the
// connection from here on; Close releases it.
func NewClient(conn *websocket.Conn, opts ...Option) *Client {
	c := &Client{
		conn:    conn,
		log:     logging.NullLogger{},
		parents: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close shuts the connection down.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// Root fetches a handle to the host document's root scope.
func (c *Client) Root() (document.Node, error) {
	resp, err := c.roundTrip(request{Op: opRoot})
	if err != nil {
		return nil, err
	}
	if resp.Node == nil {
		return nil, fmt.Errorf("document host returned no root node")
	}
	return c.handle(*resp.Node), nil
}

// roundTrip sends one request and reads its response, translating
// host-reported errors.
func (c *Client) roundTrip(req request) (*response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	req.ID = c.nextID

	if err := c.conn.WriteJSON(&req); err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", req.Op, err)
	}

	var resp response
	if err := c.conn.ReadJSON(&resp); err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", req.Op, err)
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("document host answered request %d with response %d", req.ID, resp.ID)
	}

	if resp.Error != nil {
		c.log.Debug(
			"document host reported error",
			logging.StringField("op", req.Op),
			logging.StringField("kind", resp.Error.Kind),
		)
		if resp.Error.Kind == errKindInvalidated {
			return nil, &document.InvalidatedError{Reason: resp.Error.Message}
		}
		return nil, fmt.Errorf("document host: %s: %s", resp.Error.Kind, resp.Error.Message)
	}

	return &resp, nil
}

// handle turns a wire node into a comparable handle, recording the
// reported parent lineage on the client.
func (c *Client) handle(w wireNode) document.Node {
	if w.Parent != "" {
		c.mu.Lock()
		c.parents[w.ID] = w.Parent
		c.mu.Unlock()
	}
	return nodeHandle{client: c, id: w.ID}
}

// parentOf looks up the recorded parent of an element.
func (c *Client) parentOf(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.parents[id]
	return p, ok
}

// scopeID extracts the host ID from a handle, rejecting handles that
// belong to another client.
func (c *Client) scopeID(scope document.Node) (string, error) {
	h, ok := scope.(nodeHandle)
	if !ok || h.client != c {
		return "", fmt.Errorf("scope is not a handle from this document host")
	}
	return h.id, nil
}

// nodeHandle is a value-type handle: equality is (client, id), which
// matches the host's element identity. Handles to the same element
// compare equal however they were obtained.
type nodeHandle struct {
	client *Client
	id     string
}

// Parent returns the enclosing element using the parent ID the host
// reported alongside the node. Elements whose parent the host never
// reported, the document root included, report false.
func (h nodeHandle) Parent() (document.Node, bool) {
	p, ok := h.client.parentOf(h.id)
	if !ok {
		return nil, false
	}
	return nodeHandle{client: h.client, id: p}, true
}

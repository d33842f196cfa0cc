// Package config holds the process-wide defaults an expectation call
// falls back to when the caller omits an option: the default wait
// budget, the default selector kind, and the polling interval. A
// Config is built once (programmatically or from a YAML file), handed
// to the matchers layer, and treated as read-only from then on.
package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultWait is the wait budget applied when a query carries no
	// explicit wait option.
	DefaultWait = 2 * time.Second

	// DefaultPollInterval is the pause between retry attempts.
	DefaultPollInterval = 50 * time.Millisecond

	// MinPollInterval is the floor applied to configured poll
	// intervals so a tight loop cannot starve other work.
	MinPollInterval = 10 * time.Millisecond

	// DefaultKind is the selector kind assumed when a locator is
	// given without one.
	DefaultKind = "css"
)

// builtinKinds are the selector kinds registered on every Config.
// Drivers may register additional kinds with RegisterKind.
var builtinKinds = []string{
	"css", "xpath", "button", "link", "field", "select", "table",
}

// Config is the default configuration for expectation calls. It is
// safe for concurrent reads; kinds are registered by a single writer
// during setup.
type Config struct {
	// Wait is the default wait budget.
	Wait time.Duration

	// Kind is the default selector kind.
	Kind string

	// PollInterval is the pause between retry attempts.
	PollInterval time.Duration

	mu    sync.RWMutex
	kinds map[string]struct{}
}

// New creates a Config with the package defaults and the built-in
// selector kinds registered.
func New() *Config {
	c := &Config{
		Wait:         DefaultWait,
		Kind:         DefaultKind,
		PollInterval: DefaultPollInterval,
		kinds:        make(map[string]struct{}, len(builtinKinds)),
	}
	for _, k := range builtinKinds {
		c.kinds[k] = struct{}{}
	}
	return c
}

// RegisterKind adds a selector kind to the recognized set. Returns an
// error if the kind is already registered.
func (c *Config) RegisterKind(kind string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.kinds[kind]; exists {
		return fmt.Errorf("selector kind already registered: %s", kind)
	}
	c.kinds[kind] = struct{}{}
	return nil
}

// IsKind reports whether the given name is a recognized selector
// kind. The all-of/none-of operations use it to decide whether their
// first argument is a kind or a locator.
func (c *Config) IsKind(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.kinds[name]
	return ok
}

// Kinds returns the recognized selector kinds in unspecified order.
func (c *Config) Kinds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.kinds))
	for k := range c.kinds {
		out = append(out, k)
	}
	return out
}

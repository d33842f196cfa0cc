package htmldoc_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.expectations/pkg/config"
	"digital.vasic.expectations/pkg/document"
	"digital.vasic.expectations/pkg/htmldoc"
	"digital.vasic.expectations/pkg/matchers"
	"digital.vasic.expectations/pkg/query"
)

var itemsRe = regexp.MustCompile(`\d+ items in your cart`)

func selector(kind, locator string) document.Selector {
	return document.Selector{Kind: kind, Locator: locator}
}

func fastConfig() *config.Config {
	cfg := config.New()
	cfg.PollInterval = 10 * time.Millisecond
	cfg.Wait = time.Second
	return cfg
}

// The expectation is made against a page still "loading"; a
// background goroutine swaps in the final content while the matcher
// polls.
func TestExpectationSucceedsAcrossContentSwap(t *testing.T) {
	d, err := htmldoc.Parse(`<html><body><div class="spinner">loading</div></body></html>`)
	require.NoError(t, err)

	m := matchers.New(d.Root(), d, matchers.WithConfig(fastConfig()))

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = d.Replace(`<html><body><p class="greeting">Welcome back</p></body></html>`)
	}()

	require.NoError(t, m.AssertSelector("css", "p.greeting"))
	require.NoError(t, m.AssertText("Welcome back"))
	require.NoError(t, m.AssertNoSelector("css", ".spinner"))
}

func TestStaleScopeRecoversAtTheRoot(t *testing.T) {
	d, err := htmldoc.Parse(`<html><body><div id="box"><p>old</p></div></body></html>`)
	require.NoError(t, err)

	boxes, err := d.Select(d.Root(), selector("css", "#box"), nil)
	require.NoError(t, err)
	require.Len(t, boxes, 1)

	// A matcher bound to an element handle keeps retrying while the
	// handle reports invalidation, and fails with the last error once
	// the budget runs out because the handle never becomes current
	// again.
	require.NoError(t, d.Replace(`<html><body><div id="box"><p>new</p></div></body></html>`))

	cfg := fastConfig()
	cfg.Wait = 50 * time.Millisecond
	m := matchers.New(boxes[0], d, matchers.WithConfig(cfg))

	err = m.AssertSelector("css", "p")
	require.Error(t, err)
	assert.False(t, matchers.IsExpectationNotMet(err), "invalidation is not an unmet expectation")

	// Bound to the root instead, the same assertion sees the new
	// content immediately.
	m = matchers.New(d.Root(), d, matchers.WithConfig(fastConfig()))
	require.NoError(t, m.AssertSelector("css", "p", query.WithText("new")))
}

func TestWholeSurfaceAgainstStaticPage(t *testing.T) {
	d, err := htmldoc.Parse(`
<html><body>
  <h1>Checkout</h1>
  <button id="pay">Pay now</button>
  <a href="/cart" id="back">Back to cart</a>
  <ul>
    <li class="line">Widget</li>
    <li class="line">Gadget</li>
  </ul>
  <p style="color: red">2 items in your cart</p>
</body></html>`)
	require.NoError(t, err)

	cfg := fastConfig()
	cfg.Wait = 0
	m := matchers.New(d.Root(), d, matchers.WithConfig(cfg))

	ok, err := m.HasButton("Pay now")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.HasLink("Back to cart")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, m.AssertSelector("css", "li.line", query.Count(2)))
	require.NoError(t, m.AssertAllOfSelectors("css", []string{"h1", "ul", "#pay"}))
	require.NoError(t, m.AssertNoneOfSelectors("css", []string{".spinner", ".error"}))
	require.NoError(t, m.AssertTextMatching(itemsRe))

	lines, err := d.Select(d.Root(), selector("css", "li.line"), nil)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	lm := matchers.New(lines[0], d, matchers.WithConfig(cfg))
	require.NoError(t, lm.AssertMatchesSelector("css", ".line"))
	require.NoError(t, lm.AssertNotMatchSelector("css", "#pay"))

	styled, err := d.Select(d.Root(), selector("css", "p"), nil)
	require.NoError(t, err)
	require.Len(t, styled, 1)

	sm := matchers.New(styled[0], d, matchers.WithConfig(cfg))
	require.NoError(t, sm.AssertStyle(map[string]string{"color": "red"}))
}

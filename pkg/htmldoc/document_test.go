package htmldoc

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.expectations/pkg/document"
)

const samplePage = `
<html>
  <body>
    <div id="main" class="content">
      <p class="foo">first</p>
      <p class="foo bar">second</p>
      <p class="baz" hidden>hidden paragraph</p>
      <ul>
        <li class="item">alpha</li>
        <li class="item">beta</li>
      </ul>
    </div>
    <div id="sidebar" style="display: none">
      <p class="foo">invisible</p>
    </div>
  </body>
</html>`

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	d, err := Parse(src)
	require.NoError(t, err)
	return d
}

func sel(kind, locator string) document.Selector {
	return document.Selector{Kind: kind, Locator: locator}
}

func TestParse_Invalid(t *testing.T) {
	// html.Parse is lenient; even fragments parse. The constructor
	// still guards against reader failures, which plain strings never
	// produce, so this documents the lenient behavior.
	d, err := Parse("<not really html")
	require.NoError(t, err)
	require.NotNil(t, d)
}

func TestSelect_CSS(t *testing.T) {
	d := mustParse(t, samplePage)
	root := d.Root()

	tests := []struct {
		name    string
		locator string
		want    int
	}{
		{"by tag", "p", 4},
		{"by class", ".foo", 3},
		{"by id", "#main", 1},
		{"tag and class", "p.foo", 3},
		{"two classes", "p.foo.bar", 1},
		{"descendant chain", "#main p.foo", 2},
		{"deep descendant", "div li.item", 2},
		{"no match", "p.missing", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Select(root, sel("css", tt.locator), nil)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestSelect_CSSInvalidLocator(t *testing.T) {
	d := mustParse(t, samplePage)
	root := d.Root()

	for _, locator := range []string{"", "p..", "#a#b", "p[attr]", "#"} {
		_, err := d.Select(root, sel("css", locator), nil)
		assert.Error(t, err, "locator %q", locator)
	}
}

func TestSelect_UnknownKind(t *testing.T) {
	d := mustParse(t, samplePage)
	_, err := d.Select(d.Root(), sel("quark", "p"), nil)
	assert.Error(t, err)
}

func TestSelect_ScopedToNode(t *testing.T) {
	d := mustParse(t, samplePage)
	root := d.Root()

	mains, err := d.Select(root, sel("css", "#main"), nil)
	require.NoError(t, err)
	require.Len(t, mains, 1)

	// Inside #main the hidden sidebar paragraph is out of scope.
	got, err := d.Select(mains[0], sel("css", "p.foo"), nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSelect_TextFilter(t *testing.T) {
	d := mustParse(t, samplePage)
	root := d.Root()

	got, err := d.Select(root, sel("css", "li"), document.Filters{"text": "alpha"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = d.Select(root, sel("css", "li"), document.Filters{"text": regexp.MustCompile(`^(alpha|beta)$`)})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = d.Select(root, sel("css", "li"), document.Filters{"text": 42})
	assert.Error(t, err)
}

func TestSelect_VisibleFilter(t *testing.T) {
	d := mustParse(t, samplePage)
	root := d.Root()

	all, err := d.Select(root, sel("css", "p"), nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	// The hidden paragraph and the display:none sidebar drop out.
	visible, err := d.Select(root, sel("css", "p"), document.Filters{"visible": true})
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	_, err = d.Select(root, sel("css", "p"), document.Filters{"visible": "yes"})
	assert.Error(t, err)
}

func TestSelect_UnknownFilter(t *testing.T) {
	d := mustParse(t, samplePage)
	_, err := d.Select(d.Root(), sel("css", "p"), document.Filters{"checked": true})
	assert.Error(t, err)
}

const formPage = `
<html>
  <body>
    <button id="save-btn">Save draft</button>
    <input type="submit" value="Submit order">
    <input type="text" name="email" placeholder="Email address">
    <textarea name="notes"></textarea>
    <a href="/home" id="home-link">Home</a>
    <a id="dead-anchor">No href</a>
    <select name="country" id="country"></select>
    <table id="orders"><caption>Order history</caption><tr><td>x</td></tr></table>
  </body>
</html>`

func TestSelect_ElementKinds(t *testing.T) {
	d := mustParse(t, formPage)
	root := d.Root()

	tests := []struct {
		kind    string
		locator string
		want    int
	}{
		{"button", "save-btn", 1},
		{"button", "Save draft", 1},
		{"button", "Submit order", 1},
		{"button", "missing", 0},
		{"link", "Home", 1},
		{"link", "home-link", 1},
		{"link", "No href", 0},
		{"field", "email", 1},
		{"field", "Email address", 1},
		{"field", "notes", 1},
		{"select", "country", 1},
		{"table", "orders", 1},
		{"table", "Order history", 1},
		{"table", "missing", 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind+" "+tt.locator, func(t *testing.T) {
			got, err := d.Select(root, sel(tt.kind, tt.locator), nil)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestSelect_CheckedFilter(t *testing.T) {
	d := mustParse(t, `
<html><body>
  <input type="checkbox" name="newsletter" checked>
  <input type="checkbox" name="promotions">
  <input type="radio" name="plan" value="basic" checked>
</body></html>`)
	root := d.Root()

	got, err := d.Select(root, sel("field", "newsletter"), document.Filters{"checked": true})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = d.Select(root, sel("field", "newsletter"), document.Filters{"checked": false})
	require.NoError(t, err)
	assert.Len(t, got, 0)

	got, err = d.Select(root, sel("field", "promotions"), document.Filters{"checked": false})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = d.Select(root, sel("css", "input"), document.Filters{"checked": true})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = d.Select(root, sel("field", "newsletter"), document.Filters{"checked": "yes"})
	assert.Error(t, err)
}

func TestNodeIdentity(t *testing.T) {
	d := mustParse(t, samplePage)
	root := d.Root()

	first, err := d.Select(root, sel("css", "p.bar"), nil)
	require.NoError(t, err)
	second, err := d.Select(root, sel("css", ".foo.bar"), nil)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.True(t, first[0] == second[0], "handles to the same element compare equal")
}

func TestNodeParent(t *testing.T) {
	d := mustParse(t, samplePage)
	root := d.Root()

	items, err := d.Select(root, sel("css", "li.item"), nil)
	require.NoError(t, err)
	require.Len(t, items, 2)

	parent, ok := items[0].Parent()
	require.True(t, ok)

	// Both list items share the same ul parent.
	otherParent, ok := items[1].Parent()
	require.True(t, ok)
	assert.True(t, parent == otherParent)

	// Selecting from the parent finds exactly the two items.
	got, err := d.Select(parent, sel("css", "li"), nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, ok = root.Parent()
	assert.False(t, ok, "the document root has no parent")
}

func TestReplace_InvalidatesElementHandles(t *testing.T) {
	d := mustParse(t, samplePage)
	root := d.Root()

	stale, err := d.Select(root, sel("css", "#main"), nil)
	require.NoError(t, err)
	require.Len(t, stale, 1)

	require.NoError(t, d.Replace(`<html><body><p class="foo">new</p></body></html>`))

	_, err = d.Select(stale[0], sel("css", "p"), nil)
	var inv *document.InvalidatedError
	require.ErrorAs(t, err, &inv)

	// The root handle survives the swap and sees the new content.
	got, err := d.Select(root, sel("css", "p.foo"), nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSelect_ForeignHandle(t *testing.T) {
	a := mustParse(t, samplePage)
	b := mustParse(t, samplePage)

	_, err := a.Select(b.Root(), sel("css", "p"), nil)
	assert.Error(t, err)
}

func TestCountText(t *testing.T) {
	d := mustParse(t, `
<html><body>
  <p>Lorem   ipsum
     dolor</p>
  <p>Lorem again</p>
  <p hidden>Lorem hidden</p>
  <script>var lorem = "Lorem";</script>
</body></html>`)
	root := d.Root()

	t.Run("exact with normalized whitespace", func(t *testing.T) {
		n, err := d.CountText(root, document.TextPattern{Exact: "Lorem ipsum dolor"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("multiple occurrences", func(t *testing.T) {
		n, err := d.CountText(root, document.TextPattern{Exact: "Lorem"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, n, "script text is skipped, hidden text is not")
	})

	t.Run("visible only", func(t *testing.T) {
		n, err := d.CountText(root, document.TextPattern{Exact: "Lorem"}, document.Filters{"visible": true})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("regexp", func(t *testing.T) {
		n, err := d.CountText(root, document.TextPattern{Regexp: regexp.MustCompile(`Lorem \w+`)}, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("empty exact", func(t *testing.T) {
		n, err := d.CountText(root, document.TextPattern{Exact: "   "}, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("unknown filter", func(t *testing.T) {
		_, err := d.CountText(root, document.TextPattern{Exact: "Lorem"}, document.Filters{"count": 1})
		assert.Error(t, err)
	})
}

func TestCountText_StaleHandle(t *testing.T) {
	d := mustParse(t, samplePage)

	mains, err := d.Select(d.Root(), sel("css", "#main"), nil)
	require.NoError(t, err)
	require.NoError(t, d.Replace("<html><body></body></html>"))

	_, err = d.CountText(mains[0], document.TextPattern{Exact: "alpha"}, nil)
	var inv *document.InvalidatedError
	require.ErrorAs(t, err, &inv)
}

func TestStyles(t *testing.T) {
	d := mustParse(t, `
<html><body>
  <p id="styled" style="color: red; font-size:12px; Display : block">x</p>
  <p id="plain">y</p>
</body></html>`)
	root := d.Root()

	styled, err := d.Select(root, sel("css", "#styled"), nil)
	require.NoError(t, err)
	require.Len(t, styled, 1)

	got, err := d.Styles(styled[0], []string{"color", "font-size", "display", "margin"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"color":     "red",
		"font-size": "12px",
		"display":   "block",
		"margin":    "",
	}, got)

	plain, err := d.Select(root, sel("css", "#plain"), nil)
	require.NoError(t, err)
	got, err = d.Styles(plain[0], []string{"color"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"color": ""}, got)
}

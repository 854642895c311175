package htmlproof_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/htmlproof"
	"github.com/fwojciec/htmlproof/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// attrs builds an attribute list from key/value pairs.
func attrs(kv ...string) []htmlproof.Attribute {
	out := make([]htmlproof.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, htmlproof.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return out
}

// newNode returns a mock node. Ancestors are given innermost first; the
// last one plays the document.
func newNode(name string, list []htmlproof.Attribute, ancestors ...htmlproof.Node) *mock.Node {
	return &mock.Node{
		NameFn: func() string { return name },
		AttrFn: func(key string) (string, bool) {
			for _, a := range list {
				if a.Key == key {
					return a.Val, true
				}
			}
			return "", false
		},
		AttrsFn:     func() []htmlproof.Attribute { return list },
		AncestorsFn: func() []htmlproof.Node { return ancestors },
		LineFn:      func() int { return 7 },
		ContentFn:   func() string { return "text" },
	}
}

func document() *mock.Node {
	return newNode("", nil)
}

func TestElement_LinkAttribute(t *testing.T) {
	t.Parallel()

	t.Run("tags without a reference attribute have none", func(t *testing.T) {
		t.Parallel()

		for _, tag := range []string{"div", "iframe", "form", "span", "video", "IMG", "A"} {
			node := newNode(tag, attrs("href", "x", "src", "y", "srcset", "z 1x", "content", "w"))
			el := htmlproof.NewElement(nil, node, "")

			_, ok := el.LinkAttribute()
			assert.False(t, ok, "tag %q", tag)
			assert.Empty(t, el.LinkAttributeName(), "tag %q", tag)
			assert.True(t, el.URL().IsBlank(), "tag %q", tag)
		}
	})

	t.Run("meta uses content even when href and src are set", func(t *testing.T) {
		t.Parallel()

		node := newNode("meta", attrs("content", "x", "href", "h", "src", "s"))
		el := htmlproof.NewElement(nil, node, "")

		link, ok := el.LinkAttribute()
		require.True(t, ok)
		assert.Equal(t, "x", link)
		assert.Equal(t, "content", el.LinkAttributeName())
	})

	t.Run("meta without content has none", func(t *testing.T) {
		t.Parallel()

		el := htmlproof.NewElement(nil, newNode("meta", attrs("name", "viewport")), "")

		_, ok := el.LinkAttribute()
		assert.False(t, ok)
	})

	t.Run("source prefers src over srcset", func(t *testing.T) {
		t.Parallel()

		node := newNode("source", attrs("srcset", "y 1x", "src", "x"))
		el := htmlproof.NewElement(nil, node, "")

		link, ok := el.LinkAttribute()
		require.True(t, ok)
		assert.Equal(t, "x", link)
		assert.Equal(t, "src", el.LinkAttributeName())
	})

	t.Run("source falls back to srcset without src", func(t *testing.T) {
		t.Parallel()

		node := newNode("source", attrs("srcset", "y 1x, z 2x"))
		el := htmlproof.NewElement(nil, node, "")

		link, ok := el.LinkAttribute()
		require.True(t, ok)
		assert.Equal(t, "y 1x, z 2x", link)
		assert.Equal(t, "srcset", el.LinkAttributeName())
	})

	t.Run("blank src falls through to srcset", func(t *testing.T) {
		t.Parallel()

		node := newNode("img", attrs("src", "  ", "srcset", "a.jpg"))
		el := htmlproof.NewElement(nil, node, "")

		link, ok := el.LinkAttribute()
		require.True(t, ok)
		assert.Equal(t, "a.jpg", link)
	})

	t.Run("img and script use src", func(t *testing.T) {
		t.Parallel()

		for _, tag := range []string{"img", "script"} {
			el := htmlproof.NewElement(nil, newNode(tag, attrs("src", "/a.js", "href", "/b")), "")

			link, ok := el.LinkAttribute()
			require.True(t, ok, "tag %q", tag)
			assert.Equal(t, "/a.js", link, "tag %q", tag)
		}
	})

	t.Run("script ignores srcset", func(t *testing.T) {
		t.Parallel()

		el := htmlproof.NewElement(nil, newNode("script", attrs("srcset", "a.js 1x")), "")

		_, ok := el.LinkAttribute()
		assert.False(t, ok)
		assert.Empty(t, el.Srcset())
	})

	t.Run("a and link use href", func(t *testing.T) {
		t.Parallel()

		for _, tag := range []string{"a", "link"} {
			el := htmlproof.NewElement(nil, newNode(tag, attrs("href", "/about", "src", "/x")), "")

			link, ok := el.LinkAttribute()
			require.True(t, ok, "tag %q", tag)
			assert.Equal(t, "/about", link, "tag %q", tag)
		}
	})
}

func TestElement_SwapAttributes(t *testing.T) {
	t.Parallel()

	cfg := htmlproof.NewConfig()
	cfg.SwapAttributes["img"] = []htmlproof.AttributeSwap{{Old: "data-src", New: "src"}}

	t.Run("renamed attribute becomes the link attribute", func(t *testing.T) {
		t.Parallel()

		node := newNode("img", attrs("data-src", "x"))
		el := htmlproof.NewElement(cfg, node, "")

		link, ok := el.LinkAttribute()
		require.True(t, ok)
		assert.Equal(t, "x", link)
		assert.False(t, el.HasAttr("data-src"))
		v, ok := el.Attr("src")
		assert.True(t, ok)
		assert.Equal(t, "x", v)
	})

	t.Run("node is left unmodified", func(t *testing.T) {
		t.Parallel()

		node := newNode("img", attrs("data-src", "x"))
		_ = htmlproof.NewElement(cfg, node, "")

		v, ok := node.Attr("data-src")
		assert.True(t, ok)
		assert.Equal(t, "x", v)
		_, ok = node.Attr("src")
		assert.False(t, ok)
	})

	t.Run("blank old value is not swapped", func(t *testing.T) {
		t.Parallel()

		node := newNode("img", attrs("data-src", "", "src", "real.png"))
		el := htmlproof.NewElement(cfg, node, "")

		link, _ := el.LinkAttribute()
		assert.Equal(t, "real.png", link)
		assert.True(t, el.HasAttr("data-src"))
	})

	t.Run("rules for other tags do not apply", func(t *testing.T) {
		t.Parallel()

		node := newNode("script", attrs("data-src", "x"))
		el := htmlproof.NewElement(cfg, node, "")

		_, ok := el.LinkAttribute()
		assert.False(t, ok)
		assert.True(t, el.HasAttr("data-src"))
	})

	t.Run("swaps apply in order", func(t *testing.T) {
		t.Parallel()

		chained := htmlproof.NewConfig()
		chained.SwapAttributes["a"] = []htmlproof.AttributeSwap{
			{Old: "data-href", New: "data-tmp"},
			{Old: "data-tmp", New: "href"},
		}

		el := htmlproof.NewElement(chained, newNode("a", attrs("data-href", "/x")), "")

		link, _ := el.LinkAttribute()
		assert.Equal(t, "/x", link)
		assert.False(t, el.HasAttr("data-tmp"))
	})
}

func TestElement_Srcset(t *testing.T) {
	t.Parallel()

	t.Run("single candidate", func(t *testing.T) {
		t.Parallel()

		el := htmlproof.NewElement(nil, newNode("img", attrs("srcset", "a.jpg")), "")

		assert.False(t, el.MultipleSrcsets())
		assert.False(t, el.MultipleSizes())
		assert.Equal(t, []string{"a.jpg"}, el.Srcsets())
		assert.Equal(t, []string{"a.jpg"}, el.SrcsetsWithoutSizes())
	})

	t.Run("multiple candidates with densities", func(t *testing.T) {
		t.Parallel()

		el := htmlproof.NewElement(nil, newNode("img", attrs("srcset", "a.jpg 1x, b.jpg 2x")), "")

		assert.True(t, el.MultipleSrcsets())
		assert.True(t, el.MultipleSizes())
		assert.Equal(t, []string{"a.jpg 1x", "b.jpg 2x"}, el.Srcsets())
		assert.Equal(t, []string{"a.jpg", "b.jpg"}, el.SrcsetsWithoutSizes())
	})

	t.Run("absent srcset", func(t *testing.T) {
		t.Parallel()

		el := htmlproof.NewElement(nil, newNode("img", attrs("src", "a.jpg")), "")

		assert.False(t, el.MultipleSrcsets())
		assert.False(t, el.MultipleSizes())
		assert.Nil(t, el.Srcsets())
		assert.Nil(t, el.SrcsetsWithoutSizes())
	})
}

func TestElement_AriaHidden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		attrs []htmlproof.Attribute
		want  bool
	}{
		{"exact true", attrs("aria-hidden", "true"), true},
		{"capitalized", attrs("aria-hidden", "True"), false},
		{"numeric", attrs("aria-hidden", "1"), false},
		{"empty", attrs("aria-hidden", ""), false},
		{"absent", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			el := htmlproof.NewElement(nil, newNode("a", tt.attrs), "")
			assert.Equal(t, tt.want, el.AriaHidden())
		})
	}
}

func TestElement_Ignore(t *testing.T) {
	t.Parallel()

	t.Run("own marker with empty value", func(t *testing.T) {
		t.Parallel()

		node := newNode("a", attrs("href", "/x", "data-proofer-ignore", ""), document())
		el := htmlproof.NewElement(nil, node, "")

		assert.True(t, el.Ignore())
	})

	t.Run("own marker with any value", func(t *testing.T) {
		t.Parallel()

		node := newNode("a", attrs("href", "/x", "data-proofer-ignore", "false"), document())
		el := htmlproof.NewElement(nil, node, "")

		assert.True(t, el.Ignore())
	})

	t.Run("parent marker", func(t *testing.T) {
		t.Parallel()

		parent := newNode("div", attrs("data-proofer-ignore", ""))
		body := newNode("body", nil)
		node := newNode("a", attrs("href", "/x"), parent, body, document())
		el := htmlproof.NewElement(nil, node, "")

		assert.True(t, el.Ignore())
	})

	t.Run("distant ancestor marker", func(t *testing.T) {
		t.Parallel()

		html := newNode("html", attrs("data-proofer-ignore", "true"))
		node := newNode("a", attrs("href", "/x"), newNode("p", nil), newNode("body", nil), html, document())
		el := htmlproof.NewElement(nil, node, "")

		assert.True(t, el.Ignore())
	})

	t.Run("marker on document only is not ignorable", func(t *testing.T) {
		t.Parallel()

		doc := newNode("", attrs("data-proofer-ignore", ""))
		node := newNode("a", attrs("href", "/x"), newNode("body", nil), doc)
		el := htmlproof.NewElement(nil, node, "")

		assert.False(t, el.Ignore())
	})

	t.Run("no marker", func(t *testing.T) {
		t.Parallel()

		node := newNode("a", attrs("href", "/x"), newNode("body", nil), document())
		el := htmlproof.NewElement(nil, node, "")

		assert.False(t, el.Ignore())
	})

	t.Run("no ancestors", func(t *testing.T) {
		t.Parallel()

		el := htmlproof.NewElement(nil, newNode("a", attrs("href", "/x")), "")

		assert.False(t, el.Ignore())
	})

	t.Run("nil ancestors are tolerated", func(t *testing.T) {
		t.Parallel()

		node := newNode("a", attrs("href", "/x"), nil, document())
		el := htmlproof.NewElement(nil, node, "")

		assert.False(t, el.Ignore())
	})

	t.Run("javascript reference", func(t *testing.T) {
		t.Parallel()

		node := newNode("a", attrs("href", "javascript:void(0)"), document())
		el := htmlproof.NewElement(nil, node, "")

		assert.True(t, el.Ignore())
	})

	t.Run("configured ignore pattern", func(t *testing.T) {
		t.Parallel()

		cfg := htmlproof.NewConfig()
		p, err := htmlproof.ParseURLPattern("/^https://twitter\\.com/")
		require.NoError(t, err)
		cfg.IgnoreURLs = []htmlproof.URLPattern{p}

		ignored := htmlproof.NewElement(cfg, newNode("a", attrs("href", "https://twitter.com/x"), document()), "")
		kept := htmlproof.NewElement(cfg, newNode("a", attrs("href", "https://example.com/x"), document()), "")

		assert.True(t, ignored.Ignore())
		assert.False(t, kept.Ignore())
	})

	t.Run("repeated calls agree", func(t *testing.T) {
		t.Parallel()

		parent := newNode("div", attrs("data-proofer-ignore", ""))
		node := newNode("a", attrs("href", "/x"), parent, document())
		el := htmlproof.NewElement(nil, node, "")

		first := el.Ignore()
		second := el.Ignore()
		assert.Equal(t, first, second)
		assert.True(t, first)
	})
}

func TestElement_Passthrough(t *testing.T) {
	t.Parallel()

	cfg := htmlproof.NewConfig()
	cfg.SwapURLs = []htmlproof.URLSwap{{Pattern: regexp.MustCompile(`^https://old\.example\.com`), Replacement: "https://example.com"}}

	node := newNode("a", attrs("href", "https://old.example.com/page"))
	el := htmlproof.NewElement(cfg, node, "https://example.com/docs/")

	assert.Equal(t, 7, el.Line())
	assert.Equal(t, "text", el.Content())
	assert.Equal(t, "a", el.Name())
	assert.Equal(t, htmlproof.TagA, el.Kind())
	assert.True(t, el.IsA())
	assert.False(t, el.IsLink())
	assert.Equal(t, "https://example.com/docs/", el.BaseURL())
	assert.Equal(t, "https://old.example.com/page", el.URL().Raw())
	assert.Equal(t, "https://example.com/page", el.URL().String())
	assert.Same(t, node, el.Node())
}

func TestElement_TagPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag   string
		check func(*htmlproof.Element) bool
	}{
		{"meta", (*htmlproof.Element).IsMeta},
		{"img", (*htmlproof.Element).IsImg},
		{"script", (*htmlproof.Element).IsScript},
		{"source", (*htmlproof.Element).IsSource},
		{"a", (*htmlproof.Element).IsA},
		{"link", (*htmlproof.Element).IsLink},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()

			assert.True(t, tt.check(htmlproof.NewElement(nil, newNode(tt.tag, nil), "")))
			assert.False(t, tt.check(htmlproof.NewElement(nil, newNode("div", nil), "")))
		})
	}
}

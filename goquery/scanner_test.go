package goquery_test

import (
	"context"
	"testing"

	"github.com/fwojciec/htmlproof"
	"github.com/fwojciec/htmlproof/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Scanner implements htmlproof.DocumentScanner at compile time.
var _ htmlproof.DocumentScanner = (*goquery.Scanner)(nil)

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	t.Run("extracts one reference per linking element", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<meta property="og:image" content="https://cdn.example.com/og.png">
<link rel="stylesheet" href="../css/site.css">
<script src="/js/app.js"></script>
</head><body>
<a href="guide.html">Guide</a>
<a name="anchor">No href</a>
<div data-proofer-ignore><a href="/hidden">Hidden</a></div>
<a href="javascript:void(0)">JS</a>
<img srcset="a.png 1x, b.png 2x" alt="x">
<picture><source src="v.webp" srcset="w.webp 1x"></picture>
<a href="http://[::1">Broken</a>
<a href="#top" aria-hidden="true">Top</a>
</body></html>`

		cfg := htmlproof.NewConfig()
		cfg.BaseURL = "https://example.com/"
		s := goquery.NewScanner(cfg)

		refs, err := s.Scan(context.Background(), "docs/index.html", html)
		require.NoError(t, err)
		require.Len(t, refs, 10)

		assert.Equal(t, "meta", refs[0].Tag)
		assert.Equal(t, "content", refs[0].Attribute)
		assert.Equal(t, "https://cdn.example.com/og.png", refs[0].Resolved)

		assert.Equal(t, "link", refs[1].Tag)
		assert.Equal(t, "https://example.com/css/site.css", refs[1].Resolved)
		assert.Equal(t, 3, refs[1].Line)

		assert.Equal(t, "https://example.com/js/app.js", refs[2].Resolved)

		assert.Equal(t, "guide.html", refs[3].Raw)
		assert.Equal(t, "https://example.com/docs/guide.html", refs[3].Resolved)
		assert.Equal(t, "docs/index.html", refs[3].DocumentPath)
		assert.False(t, refs[3].Ignored)

		assert.Equal(t, "/hidden", refs[4].Raw)
		assert.True(t, refs[4].Ignored, "inherited marker")

		assert.True(t, refs[5].Ignored, "javascript reference")

		assert.Equal(t, "img", refs[6].Tag)
		assert.Equal(t, "srcset", refs[6].Attribute)
		assert.Empty(t, refs[6].Resolved)
		assert.Equal(t, []string{"https://example.com/docs/a.png", "https://example.com/docs/b.png"}, refs[6].Srcset)

		assert.Equal(t, "source", refs[7].Tag)
		assert.Equal(t, "src", refs[7].Attribute)
		assert.Equal(t, "https://example.com/docs/v.webp", refs[7].Resolved)

		assert.Empty(t, refs[8].Resolved)
		assert.NotEmpty(t, refs[8].Error)

		assert.Equal(t, "https://example.com/docs/index.html#top", refs[9].Resolved)
		assert.True(t, refs[9].AriaHidden)
	})

	t.Run("honours base href", func(t *testing.T) {
		t.Parallel()

		html := `<head><base href="https://docs.example.org/v2/"></head><body><a href="intro.html">Intro</a></body>`
		cfg := htmlproof.NewConfig()
		cfg.BaseURL = "https://example.com"
		s := goquery.NewScanner(cfg)

		refs, err := s.Scan(context.Background(), "index.html", html)
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "https://docs.example.org/v2/intro.html", refs[0].Resolved)
	})

	t.Run("resolves relative base href against the document", func(t *testing.T) {
		t.Parallel()

		html := `<head><base href="../"></head><body><a href="intro.html">Intro</a></body>`
		cfg := htmlproof.NewConfig()
		cfg.BaseURL = "https://example.com/"
		s := goquery.NewScanner(cfg)

		refs, err := s.Scan(context.Background(), "docs/guide/index.html", html)
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "https://example.com/docs/intro.html", refs[0].Resolved)
	})

	t.Run("resolves against site root without base URL", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewScanner(nil)

		refs, err := s.Scan(context.Background(), "blog/post.html", `<a href="../img/x.png">x</a>`)
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "/img/x.png", refs[0].Resolved)
	})

	t.Run("applies attribute swaps", func(t *testing.T) {
		t.Parallel()

		cfg := htmlproof.NewConfig()
		cfg.BaseURL = "https://example.com/"
		cfg.SwapAttributes["img"] = []htmlproof.AttributeSwap{{Old: "data-src", New: "src"}}
		s := goquery.NewScanner(cfg)

		refs, err := s.Scan(context.Background(), "index.html", `<img data-src="lazy.png">`)
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "src", refs[0].Attribute)
		assert.Equal(t, "lazy.png", refs[0].Raw)
		assert.Equal(t, "https://example.com/lazy.png", refs[0].Resolved)
	})

	t.Run("returns no references for plain text", func(t *testing.T) {
		t.Parallel()

		refs, err := goquery.NewScanner(nil).Scan(context.Background(), "index.html", "just text")
		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("returns error on canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := goquery.NewScanner(nil).Scan(ctx, "index.html", `<a href="/x">x</a>`)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestScanner_Scan_DisableExternal(t *testing.T) {
	t.Parallel()

	cfg := htmlproof.NewConfig()
	cfg.DisableExternal = true
	s := goquery.NewScanner(cfg)

	refs, err := s.Scan(context.Background(), "index.html", `<a href="https://other.example/">x</a><a href="/local">y</a>`)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.True(t, refs[0].Ignored)
	assert.False(t, refs[1].Ignored)
}

func TestScanner_Scan_EscapesDocumentPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		docPath string
		href    string
		want    string
	}{
		{"percent in file name", "", "100%.html", "other.html", "/other.html"},
		{"fragment against percent file name", "", "100%.html", "#top", "/100%25.html#top"},
		{"hash in directory", "", "a#b/index.html", "other.html", "/a%23b/other.html"},
		{"question mark in directory", "", "q?x/index.html", "other.html", "/q%3Fx/other.html"},
		{"space in directory", "https://example.com", "my docs/index.html", "other.html", "https://example.com/my%20docs/other.html"},
		{"hash under base path", "https://example.com/site/", "a#b/index.html", "other.html", "https://example.com/site/a%23b/other.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := htmlproof.NewConfig()
			cfg.BaseURL = tt.baseURL
			s := goquery.NewScanner(cfg)

			refs, err := s.Scan(context.Background(), tt.docPath, `<a href="`+tt.href+`">x</a>`)
			require.NoError(t, err)
			require.Len(t, refs, 1)
			assert.Empty(t, refs[0].Error)
			assert.Equal(t, tt.want, refs[0].Resolved)
		})
	}
}

package goquery

import (
	"context"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/htmlproof"
)

var _ htmlproof.DocumentScanner = (*Scanner)(nil)

// Scanner extracts references from HTML documents. Each element is wrapped
// in an htmlproof.Element; elements without a link attribute are skipped.
type Scanner struct {
	config *htmlproof.Config
}

// NewScanner creates a new Scanner. A nil config uses defaults.
func NewScanner(cfg *htmlproof.Config) *Scanner {
	if cfg == nil {
		cfg = htmlproof.NewConfig()
	}
	return &Scanner{config: cfg}
}

// Scan parses html and returns its references in document order.
// References are resolved against the document's location under
// Config.BaseURL, or against its <base href> when present. Resolution
// failures are recorded on the reference rather than returned.
func (s *Scanner) Scan(ctx context.Context, docPath string, html string) ([]*htmlproof.Reference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := Parse(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base := s.documentURL(docPath)
	if href, ok := doc.BaseHref(); ok {
		base = resolveBase(base, href)
	}

	var refs []*htmlproof.Reference
	for _, node := range doc.Elements() {
		el := htmlproof.NewElement(s.config, node, base)
		raw, ok := el.LinkAttribute()
		if !ok {
			continue
		}

		ref := &htmlproof.Reference{
			DocumentPath: docPath,
			Line:         el.Line(),
			Tag:          el.Name(),
			Attribute:    el.LinkAttributeName(),
			Raw:          raw,
			Ignored:      el.Ignore() || (s.config.DisableExternal && el.URL().IsRemote()),
			AriaHidden:   el.AriaHidden(),
		}

		if ref.Attribute == "srcset" {
			s.resolveSrcset(ref, el)
		} else if resolved, err := el.URL().Resolved(); err != nil {
			ref.Error = htmlproof.ErrorMessage(err)
		} else {
			ref.Resolved = resolved
		}

		refs = append(refs, ref)
	}

	return refs, nil
}

// resolveSrcset resolves each srcset candidate separately. The first
// failure is recorded on the reference.
func (s *Scanner) resolveSrcset(ref *htmlproof.Reference, el *htmlproof.Element) {
	for _, candidate := range el.SrcsetsWithoutSizes() {
		if candidate == "" {
			continue
		}
		resolved, err := htmlproof.NewURL(s.config, candidate, el.BaseURL()).Resolved()
		if err != nil {
			if ref.Error == "" {
				ref.Error = htmlproof.ErrorMessage(err)
			}
			continue
		}
		ref.Srcset = append(ref.Srcset, resolved)
	}
}

// documentURL returns the location of a document: its slash-separated path
// under Config.BaseURL, or under "/" when no base URL is configured. The
// path is escaped, so characters such as '%', '#' and '?' in file names stay
// part of the path.
func (s *Scanner) documentURL(docPath string) string {
	rel := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(docPath)), "/")
	if s.config.BaseURL == "" {
		return (&url.URL{Path: "/" + rel}).String()
	}
	base, err := url.Parse(s.config.BaseURL)
	if err != nil {
		return (&url.URL{Path: "/" + rel}).String()
	}
	loc := *base
	loc.Path = strings.TrimSuffix(base.Path, "/") + "/" + rel
	loc.RawPath = ""
	loc.RawQuery = ""
	loc.Fragment = ""
	loc.RawFragment = ""
	return loc.String()
}

// resolveBase resolves a <base href> against the document location.
// An unparseable href leaves the document location in place.
func resolveBase(docURL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return docURL
	}
	if ref.IsAbs() {
		return ref.String()
	}
	base, err := url.Parse(docURL)
	if err != nil {
		return docURL
	}
	return base.ResolveReference(ref).String()
}

package htmlproof

import (
	"net/url"
	"strings"
)

// URL is a reference taken from an element, cleaned according to the run
// configuration and resolvable against the element's base location.
type URL struct {
	raw     string
	cleaned string
	baseURL string
	cfg     *Config
}

// NewURL creates a URL for the raw attribute value. The value is trimmed
// and rewritten by the configured URL swaps; it is not otherwise altered.
func NewURL(cfg *Config, raw string, baseURL string) *URL {
	u := &URL{
		raw:     raw,
		baseURL: baseURL,
		cfg:     cfg,
	}
	u.cleaned = u.clean()
	return u
}

func (u *URL) clean() string {
	s := strings.TrimSpace(u.raw)
	if u.cfg == nil {
		return s
	}
	for _, swap := range u.cfg.SwapURLs {
		s = swap.Pattern.ReplaceAllString(s, swap.Replacement)
	}
	return s
}

// Raw returns the attribute value as it appeared on the element.
func (u *URL) Raw() string { return u.raw }

// String returns the cleaned reference.
func (u *URL) String() string { return u.cleaned }

// BaseURL returns the location the reference is resolved against.
func (u *URL) BaseURL() string { return u.baseURL }

// IsBlank returns true if there is no reference.
func (u *URL) IsBlank() bool { return u.cleaned == "" }

// Parse parses the cleaned reference.
// Returns EINVALID if it is not a valid URL.
func (u *URL) Parse() (*url.URL, error) {
	parsed, err := url.Parse(u.cleaned)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL %q: %v", u.raw, err)
	}
	return parsed, nil
}

// Resolved returns the reference made absolute against the base URL.
// References that are already absolute, or that have no base to resolve
// against, are returned as parsed.
func (u *URL) Resolved() (string, error) {
	ref, err := u.Parse()
	if err != nil {
		return "", err
	}
	if ref.IsAbs() || u.baseURL == "" {
		return ref.String(), nil
	}
	base, err := url.Parse(u.baseURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid base URL %q: %v", u.baseURL, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// Scheme returns the lowercased scheme, or "" for relative references.
func (u *URL) Scheme() string {
	parsed, err := url.Parse(u.cleaned)
	if err != nil {
		// Fall back to the text before the first colon.
		if i := strings.Index(u.cleaned, ":"); i > 0 {
			return strings.ToLower(u.cleaned[:i])
		}
		return ""
	}
	return strings.ToLower(parsed.Scheme)
}

// Fragment returns the part after "#", or "".
func (u *URL) Fragment() string {
	if i := strings.Index(u.cleaned, "#"); i >= 0 {
		return u.cleaned[i+1:]
	}
	return ""
}

// IsHash returns true for fragment-only references such as "#top".
func (u *URL) IsHash() bool {
	return strings.HasPrefix(u.cleaned, "#")
}

// IsProtocolRelative returns true for references such as "//cdn.example.com/a.js".
func (u *URL) IsProtocolRelative() bool {
	return strings.HasPrefix(u.cleaned, "//")
}

// IsAbsolutePath returns true for site-root paths such as "/docs/".
func (u *URL) IsAbsolutePath() bool {
	return strings.HasPrefix(u.cleaned, "/") && !u.IsProtocolRelative()
}

// IsRemote returns true for http, https and protocol-relative references.
func (u *URL) IsRemote() bool {
	switch u.Scheme() {
	case "http", "https":
		return true
	}
	return u.IsProtocolRelative()
}

// IsMailto returns true for mailto: references.
func (u *URL) IsMailto() bool { return u.Scheme() == "mailto" }

// IsTel returns true for tel: references.
func (u *URL) IsTel() bool { return u.Scheme() == "tel" }

// IsData returns true for inline data: URIs.
func (u *URL) IsData() bool { return u.Scheme() == "data" }

// IsJavascript returns true for javascript: references.
func (u *URL) IsJavascript() bool { return u.Scheme() == "javascript" }

// Ignore returns true if the reference should not be checked: javascript:
// references and references matching a configured ignore pattern.
func (u *URL) Ignore() bool {
	if u.IsJavascript() {
		return true
	}
	if u.cfg == nil {
		return false
	}
	for _, p := range u.cfg.IgnoreURLs {
		if p.Match(u.cleaned) {
			return true
		}
	}
	return false
}

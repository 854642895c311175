package htmlproof

import (
	"regexp"
	"strings"
)

// DefaultExtensions are the file extensions scanned when none are configured.
var DefaultExtensions = []string{".html"}

// AttributeSwap renames attribute Old to New before reference extraction,
// e.g. data-src to src for lazily loaded images.
type AttributeSwap struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// URLSwap rewrites references matching Pattern with Replacement before
// resolution. Replacement may use $1-style group references.
type URLSwap struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// URLPattern matches references that should be ignored.
// Patterns written as /expr/ are regular expressions; anything else
// must match the reference exactly.
type URLPattern struct {
	literal string
	re      *regexp.Regexp
}

// ParseURLPattern parses an ignore pattern.
func ParseURLPattern(s string) (URLPattern, error) {
	if len(s) >= 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/") {
		re, err := regexp.Compile(s[1 : len(s)-1])
		if err != nil {
			return URLPattern{}, Errorf(EINVALID, "invalid ignore pattern %q: %v", s, err)
		}
		return URLPattern{re: re}, nil
	}
	return URLPattern{literal: s}, nil
}

// Match returns true if the reference matches the pattern.
func (p URLPattern) Match(s string) bool {
	if p.re != nil {
		return p.re.MatchString(s)
	}
	return p.literal == s
}

// String returns the pattern in its parseable form.
func (p URLPattern) String() string {
	if p.re != nil {
		return "/" + p.re.String() + "/"
	}
	return p.literal
}

// Config is the run-scoped configuration shared, read-only, by every
// Element and URL created during a scan.
type Config struct {
	// SwapAttributes maps a tag name to the attribute renames applied to
	// elements with that tag, in order.
	SwapAttributes map[string][]AttributeSwap

	// SwapURLs are applied in order to every reference before resolution.
	SwapURLs []URLSwap

	// IgnoreURLs lists references that are never checked.
	IgnoreURLs []URLPattern

	// BaseURL is the site root that document paths are resolved against.
	// When empty, documents resolve relative to "/".
	BaseURL string

	// DisableExternal marks remote references as ignored.
	DisableExternal bool

	// Extensions restricts which files are scanned.
	Extensions []string
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		SwapAttributes: make(map[string][]AttributeSwap),
		Extensions:     append([]string(nil), DefaultExtensions...),
	}
}

// AttributeSwaps returns the renames configured for a tag.
// It is safe to call on a nil Config.
func (c *Config) AttributeSwaps(tag string) []AttributeSwap {
	if c == nil {
		return nil
	}
	return c.SwapAttributes[tag]
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	for tag, swaps := range c.SwapAttributes {
		if strings.TrimSpace(tag) == "" {
			return Errorf(EINVALID, "attribute swap tag required")
		}
		for _, swap := range swaps {
			if isBlank(swap.Old) || isBlank(swap.New) {
				return Errorf(EINVALID, "attribute swap for %q requires old and new names", tag)
			}
		}
	}
	for _, swap := range c.SwapURLs {
		if swap.Pattern == nil {
			return Errorf(EINVALID, "URL swap pattern required")
		}
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return Errorf(EINVALID, "extension %q must start with a dot", ext)
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

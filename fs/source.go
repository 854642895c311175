// Package fs discovers and reads HTML documents from the local filesystem.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/htmlproof"
)

// Ensure Source implements htmlproof.DocumentSource at compile time.
var _ htmlproof.DocumentSource = (*Source)(nil)

// Source implements htmlproof.DocumentSource over a site directory.
// Document paths are slash-separated and relative to the root, so they
// double as the document's location under the site's base URL.
type Source struct {
	root       string
	fsys       iofs.FS
	extensions []string
}

// NewSource creates a Source rooted at dir. Directory walks and globs only
// return files with one of the given extensions; nil means
// htmlproof.DefaultExtensions.
func NewSource(dir string, extensions []string) *Source {
	if len(extensions) == 0 {
		extensions = htmlproof.DefaultExtensions
	}
	return &Source{
		root:       dir,
		fsys:       os.DirFS(dir),
		extensions: extensions,
	}
}

// Discover expands patterns into document paths, sorted and deduplicated.
// A pattern may name a file, a directory (walked recursively) or a
// doublestar glob such as "docs/**/*.html". Named files are returned
// regardless of extension. No patterns means the whole root.
func (s *Source) Discover(ctx context.Context, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := s.expand(pattern)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func (s *Source) expand(pattern string) ([]string, error) {
	pattern = path.Clean(filepath.ToSlash(pattern))
	if pattern == ".." || strings.HasPrefix(pattern, "../") || path.IsAbs(pattern) {
		return nil, htmlproof.Errorf(htmlproof.EINVALID, "pattern %q is outside the site root", pattern)
	}

	if !containsGlob(pattern) {
		info, err := iofs.Stat(s.fsys, pattern)
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, htmlproof.Errorf(htmlproof.ENOTFOUND, "path not found: %s", pattern)
		} else if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return []string{pattern}, nil
		}
		pattern = path.Join(pattern, "**")
	}

	if !doublestar.ValidatePattern(pattern) {
		return nil, htmlproof.Errorf(htmlproof.EINVALID, "invalid glob pattern %q", pattern)
	}

	matches, err := doublestar.Glob(s.fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, m := range matches {
		if s.hasExtension(m) {
			paths = append(paths, m)
		}
	}
	return paths, nil
}

func (s *Source) hasExtension(p string) bool {
	ext := path.Ext(p)
	for _, want := range s.extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// Read returns the contents of a discovered document.
// Returns ENOTFOUND if the document does not exist.
func (s *Source) Read(ctx context.Context, p string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := iofs.ReadFile(s.fsys, path.Clean(filepath.ToSlash(p)))
	if errors.Is(err, iofs.ErrNotExist) {
		return "", htmlproof.Errorf(htmlproof.ENOTFOUND, "document not found: %s", p)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// Root returns the directory the source reads from.
func (s *Source) Root() string { return s.root }

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

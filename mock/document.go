package mock

import (
	"context"

	"github.com/fwojciec/htmlproof"
)

// Compile-time interface verification.
var (
	_ htmlproof.DocumentSource  = (*DocumentSource)(nil)
	_ htmlproof.DocumentScanner = (*DocumentScanner)(nil)
)

// DocumentSource is a mock implementation of htmlproof.DocumentSource.
type DocumentSource struct {
	DiscoverFn func(ctx context.Context, patterns []string) ([]string, error)
	ReadFn     func(ctx context.Context, path string) (string, error)
}

func (s *DocumentSource) Discover(ctx context.Context, patterns []string) ([]string, error) {
	return s.DiscoverFn(ctx, patterns)
}

func (s *DocumentSource) Read(ctx context.Context, path string) (string, error) {
	return s.ReadFn(ctx, path)
}

// DocumentScanner is a mock implementation of htmlproof.DocumentScanner.
type DocumentScanner struct {
	ScanFn func(ctx context.Context, path string, html string) ([]*htmlproof.Reference, error)
}

func (s *DocumentScanner) Scan(ctx context.Context, path string, html string) ([]*htmlproof.Reference, error) {
	return s.ScanFn(ctx, path, html)
}

// Package slog provides log/slog decorators for htmlproof services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/htmlproof"
)

// Ensure LoggingDocumentSource implements htmlproof.DocumentSource.
var _ htmlproof.DocumentSource = (*LoggingDocumentSource)(nil)

// LoggingDocumentSource wraps a DocumentSource with debug logging.
type LoggingDocumentSource struct {
	next   htmlproof.DocumentSource
	logger *slog.Logger
}

// NewLoggingDocumentSource creates a new LoggingDocumentSource.
func NewLoggingDocumentSource(next htmlproof.DocumentSource, logger *slog.Logger) *LoggingDocumentSource {
	return &LoggingDocumentSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingDocumentSource) Discover(ctx context.Context, patterns []string) (paths []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("document discovery",
			"patterns", patterns,
			"count", len(paths),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, patterns)
}

// Read delegates to the wrapped source and logs the operation.
func (s *LoggingDocumentSource) Read(ctx context.Context, path string) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("read",
			"path", path,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Read(ctx, path)
}

// Ensure LoggingScanner implements htmlproof.DocumentScanner.
var _ htmlproof.DocumentScanner = (*LoggingScanner)(nil)

// LoggingScanner wraps a DocumentScanner with debug logging.
type LoggingScanner struct {
	next   htmlproof.DocumentScanner
	logger *slog.Logger
}

// NewLoggingScanner creates a new LoggingScanner.
func NewLoggingScanner(next htmlproof.DocumentScanner, logger *slog.Logger) *LoggingScanner {
	return &LoggingScanner{next: next, logger: logger}
}

// Scan delegates to the wrapped scanner and logs reference counts.
func (s *LoggingScanner) Scan(ctx context.Context, path string, html string) (refs []*htmlproof.Reference, err error) {
	defer func(begin time.Time) {
		var ignored, invalid int
		for _, ref := range refs {
			if ref.Ignored {
				ignored++
			}
			if ref.Error != "" {
				invalid++
			}
		}
		s.logger.Info("scan",
			"path", path,
			"references", len(refs),
			"ignored", ignored,
			"invalid", invalid,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scan(ctx, path, html)
}

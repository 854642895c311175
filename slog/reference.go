package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/htmlproof"
)

// Ensure LoggingReferenceService implements htmlproof.ReferenceService.
var _ htmlproof.ReferenceService = (*LoggingReferenceService)(nil)

// LoggingReferenceService wraps a ReferenceService with debug logging.
type LoggingReferenceService struct {
	next   htmlproof.ReferenceService
	logger *slog.Logger
}

// NewLoggingReferenceService creates a new LoggingReferenceService.
func NewLoggingReferenceService(next htmlproof.ReferenceService, logger *slog.Logger) *LoggingReferenceService {
	return &LoggingReferenceService{next: next, logger: logger}
}

// CreateReferences delegates to the wrapped service and logs the operation.
func (s *LoggingReferenceService) CreateReferences(ctx context.Context, refs []*htmlproof.Reference) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create references",
			"count", len(refs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateReferences(ctx, refs)
}

// FindReferences delegates to the wrapped service.
func (s *LoggingReferenceService) FindReferences(ctx context.Context, filter htmlproof.ReferenceFilter) ([]*htmlproof.Reference, error) {
	return s.next.FindReferences(ctx, filter)
}

// DeleteReferencesByDocument delegates to the wrapped service and logs the operation.
func (s *LoggingReferenceService) DeleteReferencesByDocument(ctx context.Context, path string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete references",
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteReferencesByDocument(ctx, path)
}

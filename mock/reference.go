package mock

import (
	"context"

	"github.com/fwojciec/htmlproof"
)

var _ htmlproof.ReferenceService = (*ReferenceService)(nil)

// ReferenceService is a mock implementation of htmlproof.ReferenceService.
type ReferenceService struct {
	CreateReferencesFn           func(ctx context.Context, refs []*htmlproof.Reference) error
	FindReferencesFn             func(ctx context.Context, filter htmlproof.ReferenceFilter) ([]*htmlproof.Reference, error)
	DeleteReferencesByDocumentFn func(ctx context.Context, path string) error
}

func (s *ReferenceService) CreateReferences(ctx context.Context, refs []*htmlproof.Reference) error {
	return s.CreateReferencesFn(ctx, refs)
}

func (s *ReferenceService) FindReferences(ctx context.Context, filter htmlproof.ReferenceFilter) ([]*htmlproof.Reference, error) {
	return s.FindReferencesFn(ctx, filter)
}

func (s *ReferenceService) DeleteReferencesByDocument(ctx context.Context, path string) error {
	return s.DeleteReferencesByDocumentFn(ctx, path)
}

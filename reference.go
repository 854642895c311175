package htmlproof

import (
	"context"
	"time"
)

// Reference is the checkable datum extracted from one element of a document.
type Reference struct {
	ID           string    `json:"id"`
	DocumentPath string    `json:"documentPath"`
	Line         int       `json:"line"`
	Tag          string    `json:"tag"`
	Attribute    string    `json:"attribute"`
	Raw          string    `json:"raw"`
	Resolved     string    `json:"resolved,omitempty"`
	Srcset       []string  `json:"srcset,omitempty"` // Resolved candidate URLs
	Ignored      bool      `json:"ignored"`
	AriaHidden   bool      `json:"ariaHidden"`
	Error        string    `json:"error,omitempty"` // Resolution failure
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate returns an error if the reference contains invalid fields.
func (r *Reference) Validate() error {
	if r.DocumentPath == "" {
		return Errorf(EINVALID, "reference document path required")
	}
	if r.Tag == "" {
		return Errorf(EINVALID, "reference tag required")
	}
	if r.Raw == "" {
		return Errorf(EINVALID, "reference value required")
	}
	return nil
}

// Targets returns the resolved locations a checker must verify: each srcset
// candidate for srcset references, otherwise the resolved reference.
func (r *Reference) Targets() []string {
	if len(r.Srcset) > 0 {
		return r.Srcset
	}
	if r.Resolved == "" {
		return nil
	}
	return []string{r.Resolved}
}

// DocumentSource locates and reads the documents of a site.
type DocumentSource interface {
	// Discover expands paths, directories, and glob patterns into document
	// paths, sorted and deduplicated.
	Discover(ctx context.Context, patterns []string) ([]string, error)

	// Read returns the document's HTML.
	// Returns ENOTFOUND if the document does not exist.
	Read(ctx context.Context, path string) (string, error)
}

// DocumentScanner extracts references from one HTML document.
type DocumentScanner interface {
	// Scan parses html and returns a Reference for every element that
	// carries a link attribute, in document order.
	// Returns EINVALID if the document cannot be parsed.
	Scan(ctx context.Context, path string, html string) ([]*Reference, error)
}

// ReferenceService represents a service for managing stored references.
type ReferenceService interface {
	// CreateReferences stores references, assigning IDs and timestamps.
	CreateReferences(ctx context.Context, refs []*Reference) error

	// FindReferences retrieves references matching the filter.
	FindReferences(ctx context.Context, filter ReferenceFilter) ([]*Reference, error)

	// DeleteReferencesByDocument removes all references of a document.
	DeleteReferencesByDocument(ctx context.Context, path string) error
}

// ReferenceFilter represents a filter for FindReferences.
type ReferenceFilter struct {
	DocumentPath *string `json:"documentPath"`
	Resolved     *string `json:"resolved"`
	Ignored      *bool   `json:"ignored"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

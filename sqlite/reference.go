package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/htmlproof"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ htmlproof.ReferenceService = (*ReferenceService)(nil)

// ReferenceService implements htmlproof.ReferenceService using SQLite.
type ReferenceService struct {
	db *DB
}

// NewReferenceService creates a new ReferenceService.
func NewReferenceService(db *DB) *ReferenceService {
	return &ReferenceService{db: db}
}

// hashTarget returns the hex-encoded big-endian xxHash of a target.
func hashTarget(target string) string {
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, xxhash.Sum64String(target)))
}

// CreateReferences stores references in a single transaction, assigning
// each an ID and creation time. Nothing is stored if any reference is
// invalid.
func (s *ReferenceService) CreateReferences(ctx context.Context, refs []*htmlproof.Reference) error {
	for _, ref := range refs {
		if err := ref.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for i, ref := range refs {
		ref.ID = uuid.New().String()
		ref.CreatedAt = now

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO links (id, document_path, position, line, tag, attribute, raw, resolved, srcset, ignored, aria_hidden, error, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, ref.ID, ref.DocumentPath, i, ref.Line, ref.Tag, ref.Attribute, ref.Raw, ref.Resolved,
			strings.Join(ref.Srcset, "\n"), ref.Ignored, ref.AriaHidden, ref.Error,
			ref.CreatedAt.Format(time.RFC3339)); err != nil {
			return err
		}

		for _, target := range ref.Targets() {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO targets (link_id, target, target_hash) VALUES (?, ?, ?)
			`, ref.ID, target, hashTarget(target)); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// FindReferenceByID retrieves a reference by ID.
func (s *ReferenceService) FindReferenceByID(ctx context.Context, id string) (*htmlproof.Reference, error) {
	refs, err := s.find(ctx, " AND id = ?", []any{id}, 0, 0)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, htmlproof.Errorf(htmlproof.ENOTFOUND, "reference not found")
	}
	return refs[0], nil
}

// FindReferences retrieves references matching the filter, ordered by
// document path and position within the document. The Resolved filter
// matches any target, including individual srcset candidates.
func (s *ReferenceService) FindReferences(ctx context.Context, filter htmlproof.ReferenceFilter) ([]*htmlproof.Reference, error) {
	var where strings.Builder
	var args []any

	if filter.DocumentPath != nil {
		where.WriteString(" AND document_path = ?")
		args = append(args, *filter.DocumentPath)
	}
	if filter.Resolved != nil {
		where.WriteString(" AND id IN (SELECT link_id FROM targets WHERE target_hash = ? AND target = ?)")
		args = append(args, hashTarget(*filter.Resolved), *filter.Resolved)
	}
	if filter.Ignored != nil {
		where.WriteString(" AND ignored = ?")
		args = append(args, *filter.Ignored)
	}

	return s.find(ctx, where.String(), args, filter.Limit, filter.Offset)
}

func (s *ReferenceService) find(ctx context.Context, where string, args []any, limit, offset int) ([]*htmlproof.Reference, error) {
	var query strings.Builder
	query.WriteString(`SELECT id, document_path, line, tag, attribute, raw, resolved, srcset, ignored, aria_hidden, error, created_at FROM links WHERE 1=1`)
	query.WriteString(where)
	query.WriteString(" ORDER BY document_path ASC, position ASC")
	appendPagination(&query, &args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []*htmlproof.Reference
	for rows.Next() {
		var ref htmlproof.Reference
		var srcset, createdAt string

		if err := rows.Scan(&ref.ID, &ref.DocumentPath, &ref.Line, &ref.Tag, &ref.Attribute, &ref.Raw,
			&ref.Resolved, &srcset, &ref.Ignored, &ref.AriaHidden, &ref.Error, &createdAt); err != nil {
			return nil, err
		}

		if srcset != "" {
			ref.Srcset = strings.Split(srcset, "\n")
		}
		ref.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		refs = append(refs, &ref)
	}

	return refs, rows.Err()
}

// DeleteReferencesByDocument removes all references of a document.
// Targets are removed by cascade.
func (s *ReferenceService) DeleteReferencesByDocument(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM links WHERE document_path = ?", path)
	return err
}

// CountReferences returns the number of stored references.
func (s *ReferenceService) CountReferences(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM links").Scan(&n)
	return n, err
}

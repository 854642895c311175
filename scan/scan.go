// Package scan provides reference scanning orchestration.
// It coordinates document discovery, per-document scanning and optional
// storage of the extracted references.
package scan

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fwojciec/htmlproof"
	"github.com/fwojciec/htmlproof/bloom"
	"golang.org/x/sync/errgroup"
)

// Deduplication filter sizing.
const (
	// minExpectedTargets is the smallest Bloom filter capacity.
	minExpectedTargets = 1024
	// targetsPerDocument estimates distinct targets contributed per document.
	targetsPerDocument = 32
	// targetFalsePositiveRate is the acceptable false positive rate for deduplication.
	targetFalsePositiveRate = 0.001
)

// Runner scans a set of documents for references.
type Runner struct {
	Source      htmlproof.DocumentSource
	Scanner     htmlproof.DocumentScanner
	References  htmlproof.ReferenceService // optional; references are stored when set
	Concurrency int
}

// Result holds the outcome of a scan.
type Result struct {
	// Documents is the number of documents discovered.
	Documents int
	// References are all extracted references in document order.
	References []*htmlproof.Reference
	// Ignored counts references exempt from validation.
	Ignored int
	// Invalid counts references that could not be resolved.
	Invalid int
	// Unique approximates the number of distinct resolved targets among
	// references that are not ignored.
	Unique int
	// Failed counts documents that could not be read, scanned or stored.
	Failed int
}

// ProgressEvent reports progress during a scan.
type ProgressEvent struct {
	Type       ProgressType
	Completed  int
	Total      int
	Path       string
	References int
	Error      error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scan progress.
type ProgressFunc func(event ProgressEvent)

// documentResult holds the outcome of scanning a single document.
type documentResult struct {
	position int
	path     string
	refs     []*htmlproof.Reference
	err      error
}

// Run discovers the documents matching patterns and scans each of them.
// Documents that fail are counted and reported through progress; they do
// not abort the run. The progress callback, if provided, receives events
// as scanning proceeds.
func (r *Runner) Run(ctx context.Context, patterns []string, progress ProgressFunc) (*Result, error) {
	paths, err := r.Source.Discover(ctx, patterns)
	if err != nil {
		return nil, fmt.Errorf("discover documents: %w", err)
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	resultCh := make(chan documentResult, len(paths))

	var completed atomic.Int64
	total := len(paths)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, p := range paths {
			g.Go(func() error {
				resultCh <- r.scanDocument(gctx, i, p)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]documentResult, len(paths))
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:       ProgressCompleted,
			Completed:  int(completed.Load()),
			Total:      total,
			Path:       result.path,
			References: len(result.refs),
		}
		if result.err != nil {
			event.Type = ProgressFailed
			event.Error = result.err
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seen := bloom.NewFilter(max(uint(len(paths))*targetsPerDocument, minExpectedTargets), targetFalsePositiveRate)
	result := &Result{Documents: total}

	for _, dr := range results {
		if dr.err != nil {
			result.Failed++
			continue
		}

		if r.References != nil {
			if err := r.store(ctx, dr.path, dr.refs); err != nil {
				result.Failed++
				if progress != nil {
					progress(ProgressEvent{
						Type:  ProgressFailed,
						Total: total,
						Path:  dr.path,
						Error: err,
					})
				}
				continue
			}
		}

		for _, ref := range dr.refs {
			result.References = append(result.References, ref)
			switch {
			case ref.Ignored:
				result.Ignored++
				continue
			case ref.Error != "":
				result.Invalid++
			}
			for _, target := range ref.Targets() {
				if !seen.Seen(target) {
					result.Unique++
				}
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:       ProgressFinished,
			Completed:  total,
			Total:      total,
			References: len(result.References),
		})
	}

	return result, nil
}

// scanDocument reads and scans a single document.
func (r *Runner) scanDocument(ctx context.Context, position int, path string) documentResult {
	result := documentResult{
		position: position,
		path:     path,
	}

	html, err := r.Source.Read(ctx, path)
	if err != nil {
		result.err = err
		return result
	}

	refs, err := r.Scanner.Scan(ctx, path, html)
	if err != nil {
		result.err = err
		return result
	}

	result.refs = refs
	return result
}

// store replaces the stored references of a document.
func (r *Runner) store(ctx context.Context, path string, refs []*htmlproof.Reference) error {
	if err := r.References.DeleteReferencesByDocument(ctx, path); err != nil {
		return fmt.Errorf("delete references for %s: %w", path, err)
	}
	if len(refs) == 0 {
		return nil
	}
	if err := r.References.CreateReferences(ctx, refs); err != nil {
		return fmt.Errorf("store references for %s: %w", path, err)
	}
	return nil
}

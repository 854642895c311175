package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/htmlproof"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := htmlproof.ReferenceFilter{Limit: c.Limit}
	if c.Document != "" {
		filter.DocumentPath = &c.Document
	}
	if c.Target != "" {
		filter.Resolved = &c.Target
	}

	refs, err := deps.References.FindReferences(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlproof.ErrorMessage(err))
		return err
	}

	if c.Format == "json" {
		if refs == nil {
			refs = []*htmlproof.Reference{}
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(refs)
	}

	if len(refs) == 0 {
		fmt.Fprintln(deps.Stdout, "No references found. Use 'htmlproof scan --save' to store some.")
		return nil
	}

	return writeReferenceTable(deps.Stdout, refs)
}

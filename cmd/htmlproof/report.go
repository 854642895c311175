package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/htmlproof"
	"github.com/fwojciec/htmlproof/scan"
	"github.com/olekukonko/tablewriter"
)

// maxTargetWidth bounds the target column of table output.
const maxTargetWidth = 72

// report is the JSON form of a scan result.
type report struct {
	Documents  int                    `json:"documents"`
	Unique     int                    `json:"unique"`
	Ignored    int                    `json:"ignored"`
	Invalid    int                    `json:"invalid"`
	Failed     int                    `json:"failed"`
	References []*htmlproof.Reference `json:"references"`
}

func writeReportJSON(w io.Writer, r *scan.Result) error {
	refs := r.References
	if refs == nil {
		refs = []*htmlproof.Reference{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report{
		Documents:  r.Documents,
		Unique:     r.Unique,
		Ignored:    r.Ignored,
		Invalid:    r.Invalid,
		Failed:     r.Failed,
		References: refs,
	})
}

func writeReportTable(w io.Writer, r *scan.Result) error {
	if err := writeReferenceTable(w, r.References); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, scan.Summary(r))
	return err
}

func writeReferenceTable(w io.Writer, refs []*htmlproof.Reference) error {
	if len(refs) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Document", "Line", "Tag", "Target", "Status")
	for _, ref := range refs {
		if err := table.Append([]string{
			ref.DocumentPath,
			strconv.Itoa(ref.Line),
			ref.Tag + "[" + ref.Attribute + "]",
			scan.TruncateURL(target(ref), maxTargetWidth),
			status(ref),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// target returns the display form of a reference's resolved location.
func target(ref *htmlproof.Reference) string {
	if len(ref.Srcset) > 0 {
		return strings.Join(ref.Srcset, ", ")
	}
	if ref.Resolved != "" {
		return ref.Resolved
	}
	return ref.Raw
}

func status(ref *htmlproof.Reference) string {
	switch {
	case ref.Ignored:
		return "ignored"
	case ref.Error != "":
		return "invalid"
	case ref.AriaHidden:
		return "ok (aria-hidden)"
	default:
		return "ok"
	}
}

package scan

import "fmt"

// TruncateURL shortens a reference for display, keeping the end which is
// more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// Summary formats a one-line description of a scan result.
func Summary(r *Result) string {
	return fmt.Sprintf("%d documents, %d references (%d unique, %d ignored, %d invalid), %d failed",
		r.Documents, len(r.References), r.Unique, r.Ignored, r.Invalid, r.Failed)
}

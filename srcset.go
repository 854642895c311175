package htmlproof

import "strings"

// Srcset is the raw value of a srcset attribute: comma-separated image
// candidates, each optionally followed by a width or density descriptor,
// e.g. "a.jpg 1x, b.jpg 2x".
type Srcset string

// IsBlank returns true if the value is empty or whitespace.
func (s Srcset) IsBlank() bool {
	return isBlank(string(s))
}

// HasMultipleCandidates returns true if the value lists more than one candidate.
func (s Srcset) HasMultipleCandidates() bool {
	return !s.IsBlank() && len(splitCandidates(string(s))) > 1
}

// Candidates returns the trimmed candidate strings, or nil if the value is blank.
func (s Srcset) Candidates() []string {
	if s.IsBlank() {
		return nil
	}
	parts := splitCandidates(string(s))
	if len(parts) == 0 {
		return nil
	}
	candidates := make([]string, len(parts))
	for i, p := range parts {
		candidates[i] = strings.TrimSpace(p)
	}
	return candidates
}

// HasDescriptors returns true if at least one candidate carries a size or
// density descriptor after its URL.
func (s Srcset) HasDescriptors() bool {
	for _, c := range s.Candidates() {
		if len(strings.Fields(c)) > 1 {
			return true
		}
	}
	return false
}

// URLs returns the URL portion of each candidate with descriptors removed,
// or nil if there are no candidates. Blank candidates yield "".
func (s Srcset) URLs() []string {
	candidates := s.Candidates()
	if candidates == nil {
		return nil
	}
	urls := make([]string, len(candidates))
	for i, c := range candidates {
		if fields := strings.Fields(c); len(fields) > 0 {
			urls[i] = fields[0]
		}
	}
	return urls
}

// splitCandidates splits on commas and drops trailing empty parts, so
// "a.jpg 1x," is a single candidate.
func splitCandidates(s string) []string {
	parts := strings.Split(s, ",")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

package structure

import (
	"strings"

	"github.com/dgallion1/docstruct/internal/pagesource"
)

// fromOutline converts the source outline verbatim into candidates.
// This is the preferred tier: the author already told us the structure.
func fromOutline(entries []pagesource.OutlineEntry) []Candidate {
	cands := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		cands = append(cands, Candidate{
			Title:     strings.TrimSpace(e.Title),
			StartPage: e.Page,
			Level:     e.Level,
		})
	}
	return cands
}

// SanitizeTitle drops C0 control characters that PDF text extraction
// leaves behind in heading titles (\x08 backspace is a frequent one).
func SanitizeTitle(title string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 0x20 {
			return -1
		}
		return r
	}, title))
}

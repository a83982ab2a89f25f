// Package resolver maps user-named section selections onto an
// extraction document, producing the concatenated source passage for
// each request. Resolution is fail-fast: the first entry that cannot be
// resolved aborts the whole batch.
package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dgallion1/docstruct/internal/extraction"
	"github.com/dgallion1/docstruct/internal/structure"
)

// Selection is one consumer-supplied request: a section name and an
// optional explicit page override ("42" or "50-65") that bypasses
// detected boundaries entirely.
type Selection struct {
	Name         string `json:"name"`
	PageOverride string `json:"page_override,omitempty"`
}

// Passage is the resolved text for one selection.
type Passage struct {
	Name      string `json:"name"`
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
	Text      string `json:"text"`
}

// SectionNotFoundError reports a name with no override and no matching
// section title; the message enumerates what was available.
type SectionNotFoundError struct {
	Name      string
	Available []string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section %q not found; available sections: [%s]",
		e.Name, strings.Join(e.Available, ", "))
}

// InvalidOverrideError reports a malformed or out-of-range page
// override.
type InvalidOverrideError struct {
	Name     string
	Override string
	Reason   string
}

func (e *InvalidOverrideError) Error() string {
	return fmt.Sprintf("invalid page override %q for %q: %s", e.Override, e.Name, e.Reason)
}

// Resolve maps each selection to its page range and concatenated
// cleaned text, preserving the caller's requested order. An empty
// selection list resolves to an empty result without error.
func Resolve(doc *extraction.Document, selections []Selection) ([]Passage, error) {
	if len(selections) == 0 {
		return []Passage{}, nil
	}

	pageText := make(map[int]string, len(doc.Pages))
	for _, p := range doc.Pages {
		pageText[p.PageNumber] = p.Text
	}

	passages := make([]Passage, 0, len(selections))
	for _, sel := range selections {
		var start, end int
		if sel.PageOverride != "" {
			var err error
			start, end, err = parseOverride(sel, doc.Metadata.TotalPages)
			if err != nil {
				return nil, err
			}
		} else {
			matched := bestMatch(sel.Name, doc.Sections)
			if matched == nil {
				available := make([]string, 0, len(doc.Sections))
				for _, s := range doc.Sections {
					available = append(available, s.Title)
				}
				return nil, &SectionNotFoundError{Name: sel.Name, Available: available}
			}
			start, end = matched.StartPage, matched.EndPage
		}

		passages = append(passages, Passage{
			Name:      sel.Name,
			StartPage: start,
			EndPage:   end,
			Text:      collectText(pageText, start, end),
		})
	}
	return passages, nil
}

// parseOverride parses "42" or "50-65" and validates the range against
// the document.
func parseOverride(sel Selection, totalPages int) (int, int, error) {
	raw := strings.TrimSpace(sel.PageOverride)
	parts := strings.SplitN(raw, "-", 2)

	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, &InvalidOverrideError{Name: sel.Name, Override: raw, Reason: "not a page number or range"}
	}
	end := start
	if len(parts) == 2 {
		end, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, &InvalidOverrideError{Name: sel.Name, Override: raw, Reason: "not a page number or range"}
		}
	}

	switch {
	case start < 1:
		return 0, 0, &InvalidOverrideError{Name: sel.Name, Override: raw, Reason: "pages are 1-based"}
	case end < start:
		return 0, 0, &InvalidOverrideError{Name: sel.Name, Override: raw, Reason: "range end precedes start"}
	case end > totalPages:
		return 0, 0, &InvalidOverrideError{Name: sel.Name, Override: raw,
			Reason: fmt.Sprintf("document has %d pages", totalPages)}
	}
	return start, end, nil
}

// bestMatch compares the name case-insensitively against every section
// title; either string being a substring of the other is a match. Among
// multiple matches the greatest character overlap (length of the
// shorter string) wins, ties broken by earliest document order.
func bestMatch(name string, sections []structure.Section) *structure.Section {
	nameLower := strings.ToLower(name)
	var best *structure.Section
	bestOverlap := -1

	for i := range sections {
		titleLower := strings.ToLower(sections[i].Title)
		if titleLower == "" {
			continue
		}
		if !strings.Contains(titleLower, nameLower) && !strings.Contains(nameLower, titleLower) {
			continue
		}
		overlap := len(nameLower)
		if len(titleLower) < overlap {
			overlap = len(titleLower)
		}
		if overlap > bestOverlap {
			best = &sections[i]
			bestOverlap = overlap
		}
	}
	return best
}

// collectText concatenates page texts with page-number markers so
// downstream consumers can reference specific pages.
func collectText(pageText map[int]string, start, end int) string {
	parts := make([]string, 0, end-start+1)
	for pn := start; pn <= end; pn++ {
		parts = append(parts, fmt.Sprintf("--- Page %d ---\n%s", pn, pageText[pn]))
	}
	return strings.Join(parts, "\n")
}

package structure

import "sort"

// Section is a finalized heading with its closed page range.
type Section struct {
	Title     string `json:"title"`
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
	Level     int    `json:"level"`
}

// ComputeEndPages turns the finalized candidate list into sections.
// Candidates are ordered by start page (detection order on ties) and
// candidates pointing outside the document are dropped. For section i,
// the end page is one before the start of the first later section at an
// equal-or-shallower level; the last such run extends to the end of the
// document. This depends on the complete, ordered list — it cannot run
// while candidates are still being gathered.
func ComputeEndPages(candidates []Candidate, totalPages int) []Section {
	ordered := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.StartPage < 1 || c.StartPage > totalPages {
			continue
		}
		ordered = append(ordered, c)
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].StartPage < ordered[j].StartPage })

	sections := make([]Section, 0, len(ordered))
	for i, c := range ordered {
		end := totalPages
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].Level <= c.Level {
				end = ordered[j].StartPage - 1
				break
			}
		}
		// Two sibling sections can start on the same page; a section
		// always covers at least its own start page.
		if end < c.StartPage {
			end = c.StartPage
		}
		sections = append(sections, Section{
			Title:     c.Title,
			StartPage: c.StartPage,
			EndPage:   end,
			Level:     c.Level,
		})
	}
	return sections
}

package structure

import "testing"

func TestComputeEndPages_SiblingBoundaries(t *testing.T) {
	cands := []Candidate{
		{Title: "Overview", StartPage: 1, Level: 1},
		{Title: "Financials", StartPage: 10, Level: 1},
		{Title: "Notes", StartPage: 40, Level: 1},
	}
	sections := ComputeEndPages(cands, 60)

	wantEnds := []int{9, 39, 60}
	if len(sections) != len(wantEnds) {
		t.Fatalf("expected %d sections, got %d", len(wantEnds), len(sections))
	}
	for i, want := range wantEnds {
		if sections[i].EndPage != want {
			t.Errorf("section %q: expected end_page %d, got %d", sections[i].Title, want, sections[i].EndPage)
		}
	}
}

func TestComputeEndPages_NestedLevels(t *testing.T) {
	// A subsection ends at the next section of equal-or-shallower level;
	// its parent runs until the next level-1 section.
	cands := []Candidate{
		{Title: "Financials", StartPage: 10, Level: 1},
		{Title: "Revenue", StartPage: 12, Level: 2},
		{Title: "Costs", StartPage: 20, Level: 2},
		{Title: "Outlook", StartPage: 30, Level: 1},
	}
	sections := ComputeEndPages(cands, 50)

	wantEnds := map[string]int{
		"Financials": 29,
		"Revenue":    19,
		"Costs":      29,
		"Outlook":    50,
	}
	for _, sec := range sections {
		if want := wantEnds[sec.Title]; sec.EndPage != want {
			t.Errorf("section %q: expected end_page %d, got %d", sec.Title, want, sec.EndPage)
		}
	}
}

func TestComputeEndPages_SingleSectionSpansDocument(t *testing.T) {
	sections := ComputeEndPages([]Candidate{{Title: "Only", StartPage: 1, Level: 1}}, 7)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].StartPage != 1 || sections[0].EndPage != 7 {
		t.Errorf("expected range 1-7, got %d-%d", sections[0].StartPage, sections[0].EndPage)
	}
}

func TestComputeEndPages_SortsByStartPage(t *testing.T) {
	cands := []Candidate{
		{Title: "B", StartPage: 20, Level: 1},
		{Title: "A", StartPage: 5, Level: 1},
	}
	sections := ComputeEndPages(cands, 30)
	if sections[0].Title != "A" || sections[1].Title != "B" {
		t.Errorf("expected document order A,B, got %q,%q", sections[0].Title, sections[1].Title)
	}
	if sections[0].EndPage != 19 {
		t.Errorf("expected A to end at 19, got %d", sections[0].EndPage)
	}
}

func TestComputeEndPages_SameStartPageSiblings(t *testing.T) {
	// Two siblings on one page: the earlier one still covers its own
	// start page.
	cands := []Candidate{
		{Title: "First", StartPage: 3, Level: 1},
		{Title: "Second", StartPage: 3, Level: 1},
	}
	sections := ComputeEndPages(cands, 10)
	if sections[0].EndPage != 3 {
		t.Errorf("expected first sibling end_page 3, got %d", sections[0].EndPage)
	}
	if sections[1].EndPage != 10 {
		t.Errorf("expected second sibling end_page 10, got %d", sections[1].EndPage)
	}
}

func TestComputeEndPages_DropsOutOfRangeCandidates(t *testing.T) {
	cands := []Candidate{
		{Title: "Real", StartPage: 2, Level: 1},
		{Title: "Ghost", StartPage: 99, Level: 1},
		{Title: "Negative", StartPage: 0, Level: 1},
	}
	sections := ComputeEndPages(cands, 10)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "Real" {
		t.Errorf("expected %q to survive, got %q", "Real", sections[0].Title)
	}
	if sections[0].EndPage != 10 {
		t.Errorf("expected end_page 10, got %d", sections[0].EndPage)
	}
}

func TestComputeEndPages_InvariantsHold(t *testing.T) {
	cands := []Candidate{
		{Title: "A", StartPage: 1, Level: 1},
		{Title: "A.1", StartPage: 2, Level: 2},
		{Title: "A.2", StartPage: 4, Level: 2},
		{Title: "B", StartPage: 8, Level: 1},
	}
	total := 12
	sections := ComputeEndPages(cands, total)

	prevStart := 0
	for _, sec := range sections {
		if sec.StartPage < prevStart {
			t.Errorf("section %q breaks ascending start_page order", sec.Title)
		}
		prevStart = sec.StartPage
		if sec.StartPage > sec.EndPage {
			t.Errorf("section %q: start_page %d > end_page %d", sec.Title, sec.StartPage, sec.EndPage)
		}
		if sec.EndPage > total {
			t.Errorf("section %q: end_page %d exceeds total pages %d", sec.Title, sec.EndPage, total)
		}
	}
	if last := sections[len(sections)-1]; last.EndPage != total {
		t.Errorf("expected final section to end at %d, got %d", total, last.EndPage)
	}
}

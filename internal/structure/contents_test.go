package structure

import (
	"testing"

	"github.com/dgallion1/docstruct/internal/pagesource"
)

// tocPage builds a contents page from (text, x, y) triples, one span per
// line, plus a page Text field so the keyword probe sees it.
func tocPage(header string, entries ...pagesource.TextSpan) pagesource.PageRecord {
	spans := append([]pagesource.TextSpan{span(header, 14, false, 72, 40)}, entries...)
	text := header
	for _, sp := range entries {
		text += "\n" + sp.Text
	}
	return pagesource.PageRecord{PageNumber: 1, Text: text, Spans: spans, Width: 612, Height: 792}
}

func TestFindContentsPage(t *testing.T) {
	pages := []pagesource.PageRecord{
		{PageNumber: 1, Text: "Cover Page\nAcme Corp 2024"},
		{PageNumber: 2, Text: "Table of Contents\nIntroduction ...... 3"},
		{PageNumber: 3, Text: "Introduction\nbody"},
	}
	if got := findContentsPage(pages); got != 1 {
		t.Errorf("expected contents page index 1, got %d", got)
	}
}

func TestFindContentsPage_KeywordOutsideProbeIgnored(t *testing.T) {
	deep := ""
	for i := 0; i < contentsProbeLines; i++ {
		deep += "filler line\n"
	}
	deep += "table of contents"
	pages := []pagesource.PageRecord{{PageNumber: 1, Text: deep}}
	if got := findContentsPage(pages); got != -1 {
		t.Errorf("keyword below the probe window should not match, got index %d", got)
	}
}

func TestParseContentsPage_DotLeaders(t *testing.T) {
	page := tocPage("Table of Contents",
		span("Introduction ........ 2", 11, false, 72, 80),
		span("Financial Review .... 10", 11, false, 72, 100),
		span("Appendix - 30", 11, false, 72, 120),
	)

	cands := parseContentsPage(&page, DefaultConfig())
	want := []Candidate{
		{Title: "Introduction", StartPage: 2, Level: 1},
		{Title: "Financial Review", StartPage: 10, Level: 1},
		{Title: "Appendix", StartPage: 30, Level: 1},
	}
	if len(cands) != len(want) {
		t.Fatalf("expected %d candidates, got %d: %+v", len(want), len(cands), cands)
	}
	for i, w := range want {
		if cands[i] != w {
			t.Errorf("candidate %d: expected %+v, got %+v", i, w, cands[i])
		}
	}
}

func TestParseContentsPage_IndentLevels(t *testing.T) {
	page := tocPage("Contents",
		span("Financials ....... 10", 11, false, 72, 80),
		span("Revenue ....... 12", 11, false, 90, 100),
		span("Costs ....... 15", 11, false, 90, 120),
		span("Outlook ....... 20", 11, false, 72, 140),
	)

	cands := parseContentsPage(&page, DefaultConfig())
	wantLevels := map[string]int{
		"Financials": 1,
		"Revenue":    2,
		"Costs":      2,
		"Outlook":    1,
	}
	if len(cands) != len(wantLevels) {
		t.Fatalf("expected %d candidates, got %d: %+v", len(wantLevels), len(cands), cands)
	}
	for _, c := range cands {
		if want := wantLevels[c.Title]; c.Level != want {
			t.Errorf("entry %q: expected level %d, got %d", c.Title, want, c.Level)
		}
	}
}

func TestParseContentsPage_PageNumberFirst(t *testing.T) {
	page := tocPage("Contents",
		span("3 Chairman's Letter", 11, false, 72, 80),
		span("7 Strategy Overview", 11, false, 72, 100),
	)

	cands := parseContentsPage(&page, DefaultConfig())
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(cands), cands)
	}
	if cands[0].Title != "Chairman's Letter" || cands[0].StartPage != 3 {
		t.Errorf("unexpected first entry: %+v", cands[0])
	}
	if cands[1].Title != "Strategy Overview" || cands[1].StartPage != 7 {
		t.Errorf("unexpected second entry: %+v", cands[1])
	}
}

func TestParseContentsPage_NumberOnlyThenTitle(t *testing.T) {
	page := tocPage("Contents",
		span("5", 11, false, 72, 80),
		span("Governance Report", 11, false, 72, 100),
	)

	cands := parseContentsPage(&page, DefaultConfig())
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %+v", len(cands), cands)
	}
	if cands[0].Title != "Governance Report" || cands[0].StartPage != 5 {
		t.Errorf("unexpected entry: %+v", cands[0])
	}
}

func TestParseColumn_WrappedTitlePrefix(t *testing.T) {
	// A title that wraps before the dot leader is carried forward and
	// prepended to the matching line.
	col := []pagesource.Line{
		{Text: "Consolidated Financial", X: 72, BBox: pagesource.BBox{X0: 72, Y0: 80, X1: 200, Y1: 91}},
		{Text: "Statements ....... 45", X: 72, BBox: pagesource.BBox{X0: 72, Y0: 95, X1: 200, Y1: 106}},
	}

	entries := parseColumn(col, DefaultConfig())
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %+v", len(entries), entries)
	}
	if entries[0].title != "Consolidated Financial Statements" || entries[0].page != 45 {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestParseColumn_SkipsKeywordAndShortTitles(t *testing.T) {
	col := []pagesource.Line{
		{Text: "Contents ....... 1", X: 72, BBox: pagesource.BBox{X0: 72, Y0: 40, X1: 200, Y1: 51}},
		{Text: "Q1 ....... 4", X: 72, BBox: pagesource.BBox{X0: 72, Y0: 60, X1: 200, Y1: 71}},
		{Text: "Valid Entry ....... 9", X: 72, BBox: pagesource.BBox{X0: 72, Y0: 80, X1: 200, Y1: 91}},
	}

	entries := parseColumn(col, DefaultConfig())
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %+v", len(entries), entries)
	}
	if entries[0].title != "Valid Entry" {
		t.Errorf("expected %q, got %q", "Valid Entry", entries[0].title)
	}
}

func TestSplitColumns_TwoColumnLayout(t *testing.T) {
	// Left column at x=50, right column at x=350; the gap dwarfs the
	// average line width so they cluster apart.
	lines := []pagesource.Line{
		{Text: "Left A", X: 50, BBox: pagesource.BBox{X0: 50, Y0: 100, X1: 150, Y1: 111}},
		{Text: "Left B", X: 50, BBox: pagesource.BBox{X0: 50, Y0: 120, X1: 150, Y1: 131}},
		{Text: "Right A", X: 350, BBox: pagesource.BBox{X0: 350, Y0: 100, X1: 450, Y1: 111}},
		{Text: "Right B", X: 350, BBox: pagesource.BBox{X0: 350, Y0: 120, X1: 450, Y1: 131}},
	}

	columns := splitColumns(lines)
	if len(columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(columns))
	}
	if len(columns[0]) != 2 || columns[0][0].Text != "Left A" {
		t.Errorf("unexpected left column: %+v", columns[0])
	}
	if len(columns[1]) != 2 || columns[1][0].Text != "Right A" {
		t.Errorf("unexpected right column: %+v", columns[1])
	}
}

func TestParseContentsPage_SortedByStartPage(t *testing.T) {
	// Right column holds earlier pages than the left; output is still
	// in start-page order.
	page := tocPage("Contents",
		span("Later Section ....... 20", 11, false, 50, 80),
		span("Earlier Section ....... 2", 11, false, 400, 80),
	)

	cands := parseContentsPage(&page, DefaultConfig())
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(cands), cands)
	}
	if cands[0].Title != "Earlier Section" || cands[1].Title != "Later Section" {
		t.Errorf("expected start-page order, got %+v", cands)
	}
}

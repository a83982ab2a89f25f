package pagesource

import "testing"

func TestForFile_Dispatch(t *testing.T) {
	cases := []struct {
		filename string
		want     any
	}{
		{"a.txt", &TextSource{}},
		{"b.md", &MarkdownSource{}},
		{"c.CSV", &CSVSource{}},
		{"d.html", &HTMLSource{}},
		{"e.htm", &HTMLSource{}},
		{"f.pdf", &PDFSource{}},
		{"g.docx", &DOCXSource{}},
	}
	for _, tc := range cases {
		src, err := ForFile(tc.filename)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.filename, err)
			continue
		}
		switch tc.want.(type) {
		case *TextSource:
			if _, ok := src.(*TextSource); !ok {
				t.Errorf("%s: wrong source %T", tc.filename, src)
			}
		case *MarkdownSource:
			if _, ok := src.(*MarkdownSource); !ok {
				t.Errorf("%s: wrong source %T", tc.filename, src)
			}
		case *CSVSource:
			if _, ok := src.(*CSVSource); !ok {
				t.Errorf("%s: wrong source %T", tc.filename, src)
			}
		case *HTMLSource:
			if _, ok := src.(*HTMLSource); !ok {
				t.Errorf("%s: wrong source %T", tc.filename, src)
			}
		case *PDFSource:
			if _, ok := src.(*PDFSource); !ok {
				t.Errorf("%s: wrong source %T", tc.filename, src)
			}
		case *DOCXSource:
			if _, ok := src.(*DOCXSource); !ok {
				t.Errorf("%s: wrong source %T", tc.filename, src)
			}
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	if _, err := ForFile("archive.zip"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("archive.zip") {
		t.Error("zip must not be supported")
	}
	if !IsSupportedExtension("Report.PDF") {
		t.Error("extension check must be case-insensitive")
	}
}

func TestPageRecord_Lines(t *testing.T) {
	page := &PageRecord{
		Spans: []TextSpan{
			{Text: "right", BBox: BBox{X0: 200, Y0: 100, X1: 260, Y1: 111}},
			{Text: "left", BBox: BBox{X0: 50, Y0: 101, X1: 100, Y1: 112}},
			{Text: "below", BBox: BBox{X0: 50, Y0: 130, X1: 110, Y1: 141}},
		},
	}

	lines := page.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "left right" {
		t.Errorf("spans on one baseline should join left-to-right, got %q", lines[0].Text)
	}
	if lines[0].X != 50 {
		t.Errorf("line X is the leftmost span edge, got %f", lines[0].X)
	}
	if lines[1].Text != "below" {
		t.Errorf("unexpected second line %q", lines[1].Text)
	}
}

func TestPageRecord_LinesEmpty(t *testing.T) {
	page := &PageRecord{}
	if lines := page.Lines(); lines != nil {
		t.Errorf("expected nil lines, got %+v", lines)
	}
}

func TestBBox_Intersects(t *testing.T) {
	a := BBox{X0: 0, Y0: 0, X1: 10, Y1: 10}
	if !a.Intersects(BBox{X0: 5, Y0: 5, X1: 15, Y1: 15}) {
		t.Error("overlapping boxes must intersect")
	}
	if a.Intersects(BBox{X0: 10, Y0: 0, X1: 20, Y1: 10}) {
		t.Error("edge-touching boxes do not intersect")
	}
	if a.Intersects(BBox{X0: 20, Y0: 20, X1: 30, Y1: 30}) {
		t.Error("disjoint boxes must not intersect")
	}
}

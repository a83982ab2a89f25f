package pagesource

import (
	"strings"
	"testing"
)

func TestTextSource_SinglePage(t *testing.T) {
	src := &TextSource{}
	doc, err := src.Load(strings.NewReader("line one\nline two\n"), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.TotalPages != 1 {
		t.Fatalf("expected 1 page, got %d", doc.TotalPages)
	}
	if doc.Filename != "notes.txt" {
		t.Errorf("unexpected filename %q", doc.Filename)
	}
	if doc.Pages[0].Text != "line one\nline two" {
		t.Errorf("unexpected page text %q", doc.Pages[0].Text)
	}
	if len(doc.Outline) != 0 {
		t.Errorf("plain text must not produce an outline, got %+v", doc.Outline)
	}
}

func TestTextSource_FormFeedSplitsPages(t *testing.T) {
	src := &TextSource{}
	doc, err := src.Load(strings.NewReader("page one text\n\fpage two text\n\fpage three"), "multi.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", doc.TotalPages)
	}
	for i, want := range []string{"page one text", "page two text", "page three"} {
		if doc.Pages[i].Text != want {
			t.Errorf("page %d: expected %q, got %q", i+1, want, doc.Pages[i].Text)
		}
		if doc.Pages[i].PageNumber != i+1 {
			t.Errorf("page %d: unexpected page number %d", i+1, doc.Pages[i].PageNumber)
		}
	}
}

func TestTextSource_FormFeedMidLine(t *testing.T) {
	src := &TextSource{}
	doc, err := src.Load(strings.NewReader("before\fafter"), "split.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.TotalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", doc.TotalPages)
	}
	if doc.Pages[0].Text != "before" || doc.Pages[1].Text != "after" {
		t.Errorf("unexpected split: %q / %q", doc.Pages[0].Text, doc.Pages[1].Text)
	}
}

func TestTextSource_EmptyFile(t *testing.T) {
	src := &TextSource{}
	doc, err := src.Load(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.TotalPages != 1 {
		t.Fatalf("an empty file is one empty page, got %d pages", doc.TotalPages)
	}
	if doc.Pages[0].Text != "" {
		t.Errorf("expected empty text, got %q", doc.Pages[0].Text)
	}
}

func TestTextSource_SpansSkipBlankLines(t *testing.T) {
	src := &TextSource{}
	doc, err := src.Load(strings.NewReader("first\n\n\nsecond"), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spans := doc.Pages[0].Spans
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Text != "first" || spans[1].Text != "second" {
		t.Errorf("unexpected spans: %+v", spans)
	}
	for _, sp := range spans {
		if sp.FontSize != synthBodySize {
			t.Errorf("span %q: expected body size, got %f", sp.Text, sp.FontSize)
		}
	}
}

package pagesource

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFSource reads PDF files with ledongthuc/pdf: word-level text
// fragments are merged back into font-uniform spans, outline titles are
// resolved to pages by text search, and link annotations become
// hyperlink regions.
type PDFSource struct{}

func (s *PDFSource) Load(r io.Reader, filename string) (doc *Document, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	// The library panics on some malformed files; treat that the same
	// as a failed open.
	defer func() {
		if p := recover(); p != nil {
			doc = nil
			err = &UnreadableError{Filename: filename, Err: fmt.Errorf("pdf parse: %v", p)}
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &UnreadableError{Filename: filename, Err: err}
	}

	doc = &Document{
		Filename:   filename,
		TotalPages: reader.NumPage(),
	}

	for i := 1; i <= doc.TotalPages; i++ {
		page := reader.Page(i)
		rec := PageRecord{PageNumber: i, Width: synthPageWidth, Height: synthPageHeight}
		if !page.V.IsNull() {
			rec.Width, rec.Height = pageSize(page)
			rec.Spans = pageSpans(page, rec.Height)
			rec.LinkRects = pageLinkRects(page, rec.Height)
			rec.Text = joinLines(&rec)
		}
		doc.Pages = append(doc.Pages, rec)
	}

	doc.Outline = resolveOutline(reader.Outline(), doc.Pages)
	return doc, nil
}

// joinLines rebuilds the page text from the grouped span lines so that
// line-level cleaning always matches the span geometry.
func joinLines(rec *PageRecord) string {
	lines := rec.Lines()
	parts := make([]string, 0, len(lines))
	for _, ln := range lines {
		parts = append(parts, ln.Text)
	}
	return strings.Join(parts, "\n")
}

// pageSpans extracts the page content and merges consecutive fragments
// that share font and size into single spans. ledongthuc/pdf returns
// word-level fragments; headings set in one font come back as one span
// after merging, matching how heading detection expects to see them.
func pageSpans(page pdflib.Page, height float64) (spans []TextSpan) {
	defer func() {
		// Content() can panic on damaged page streams; skip the page.
		if p := recover(); p != nil {
			spans = nil
		}
	}()

	content := page.Content()
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		box := BBox{
			X0: t.X,
			Y0: height - t.Y - t.FontSize,
			X1: t.X + t.W,
			Y1: height - t.Y,
		}
		if n := len(spans); n > 0 {
			prev := &spans[n-1]
			sameRun := prev.FontSize == t.FontSize &&
				prev.Bold == isBoldFont(t.Font) &&
				box.Y0-prev.BBox.Y0 <= rowTolerance &&
				box.Y0-prev.BBox.Y0 >= -rowTolerance &&
				box.X0 >= prev.BBox.X0
			if sameRun {
				prev.Text += " " + strings.TrimSpace(t.S)
				prev.BBox = unionBBox(prev.BBox, box)
				continue
			}
		}
		spans = append(spans, TextSpan{
			Text:     strings.TrimSpace(t.S),
			FontSize: t.FontSize,
			Bold:     isBoldFont(t.Font),
			BBox:     box,
		})
	}
	return spans
}

func isBoldFont(font string) bool {
	return strings.Contains(strings.ToLower(font), "bold")
}

// pageSize reads the MediaBox, walking up the page tree for inherited
// values. Falls back to US Letter.
func pageSize(page pdflib.Page) (w, h float64) {
	w, h = synthPageWidth, synthPageHeight
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		mb := v.Key("MediaBox")
		if mb.IsNull() || mb.Len() != 4 {
			continue
		}
		bw := mb.Index(2).Float64() - mb.Index(0).Float64()
		bh := mb.Index(3).Float64() - mb.Index(1).Float64()
		if bw > 0 && bh > 0 {
			return bw, bh
		}
	}
	return w, h
}

// pageLinkRects collects /Annots Link rectangles, converted to
// top-origin coordinates.
func pageLinkRects(page pdflib.Page, height float64) (rects []BBox) {
	defer func() {
		if p := recover(); p != nil {
			rects = nil
		}
	}()

	annots := page.V.Key("Annots")
	for i := 0; i < annots.Len(); i++ {
		a := annots.Index(i)
		if a.Key("Subtype").Name() != "Link" {
			continue
		}
		r := a.Key("Rect")
		if r.Len() != 4 {
			continue
		}
		x0, y0 := r.Index(0).Float64(), r.Index(1).Float64()
		x1, y1 := r.Index(2).Float64(), r.Index(3).Float64()
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		rects = append(rects, BBox{X0: x0, Y0: height - y1, X1: x1, Y1: height - y0})
	}
	return rects
}

// resolveOutline flattens the outline tree into level/title/page
// entries. The library's outline carries no page numbers, so each title
// is resolved to the first page whose text contains it; entries that
// resolve nowhere are dropped, letting detection fall through to the
// next strategy when the whole outline is unresolvable.
func resolveOutline(root pdflib.Outline, pages []PageRecord) []OutlineEntry {
	lowered := make([]string, len(pages))
	for i, p := range pages {
		lowered[i] = strings.ToLower(p.Text)
	}

	var entries []OutlineEntry
	var walk func(children []pdflib.Outline, level int)
	walk = func(children []pdflib.Outline, level int) {
		for _, child := range children {
			title := strings.TrimSpace(child.Title)
			if title != "" {
				if page := findTitlePage(title, lowered); page > 0 {
					entries = append(entries, OutlineEntry{Level: level, Title: title, Page: page})
				}
			}
			walk(child.Child, level+1)
		}
	}
	walk(root.Child, 1)
	return entries
}

func findTitlePage(title string, loweredPages []string) int {
	needle := strings.ToLower(title)
	for i, text := range loweredPages {
		if strings.Contains(text, needle) {
			return i + 1
		}
	}
	return 0
}

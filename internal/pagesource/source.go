package pagesource

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// BBox is an axis-aligned box in page coordinates. The origin is the
// top-left corner of the page; Y grows downward.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// Intersects reports whether two boxes overlap.
func (b BBox) Intersects(o BBox) bool {
	return b.X0 < o.X1 && o.X0 < b.X1 && b.Y0 < o.Y1 && o.Y0 < b.Y1
}

// TextSpan is a positioned run of text with uniform font attributes.
type TextSpan struct {
	Text     string
	FontSize float64
	Bold     bool
	BBox     BBox
}

// OutlineEntry is one entry of a document-embedded table of contents.
// Page is 1-based.
type OutlineEntry struct {
	Level int
	Title string
	Page  int
}

// PageRecord holds everything the engine knows about a single page.
type PageRecord struct {
	PageNumber int // 1-based
	Text       string
	Spans      []TextSpan
	LinkRects  []BBox
	Width      float64
	Height     float64
}

// Document is the raw, per-page view of a source file before any
// structure detection or cleaning runs.
type Document struct {
	Filename   string
	TotalPages int
	Outline    []OutlineEntry
	Pages      []PageRecord
}

// Line is a horizontal group of spans sharing a baseline, top-to-bottom.
type Line struct {
	Text  string
	X     float64 // left edge of the leftmost span
	BBox  BBox
	Spans []TextSpan
}

// rowTolerance is the Y distance (points) within which spans are
// considered part of the same line.
const rowTolerance = 3.0

// Lines groups the page's spans into lines, sorted top-to-bottom with
// spans left-to-right within each line.
func (p *PageRecord) Lines() []Line {
	if len(p.Spans) == 0 {
		return nil
	}
	spans := make([]TextSpan, len(p.Spans))
	copy(spans, p.Spans)
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].BBox.Y0 != spans[j].BBox.Y0 {
			return spans[i].BBox.Y0 < spans[j].BBox.Y0
		}
		return spans[i].BBox.X0 < spans[j].BBox.X0
	})

	var lines []Line
	for _, sp := range spans {
		if n := len(lines); n > 0 && sp.BBox.Y0-lines[n-1].BBox.Y0 <= rowTolerance {
			line := &lines[n-1]
			line.Spans = append(line.Spans, sp)
			if sp.BBox.X0 < line.X {
				line.X = sp.BBox.X0
			}
			line.BBox = unionBBox(line.BBox, sp.BBox)
			continue
		}
		lines = append(lines, Line{
			X:     sp.BBox.X0,
			BBox:  sp.BBox,
			Spans: []TextSpan{sp},
		})
	}

	// Spans joined on Y order; re-sort within each line so slightly
	// skewed baselines still read left-to-right.
	for i := range lines {
		line := &lines[i]
		sort.SliceStable(line.Spans, func(a, b int) bool {
			return line.Spans[a].BBox.X0 < line.Spans[b].BBox.X0
		})
		parts := make([]string, 0, len(line.Spans))
		for _, sp := range line.Spans {
			if sp.Text != "" {
				parts = append(parts, sp.Text)
			}
		}
		line.Text = strings.Join(parts, " ")
	}
	return lines
}

func unionBBox(a, b BBox) BBox {
	if b.X0 < a.X0 {
		a.X0 = b.X0
	}
	if b.Y0 < a.Y0 {
		a.Y0 = b.Y0
	}
	if b.X1 > a.X1 {
		a.X1 = b.X1
	}
	if b.Y1 > a.Y1 {
		a.Y1 = b.Y1
	}
	return a
}

// UnreadableError reports a source file that could not be opened or
// parsed at all (corrupt, encrypted, truncated).
type UnreadableError struct {
	Filename string
	Err      error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("unreadable document %s: %v", e.Filename, e.Err)
}

func (e *UnreadableError) Unwrap() error { return e.Err }

// Source loads raw bytes of a document into the per-page view.
type Source interface {
	Load(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate source for a filename.
func ForFile(filename string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextSource{}, nil
	case ".md", ".markdown":
		return &MarkdownSource{}, nil
	case ".csv":
		return &CSVSource{}, nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	case ".pdf":
		return &PDFSource{}, nil
	case ".docx":
		return &DOCXSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

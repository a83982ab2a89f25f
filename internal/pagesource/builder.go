package pagesource

import "strings"

// Synthetic page geometry for formats that have no native pagination.
// Letter-ish dimensions keep the top-of-page math meaningful.
const (
	synthPageWidth  = 612.0
	synthPageHeight = 792.0
	synthLineHeight = 14.0
	synthBodySize   = 11.0
)

// headingFontSize maps a heading level to a synthetic span size large
// enough that the font heuristic classifies it the same way the outline
// would.
func headingFontSize(level int) (size float64, bold bool) {
	switch level {
	case 1:
		return 28, true
	case 2:
		return 20, true
	default:
		return 14, true
	}
}

// docBuilder assembles a Document for heading-delimited formats
// (markdown, html, docx): every level-1 heading starts a new synthetic
// page and every heading becomes an outline entry.
type docBuilder struct {
	doc   Document
	lines []string
	spans []TextSpan
}

func newDocBuilder(filename string) *docBuilder {
	return &docBuilder{doc: Document{Filename: filename}}
}

func (b *docBuilder) addLine(text string, size float64, bold bool) {
	y := float64(len(b.lines)) * synthLineHeight
	b.spans = append(b.spans, TextSpan{
		Text:     text,
		FontSize: size,
		Bold:     bold,
		BBox:     BBox{X0: 0, Y0: y, X1: float64(len(text)) * size * 0.5, Y1: y + size},
	})
	b.lines = append(b.lines, text)
}

// Heading records a heading. Level-1 headings flush the current page
// first so each major section gets its own page.
func (b *docBuilder) Heading(level int, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if level <= 1 {
		b.flushPage()
	}
	b.doc.Outline = append(b.doc.Outline, OutlineEntry{
		Level: level,
		Title: text,
		Page:  b.currentPage(),
	})
	size, bold := headingFontSize(level)
	b.addLine(text, size, bold)
}

// Text appends body text, one line per newline-separated row.
func (b *docBuilder) Text(text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.addLine(line, synthBodySize, false)
	}
}

// currentPage is the 1-based number the next line will land on.
func (b *docBuilder) currentPage() int {
	return len(b.doc.Pages) + 1
}

func (b *docBuilder) flushPage() {
	if len(b.lines) == 0 {
		return
	}
	b.doc.Pages = append(b.doc.Pages, PageRecord{
		PageNumber: len(b.doc.Pages) + 1,
		Text:       strings.Join(b.lines, "\n"),
		Spans:      b.spans,
		Width:      synthPageWidth,
		Height:     synthPageHeight,
	})
	b.lines = nil
	b.spans = nil
}

func (b *docBuilder) Build() *Document {
	b.flushPage()
	b.doc.TotalPages = len(b.doc.Pages)
	return &b.doc
}

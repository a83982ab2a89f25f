package pagesource

import (
	"bufio"
	"io"
	"strings"
)

// TextSource handles plain text files. Form feeds split pages; a file
// without any form feed is a single page. Plain text carries no font
// information, so every span is body-sized and no outline is produced.
type TextSource struct{}

func (s *TextSource) Load(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pages []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		for {
			idx := strings.IndexByte(line, '\f')
			if idx < 0 {
				break
			}
			current.WriteString(line[:idx])
			pages = append(pages, current.String())
			current.Reset()
			line = line[idx+1:]
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current.Len() > 0 || len(pages) == 0 {
		pages = append(pages, current.String())
	}

	doc := &Document{Filename: filename, TotalPages: len(pages)}
	for i, text := range pages {
		text = strings.TrimRight(text, "\n")
		rec := PageRecord{
			PageNumber: i + 1,
			Text:       text,
			Width:      synthPageWidth,
			Height:     synthPageHeight,
		}
		for j, line := range strings.Split(text, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			y := float64(j) * synthLineHeight
			rec.Spans = append(rec.Spans, TextSpan{
				Text:     line,
				FontSize: synthBodySize,
				BBox:     BBox{X0: 0, Y0: y, X1: float64(len(line)) * synthBodySize * 0.5, Y1: y + synthBodySize},
			})
		}
		doc.Pages = append(doc.Pages, rec)
	}
	return doc, nil
}

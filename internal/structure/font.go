package structure

import (
	"context"

	"github.com/dgallion1/docstruct/internal/pagesource"
	"golang.org/x/sync/errgroup"
)

// boldMinFontSize is the absolute size floor below which bold text is
// never a heading.
const boldMinFontSize = 14.0

// fontHeuristic is the last-resort tier: classify spans by font size
// and boldness, then filter. Per-page gathering is independent and
// fans out; the repetition filter needs the full cross-document
// frequency count, so it only runs after all pages have joined.
func fontHeuristic(ctx context.Context, doc *pagesource.Document, cfg Config) ([]Candidate, error) {
	perPage := make([][]Candidate, len(doc.Pages))

	g, ctx := errgroup.WithContext(ctx)
	for i := range doc.Pages {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			perPage[i] = pageCandidates(&doc.Pages[i], cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Fan-in preserves page order regardless of goroutine scheduling.
	var candidates []Candidate
	for _, cands := range perPage {
		candidates = append(candidates, cands...)
	}

	return filterRepeated(candidates, cfg.EffectiveMaxAppearances(doc.TotalPages)), nil
}

// pageCandidates scans one page's spans in order and emits heading
// candidates, merging consecutive same-level spans so headings wrapped
// across lines come out as one title.
func pageCandidates(page *pagesource.PageRecord, cfg Config) []Candidate {
	var cands []Candidate
	prevLevel := 0

	for _, span := range page.Spans {
		text := span.Text
		if countAlpha(text) < cfg.MinHeadingChars {
			continue
		}

		level := 0
		switch {
		case span.FontSize >= cfg.MajorFontSize:
			level = 1
		case span.FontSize >= cfg.SubFontSize:
			level = 2
		case span.Bold && span.FontSize >= boldMinFontSize:
			level = 2
		}
		if level == 0 {
			prevLevel = 0
			continue
		}

		if level == prevLevel && len(cands) > 0 {
			cands[len(cands)-1].Title += " " + text
			continue
		}
		cands = append(cands, Candidate{Title: text, StartPage: page.PageNumber, Level: level})
		prevLevel = level
	}
	return cands
}

// filterRepeated drops candidate titles that appear on more distinct
// pages than the threshold allows (recurring navigation fragments), then
// dedupes keeping the first occurrence of each surviving title. The
// count phase must complete before any candidate is accepted.
func filterRepeated(candidates []Candidate, maxAppearances int) []Candidate {
	pagesByTitle := make(map[string]map[int]struct{})
	for _, c := range candidates {
		pages, ok := pagesByTitle[c.Title]
		if !ok {
			pages = make(map[int]struct{})
			pagesByTitle[c.Title] = pages
		}
		pages[c.StartPage] = struct{}{}
	}

	seen := make(map[string]bool)
	var filtered []Candidate
	for _, c := range candidates {
		if len(pagesByTitle[c.Title]) > maxAppearances {
			continue
		}
		if seen[c.Title] {
			continue
		}
		seen[c.Title] = true
		filtered = append(filtered, c)
	}
	return filtered
}

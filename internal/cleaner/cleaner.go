// Package cleaner strips repeated navigational artifacts, decorative
// link glyphs, reproduced top-of-page hyperlinks and invalid encoding
// from page text. It only derives cleaned text; raw text is never
// touched. Malformed input degrades to an empty cleaned page — nothing
// in this package fails a document.
package cleaner

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docstruct/internal/pagesource"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

// navProbeLines is how many leading lines of each page feed the
// nav-bar frequency count.
const navProbeLines = 5

// topBandFraction is the slice of page height within which hyperlink
// text is treated as reproduced navigation rather than prose.
const topBandFraction = 0.15

// Characters whose presence at the start of a line marks it as a
// decorative link arrow.
var arrowGlyphs = map[rune]bool{'→': true, '▶': true, '▸': true, '►': true}

// Clean runs the four cleaning steps in order and returns the cleaned
// text for every page, aligned with the input order. maxAppearances is
// the shared repetition threshold (0 = floor(total_pages/2)).
func Clean(ctx context.Context, pages []pagesource.PageRecord, maxAppearances int, log *slog.Logger) ([]string, error) {
	if maxAppearances <= 0 {
		maxAppearances = len(pages) / 2
	}

	// Step 1 is a global two-phase operation: the frequency count over
	// all pages completes before any line is deleted.
	freq := topLineFrequencies(pages)
	navLines := linesOverThreshold(freq, maxAppearances)
	if len(navLines) > 0 {
		sample := make([]string, 0, 3)
		for line := range navLines {
			if len(sample) == 3 {
				break
			}
			sample = append(sample, line)
		}
		log.Warn("nav-bar lines removed", "distinct", len(navLines), "sample", sample)
	}

	// Steps 2-4 are page-local and fan out; results land in an
	// index-addressed slice so page order survives scheduling.
	cleaned := make([]string, len(pages))
	g, ctx := errgroup.WithContext(ctx)
	for i := range pages {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			page := &pages[i]
			text := removeNavLines(page.Text, navLines)
			text = removeArrowLines(text)
			text = removeTopHyperlinks(text, page)
			cleaned[i] = normalizeEncoding(text, page.PageNumber, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cleaned, nil
}

// topLineFrequencies counts, per distinct stripped line, on how many
// pages it appears within the top lines. A line repeated within one
// page counts once toward that page.
func topLineFrequencies(pages []pagesource.PageRecord) map[string]int {
	freq := make(map[string]int)
	for _, page := range pages {
		lines := strings.Split(page.Text, "\n")
		if len(lines) > navProbeLines {
			lines = lines[:navProbeLines]
		}
		seen := make(map[string]bool, len(lines))
		for _, line := range lines {
			stripped := strings.TrimSpace(line)
			if stripped == "" || seen[stripped] {
				continue
			}
			seen[stripped] = true
			freq[stripped]++
		}
	}
	return freq
}

// linesOverThreshold selects the lines whose page count exceeds the
// repetition threshold. A line on exactly threshold pages is content.
func linesOverThreshold(freq map[string]int, threshold int) map[string]bool {
	nav := make(map[string]bool)
	for line, count := range freq {
		if count > threshold {
			nav[line] = true
		}
	}
	return nav
}

func removeNavLines(text string, navLines map[string]bool) string {
	if len(navLines) == 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if navLines[strings.TrimSpace(line)] {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// removeArrowLines drops lines whose first non-whitespace rune is a
// directional glyph.
func removeArrowLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped != "" {
			r, _ := utf8.DecodeRuneInString(stripped)
			if arrowGlyphs[r] {
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// removeTopHyperlinks deletes lines made entirely of text that sits
// inside hyperlink regions within the top band of the page.
func removeTopHyperlinks(text string, page *pagesource.PageRecord) string {
	snippets := topHyperlinkSnippets(page)
	if len(snippets) == 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		tokens := strings.Fields(line)
		if len(tokens) > 0 && allTokensInSnippets(tokens, snippets) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// topHyperlinkSnippets intersects the page's link rectangles in the top
// band with its span boxes and returns the covered text snippets.
func topHyperlinkSnippets(page *pagesource.PageRecord) []string {
	if len(page.LinkRects) == 0 || page.Height <= 0 {
		return nil
	}
	topLimit := topBandFraction * page.Height

	var linkRects []pagesource.BBox
	for _, r := range page.LinkRects {
		if r.Y0 < topLimit {
			linkRects = append(linkRects, r)
		}
	}
	if len(linkRects) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var snippets []string
	for _, span := range page.Spans {
		for _, r := range linkRects {
			if span.BBox.Intersects(r) {
				t := strings.TrimSpace(span.Text)
				if t != "" && !seen[t] {
					seen[t] = true
					snippets = append(snippets, t)
				}
				break
			}
		}
	}
	return snippets
}

func allTokensInSnippets(tokens []string, snippets []string) bool {
	for _, tok := range tokens {
		found := false
		for _, sn := range snippets {
			if strings.Contains(sn, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// normalizeEncoding drops bytes that do not form valid UTF-8,
// NFC-normalizes what survives, removes lines that end up empty, and
// logs one warning per affected line. It never fails the page.
func normalizeEncoding(text string, pageNumber int, log *slog.Logger) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		clean := line
		if !utf8.ValidString(line) {
			clean = dropInvalidUTF8(line)
			log.Warn("encoding cleanup: characters dropped",
				"page", pageNumber,
				"sample", truncate(clean, 40),
			)
		}
		clean = norm.NFC.String(clean)
		if strings.TrimSpace(clean) == "" {
			continue
		}
		kept = append(kept, clean)
	}
	return strings.Join(kept, "\n")
}

func dropInvalidUTF8(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

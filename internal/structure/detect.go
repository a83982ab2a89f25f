// Package structure infers an ordered heading hierarchy from a paged
// document. Three strategies are tried in order of reliability — the
// embedded outline, a parsed contents page, then a font-size heuristic —
// and the first one to produce any candidate wins.
package structure

import (
	"context"
	"log/slog"
	"unicode"

	"github.com/dgallion1/docstruct/internal/pagesource"
)

// Strategy tags which detection tier produced the section list.
type Strategy string

const (
	StrategyOutline       Strategy = "toc"
	StrategyContentsPage  Strategy = "contents_page"
	StrategyFontHeuristic Strategy = "font_heuristic"
)

// Candidate is a heading hypothesis: title, 1-based start page and
// nesting level (1 = major section). Candidates only live through
// detection; boundary resolution turns them into Sections.
type Candidate struct {
	Title     string
	StartPage int
	Level     int
}

// Config holds the detection tunables.
type Config struct {
	// MajorFontSize is the minimum span size for a level-1 heading.
	MajorFontSize float64
	// SubFontSize is the minimum span size for a level-2 heading.
	SubFontSize float64
	// MinHeadingChars is the minimum count of alphabetic characters a
	// candidate title must contain.
	MinHeadingChars int
	// MaxPageAppearances is the repetition threshold: a title seen on
	// more distinct pages than this is a navigation fragment, not a
	// heading. 0 means floor(total_pages / 2).
	MaxPageAppearances int
}

// DefaultConfig mirrors the application defaults.
func DefaultConfig() Config {
	return Config{
		MajorFontSize:      26,
		SubFontSize:        18,
		MinHeadingChars:    3,
		MaxPageAppearances: 0,
	}
}

// EffectiveMaxAppearances resolves the auto threshold.
func (c Config) EffectiveMaxAppearances(totalPages int) int {
	if c.MaxPageAppearances > 0 {
		return c.MaxPageAppearances
	}
	return totalPages / 2
}

// Detect runs the ordered strategy trial and returns the candidates
// plus the strategy that produced them. An empty candidate list with
// the font-heuristic tag means the document exposed no detectable
// structure at all.
func Detect(ctx context.Context, doc *pagesource.Document, cfg Config, log *slog.Logger) ([]Candidate, Strategy, error) {
	if entries := doc.Outline; len(entries) > 0 {
		log.Info("section detection: using document outline", "entries", len(entries))
		return fromOutline(entries), StrategyOutline, nil
	}

	if idx := findContentsPage(doc.Pages); idx >= 0 {
		cands := parseContentsPage(&doc.Pages[idx], cfg)
		if len(cands) > 0 {
			log.Info("section detection: using contents page", "page", idx+1, "entries", len(cands))
			return cands, StrategyContentsPage, nil
		}
	}

	cands, err := fontHeuristic(ctx, doc, cfg)
	if err != nil {
		return nil, StrategyFontHeuristic, err
	}
	log.Info("section detection: using font-size heuristic", "entries", len(cands))
	return cands, StrategyFontHeuristic, nil
}

// countAlpha counts alphabetic runes, the measure used to reject
// decorative glyphs and bare numbers.
func countAlpha(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

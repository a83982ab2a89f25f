package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/docstruct/internal/cleaner"
	"github.com/dgallion1/docstruct/internal/pagesource"
	"github.com/dgallion1/docstruct/internal/structure"
)

// ErrEmptyDocument means the source had no extractable text at all.
var ErrEmptyDocument = errors.New("document contains no extractable text")

// Config holds the engine tunables shared by detection and cleaning.
type Config struct {
	MajorFontSize      float64
	SubFontSize        float64
	MinHeadingChars    int
	MaxPageAppearances int // 0 = floor(total_pages / 2)
}

// DefaultConfig mirrors the application defaults.
func DefaultConfig() Config {
	return Config{
		MajorFontSize:   26,
		SubFontSize:     18,
		MinHeadingChars: 3,
	}
}

// Assembler runs the full extraction pipeline: structure detection,
// boundary resolution, cleaning, and artifact assembly. The artifact is
// only produced after every phase succeeds; callers persist it through
// the Cache.
type Assembler struct {
	cfg Config
	log *slog.Logger
	now func() time.Time
}

func NewAssembler(cfg Config, log *slog.Logger) *Assembler {
	return &Assembler{cfg: cfg, log: log, now: time.Now}
}

// Assemble produces the versioned extraction document for a loaded
// source. Documents with no text on any page fail with
// ErrEmptyDocument before anything downstream runs.
func (a *Assembler) Assemble(ctx context.Context, src *pagesource.Document) (*Document, error) {
	if src.TotalPages == 0 || allPagesEmpty(src.Pages) {
		return nil, fmt.Errorf("%s: %w", src.Filename, ErrEmptyDocument)
	}

	detectCfg := structure.Config{
		MajorFontSize:      a.cfg.MajorFontSize,
		SubFontSize:        a.cfg.SubFontSize,
		MinHeadingChars:    a.cfg.MinHeadingChars,
		MaxPageAppearances: a.cfg.MaxPageAppearances,
	}
	candidates, strategy, err := structure.Detect(ctx, src, detectCfg, a.log)
	if err != nil {
		return nil, fmt.Errorf("detect sections: %w", err)
	}
	for i := range candidates {
		candidates[i].Title = structure.SanitizeTitle(candidates[i].Title)
	}

	sections := structure.ComputeEndPages(candidates, src.TotalPages)

	threshold := detectCfg.EffectiveMaxAppearances(src.TotalPages)
	cleaned, err := cleaner.Clean(ctx, src.Pages, threshold, a.log)
	if err != nil {
		return nil, fmt.Errorf("clean pages: %w", err)
	}

	doc := &Document{
		Metadata: Metadata{
			Filename:           src.Filename,
			TotalPages:         src.TotalPages,
			ExtractedAt:        a.now().UTC().Format(time.RFC3339),
			ExtractionStrategy: string(strategy),
			Version:            SchemaVersion,
		},
		Sections: sections,
		Pages:    make([]Page, 0, len(src.Pages)),
	}
	for i, page := range src.Pages {
		doc.Pages = append(doc.Pages, Page{PageNumber: page.PageNumber, Text: cleaned[i]})
	}

	a.log.Info("extraction complete",
		"filename", src.Filename,
		"pages", src.TotalPages,
		"sections", len(sections),
		"strategy", strategy,
	)
	return doc, nil
}

func allPagesEmpty(pages []pagesource.PageRecord) bool {
	for _, p := range pages {
		if strings.TrimSpace(p.Text) != "" {
			return false
		}
	}
	return true
}

package structure

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dgallion1/docstruct/internal/pagesource"
)

// Labels that identify a contents page, checked case-insensitively
// against the leading lines of every page.
var contentsKeywords = []string{"table of contents", "contents", "table des matières"}

// contentsProbeLines bounds the scan to the top of the page so a footer
// occurrence of a keyword cannot produce a false match.
const contentsProbeLines = 15

// indentThresholdPt is the x-indentation (points) beyond which a
// contents entry is demoted one level.
const indentThresholdPt = 10

var (
	// "title … dot/dash leader … page number"
	tocLineRe = regexp.MustCompile(`^(.+?)\s*(?:[.\-–—]\s*)*[.\-–—]+\s*(\d+)\s*$`)
	// "page number  title" on one line
	tocPageFirstRe = regexp.MustCompile(`^\s*(\d+)\s+(.+?)\s*$`)
	// a line holding only a page number
	numberOnlyRe = regexp.MustCompile(`^\s*(\d+)\s*$`)
)

// findContentsPage returns the index of the first page whose top lines
// contain a contents keyword, or -1.
func findContentsPage(pages []pagesource.PageRecord) int {
	for idx, page := range pages {
		lines := strings.Split(strings.TrimSpace(page.Text), "\n")
		if len(lines) > contentsProbeLines {
			lines = lines[:contentsProbeLines]
		}
		for _, line := range lines {
			lower := strings.ToLower(line)
			for _, kw := range contentsKeywords {
				if strings.Contains(lower, kw) {
					return idx
				}
			}
		}
	}
	return -1
}

// tocEntry is an intermediate parse result before level assignment.
type tocEntry struct {
	title string
	page  int
	x     float64
}

// parseContentsPage extracts candidates from a page identified as a
// contents page. The page is split into columns by clustering line
// x-origins, each column is parsed top-to-bottom against the known
// line patterns, and levels are assigned in a second pass from
// x-indentation relative to the leftmost matched entry per column, so
// sidebar blocks with no valid entries cannot skew the baseline.
func parseContentsPage(page *pagesource.PageRecord, cfg Config) []Candidate {
	lines := page.Lines()
	if len(lines) == 0 {
		return nil
	}

	columns := splitColumns(lines)

	var cands []Candidate
	for _, col := range columns {
		entries := parseColumn(col, cfg)
		if len(entries) == 0 {
			continue
		}
		minX := math.Inf(1)
		for _, e := range entries {
			minX = math.Min(minX, e.x)
		}
		for _, e := range entries {
			indent := e.x - minX
			level := 1
			if indent > indentThresholdPt {
				level = 2
			}
			if indent > indentThresholdPt*2 {
				level = 3
			}
			cands = append(cands, Candidate{Title: e.title, StartPage: e.page, Level: level})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].StartPage < cands[j].StartPage })
	return cands
}

// splitColumns clusters lines by left-edge x-origin: a gap wider than
// the mean line width starts a new column. Columns are returned
// left-to-right, each sorted top-to-bottom.
func splitColumns(lines []pagesource.Line) [][]pagesource.Line {
	var totalWidth float64
	xSet := map[float64]bool{}
	for _, ln := range lines {
		totalWidth += ln.BBox.X1 - ln.BBox.X0
		xSet[math.Round(ln.X*10)/10] = true
	}
	avgWidth := totalWidth / float64(len(lines))
	if avgWidth <= 0 {
		avgWidth = 1
	}

	xs := make([]float64, 0, len(xSet))
	for x := range xSet {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	type span struct{ start, end float64 }
	var ranges []span
	start, end := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x-end > avgWidth {
			ranges = append(ranges, span{start, end})
			start = x
		}
		end = x
	}
	ranges = append(ranges, span{start, end})

	columns := make([][]pagesource.Line, len(ranges))
	for _, ln := range lines {
		x := math.Round(ln.X*10) / 10
		for i, rg := range ranges {
			if x >= rg.start-avgWidth/4 && x <= rg.end+avgWidth/4 {
				columns[i] = append(columns[i], ln)
				break
			}
		}
	}
	for _, col := range columns {
		sort.SliceStable(col, func(i, j int) bool { return col[i].BBox.Y0 < col[j].BBox.Y0 })
	}
	return columns
}

// parseColumn matches each line against the three contents-line
// patterns. Lines that match no pattern are held as a pending prefix
// and prepended to the next matching line's title, which handles
// entries whose title wraps before the dot leader.
func parseColumn(col []pagesource.Line, cfg Config) []tocEntry {
	var entries []tocEntry
	pendingPrefix := ""
	pendingX := 0.0

	accept := func(title string, page int, x float64) {
		title = strings.TrimSpace(title)
		if isContentsKeyword(title) || countAlpha(title) < cfg.MinHeadingChars {
			return
		}
		entries = append(entries, tocEntry{title: title, page: page, x: x})
	}

	for i := 0; i < len(col); i++ {
		text := strings.TrimSpace(col[i].Text)
		x := col[i].X
		if text == "" {
			continue
		}

		// "title … leader … page"
		if m := tocLineRe.FindStringSubmatch(text); m != nil {
			title := strings.TrimSpace(m[1])
			page, _ := strconv.Atoi(m[2])
			// Only prepend the prefix when the base title is itself a
			// plausible heading fragment; an all-digit base like "2024"
			// must not be inflated by a preceding line.
			if pendingPrefix != "" && countAlpha(title) >= cfg.MinHeadingChars {
				title = pendingPrefix + " " + title
				x = pendingX
			}
			pendingPrefix = ""
			accept(title, page, x)
			continue
		}

		// bare page number, title on the next line
		if m := numberOnlyRe.FindStringSubmatch(text); m != nil && i+1 < len(col) {
			next := strings.TrimSpace(col[i+1].Text)
			if !numberOnlyRe.MatchString(next) && !isContentsKeyword(next) && countAlpha(next) >= cfg.MinHeadingChars {
				page, _ := strconv.Atoi(m[1])
				title := next
				if pendingPrefix != "" {
					title = pendingPrefix + " " + title
					x = pendingX
					pendingPrefix = ""
				}
				accept(title, page, x)
				i++
				continue
			}
		}

		// "page  title"
		if m := tocPageFirstRe.FindStringSubmatch(text); m != nil {
			page, _ := strconv.Atoi(m[1])
			title := strings.TrimSpace(m[2])
			if pendingPrefix != "" && countAlpha(title) >= cfg.MinHeadingChars {
				title = pendingPrefix + " " + title
				x = pendingX
			}
			pendingPrefix = ""
			accept(title, page, x)
			continue
		}

		// No pattern matched: accumulate as a title prefix if it looks
		// like heading text, otherwise reset. The page header ("Contents"
		// etc) is never a prefix.
		if isContentsKeyword(text) {
			pendingPrefix = ""
			continue
		}
		if countAlpha(text) >= cfg.MinHeadingChars {
			if pendingPrefix == "" {
				pendingX = x
				pendingPrefix = text
			} else {
				pendingPrefix += " " + text
			}
		} else {
			pendingPrefix = ""
		}
	}
	return entries
}

func isContentsKeyword(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, kw := range contentsKeywords {
		if lower == kw {
			return true
		}
	}
	return false
}

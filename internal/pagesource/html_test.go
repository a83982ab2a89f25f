package pagesource

import (
	"strings"
	"testing"
)

const sampleHTML = `<!DOCTYPE html>
<html><head><title>Report</title><style>body{color:red}</style></head>
<body>
<nav><a href="/">Home</a><a href="/about">About</a></nav>
<h1>Executive Summary</h1>
<p>We did well this year.</p>
<h2>Highlights</h2>
<ul><li>Revenue up</li><li>Costs down</li></ul>
<h1>Detailed Review</h1>
<p>Line items follow.</p>
<footer>Copyright Acme</footer>
</body></html>`

func TestHTMLSource_OutlineAndPages(t *testing.T) {
	src := &HTMLSource{}
	doc, err := src.Load(strings.NewReader(sampleHTML), "report.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []OutlineEntry{
		{Level: 1, Title: "Executive Summary", Page: 1},
		{Level: 2, Title: "Highlights", Page: 1},
		{Level: 1, Title: "Detailed Review", Page: 2},
	}
	if len(doc.Outline) != len(want) {
		t.Fatalf("expected %d outline entries, got %d: %+v", len(want), len(doc.Outline), doc.Outline)
	}
	for i, w := range want {
		if doc.Outline[i] != w {
			t.Errorf("entry %d: expected %+v, got %+v", i, w, doc.Outline[i])
		}
	}
	if doc.TotalPages != 2 {
		t.Errorf("expected 2 pages, got %d", doc.TotalPages)
	}
}

func TestHTMLSource_SkipsChromeElements(t *testing.T) {
	src := &HTMLSource{}
	doc, err := src.Load(strings.NewReader(sampleHTML), "report.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all := ""
	for _, p := range doc.Pages {
		all += p.Text + "\n"
	}
	for _, banned := range []string{"Home", "Copyright Acme", "color:red"} {
		if strings.Contains(all, banned) {
			t.Errorf("chrome content %q leaked into page text", banned)
		}
	}
	if !strings.Contains(all, "Revenue up") {
		t.Errorf("list items missing from page text: %q", all)
	}
}

package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/docstruct/internal/extraction"
)

func testWorker(t *testing.T) (*Worker, *extraction.Cache) {
	t.Helper()
	cache, err := extraction.NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	asm := extraction.NewAssembler(extraction.DefaultConfig(), log)
	return NewWorker(asm, cache, extraction.NewStats(time.Hour), log), cache
}

func TestWorker_ProcessMarkdown(t *testing.T) {
	w, cache := testWorker(t)

	job := &Job{
		ID:        "job-1",
		DocID:     "doc-1",
		Status:    StatusQueued,
		Filename:  "report.md",
		CreatedAt: time.Now(),
	}
	job.SetFileData([]byte("# Summary\n\nWe did fine.\n\n# Details\n\nLots of them.\n"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (errors: %v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.TotalPages != 2 || snap.Progress.SectionsFound != 2 {
		t.Errorf("unexpected progress: %+v", snap.Progress)
	}
	if snap.Progress.Strategy != "toc" {
		t.Errorf("markdown headings should resolve via the outline tier, got %q", snap.Progress.Strategy)
	}
	if !cache.Exists("doc-1") {
		t.Error("completed job must leave a stored artifact")
	}

	doc, err := cache.Load("doc-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Sections) != 2 || doc.Sections[0].Title != "Summary" {
		t.Errorf("unexpected stored sections: %+v", doc.Sections)
	}
}

func TestWorker_ProcessUnsupportedFormat(t *testing.T) {
	w, cache := testWorker(t)

	job := &Job{ID: "job-2", DocID: "doc-2", Status: StatusQueued, Filename: "data.xlsx"}
	job.SetFileData([]byte("whatever"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", snap.Status)
	}
	if len(snap.Progress.Errors) == 0 {
		t.Error("failed job must carry an error")
	}
	if cache.Exists("doc-2") {
		t.Error("failed job must not leave a partial artifact")
	}
}

func TestWorker_ProcessEmptyDocument(t *testing.T) {
	w, cache := testWorker(t)

	job := &Job{ID: "job-3", DocID: "doc-3", Status: StatusQueued, Filename: "blank.txt"}
	job.SetFileData([]byte("   \n  \n"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", snap.Status)
	}
	if cache.Exists("doc-3") {
		t.Error("empty document must not be stored")
	}
}

func TestWorker_SetsContentHash(t *testing.T) {
	w, _ := testWorker(t)

	data := []byte("# T\n\nbody\n")
	job := &Job{ID: "job-4", DocID: "doc-4", Status: StatusQueued, Filename: "t.md"}
	job.SetFileData(data)

	w.Process(context.Background(), job)

	if job.ContentHash != ContentHashHex(data) {
		t.Errorf("expected content hash %s, got %s", ContentHashHex(data), job.ContentHash)
	}
}

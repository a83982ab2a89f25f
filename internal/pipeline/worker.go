package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docstruct/internal/extraction"
	"github.com/dgallion1/docstruct/internal/pagesource"
)

// Worker processes a single extraction job.
type Worker struct {
	asm   *extraction.Assembler
	cache *extraction.Cache
	stats *extraction.Stats
	log   *slog.Logger
}

func NewWorker(asm *extraction.Assembler, cache *extraction.Cache, stats *extraction.Stats, log *slog.Logger) *Worker {
	return &Worker{
		asm:   asm,
		cache: cache,
		stats: stats,
		log:   log,
	}
}

// Process runs the full extraction pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	// Phase 1: Read the source into pages.
	job.SetStatus(StatusReading, "reading")
	src, err := pagesource.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "reading")
		return
	}

	data := job.FileData()
	job.SetContentHash(ContentHashHex(data))

	doc, err := src.Load(bytes.NewReader(data), job.Filename)
	if err != nil {
		log.Error("read failed", "error", err)
		job.AddError(fmt.Sprintf("read: %s", err))
		job.SetStatus(StatusFailed, "reading")
		return
	}

	// Phase 2: Detect structure and clean pages.
	job.SetStatus(StatusExtracting, "extracting")
	start := time.Now()
	artifact, err := w.asm.Assemble(ctx, doc)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	w.stats.Record(artifact.Metadata.ExtractionStrategy, time.Since(start).Milliseconds())

	// Phase 3: Persist the artifact. Nothing is written before this
	// point, so a failed job never leaves a partial artifact.
	job.SetStatus(StatusStoring, "storing")
	if err := w.cache.Save(job.DocID, artifact); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetResult(artifact.Metadata.TotalPages, len(artifact.Sections), artifact.Metadata.ExtractionStrategy)
	job.SetStatus(StatusCompleted, "done")
	log.Info("extraction job completed",
		"pages", artifact.Metadata.TotalPages,
		"sections", len(artifact.Sections),
		"strategy", artifact.Metadata.ExtractionStrategy,
	)
}

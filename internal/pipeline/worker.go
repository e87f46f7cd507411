package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/awerner3/mathscribe/internal/config"
	"github.com/awerner3/mathscribe/internal/outline"
	"github.com/awerner3/mathscribe/internal/raster"
	"github.com/awerner3/mathscribe/internal/render"
	"github.com/awerner3/mathscribe/internal/store"
	"github.com/awerner3/mathscribe/internal/transcribe"
)

// Worker runs the full transcription pipeline for a single job:
// rasterize, transcribe each page, assemble the outline, render LaTeX,
// compile the PDF.
type Worker struct {
	vlm       *transcribe.Client
	artifacts *store.Store
	log       *slog.Logger
	cfg       config.Config
	compiler  *render.Compiler
}

func NewWorker(vlm *transcribe.Client, artifacts *store.Store, log *slog.Logger, cfg config.Config) *Worker {
	return &Worker{
		vlm:       vlm,
		artifacts: artifacts,
		log:       log,
		cfg:       cfg,
		compiler:  render.NewCompiler(cfg.TectonicPath, cfg.CompileTimeout),
	}
}

// Process runs a job through every phase. Page-level transcription
// failures degrade to placeholders; only phase-level failures abort.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	defer job.ReleasePDFData()

	// Phase 1: rasterize pages.
	job.SetStatus(StatusRasterizing, "rasterizing pages")
	data := job.PDFData()

	if _, err := raster.PageCount(data); err != nil {
		log.Error("invalid pdf", "error", err)
		job.AddError(fmt.Sprintf("invalid pdf: %s", err))
		job.SetStatus(StatusFailed, "rasterizing")
		return
	}

	pages, err := raster.Rasterize(ctx, data, raster.Options{
		DPI:          w.cfg.RasterDPI,
		PdftoppmPath: w.cfg.PdftoppmPath,
	})
	if err != nil {
		log.Error("rasterization failed", "error", err)
		job.AddError(fmt.Sprintf("rasterize: %s", err))
		job.SetStatus(StatusFailed, "rasterizing")
		return
	}
	job.SetTotalPages(len(pages))
	log.Info("rasterized pages", "pages", len(pages))

	// Phase 2: transcribe pages with bounded concurrency, reassembling
	// the transcript in page order regardless of completion order.
	job.SetStatus(StatusTranscribing, "transcribing pages")
	texts := make([]string, len(pages))
	type pageResult struct {
		idx int
		err error
	}
	results := make(chan pageResult, len(pages))
	sem := make(chan struct{}, w.cfg.MaxConcurrentPages)

	for i, img := range pages {
		sem <- struct{}{}
		go func(i int, img []byte) {
			defer func() { <-sem }()
			var text string
			var lastErr error
			for attempt := 0; attempt < MaxRetries; attempt++ {
				text, lastErr = w.vlm.TranscribePage(ctx, img)
				if lastErr == nil || !IsRetryable(lastErr) {
					break
				}
				log.Warn("retryable transcription error", "page", i+1, "attempt", attempt, "error", lastErr)
				select {
				case <-time.After(Backoff(attempt)):
				case <-ctx.Done():
					results <- pageResult{idx: i, err: ctx.Err()}
					return
				}
			}
			if lastErr == nil {
				texts[i] = text // each goroutine writes only its own slot
			}
			results <- pageResult{idx: i, err: lastErr}
		}(i, img)
	}

	hadErrors := false
	for range pages {
		r := <-results
		job.IncrPagesTranscribed()
		if r.err != nil {
			log.Error("transcription failed", "page", r.idx+1, "error", r.err)
			job.AddError(fmt.Sprintf("page %d: %s", r.idx+1, r.err))
			texts[r.idx] = fmt.Sprintf("[transcription failed for page %d]", r.idx+1)
			hadErrors = true
		}
	}

	transcript := strings.Join(texts, "\n\n")
	if err := w.artifacts.SaveTranscript(job.ID, transcript); err != nil {
		log.Error("transcript write failed", "error", err)
		job.AddError(fmt.Sprintf("store transcript: %s", err))
	}
	log.Info("transcription complete", "errors", hadErrors)

	// Phase 3: assemble the outline. Assembly never fails; an empty
	// tree just means nothing in the transcript looked like a problem.
	job.SetStatus(StatusAssembling, "assembling outline")
	doc := outline.Assemble(transcript)
	job.SetProblems(len(doc.Problems))
	if len(doc.Problems) == 0 {
		log.Warn("no problems recognized in transcript")
		job.AddError("no problems recognized in transcript")
		hadErrors = true
	}
	if err := w.artifacts.SaveOutline(job.ID, doc); err != nil {
		log.Error("outline write failed", "error", err)
		job.AddError(fmt.Sprintf("store outline: %s", err))
	}

	// Phase 4: render LaTeX from the normalized tree.
	job.SetStatus(StatusRendering, "rendering latex")
	title := job.Title
	if title == "" {
		title = w.cfg.DocTitle
	}
	author := job.Author
	if author == "" {
		author = w.cfg.DocAuthor
	}
	tex, err := render.RenderTeX(render.NormalizeDocument(doc), render.Options{
		Title:  title,
		Author: author,
	})
	if err != nil {
		log.Error("render failed", "error", err)
		job.AddError(fmt.Sprintf("render: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}
	if err := w.artifacts.SaveTeX(job.ID, tex); err != nil {
		log.Error("tex write failed", "error", err)
		job.AddError(fmt.Sprintf("store tex: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	// Phase 5: compile. The .tex artifact survives a failed compile, so
	// a compiler problem degrades the job to partial rather than failed.
	job.SetStatus(StatusCompiling, "compiling pdf")
	pdfPath, err := w.compiler.Compile(ctx, w.artifacts.TeXPath(job.ID))
	if err != nil {
		log.Error("compile failed", "error", err)
		job.AddError(fmt.Sprintf("compile: %s", err))
		job.SetStatus(StatusPartial, "done")
		return
	}
	log.Info("compiled document", "pdf", pdfPath)

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

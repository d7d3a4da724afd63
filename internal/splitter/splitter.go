// Package splitter materializes chapter PDFs from a loaded document and a
// list of chapter definitions.
package splitter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/mjhall/chapterize/internal/chapters"
	"github.com/mjhall/chapterize/internal/document"
)

// Options control how a split runs.
type Options struct {
	// Workers bounds concurrent chapter extraction. Zero or negative means
	// one worker per CPU.
	Workers int
	// Logger receives per-chapter progress. Nil falls back to slog.Default.
	Logger *slog.Logger
}

// Split materializes one PDF per valid chapter definition. Every definition
// is validated independently: invalid entries are skipped and reported as
// diagnostics, valid entries are extracted, and one failed extraction never
// aborts the rest. Outputs preserve definition order. The returned error is
// non-nil only when ctx is canceled; a batch where every definition was
// skipped returns zero outputs and the diagnostics explaining why.
func Split(ctx context.Context, doc *document.Document, defs []chapters.ChapterDefinition, opts Options) ([]chapters.Output, []chapters.Diagnostic, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	totalPages := doc.PageCount()

	type task struct {
		idx  int // position in defs, used for the output name prefix
		name string
		def  chapters.ChapterDefinition
	}

	// Validate up front so diagnostics come out in definition order.
	diagSlots := make([]*chapters.Diagnostic, len(defs))
	var tasks []task
	for i, def := range defs {
		name := def.Name
		if name == "" {
			name = chapters.FallbackName(i)
		}
		if err := chapters.ValidateDefinition(def, totalPages); err != nil {
			log.Warn("skipping chapter", "chapter", name, "reason", err.Error())
			diagSlots[i] = &chapters.Diagnostic{
				Stage:  chapters.StageSplit,
				Item:   name,
				Reason: err.Error(),
			}
			continue
		}
		tasks = append(tasks, task{idx: i, name: name, def: def})
	}

	outputs := make([]*chapters.Output, len(tasks))
	if len(tasks) > 0 {
		workers := opts.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		if workers > len(tasks) {
			workers = len(tasks)
		}

		sem := make(chan struct{}, workers)
		var wg sync.WaitGroup
		for ti, tk := range tasks {
			if ctx.Err() != nil {
				break
			}
			sem <- struct{}{} // acquire
			wg.Add(1)
			go func(ti int, tk task) {
				defer wg.Done()
				defer func() { <-sem }() // release

				out, err := extractChapter(doc, tk.idx, tk.name, tk.def)
				if err != nil {
					log.Warn("failed to create chapter PDF", "chapter", tk.name, "error", err)
					diagSlots[tk.idx] = &chapters.Diagnostic{
						Stage:  chapters.StageSplit,
						Item:   tk.name,
						Reason: fmt.Sprintf("failed to create PDF: %v", err),
					}
					return
				}
				log.Debug("created chapter PDF", "chapter", out.Name, "pages", out.Pages)
				outputs[ti] = out
			}(ti, tk)
		}
		wg.Wait()
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var results []chapters.Output
	for _, out := range outputs {
		if out != nil {
			results = append(results, *out)
		}
	}
	var diags []chapters.Diagnostic
	for _, d := range diagSlots {
		if d != nil {
			diags = append(diags, *d)
		}
	}
	return results, diags, nil
}

// extractChapter copies the definition's page range into a fresh
// single-chapter PDF. Each call opens its own context over the shared source
// bytes, so extractions can run concurrently.
func extractChapter(doc *document.Document, idx int, name string, def chapters.ChapterDefinition) (*chapters.Output, error) {
	pdfCtx, err := doc.NewContext()
	if err != nil {
		return nil, err
	}

	pages := make([]int, 0, def.EndPage-def.StartPage+1)
	for p := def.StartPage; p <= def.EndPage; p++ {
		pages = append(pages, p)
	}

	chapterCtx, err := pdfcpu.ExtractPages(pdfCtx, pages, false)
	if err != nil {
		return nil, fmt.Errorf("failed to extract pages %d-%d: %w", def.StartPage, def.EndPage, err)
	}

	var buf bytes.Buffer
	if err := api.WriteContext(chapterCtx, &buf); err != nil {
		return nil, fmt.Errorf("failed to write chapter PDF: %w", err)
	}

	return &chapters.Output{
		Index: idx,
		Name:  chapters.OutputName(idx, name),
		Pages: len(pages),
		PDF:   buf.Bytes(),
	}, nil
}

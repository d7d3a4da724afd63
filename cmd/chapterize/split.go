package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mjhall/chapterize/internal/archive"
	"github.com/mjhall/chapterize/internal/chapters"
	"github.com/mjhall/chapterize/internal/config"
	"github.com/mjhall/chapterize/internal/document"
	"github.com/mjhall/chapterize/internal/outline"
	"github.com/mjhall/chapterize/internal/splitter"
)

var (
	splitChaptersFile string
	splitPolicy       string
	splitWorkers      int
	splitZipPath      string
	splitDirPath      string
)

var splitCmd = &cobra.Command{
	Use:   "split <file.pdf>",
	Short: "Split a PDF into chapter files without a server",
	Long: `Split a PDF into one file per chapter.

Chapter ranges come from the document's outline. Bookmarks that cannot
be resolved are skipped with a reason; a document with no usable outline
becomes a single chapter covering every page. Pass --chapters to use an
explicit table instead of the inferred one.

The chapter files are packed into a zip archive, written to
~/.chapterize/exports/ unless --zip names another path. The command
fails if no chapter could be produced.

Examples:
  chapterize split book.pdf
  chapterize split book.pdf --policy full
  chapterize split book.pdf --chapters rows.json --dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		doc, err := document.Load(filepath.Base(args[0]), data)
		if err != nil {
			return fmt.Errorf("failed to load PDF: %w", err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		policy := cfg.Split.OutlinePolicy
		if cmd.Flags().Changed("policy") {
			policy = splitPolicy
		}
		workers := cfg.Split.Workers
		if cmd.Flags().Changed("workers") {
			workers = splitWorkers
		}

		var defs []chapters.ChapterDefinition
		var diags []chapters.Diagnostic
		var source string
		if splitChaptersFile != "" {
			defs, err = readChapterRows(splitChaptersFile)
			if err != nil {
				return err
			}
			source = "explicit table (" + splitChaptersFile + ")"
		} else {
			var candidates []chapters.ChapterCandidate
			candidates, diags = outline.Walk(doc, outline.ParsePolicy(policy))
			defs = chapters.InferRanges(candidates, doc.PageCount())
			source = "outline"
			if len(candidates) == 0 {
				source = "no outline, whole document"
			}
		}

		renderDocumentHeader(cmd.OutOrStdout(), doc.Filename(), doc.PageCount(), source)
		renderChapterTable(cmd.OutOrStdout(), defs)

		// Diagnostics are rendered below, so keep the splitter's own log quiet.
		quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
		outputs, splitDiags, err := splitter.Split(cmd.Context(), doc, defs, splitter.Options{
			Workers: workers,
			Logger:  quiet,
		})
		if err != nil {
			return err
		}
		diags = append(diags, splitDiags...)
		renderDiagnostics(cmd.OutOrStdout(), diags)

		if len(outputs) == 0 {
			return fmt.Errorf("no chapters could be produced from %s", doc.Filename())
		}

		if splitDirPath != "" {
			if err := writeChapterFiles(splitDirPath, outputs); err != nil {
				return err
			}
		}

		zipPath := splitZipPath
		if zipPath == "" {
			h, err := getHome()
			if err != nil {
				return err
			}
			zipPath = filepath.Join(h.ExportsDir(), archive.SuggestedName(doc.Filename()))
		}

		f, err := os.Create(zipPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", zipPath, err)
		}
		if err := archive.Build(f, outputs); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", zipPath, err)
		}

		renderSplitSummary(cmd.OutOrStdout(), outputs, zipPath)
		return nil
	},
}

// loadConfig builds the effective config, tolerating a missing config file.
func loadConfig() (*config.Config, error) {
	mgr, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return mgr.Get(), nil
}

// readChapterRows loads an explicit chapter table from a JSON file using the
// same shape the HTTP API accepts.
func readChapterRows(path string) ([]chapters.ChapterDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var req struct {
		Chapters []chapters.ChapterDefinition `json:"chapters"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return req.Chapters, nil
}

// writeChapterFiles writes each chapter PDF into dir.
func writeChapterFiles(dir string, outputs []chapters.Output) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	for _, out := range outputs {
		path := filepath.Join(dir, out.Name)
		if err := os.WriteFile(path, out.PDF, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

func init() {
	splitCmd.Flags().StringVar(&splitChaptersFile, "chapters", "", "JSON file with chapter rows (skips outline inference)")
	splitCmd.Flags().StringVar(&splitPolicy, "policy", "first-child", "outline traversal policy: first-child or full")
	splitCmd.Flags().IntVar(&splitWorkers, "workers", 0, "parallel extraction workers (0 = one per CPU)")
	splitCmd.Flags().StringVar(&splitZipPath, "zip", "", "archive output path (default: ~/.chapterize/exports/<name>_chapters.zip)")
	splitCmd.Flags().StringVar(&splitDirPath, "dir", "", "also write individual chapter PDFs to this directory")

	rootCmd.AddCommand(splitCmd)
}

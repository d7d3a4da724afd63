package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mjhall/chapterize/internal/chapters"
	"github.com/mjhall/chapterize/internal/document"
	"github.com/mjhall/chapterize/internal/outline"
)

var inspectPolicy string

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Show the chapter table a split would use",
	Long: `Show the chapter table inferred from a PDF's outline without
writing anything.

This is a dry run of the split: it prints the chapters, their page
ranges, and any bookmarks that were skipped with the reason.

Examples:
  chapterize inspect book.pdf
  chapterize inspect book.pdf --policy full`,
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
			policy = inspectPolicy
		}

		candidates, diags := outline.Walk(doc, outline.ParsePolicy(policy))
		defs := chapters.InferRanges(candidates, doc.PageCount())

		source := "outline"
		if len(candidates) == 0 {
			source = "no outline, whole document"
		}

		out := cmd.OutOrStdout()
		renderDocumentHeader(out, doc.Filename(), doc.PageCount(), source)
		renderChapterTable(out, defs)
		renderDiagnostics(out, diags)
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectPolicy, "policy", "first-child", "outline traversal policy: first-child or full")

	rootCmd.AddCommand(inspectCmd)
}

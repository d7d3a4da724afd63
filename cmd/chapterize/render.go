package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mjhall/chapterize/internal/chapters"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for skipped entries
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	// boxStyle for the document summary box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// renderDocumentHeader prints a summary box for a loaded document.
func renderDocumentHeader(w io.Writer, filename string, pages int, source string) {
	content := fmt.Sprintf("%s %s\n%s %d\n%s %s",
		dimStyle.Render("File:"), titleStyle.Render(filename),
		dimStyle.Render("Pages:"), pages,
		dimStyle.Render("Chapters from:"), source,
	)

	fmt.Fprintln(w, boxStyle.Render(content))
}

// renderChapterTable prints the chapter table with the output name each row
// would produce.
func renderChapterTable(w io.Writer, defs []chapters.ChapterDefinition) {
	if len(defs) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no chapters"))
		return
	}

	nameWidth := len("Chapter")
	for _, def := range defs {
		if len(def.Name) > nameWidth {
			nameWidth = len(def.Name)
		}
	}

	fmt.Fprintf(w, "%s  %-*s  %s\n",
		dimStyle.Render("##"), nameWidth, dimStyle.Render("Chapter"), dimStyle.Render("Pages"))
	for i, def := range defs {
		name := def.Name
		if name == "" {
			name = chapters.FallbackName(i)
		}
		fmt.Fprintf(w, "%02d  %-*s  %d-%d\n", i+1, nameWidth, name, def.StartPage, def.EndPage)
	}
}

// renderDiagnostics prints skipped bookmarks and chapter rows with reasons.
func renderDiagnostics(w io.Writer, diags []chapters.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s %s: %s\n",
			warnStyle.Render("skipped ["+string(d.Stage)+"]"), d.Item, d.Reason)
	}
}

// renderSplitSummary prints the produced files and the archive location.
func renderSplitSummary(w io.Writer, outputs []chapters.Output, archivePath string) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d chapter files\n", successStyle.Render("Wrote"), len(outputs))
	for _, out := range outputs {
		fmt.Fprintf(&b, "  %s (%d pages)\n", out.Name, out.Pages)
	}
	fmt.Fprintf(&b, "%s %s", dimStyle.Render("Archive:"), archivePath)
	fmt.Fprintln(w, boxStyle.Render(b.String()))
}

// Package chapters defines the chapter data model shared by the outline
// walker, the splitter, and the HTTP endpoints. It has no dependencies on
// other chapterize packages so any layer can import it.
package chapters

import "fmt"

// ChapterCandidate is a chapter boundary detected in the document outline.
// Page numbers are 1-based.
type ChapterCandidate struct {
	Title     string `json:"title"`
	StartPage int    `json:"start_page"`
}

// ChapterDefinition is one row of the editable chapter table: a name and an
// inclusive 1-based page range. Definitions are user input and may be invalid
// or overlapping; the splitter validates each one independently.
type ChapterDefinition struct {
	Name      string `json:"name"`
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
}

// Output is a materialized chapter PDF produced by a split. Index is the
// 0-based position of the source definition; Name already carries the
// index prefix.
type Output struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Pages int    `json:"pages"`
	PDF   []byte `json:"-"`
}

// Stage identifies the processing phase that produced a diagnostic.
type Stage string

const (
	// StageOutline covers bookmark extraction from the document outline.
	StageOutline Stage = "outline"
	// StageSplit covers per-chapter validation and page extraction.
	StageSplit Stage = "split"
)

// Diagnostic records a single item skipped during processing. Diagnostics are
// reported alongside partial results; they never abort a batch.
type Diagnostic struct {
	Stage  Stage  `json:"stage"`
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Stage, d.Item, d.Reason)
}

// FallbackName returns the chapter name used when a definition at the given
// position has an empty name.
func FallbackName(index int) string {
	return fmt.Sprintf("Chapter_%d", index+1)
}

// OutputName returns the file name for the chapter at position index in the
// split order. The 1-based zero-padded prefix keeps output files sorted in
// chapter order and distinct even when two chapters share a title.
func OutputName(index int, name string) string {
	return fmt.Sprintf("%02d_%s.pdf", index+1, SanitizeTitle(name))
}

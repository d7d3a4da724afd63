package outline

import (
	"fmt"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/mjhall/chapterize/internal/chapters"
	"github.com/mjhall/chapterize/internal/document"
)

// Policy selects how nested outline entries contribute chapter candidates.
type Policy int

const (
	// PolicyFirstChild emits each top-level item plus the first item of its
	// child group. Top-level bookmarks are usually chapters; the first nested
	// entry often marks where the chapter body actually starts.
	PolicyFirstChild Policy = iota
	// PolicyFullDepth emits every item at every depth.
	PolicyFullDepth
)

// ParsePolicy converts a configuration string to a Policy. Unrecognized
// values fall back to PolicyFirstChild.
func ParsePolicy(s string) Policy {
	if s == "full" {
		return PolicyFullDepth
	}
	return PolicyFirstChild
}

// Walk extracts chapter candidates from the document outline. Items that
// cannot be resolved are skipped and reported as diagnostics; the remaining
// candidates are returned sorted ascending by 1-based start page. An empty
// result means the document has no usable bookmarks. Walk does not fail once
// the document has loaded.
func Walk(doc *document.Document, policy Policy) ([]chapters.ChapterCandidate, []chapters.Diagnostic) {
	var diags []chapters.Diagnostic

	nodes, err := Read(doc)
	if err != nil {
		diags = append(diags, chapters.Diagnostic{
			Stage:  chapters.StageOutline,
			Item:   "outline",
			Reason: fmt.Sprintf("error reading outline: %v", err),
		})
		return nil, diags
	}
	if len(nodes) == 0 {
		return nil, nil
	}

	w := &walker{ctx: doc.Context(), pageIndex: doc.PageIndex(), policy: policy}
	candidates := w.walkTop(nodes)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].StartPage < candidates[j].StartPage
	})
	return candidates, w.diags
}

type walker struct {
	ctx       *model.Context
	pageIndex map[int]int
	policy    Policy
	diags     []chapters.Diagnostic
}

// walkTop processes the top level of the outline: leaves directly, groups
// according to the policy.
func (w *walker) walkTop(nodes []Node) []chapters.ChapterCandidate {
	var out []chapters.ChapterCandidate
	for _, n := range nodes {
		switch {
		case n.Leaf != nil:
			if c, ok := w.emit(n.Leaf, false); ok {
				out = append(out, c)
			}
		case len(n.Group) > 0:
			out = append(out, w.walkGroup(n.Group)...)
		}
	}
	return out
}

// walkGroup processes a nested group. Under PolicyFirstChild only the group's
// first item is emitted; under PolicyFullDepth every item is, recursing into
// deeper groups.
func (w *walker) walkGroup(nodes []Node) []chapters.ChapterCandidate {
	if w.policy == PolicyFullDepth {
		var out []chapters.ChapterCandidate
		for _, n := range nodes {
			switch {
			case n.Leaf != nil:
				if c, ok := w.emit(n.Leaf, true); ok {
					out = append(out, c)
				}
			case len(n.Group) > 0:
				out = append(out, w.walkGroup(n.Group)...)
			}
		}
		return out
	}

	first := nodes[0]
	if first.Leaf == nil {
		return nil
	}
	c, ok := w.emit(first.Leaf, true)
	if !ok {
		return nil
	}
	return []chapters.ChapterCandidate{c}
}

// emit resolves a single outline item into a candidate. Page resolution
// failures are recorded as diagnostics and the item is dropped.
func (w *walker) emit(item *Item, nested bool) (chapters.ChapterCandidate, bool) {
	title := resolveTitle(w.ctx, item, nested)

	pageIdx, err := resolvePage(w.ctx, item, w.pageIndex)
	if err != nil {
		w.diags = append(w.diags, chapters.Diagnostic{
			Stage:  chapters.StageOutline,
			Item:   title,
			Reason: err.Error(),
		})
		return chapters.ChapterCandidate{}, false
	}

	if nested {
		title += " (Nested)"
	}
	return chapters.ChapterCandidate{Title: title, StartPage: pageIdx + 1}, true
}

// Package document loads source PDFs and exposes the structure needed by the
// outline walker and the splitter.
package document

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// maxPageTreeDepth bounds page tree recursion against cyclic documents.
const maxPageTreeDepth = 50

// Document is an immutable handle over a loaded PDF. The raw bytes are kept
// alongside the parsed context so page extraction can reopen independent
// contexts for concurrent work.
//
// Load reads without validating: bookmark trees in the wild carry defects
// (dangling title references, missing destinations) that the outline walker
// degrades around per item. Validation would reject those documents outright.
type Document struct {
	filename  string
	data      []byte
	ctx       *model.Context
	pageIndex map[int]int
}

// Load parses a PDF and indexes its page tree. Unreadable and encrypted
// documents fail here; nothing downstream sees a partially loaded document.
func Load(filename string, data []byte) (*Document, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load PDF %q: %w", filename, err)
	}

	d := &Document{filename: filename, data: data, ctx: ctx}
	if err := d.buildPageIndex(); err != nil {
		return nil, fmt.Errorf("failed to read page tree of %q: %w", filename, err)
	}
	if len(d.pageIndex) == 0 {
		return nil, fmt.Errorf("PDF %q has no pages", filename)
	}
	return d, nil
}

// Filename returns the name the document was uploaded or opened as.
func (d *Document) Filename() string { return d.filename }

// Basename returns the file name without its extension. Archive names are
// derived from it.
func (d *Document) Basename() string {
	base := filepath.Base(d.filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int { return len(d.pageIndex) }

// Bytes returns the raw source bytes. Callers must not modify them.
func (d *Document) Bytes() []byte { return d.data }

// Context returns the parsed context for read-only structure access.
func (d *Document) Context() *model.Context { return d.ctx }

// NewContext parses a fresh context from the source bytes. Page extraction
// mutates context state, so concurrent extractions each open their own.
func (d *Document) NewContext() (*model.Context, error) {
	ctx, err := api.ReadContext(bytes.NewReader(d.data), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen PDF %q: %w", d.filename, err)
	}
	return ctx, nil
}

// PageIndex maps page object numbers to 0-based positions in document order.
// Outline destinations reference pages by object number.
func (d *Document) PageIndex() map[int]int { return d.pageIndex }

func (d *Document) buildPageIndex() error {
	rootDict, err := d.ctx.Catalog()
	if err != nil {
		return fmt.Errorf("failed to read document catalog: %w", err)
	}
	ref := rootDict.IndirectRefEntry("Pages")
	if ref == nil {
		return fmt.Errorf("document catalog has no page tree")
	}

	d.pageIndex = make(map[int]int)
	next := 0
	return d.walkPageTree(*ref, &next, 0)
}

func (d *Document) walkPageTree(ref types.IndirectRef, next *int, depth int) error {
	if depth > maxPageTreeDepth {
		return fmt.Errorf("page tree exceeds depth %d", maxPageTreeDepth)
	}

	dict, err := d.ctx.DereferenceDict(ref)
	if err != nil {
		return fmt.Errorf("failed to resolve page tree node %d: %w", ref.ObjectNumber.Value(), err)
	}
	if dict == nil {
		return nil
	}

	if typ := dict.Type(); typ != nil && *typ == "Page" {
		d.pageIndex[ref.ObjectNumber.Value()] = *next
		*next++
		return nil
	}

	kidsObj, found := dict.Find("Kids")
	if !found {
		// No type and no kids: treat the node as a page leaf.
		d.pageIndex[ref.ObjectNumber.Value()] = *next
		*next++
		return nil
	}
	kids, err := d.ctx.DereferenceArray(kidsObj)
	if err != nil {
		return fmt.Errorf("failed to resolve page tree kids of node %d: %w", ref.ObjectNumber.Value(), err)
	}
	for _, kid := range kids {
		kidRef, ok := kid.(types.IndirectRef)
		if !ok {
			continue
		}
		if err := d.walkPageTree(kidRef, next, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Package outline reads the bookmark tree of a PDF and turns it into ordered
// chapter candidates. Bookmark trees in the wild are irregular: titles may be
// indirect references, destinations may be named or missing, and sibling
// chains may be broken. The walker degrades per item instead of failing the
// whole document.
package outline

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/mjhall/chapterize/internal/document"
)

// maxDepth bounds outline recursion against cyclic sibling or child links.
const maxDepth = 50

// Item is a single outline entry with its raw, unresolved dictionary values.
// Resolution happens lazily during the walk so one broken entry cannot take
// down the rest of the tree.
type Item struct {
	ObjNr  int          // object number of the outline item dictionary
	Title  types.Object // raw /Title value, possibly an indirect reference
	Dest   types.Object // raw /Dest value, nil if absent
	Action types.Object // raw /A value, nil if absent
}

// Node is one entry in the lowered outline sequence. Exactly one of Leaf or
// Group is set: an item with children contributes its own Leaf entry followed
// by a Group entry holding the children at the same level.
type Node struct {
	Leaf  *Item
	Group []Node
}

// Read lowers the document outline into a Node sequence. A document without
// an outline yields an empty sequence and no error.
func Read(doc *document.Document) ([]Node, error) {
	ctx := doc.Context()

	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to read document catalog: %w", err)
	}
	obj, found := rootDict.Find("Outlines")
	if !found {
		return nil, nil
	}
	outlines, err := ctx.DereferenceDict(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve outline root: %w", err)
	}
	if outlines == nil {
		return nil, nil
	}
	first := outlines.IndirectRefEntry("First")
	if first == nil {
		return nil, nil
	}

	visited := make(map[int]bool)
	return readChain(ctx, first, visited, 0)
}

// readChain follows a /First and /Next sibling chain, recursing into child
// chains. Already visited object numbers end the chain so cyclic links
// terminate.
func readChain(ctx *model.Context, first *types.IndirectRef, visited map[int]bool, depth int) ([]Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("outline exceeds depth %d", maxDepth)
	}

	var nodes []Node
	for ref := first; ref != nil; {
		objNr := ref.ObjectNumber.Value()
		if visited[objNr] {
			break
		}
		visited[objNr] = true

		d, err := ctx.DereferenceDict(*ref)
		if err != nil || d == nil {
			// A broken sibling link ends this chain but keeps what was
			// already collected.
			break
		}

		item := &Item{ObjNr: objNr}
		if o, ok := d.Find("Title"); ok {
			item.Title = o
		}
		if o, ok := d.Find("Dest"); ok {
			item.Dest = o
		}
		if o, ok := d.Find("A"); ok {
			item.Action = o
		}
		nodes = append(nodes, Node{Leaf: item})

		if kidsFirst := d.IndirectRefEntry("First"); kidsFirst != nil {
			kids, err := readChain(ctx, kidsFirst, visited, depth+1)
			if err != nil {
				return nil, err
			}
			if len(kids) > 0 {
				nodes = append(nodes, Node{Group: kids})
			}
		}

		ref = d.IndirectRefEntry("Next")
	}
	return nodes, nil
}

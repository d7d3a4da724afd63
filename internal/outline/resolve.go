package outline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// resolveTitle produces a display title for an outline item. It never fails:
// indirect references that cannot be resolved and values that are not text
// strings fall back to a placeholder naming the object.
func resolveTitle(ctx *model.Context, item *Item, nested bool) string {
	label := "Unknown Title"
	if nested {
		label = "Unknown Nested Title"
	}

	if ref, ok := item.Title.(types.IndirectRef); ok {
		resolved, err := ctx.Dereference(ref)
		if err != nil || resolved == nil {
			return fmt.Sprintf("%s (Obj %d)", label, ref.ObjectNumber.Value())
		}
		s, err := decodeTextString(resolved)
		if err != nil {
			return fmt.Sprintf("%s (Obj %d)", label, ref.ObjectNumber.Value())
		}
		return strings.TrimSpace(s)
	}

	if item.Title == nil {
		return fmt.Sprintf("%s (Obj %d)", label, item.ObjNr)
	}
	s, err := decodeTextString(item.Title)
	if err != nil {
		return fmt.Sprintf("%s (Type %T)", label, item.Title)
	}
	return strings.TrimSpace(s)
}

// resolvePage resolves an outline item's destination to a 0-based page index.
func resolvePage(ctx *model.Context, item *Item, pageIndex map[int]int) (int, error) {
	destObj := item.Dest
	if destObj == nil {
		// Items without /Dest may carry a GoTo action instead.
		if item.Action == nil {
			return 0, errors.New("bookmark has no destination")
		}
		action, err := ctx.DereferenceDict(item.Action)
		if err != nil || action == nil {
			return 0, errors.New("failed to resolve bookmark action")
		}
		s, found := action.Find("S")
		if !found {
			return 0, errors.New("bookmark action has no type")
		}
		name, ok := s.(types.Name)
		if !ok || name.Value() != "GoTo" {
			return 0, fmt.Errorf("unsupported bookmark action type %v", s)
		}
		destObj, found = action.Find("D")
		if !found {
			return 0, errors.New("bookmark action has no destination")
		}
	}
	return resolveDest(ctx, destObj, pageIndex, 0)
}

// resolveDest resolves a destination object, following named destinations and
// destination dictionaries, down to a page index.
func resolveDest(ctx *model.Context, obj types.Object, pageIndex map[int]int, depth int) (int, error) {
	if depth > 3 {
		return 0, errors.New("destination resolves through too many indirections")
	}

	resolved, err := ctx.Dereference(obj)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve destination: %w", err)
	}
	if resolved == nil {
		return 0, errors.New("destination is missing")
	}

	switch t := resolved.(type) {
	case types.Array:
		return pageFromDestArray(t, pageIndex)
	case types.Dict:
		// Destination dictionaries wrap the target array in /D.
		inner, found := t.Find("D")
		if !found {
			return 0, errors.New("destination dictionary has no target")
		}
		return resolveDest(ctx, inner, pageIndex, depth+1)
	case types.Name:
		return resolveNamedDest(ctx, t.Value(), pageIndex, depth)
	case types.StringLiteral:
		s, err := types.StringLiteralToString(t)
		if err != nil {
			return 0, fmt.Errorf("failed to decode destination name: %w", err)
		}
		return resolveNamedDest(ctx, s, pageIndex, depth)
	case types.HexLiteral:
		s, err := types.HexLiteralToString(t)
		if err != nil {
			return 0, fmt.Errorf("failed to decode destination name: %w", err)
		}
		return resolveNamedDest(ctx, s, pageIndex, depth)
	default:
		return 0, fmt.Errorf("unsupported destination type %T", resolved)
	}
}

// pageFromDestArray maps the first element of an explicit destination array
// to a page index. The element is normally an indirect reference to a page
// object; some producers write a 0-based page number instead.
func pageFromDestArray(arr types.Array, pageIndex map[int]int) (int, error) {
	if len(arr) == 0 {
		return 0, errors.New("empty destination array")
	}
	switch t := arr[0].(type) {
	case types.IndirectRef:
		idx, ok := pageIndex[t.ObjectNumber.Value()]
		if !ok {
			return 0, fmt.Errorf("destination page object %d not in page tree", t.ObjectNumber.Value())
		}
		return idx, nil
	case types.Integer:
		n := t.Value()
		if n < 0 || n >= len(pageIndex) {
			return 0, fmt.Errorf("destination page number %d out of range", n)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported destination page reference %T", arr[0])
	}
}

// resolveNamedDest looks a destination name up in the catalog, first in the
// flat /Dests dictionary, then in the /Names destination tree.
func resolveNamedDest(ctx *model.Context, name string, pageIndex map[int]int, depth int) (int, error) {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return 0, fmt.Errorf("failed to read document catalog: %w", err)
	}

	if obj, found := rootDict.Find("Dests"); found {
		dests, err := ctx.DereferenceDict(obj)
		if err == nil && dests != nil {
			if target, found := dests.Find(name); found {
				return resolveDest(ctx, target, pageIndex, depth+1)
			}
		}
	}

	if obj, found := rootDict.Find("Names"); found {
		names, err := ctx.DereferenceDict(obj)
		if err == nil && names != nil {
			if treeObj, found := names.Find("Dests"); found {
				target, err := lookupNameTree(ctx, treeObj, name, 0)
				if err != nil {
					return 0, err
				}
				if target != nil {
					return resolveDest(ctx, target, pageIndex, depth+1)
				}
			}
		}
	}

	return 0, fmt.Errorf("named destination %q not found", name)
}

// lookupNameTree searches a name tree for key. Returns nil without error when
// the key is absent.
func lookupNameTree(ctx *model.Context, obj types.Object, key string, depth int) (types.Object, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("name tree exceeds depth %d", maxDepth)
	}

	d, err := ctx.DereferenceDict(obj)
	if err != nil || d == nil {
		return nil, errors.New("failed to resolve name tree node")
	}

	if namesObj, found := d.Find("Names"); found {
		arr, err := ctx.DereferenceArray(namesObj)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve name tree entries: %w", err)
		}
		for i := 0; i+1 < len(arr); i += 2 {
			k, err := decodeTextString(arr[i])
			if err != nil {
				continue
			}
			if k == key {
				return arr[i+1], nil
			}
		}
		return nil, nil
	}

	if kidsObj, found := d.Find("Kids"); found {
		arr, err := ctx.DereferenceArray(kidsObj)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve name tree kids: %w", err)
		}
		for _, kid := range arr {
			target, err := lookupNameTree(ctx, kid, key, depth+1)
			if err != nil {
				return nil, err
			}
			if target != nil {
				return target, nil
			}
		}
	}

	return nil, nil
}

// decodeTextString decodes a PDF text string object to a Go string.
func decodeTextString(obj types.Object) (string, error) {
	switch t := obj.(type) {
	case types.StringLiteral:
		return types.StringLiteralToString(t)
	case types.HexLiteral:
		return types.HexLiteralToString(t)
	case types.Name:
		return t.Value(), nil
	default:
		return "", fmt.Errorf("not a text string: %T", obj)
	}
}

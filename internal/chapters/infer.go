package chapters

import "fmt"

// DefaultDefinition is the single whole-document chapter used when a document
// has no usable bookmarks.
func DefaultDefinition(totalPages int) ChapterDefinition {
	return ChapterDefinition{Name: "Chapter 1", StartPage: 1, EndPage: totalPages}
}

// InferRanges derives inclusive page ranges from page-ordered chapter
// candidates. Each chapter ends one page before the next chapter starts and
// the last chapter runs to the end of the document. A chapter whose inferred
// end would fall before its start (two bookmarks on the same page) is clamped
// to a single page. Empty input yields the whole-document default.
func InferRanges(candidates []ChapterCandidate, totalPages int) []ChapterDefinition {
	if len(candidates) == 0 {
		return []ChapterDefinition{DefaultDefinition(totalPages)}
	}

	defs := make([]ChapterDefinition, 0, len(candidates))
	for i, c := range candidates {
		end := totalPages
		if i+1 < len(candidates) {
			end = candidates[i+1].StartPage - 1
		}
		if end < c.StartPage {
			end = c.StartPage
		}
		defs = append(defs, ChapterDefinition{
			Name:      c.Title,
			StartPage: c.StartPage,
			EndPage:   end,
		})
	}
	return defs
}

// ValidateDefinition checks a definition against the document page count.
// The returned error describes the first violation found and is phrased for
// user-facing skip diagnostics. Overlap with other definitions is not an
// error; callers may deliberately split overlapping ranges.
func ValidateDefinition(def ChapterDefinition, totalPages int) error {
	if def.StartPage < 1 || def.EndPage < 1 || def.StartPage > totalPages || def.EndPage > totalPages {
		return fmt.Errorf("page numbers (%d-%d) out of range (1-%d)", def.StartPage, def.EndPage, totalPages)
	}
	if def.StartPage > def.EndPage {
		return fmt.Errorf("start page (%d) is after end page (%d)", def.StartPage, def.EndPage)
	}
	return nil
}

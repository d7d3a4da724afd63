package outline

import (
	"strings"
	"testing"

	"github.com/mjhall/chapterize/internal/chapters"
	"github.com/mjhall/chapterize/internal/document"
	"github.com/mjhall/chapterize/internal/testutil"
)

func load(t *testing.T, data []byte) *document.Document {
	t.Helper()
	doc, err := document.Load("test.pdf", data)
	if err != nil {
		t.Fatalf("failed to load test document: %v", err)
	}
	return doc
}

func assertCandidates(t *testing.T, got, expected []chapters.ChapterCandidate) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("expected %d candidates, got %d: %+v", len(expected), len(got), got)
	}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("candidate %d: expected %+v, got %+v", i, want, got[i])
		}
	}
}

func TestWalkFlatOutline(t *testing.T) {
	doc := load(t, testutil.BuildPDF(10, []testutil.Bookmark{
		{Title: "Introduction", Page: 1},
		{Title: "Methods", Page: 5},
		{Title: "Results", Page: 9},
	}))

	candidates, diags := Walk(doc, PolicyFirstChild)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertCandidates(t, candidates, []chapters.ChapterCandidate{
		{Title: "Introduction", StartPage: 1},
		{Title: "Methods", StartPage: 5},
		{Title: "Results", StartPage: 9},
	})
}

func TestWalkSortsByStartPage(t *testing.T) {
	doc := load(t, testutil.BuildPDF(10, []testutil.Bookmark{
		{Title: "Appendix", Page: 9},
		{Title: "Preface", Page: 1},
		{Title: "Body", Page: 5},
	}))

	candidates, diags := Walk(doc, PolicyFirstChild)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertCandidates(t, candidates, []chapters.ChapterCandidate{
		{Title: "Preface", StartPage: 1},
		{Title: "Body", StartPage: 5},
		{Title: "Appendix", StartPage: 9},
	})
}

func TestWalkFirstChildPolicy(t *testing.T) {
	doc := load(t, testutil.BuildPDF(10, []testutil.Bookmark{
		{Title: "Part I", Page: 1, Kids: []testutil.Bookmark{
			{Title: "Chapter 1", Page: 2},
			{Title: "Chapter 2", Page: 3},
		}},
		{Title: "Part II", Page: 5, Kids: []testutil.Bookmark{
			{Title: "Chapter 3", Page: 6},
		}},
	}))

	candidates, diags := Walk(doc, PolicyFirstChild)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertCandidates(t, candidates, []chapters.ChapterCandidate{
		{Title: "Part I", StartPage: 1},
		{Title: "Chapter 1 (Nested)", StartPage: 2},
		{Title: "Part II", StartPage: 5},
		{Title: "Chapter 3 (Nested)", StartPage: 6},
	})
}

func TestWalkFullDepthPolicy(t *testing.T) {
	doc := load(t, testutil.BuildPDF(10, []testutil.Bookmark{
		{Title: "Part I", Page: 1, Kids: []testutil.Bookmark{
			{Title: "Chapter 1", Page: 2, Kids: []testutil.Bookmark{
				{Title: "Section 1.1", Page: 3},
			}},
			{Title: "Chapter 2", Page: 4},
		}},
	}))

	candidates, diags := Walk(doc, PolicyFullDepth)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertCandidates(t, candidates, []chapters.ChapterCandidate{
		{Title: "Part I", StartPage: 1},
		{Title: "Chapter 1 (Nested)", StartPage: 2},
		{Title: "Section 1.1 (Nested)", StartPage: 3},
		{Title: "Chapter 2 (Nested)", StartPage: 4},
	})
}

func TestWalkIndirectTitle(t *testing.T) {
	doc := load(t, testutil.BuildPDF(5, []testutil.Bookmark{
		{Title: "Referenced", Page: 2, TitleAsRef: true},
	}))

	candidates, diags := Walk(doc, PolicyFirstChild)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertCandidates(t, candidates, []chapters.ChapterCandidate{
		{Title: "Referenced", StartPage: 2},
	})
}

func TestWalkActionDestination(t *testing.T) {
	doc := load(t, testutil.BuildPDF(5, []testutil.Bookmark{
		{Title: "Via Action", Page: 3, AsAction: true},
	}))

	candidates, diags := Walk(doc, PolicyFirstChild)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertCandidates(t, candidates, []chapters.ChapterCandidate{
		{Title: "Via Action", StartPage: 3},
	})
}

func TestWalkSkipsItemsWithoutDestination(t *testing.T) {
	doc := load(t, testutil.BuildPDF(5, []testutil.Bookmark{
		{Title: "Ghost"},
		{Title: "Solid", Page: 2},
	}))

	candidates, diags := Walk(doc, PolicyFirstChild)
	assertCandidates(t, candidates, []chapters.ChapterCandidate{
		{Title: "Solid", StartPage: 2},
	})
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Item != "Ghost" {
		t.Errorf("expected diagnostic for Ghost, got %q", diags[0].Item)
	}
	if !strings.Contains(diags[0].Reason, "no destination") {
		t.Errorf("unexpected diagnostic reason: %q", diags[0].Reason)
	}
	if diags[0].Stage != chapters.StageOutline {
		t.Errorf("expected outline stage, got %v", diags[0].Stage)
	}
}

func TestWalkNoOutline(t *testing.T) {
	doc := load(t, testutil.BuildPDF(3, nil))

	candidates, diags := Walk(doc, PolicyFirstChild)
	if candidates != nil {
		t.Errorf("expected no candidates, got %+v", candidates)
	}
	if diags != nil {
		t.Errorf("expected no diagnostics, got %+v", diags)
	}
}

// TestWalkNamedAndBrokenDestinations builds a document by hand to cover a
// named destination resolved through the catalog name tree, a title that is
// an indirect reference to a non-string object, and a destination pointing
// at an object outside the page tree.
func TestWalkNamedAndBrokenDestinations(t *testing.T) {
	b := testutil.NewBuilder()
	b.Add(1, "<< /Type /Catalog /Pages 2 0 R /Outlines 5 0 R /Names 8 0 R >>")
	b.Add(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.Add(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	b.Add(4, "42")
	b.Add(5, "<< /Type /Outlines /First 6 0 R /Last 7 0 R /Count 2 >>")
	b.Add(6, "<< /Title (Named) /Parent 5 0 R /Next 7 0 R /Dest (chap1) >>")
	b.Add(7, "<< /Title 4 0 R /Parent 5 0 R /Prev 6 0 R /Dest [99 0 R /Fit] >>")
	b.Add(8, "<< /Dests 9 0 R >>")
	b.Add(9, "<< /Names [(chap1) 10 0 R] >>")
	b.Add(10, "[3 0 R /Fit]")

	doc := load(t, b.Bytes())
	candidates, diags := Walk(doc, PolicyFirstChild)

	assertCandidates(t, candidates, []chapters.ChapterCandidate{
		{Title: "Named", StartPage: 1},
	})
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Item != "Unknown Title (Obj 4)" {
		t.Errorf("expected placeholder title, got %q", diags[0].Item)
	}
	if !strings.Contains(diags[0].Reason, "not in page tree") {
		t.Errorf("unexpected diagnostic reason: %q", diags[0].Reason)
	}
}

// TestWalkDestinationVariants covers destination dictionaries and numeric
// page destinations.
func TestWalkDestinationVariants(t *testing.T) {
	b := testutil.NewBuilder()
	b.Add(1, "<< /Type /Catalog /Pages 2 0 R /Outlines 5 0 R >>")
	b.Add(2, "<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>")
	b.Add(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	b.Add(4, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	b.Add(5, "<< /Type /Outlines /First 6 0 R /Last 7 0 R /Count 2 >>")
	b.Add(6, "<< /Title (Wrapped) /Parent 5 0 R /Next 7 0 R /Dest 8 0 R >>")
	b.Add(7, "<< /Title (Numeric) /Parent 5 0 R /Prev 6 0 R /Dest [1 /Fit] >>")
	b.Add(8, "<< /D [4 0 R /Fit] >>")

	doc := load(t, b.Bytes())
	candidates, diags := Walk(doc, PolicyFirstChild)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertCandidates(t, candidates, []chapters.ChapterCandidate{
		{Title: "Wrapped", StartPage: 2},
		{Title: "Numeric", StartPage: 2},
	})
}

// TestReadBreaksSiblingCycle makes sure a corrupted outline whose sibling
// links loop back on themselves still terminates.
func TestReadBreaksSiblingCycle(t *testing.T) {
	b := testutil.NewBuilder()
	b.Add(1, "<< /Type /Catalog /Pages 2 0 R /Outlines 4 0 R >>")
	b.Add(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.Add(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	b.Add(4, "<< /Type /Outlines /First 5 0 R /Last 6 0 R /Count 2 >>")
	b.Add(5, "<< /Title (First) /Parent 4 0 R /Next 6 0 R /Dest [3 0 R /Fit] >>")
	b.Add(6, "<< /Title (Second) /Parent 4 0 R /Next 5 0 R /Dest [3 0 R /Fit] >>")

	doc := load(t, b.Bytes())
	candidates, diags := Walk(doc, PolicyFirstChild)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertCandidates(t, candidates, []chapters.ChapterCandidate{
		{Title: "First", StartPage: 1},
		{Title: "Second", StartPage: 1},
	})
}

func TestParsePolicy(t *testing.T) {
	if ParsePolicy("full") != PolicyFullDepth {
		t.Error("expected full to map to PolicyFullDepth")
	}
	if ParsePolicy("first-child") != PolicyFirstChild {
		t.Error("expected first-child to map to PolicyFirstChild")
	}
	if ParsePolicy("") != PolicyFirstChild {
		t.Error("expected empty string to map to PolicyFirstChild")
	}
}

package chapters

import (
	"strings"
	"testing"
)

func TestInferRangesSpansDocument(t *testing.T) {
	candidates := []ChapterCandidate{
		{Title: "One", StartPage: 1},
		{Title: "Two", StartPage: 5},
		{Title: "Three", StartPage: 9},
	}

	defs := InferRanges(candidates, 12)

	want := []ChapterDefinition{
		{Name: "One", StartPage: 1, EndPage: 4},
		{Name: "Two", StartPage: 5, EndPage: 8},
		{Name: "Three", StartPage: 9, EndPage: 12},
	}
	if len(defs) != len(want) {
		t.Fatalf("expected %d definitions, got %d", len(want), len(defs))
	}
	for i := range want {
		if defs[i] != want[i] {
			t.Fatalf("definition %d = %+v, want %+v", i, defs[i], want[i])
		}
	}
}

func TestInferRangesClampsSharedStartPage(t *testing.T) {
	candidates := []ChapterCandidate{
		{Title: "A", StartPage: 7},
		{Title: "B", StartPage: 7},
	}

	defs := InferRanges(candidates, 20)

	if defs[0].StartPage != 7 || defs[0].EndPage != 7 {
		t.Fatalf("first definition = %+v, want single page 7", defs[0])
	}
	if defs[1].StartPage != 7 || defs[1].EndPage != 20 {
		t.Fatalf("second definition = %+v, want 7-20", defs[1])
	}
}

func TestInferRangesEmptyCandidates(t *testing.T) {
	defs := InferRanges(nil, 10)

	if len(defs) != 1 {
		t.Fatalf("expected a single default definition, got %d", len(defs))
	}
	want := ChapterDefinition{Name: "Chapter 1", StartPage: 1, EndPage: 10}
	if defs[0] != want {
		t.Fatalf("default definition = %+v, want %+v", defs[0], want)
	}
}

func TestInferRangesInvariants(t *testing.T) {
	candidates := []ChapterCandidate{
		{Title: "Front Matter", StartPage: 1},
		{Title: "Intro", StartPage: 3},
		{Title: "Body", StartPage: 3},
		{Title: "Appendix", StartPage: 40},
	}
	totalPages := 55

	defs := InferRanges(candidates, totalPages)

	if len(defs) != len(candidates) {
		t.Fatalf("expected %d definitions, got %d", len(candidates), len(defs))
	}
	for i, def := range defs {
		if def.StartPage != candidates[i].StartPage {
			t.Errorf("definition %d start %d, want candidate start %d", i, def.StartPage, candidates[i].StartPage)
		}
		if def.EndPage < def.StartPage {
			t.Errorf("definition %d has end %d before start %d", i, def.EndPage, def.StartPage)
		}
		if i+1 < len(defs) {
			next := candidates[i+1].StartPage
			if def.EndPage != next-1 && def.EndPage != def.StartPage {
				t.Errorf("definition %d end %d neither next start-1 (%d) nor clamped", i, def.EndPage, next-1)
			}
		}
	}
	if last := defs[len(defs)-1]; last.EndPage != totalPages {
		t.Errorf("last definition ends at %d, want %d", last.EndPage, totalPages)
	}
}

func TestValidateDefinition(t *testing.T) {
	tests := []struct {
		name       string
		def        ChapterDefinition
		totalPages int
		wantErr    string
	}{
		{"valid range", ChapterDefinition{Name: "A", StartPage: 1, EndPage: 5}, 10, ""},
		{"single page", ChapterDefinition{Name: "A", StartPage: 4, EndPage: 4}, 10, ""},
		{"full document", ChapterDefinition{Name: "A", StartPage: 1, EndPage: 10}, 10, ""},
		{"zero start", ChapterDefinition{Name: "A", StartPage: 0, EndPage: 5}, 10, "out of range"},
		{"negative start", ChapterDefinition{Name: "A", StartPage: -2, EndPage: 5}, 10, "out of range"},
		{"end past total", ChapterDefinition{Name: "A", StartPage: 1, EndPage: 11}, 10, "out of range"},
		{"start past total", ChapterDefinition{Name: "A", StartPage: 12, EndPage: 12}, 10, "out of range"},
		{"inverted", ChapterDefinition{Name: "A", StartPage: 3, EndPage: 1}, 10, "after end"},
		{"unfilled row", ChapterDefinition{Name: "A"}, 10, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDefinition(tt.def, tt.totalPages)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		index int
		name  string
		want  string
	}{
		{0, "Introduction", "01_Introduction.pdf"},
		{1, "Chapter Two: Results", "02_Chapter_Two_Results.pdf"},
		{9, "Appendix", "10_Appendix.pdf"},
		{2, "", "03_.pdf"},
	}

	for _, tt := range tests {
		got := OutputName(tt.index, tt.name)
		if got != tt.want {
			t.Fatalf("OutputName(%d, %q) = %q, want %q", tt.index, tt.name, got, tt.want)
		}
	}
}

func TestFallbackName(t *testing.T) {
	if got := FallbackName(0); got != "Chapter_1" {
		t.Fatalf("FallbackName(0) = %q, want Chapter_1", got)
	}
	if got := FallbackName(11); got != "Chapter_12" {
		t.Fatalf("FallbackName(11) = %q, want Chapter_12", got)
	}
}

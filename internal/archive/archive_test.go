package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/mjhall/chapterize/internal/chapters"
)

func zipReader(data []byte) (*zip.Reader, error) {
	return zip.NewReader(bytes.NewReader(data), int64(len(data)))
}

func TestBuildArchiveEntries(t *testing.T) {
	outputs := []chapters.Output{
		{Index: 0, Name: "01_Intro.pdf", Pages: 3, PDF: []byte("first chapter bytes")},
		{Index: 1, Name: "02_Body.pdf", Pages: 7, PDF: []byte("second chapter bytes")},
	}

	var buf bytes.Buffer
	if err := Build(&buf, outputs); err != nil {
		t.Fatalf("failed to build archive: %v", err)
	}

	zr, err := zipReader(buf.Bytes())
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(zr.File))
	}
	for i, want := range outputs {
		f := zr.File[i]
		if f.Name != want.Name {
			t.Errorf("entry %d named %q, want %q", i, f.Name, want.Name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open entry %q: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read entry %q: %v", f.Name, err)
		}
		if !bytes.Equal(data, want.PDF) {
			t.Errorf("entry %q content mismatch", f.Name)
		}
	}
}

func TestBuildEmptyArchive(t *testing.T) {
	var buf bytes.Buffer
	if err := Build(&buf, nil); err != nil {
		t.Fatalf("failed to build empty archive: %v", err)
	}
	zr, err := zipReader(buf.Bytes())
	if err != nil {
		t.Fatalf("empty archive is not a valid zip: %v", err)
	}
	if len(zr.File) != 0 {
		t.Fatalf("expected no entries, got %d", len(zr.File))
	}
}

func TestSuggestedName(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"book.pdf", "book_chapters.zip"},
		{"my.report.pdf", "my.report_chapters.zip"},
		{"noextension", "noextension_chapters.zip"},
		{"dir/nested/book.pdf", "book_chapters.zip"},
	}

	for _, tt := range tests {
		if got := SuggestedName(tt.filename); got != tt.want {
			t.Errorf("SuggestedName(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

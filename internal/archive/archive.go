// Package archive packages chapter PDFs into a single zip download.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mjhall/chapterize/internal/chapters"
)

// SuggestedName returns the download name for an archive built from the given
// source file name: the base name without extension plus "_chapters.zip".
func SuggestedName(sourceFilename string) string {
	base := filepath.Base(sourceFilename)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_chapters.zip"
}

// Build writes a zip archive with one deflate entry per output, named by the
// output's file name.
func Build(w io.Writer, outputs []chapters.Output) error {
	zw := zip.NewWriter(w)
	for _, out := range outputs {
		entry, err := zw.Create(out.Name)
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to create archive entry %q: %w", out.Name, err)
		}
		if _, err := entry.Write(out.PDF); err != nil {
			zw.Close()
			return fmt.Errorf("failed to write archive entry %q: %w", out.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

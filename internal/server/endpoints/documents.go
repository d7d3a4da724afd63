package endpoints

import (
	"time"

	"github.com/mjhall/chapterize/internal/chapters"
	"github.com/mjhall/chapterize/internal/session"
)

// DocumentResponse is the full view of an upload session: the inferred or
// edited chapter table plus any per-item skip diagnostics.
type DocumentResponse struct {
	ID          string                       `json:"id"`
	Filename    string                       `json:"filename"`
	Pages       int                          `json:"pages"`
	FromOutline bool                         `json:"from_outline"`
	Chapters    []chapters.ChapterDefinition `json:"chapters"`
	Diagnostics []chapters.Diagnostic        `json:"diagnostics,omitempty"`
	ArchiveName string                       `json:"archive_name,omitempty"`
	CreatedAt   string                       `json:"created_at"`
	UpdatedAt   string                       `json:"updated_at"`
}

// DocumentSummary is the list view of an upload session.
type DocumentSummary struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Pages       int    `json:"pages"`
	Chapters    int    `json:"chapters"`
	FromOutline bool   `json:"from_outline"`
	HasArchive  bool   `json:"has_archive"`
	UpdatedAt   string `json:"updated_at"`
}

func documentResponse(sess *session.Session) DocumentResponse {
	return DocumentResponse{
		ID:          sess.ID,
		Filename:    sess.Filename,
		Pages:       sess.PageCount,
		FromOutline: sess.FromOutline,
		Chapters:    sess.Definitions,
		Diagnostics: sess.Diagnostics,
		ArchiveName: sess.ArchiveName,
		CreatedAt:   sess.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   sess.UpdatedAt.Format(time.RFC3339),
	}
}

func documentSummary(sess *session.Session) DocumentSummary {
	return DocumentSummary{
		ID:          sess.ID,
		Filename:    sess.Filename,
		Pages:       sess.PageCount,
		Chapters:    len(sess.Definitions),
		FromOutline: sess.FromOutline,
		HasArchive:  len(sess.Archive) > 0,
		UpdatedAt:   sess.UpdatedAt.Format(time.RFC3339),
	}
}

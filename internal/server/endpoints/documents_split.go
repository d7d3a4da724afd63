package endpoints

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mjhall/chapterize/internal/api"
	"github.com/mjhall/chapterize/internal/archive"
	"github.com/mjhall/chapterize/internal/chapters"
	"github.com/mjhall/chapterize/internal/document"
	"github.com/mjhall/chapterize/internal/splitter"
	"github.com/mjhall/chapterize/internal/svcctx"
)

// SplitOutput describes one chapter PDF produced by a split.
type SplitOutput struct {
	Name  string `json:"name"`
	Pages int    `json:"pages"`
}

// SplitResponse reports the outcome of a split run.
type SplitResponse struct {
	DocumentID  string                `json:"document_id,omitempty"`
	Outputs     []SplitOutput         `json:"outputs,omitempty"`
	Skipped     []chapters.Diagnostic `json:"skipped,omitempty"`
	Archive     string                `json:"archive,omitempty"`
	ArchiveSize int                   `json:"archive_size,omitempty"`
	Error       string                `json:"error,omitempty"`
}

// SplitDocumentEndpoint handles POST /api/documents/{id}/split.
type SplitDocumentEndpoint struct{}

var _ api.Endpoint = (*SplitDocumentEndpoint)(nil)

func (e *SplitDocumentEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/documents/{id}/split", e.handler
}

// handler godoc
//
//	@Summary		Split a document into chapter PDFs
//	@Description	Run the session's chapter table against the document and build a zip archive of the results. Invalid rows are skipped and reported; if every row is skipped the response is 422 and no archive is built.
//	@Tags			documents
//	@Produce		json
//	@Param			id	path		string	true	"Document ID"
//	@Success		200	{object}	SplitResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	SplitResponse
//	@Failure		500	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/documents/{id}/split [post]
func (e *SplitDocumentEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sessions := svcctx.SessionsFrom(r.Context())
	if sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "session store not initialized")
		return
	}
	logger := svcctx.LoggerFrom(r.Context())

	id := r.PathValue("id")
	sess, ok := sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	// Sessions hold raw bytes, not parsed documents, so each split starts
	// from a fresh load.
	doc, err := document.Load(sess.Filename, sess.Data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to reload document: %v", err))
		return
	}

	opts := splitter.Options{Logger: logger}
	if cfg := svcctx.ConfigFrom(r.Context()); cfg != nil {
		opts.Workers = cfg.Get().Split.Workers
	}

	outputs, diags, err := splitter.Split(r.Context(), doc, sess.Definitions, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("split failed: %v", err))
		return
	}

	if len(outputs) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, SplitResponse{
			Error:   "no chapters could be produced",
			Skipped: diags,
		})
		return
	}

	var buf bytes.Buffer
	if err := archive.Build(&buf, outputs); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build archive: %v", err))
		return
	}

	archiveName := archive.SuggestedName(sess.Filename)
	if !sessions.SetArchive(id, archiveName, buf.Bytes()) {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	// Best effort: keep a copy on disk so archives survive a restart even
	// though sessions do not.
	if h := svcctx.HomeFrom(r.Context()); h != nil {
		exportPath := filepath.Join(h.ExportsDir(), archiveName)
		if err := os.WriteFile(exportPath, buf.Bytes(), 0o644); err != nil && logger != nil {
			logger.Warn("failed to export archive", "path", exportPath, "error", err)
		}
	}

	resp := SplitResponse{
		DocumentID:  id,
		Skipped:     diags,
		Archive:     archiveName,
		ArchiveSize: buf.Len(),
	}
	for _, out := range outputs {
		resp.Outputs = append(resp.Outputs, SplitOutput{Name: out.Name, Pages: out.Pages})
	}

	if logger != nil {
		logger.Info("document split",
			"document_id", id,
			"outputs", len(outputs),
			"skipped", len(diags),
			"archive_bytes", buf.Len())
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *SplitDocumentEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "split <id>",
		Short: "Split a document into chapter PDFs and build the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp SplitResponse
			if err := client.Post(cmd.Context(), "/api/documents/"+args[0]+"/split", nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

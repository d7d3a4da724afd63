package endpoints

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mjhall/chapterize/internal/api"
	"github.com/mjhall/chapterize/internal/chapters"
	"github.com/mjhall/chapterize/internal/document"
	"github.com/mjhall/chapterize/internal/outline"
	"github.com/mjhall/chapterize/internal/session"
	"github.com/mjhall/chapterize/internal/svcctx"
)

// UploadDocumentEndpoint handles POST /api/documents with a multipart PDF upload.
type UploadDocumentEndpoint struct{}

var _ api.Endpoint = (*UploadDocumentEndpoint)(nil)

func (e *UploadDocumentEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/documents", e.handler
}

// handler godoc
//
//	@Summary		Upload a PDF document
//	@Description	Upload a PDF, read its outline, and infer an editable chapter table
//	@Tags			documents
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"PDF document"
//	@Success		201	{object}	DocumentResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/documents [post]
func (e *UploadDocumentEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cfg := svcctx.ConfigFrom(r.Context())

	maxBytes := int64(100 << 20)
	if cfg != nil && cfg.Get().Server.MaxUploadBytes > 0 {
		maxBytes = cfg.Get().Server.MaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file %s is not a PDF", header.Filename))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	// Load failure is unrecoverable: nothing to degrade to, the upload is rejected.
	doc, err := document.Load(filepath.Base(header.Filename), data)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to load PDF: %v", err))
		return
	}

	policy := outline.PolicyFirstChild
	if cfg != nil {
		policy = outline.ParsePolicy(cfg.Get().Split.OutlinePolicy)
	}

	candidates, diags := outline.Walk(doc, policy)
	defs := chapters.InferRanges(candidates, doc.PageCount())

	sessions := svcctx.SessionsFrom(r.Context())
	if sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "session store not initialized")
		return
	}

	sess := sessions.Create(&session.Session{
		Filename:    doc.Filename(),
		PageCount:   doc.PageCount(),
		Data:        data,
		Definitions: defs,
		Diagnostics: diags,
		FromOutline: len(candidates) > 0,
	})

	if logger := svcctx.LoggerFrom(r.Context()); logger != nil {
		logger.Info("document uploaded",
			"document_id", sess.ID,
			"filename", sess.Filename,
			"pages", sess.PageCount,
			"chapters", len(defs),
			"skipped_bookmarks", len(diags))
	}

	writeJSON(w, http.StatusCreated, documentResponse(sess))
}

func (e *UploadDocumentEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a PDF and infer its chapter table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			client := api.NewClient(getServerURL())
			var resp DocumentResponse
			if err := client.PostMultipart(cmd.Context(), "/api/documents", "file", filepath.Base(args[0]), data, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

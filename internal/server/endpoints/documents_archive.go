package endpoints

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/mjhall/chapterize/internal/api"
	"github.com/mjhall/chapterize/internal/svcctx"
)

// GetArchiveEndpoint handles GET /api/documents/{id}/archive.
type GetArchiveEndpoint struct{}

var _ api.Endpoint = (*GetArchiveEndpoint)(nil)

func (e *GetArchiveEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/documents/{id}/archive", e.handler
}

// handler godoc
//
//	@Summary		Download the chapter archive
//	@Description	Stream the zip archive built by the most recent split of this document.
//	@Tags			documents
//	@Produce		application/zip
//	@Param			id	path		string	true	"Document ID"
//	@Success		200	{file}		binary
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/documents/{id}/archive [get]
func (e *GetArchiveEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sessions := svcctx.SessionsFrom(r.Context())
	if sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "session store not initialized")
		return
	}

	sess, ok := sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	if len(sess.Archive) == 0 {
		writeError(w, http.StatusNotFound, "no archive built for this document")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sess.ArchiveName))
	w.WriteHeader(http.StatusOK)
	w.Write(sess.Archive)
}

func (e *GetArchiveEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Download a document's chapter archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			data, filename, err := client.GetRaw(cmd.Context(), "/api/documents/"+args[0]+"/archive")
			if err != nil {
				return err
			}
			if outFile == "" {
				outFile = filename
			}
			if outFile == "" {
				outFile = args[0] + "_chapters.zip"
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outFile, err)
			}
			fmt.Printf("wrote %s (%d bytes)\n", outFile, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output path (default: server-suggested name)")
	return cmd
}

package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mjhall/chapterize/internal/api"
	"github.com/mjhall/chapterize/internal/svcctx"
)

// ListDocumentsResponse is the response for listing upload sessions.
type ListDocumentsResponse struct {
	Documents []DocumentSummary `json:"documents"`
}

// ListDocumentsEndpoint handles GET /api/documents.
type ListDocumentsEndpoint struct{}

var _ api.Endpoint = (*ListDocumentsEndpoint)(nil)

func (e *ListDocumentsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/documents", e.handler
}

// handler godoc
//
//	@Summary		List documents
//	@Description	List all upload sessions, newest first
//	@Tags			documents
//	@Produce		json
//	@Success		200	{object}	ListDocumentsResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/documents [get]
func (e *ListDocumentsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sessions := svcctx.SessionsFrom(r.Context())
	if sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "session store not initialized")
		return
	}

	resp := ListDocumentsResponse{Documents: []DocumentSummary{}}
	for _, sess := range sessions.List() {
		resp.Documents = append(resp.Documents, documentSummary(sess))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *ListDocumentsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uploaded documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ListDocumentsResponse
			if err := client.Get(cmd.Context(), "/api/documents", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

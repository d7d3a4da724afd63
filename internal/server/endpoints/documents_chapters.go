package endpoints

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/cobra"

	"github.com/mjhall/chapterize/internal/api"
	"github.com/mjhall/chapterize/internal/chapters"
	"github.com/mjhall/chapterize/internal/svcctx"
)

// SetChaptersRequest replaces the chapter table of a session.
type SetChaptersRequest struct {
	Chapters []chapters.ChapterDefinition `json:"chapters"`
}

// chapterRowsSchema validates the request structurally: page fields must be
// integers when present. Range checks happen later, at split time, so the
// table can hold rows the user is still editing.
var chapterRowsSchema = jsonschema.MustCompileString("chapters.json", `{
	"type": "object",
	"required": ["chapters"],
	"properties": {
		"chapters": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"start_page": {"type": "integer"},
					"end_page": {"type": "integer"}
				},
				"additionalProperties": false
			}
		}
	},
	"additionalProperties": false
}`)

// SetChaptersEndpoint handles PUT /api/documents/{id}/chapters.
type SetChaptersEndpoint struct{}

var _ api.Endpoint = (*SetChaptersEndpoint)(nil)

func (e *SetChaptersEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/api/documents/{id}/chapters", e.handler
}

// handler godoc
//
//	@Summary		Replace the chapter table
//	@Description	Replace the session's chapter rows verbatim. Rows are only checked structurally; out-of-range rows are kept and skipped at split time.
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string				true	"Document ID"
//	@Param			request	body	SetChaptersRequest	true	"Chapter rows"
//	@Success		200	{object}	DocumentResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/documents/{id}/chapters [put]
func (e *SetChaptersEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sessions := svcctx.SessionsFrom(r.Context())
	if sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "session store not initialized")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read body: %v", err))
		return
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if err := chapterRowsSchema.Validate(raw); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid chapter rows: %v", err))
		return
	}

	var req SetChaptersRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid chapter rows: %v", err))
		return
	}

	id := r.PathValue("id")
	if !sessions.SetDefinitions(id, req.Chapters) {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	sess, _ := sessions.Get(id)
	writeJSON(w, http.StatusOK, documentResponse(sess))
}

func (e *SetChaptersEndpoint) Command(getServerURL func() string) *cobra.Command {
	var fromFile string
	cmd := &cobra.Command{
		Use:   "set-chapters <id>",
		Short: "Replace a document's chapter table from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromFile == "" {
				return fmt.Errorf("--file is required")
			}
			data, err := os.ReadFile(fromFile)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", fromFile, err)
			}

			var req SetChaptersRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("failed to parse %s: %w", fromFile, err)
			}

			client := api.NewClient(getServerURL())
			var resp DocumentResponse
			if err := client.Put(cmd.Context(), "/api/documents/"+args[0]+"/chapters", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVarP(&fromFile, "file", "f", "", "JSON file with {\"chapters\": [{name, start_page, end_page}]}")
	return cmd
}

package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mjhall/chapterize/internal/chapters"
	"github.com/mjhall/chapterize/internal/home"
	"github.com/mjhall/chapterize/internal/server/endpoints"
	"github.com/mjhall/chapterize/internal/testutil"
)

// startTestServer boots a server on a free port and registers shutdown with
// t.Cleanup. It returns the base URL and the home path archives export to.
func startTestServer(t *testing.T) (string, string) {
	t.Helper()

	cfg := testutil.NewServerConfig(t)

	h, err := home.New(cfg.HomePath)
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}

	srv, err := New(Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		Home:   h,
		Logger: cfg.Logger,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start(serverCtx)
	}()

	t.Cleanup(func() {
		starter := testutil.StartServer{Cancel: serverCancel, Done: serverErr}
		starter.Stop()
	})

	if err := testutil.WaitForServer(cfg.URL(), 10*time.Second); err != nil {
		t.Fatalf("server did not start: %v", err)
	}

	return cfg.URL(), cfg.HomePath
}

func TestAPI_DocumentWorkflow(t *testing.T) {
	baseURL, homePath := startTestServer(t)

	pdf := testutil.BuildPDF(6, []testutil.Bookmark{
		{Title: "Intro", Page: 1},
		{Title: "Middle", Page: 3},
		{Title: "End", Page: 5},
	})

	doc := uploadPDF(t, baseURL, "book.pdf", pdf)

	t.Run("outline_inferred_on_upload", func(t *testing.T) {
		if !doc.FromOutline {
			t.Error("doc.FromOutline = false, want true")
		}
		want := []chapters.ChapterDefinition{
			{Name: "Intro", StartPage: 1, EndPage: 2},
			{Name: "Middle", StartPage: 3, EndPage: 4},
			{Name: "End", StartPage: 5, EndPage: 6},
		}
		if len(doc.Chapters) != len(want) {
			t.Fatalf("len(doc.Chapters) = %d, want %d", len(doc.Chapters), len(want))
		}
		for i, w := range want {
			if doc.Chapters[i] != w {
				t.Errorf("doc.Chapters[%d] = %+v, want %+v", i, doc.Chapters[i], w)
			}
		}
	})

	t.Run("set_chapters", func(t *testing.T) {
		req := endpoints.SetChaptersRequest{Chapters: []chapters.ChapterDefinition{
			{Name: "Opening", StartPage: 1, EndPage: 2},
			{Name: "Body", StartPage: 3, EndPage: 5},
			{Name: "Closing", StartPage: 6, EndPage: 6},
			{Name: "Phantom", StartPage: 9, EndPage: 12},
		}}

		var updated endpoints.DocumentResponse
		status := doJSON(t, "PUT", baseURL+"/api/documents/"+doc.ID+"/chapters", req, &updated)
		if status != http.StatusOK {
			t.Fatalf("set chapters status = %d, want %d", status, http.StatusOK)
		}
		if len(updated.Chapters) != 4 {
			t.Errorf("len(updated.Chapters) = %d, want 4", len(updated.Chapters))
		}
	})

	t.Run("set_chapters_rejects_non_integer_pages", func(t *testing.T) {
		body := `{"chapters":[{"name":"Bad","start_page":"one","end_page":2}]}`
		req, err := http.NewRequest("PUT", baseURL+"/api/documents/"+doc.ID+"/chapters", strings.NewReader(body))
		if err != nil {
			t.Fatalf("failed to build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := testutil.HTTPClient().Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})

	var split endpoints.SplitResponse
	t.Run("split", func(t *testing.T) {
		status := doJSON(t, "POST", baseURL+"/api/documents/"+doc.ID+"/split", nil, &split)
		if status != http.StatusOK {
			t.Fatalf("split status = %d, want %d", status, http.StatusOK)
		}

		wantNames := []string{"01_Opening.pdf", "02_Body.pdf", "03_Closing.pdf"}
		if len(split.Outputs) != len(wantNames) {
			t.Fatalf("len(split.Outputs) = %d, want %d", len(split.Outputs), len(wantNames))
		}
		for i, want := range wantNames {
			if split.Outputs[i].Name != want {
				t.Errorf("split.Outputs[%d].Name = %q, want %q", i, split.Outputs[i].Name, want)
			}
		}

		if len(split.Skipped) != 1 {
			t.Fatalf("len(split.Skipped) = %d, want 1", len(split.Skipped))
		}
		if split.Skipped[0].Item != "Phantom" {
			t.Errorf("split.Skipped[0].Item = %q, want %q", split.Skipped[0].Item, "Phantom")
		}

		if split.Archive != "book_chapters.zip" {
			t.Errorf("split.Archive = %q, want %q", split.Archive, "book_chapters.zip")
		}
	})

	t.Run("download_archive", func(t *testing.T) {
		resp, err := testutil.HTTPClient().Get(baseURL + "/api/documents/" + doc.ID + "/archive")
		if err != nil {
			t.Fatalf("archive download failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("archive status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/zip" {
			t.Errorf("Content-Type = %q, want %q", ct, "application/zip")
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("failed to read archive: %v", err)
		}

		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			t.Fatalf("failed to open archive: %v", err)
		}
		var names []string
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		want := []string{"01_Opening.pdf", "02_Body.pdf", "03_Closing.pdf"}
		if len(names) != len(want) {
			t.Fatalf("archive entries = %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("archive entry[%d] = %q, want %q", i, names[i], want[i])
			}
		}
	})

	t.Run("archive_exported_to_home", func(t *testing.T) {
		path := filepath.Join(homePath, home.ExportsDirName, "book_chapters.zip")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("exported archive missing: %v", err)
		}
	})

	t.Run("list_documents", func(t *testing.T) {
		var list endpoints.ListDocumentsResponse
		if err := testutil.GetJSON(baseURL+"/api/documents", &list); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(list.Documents) != 1 {
			t.Fatalf("len(list.Documents) = %d, want 1", len(list.Documents))
		}
		if !list.Documents[0].HasArchive {
			t.Error("HasArchive = false after split, want true")
		}
	})

	t.Run("reupload_replaces_same_filename", func(t *testing.T) {
		doc2 := uploadPDF(t, baseURL, "book.pdf", testutil.BuildPDF(2, nil))
		if doc2.ID == doc.ID {
			t.Error("re-upload kept old session ID, want a new one")
		}

		var list endpoints.ListDocumentsResponse
		if err := testutil.GetJSON(baseURL+"/api/documents", &list); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(list.Documents) != 1 {
			t.Errorf("len(list.Documents) = %d after re-upload, want 1", len(list.Documents))
		}

		doc = doc2
	})

	t.Run("delete_document", func(t *testing.T) {
		req, err := http.NewRequest("DELETE", baseURL+"/api/documents/"+doc.ID, nil)
		if err != nil {
			t.Fatalf("failed to build request: %v", err)
		}
		resp, err := testutil.HTTPClient().Do(req)
		if err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("delete status = %d, want %d", resp.StatusCode, http.StatusNoContent)
		}

		getResp, err := testutil.HTTPClient().Get(baseURL + "/api/documents/" + doc.ID)
		if err != nil {
			t.Fatalf("get after delete failed: %v", err)
		}
		getResp.Body.Close()
		if getResp.StatusCode != http.StatusNotFound {
			t.Errorf("get after delete status = %d, want %d", getResp.StatusCode, http.StatusNotFound)
		}
	})
}

func TestAPI_SplitAllRowsInvalid(t *testing.T) {
	baseURL, _ := startTestServer(t)

	doc := uploadPDF(t, baseURL, "plain.pdf", testutil.BuildPDF(3, nil))

	req := endpoints.SetChaptersRequest{Chapters: []chapters.ChapterDefinition{
		{Name: "Beyond", StartPage: 4, EndPage: 9},
		{Name: "Inverted", StartPage: 3, EndPage: 1},
	}}
	var updated endpoints.DocumentResponse
	if status := doJSON(t, "PUT", baseURL+"/api/documents/"+doc.ID+"/chapters", req, &updated); status != http.StatusOK {
		t.Fatalf("set chapters status = %d, want %d", status, http.StatusOK)
	}

	var split endpoints.SplitResponse
	status := doJSON(t, "POST", baseURL+"/api/documents/"+doc.ID+"/split", nil, &split)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("split status = %d, want %d", status, http.StatusUnprocessableEntity)
	}
	if split.Error == "" {
		t.Error("split.Error is empty, want message")
	}
	if len(split.Skipped) != 2 {
		t.Fatalf("len(split.Skipped) = %d, want 2", len(split.Skipped))
	}

	// No archive should exist after a failed split
	resp, err := testutil.HTTPClient().Get(baseURL + "/api/documents/" + doc.ID + "/archive")
	if err != nil {
		t.Fatalf("archive request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("archive status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestAPI_UploadRejectsBadInput(t *testing.T) {
	baseURL, _ := startTestServer(t)

	t.Run("garbage_bytes", func(t *testing.T) {
		status := uploadExpectError(t, baseURL, "junk.pdf", []byte("not a pdf at all"))
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("wrong_extension", func(t *testing.T) {
		status := uploadExpectError(t, baseURL, "notes.txt", testutil.BuildPDF(1, nil))
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})
}

// doJSON sends a JSON request and decodes the JSON response, returning the
// status code.
func doJSON(t *testing.T, method, url string, body, result any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := testutil.HTTPClient().Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

// uploadExpectError posts a file and returns the response status without
// requiring success.
func uploadExpectError(t *testing.T, baseURL, filename string, data []byte) int {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	resp, err := testutil.HTTPClient().Post(baseURL+"/api/documents", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

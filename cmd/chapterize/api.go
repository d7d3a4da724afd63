package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mjhall/chapterize/internal/home"
	"github.com/mjhall/chapterize/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running Chapterize server via HTTP.

These commands require a running server (chapterize serve).
Use --server to specify a custom server URL.

Examples:
  chapterize api health                        # Check server health
  chapterize api documents upload book.pdf     # Upload a PDF
  chapterize api documents list                # List uploaded documents
  chapterize api documents split <id>          # Split into chapters
  chapterize api documents archive <id>        # Download the zip`,
}

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Document management commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

// getHome returns the home directory manager.
func getHome() (*home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, fmt.Errorf("failed to create home directory: %w", err)
	}
	return h, nil
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	// Health and docs endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerUIEndpoint{}).Command(getServerURL))

	// Documents as subcommand group
	documentsCmd.AddCommand((&endpoints.UploadDocumentEndpoint{}).Command(getServerURL))
	documentsCmd.AddCommand((&endpoints.ListDocumentsEndpoint{}).Command(getServerURL))
	documentsCmd.AddCommand((&endpoints.GetDocumentEndpoint{}).Command(getServerURL))
	documentsCmd.AddCommand((&endpoints.DeleteDocumentEndpoint{}).Command(getServerURL))
	documentsCmd.AddCommand((&endpoints.SetChaptersEndpoint{}).Command(getServerURL))
	documentsCmd.AddCommand((&endpoints.SplitDocumentEndpoint{}).Command(getServerURL))
	documentsCmd.AddCommand((&endpoints.GetArchiveEndpoint{}).Command(getServerURL))

	apiCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(apiCmd)
}

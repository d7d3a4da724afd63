package main

import (
	"github.com/spf13/cobra"

	"github.com/mjhall/chapterize/internal/api"
	"github.com/mjhall/chapterize/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "chapterize",
	Short: "Split PDFs into chapter files using their outline",
	Long: `Chapterize splits a PDF into per-chapter files.

It reads the document's outline (bookmarks) to infer chapter page ranges,
lets you adjust the resulting table, and writes one PDF per chapter plus
a zip archive of the set.

Bookmarks that cannot be resolved are skipped with a reported reason
rather than failing the whole document; chapter rows that do not fit the
document are skipped the same way at split time.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.chapterize/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "chapterize home directory (default: ~/.chapterize)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

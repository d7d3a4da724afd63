package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mjhall/chapterize/internal/config"
	"github.com/mjhall/chapterize/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Chapterize server",
	Long: `Start the Chapterize HTTP server.

The server holds uploaded documents in memory for their session. Built
archives are also exported to ~/.chapterize/exports/ so they survive a
restart.

The server provides:
  - /health  - Basic server health check
  - /ready   - Readiness check
  - /swagger - API documentation
  - /        - Web UI for uploading and splitting documents

Examples:
  chapterize serve                    # Start on the configured port (default 8080)
  chapterize serve --port 3000        # Start on custom port
  chapterize serve --host 127.0.0.1   # Bind to loopback only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg := mgr.Get()

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLogLevel(cfg.LogLevel),
		}))
		slog.SetDefault(logger)

		h, err := getHome()
		if err != nil {
			return err
		}

		// Flags override the config file when set explicitly
		host := cfg.Server.Host
		port := strconv.Itoa(cfg.Server.Port)
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			Home:          h,
			ConfigManager: mgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Pick up config file edits while running
		mgr.WatchConfig()

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

// parseLogLevel maps a config log level string to a slog.Level. Unknown
// values fall back to info.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}

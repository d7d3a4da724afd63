package config

import "fmt"

// Config holds chapterize configuration.
// Stored at: ~/.chapterize/config.yaml
type Config struct {
	LogLevel string    `mapstructure:"log_level" yaml:"log_level"` // "debug", "info", "warn", "error"
	Server   ServerCfg `mapstructure:"server" yaml:"server"`
	Split    SplitCfg  `mapstructure:"split" yaml:"split"`
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host           string `mapstructure:"host" yaml:"host"`
	Port           int    `mapstructure:"port" yaml:"port"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"` // Per-request upload cap
	MaxSessions    int    `mapstructure:"max_sessions" yaml:"max_sessions"`         // Oldest session evicted beyond this
}

// SplitCfg configures the split pipeline.
type SplitCfg struct {
	Workers       int    `mapstructure:"workers" yaml:"workers"`               // 0 means one per CPU
	OutlinePolicy string `mapstructure:"outline_policy" yaml:"outline_policy"` // "first-child" or "full"
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerCfg{
			Host:           "0.0.0.0",
			Port:           8080,
			MaxUploadBytes: 100 << 20,
			MaxSessions:    20,
		},
		Split: SplitCfg{
			Workers:       0,
			OutlinePolicy: "first-child",
		},
	}
}

// ListenAddr returns the host:port the server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

package types

import "time"

// HTTPConfig holds shared HTTP settings used by operations that call the
// Postman API.
type HTTPConfig struct {
	// Timeout is the per-request timeout for collection content fetches.
	// Name lookups are issued without a timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "postman-exporter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ExportConfig holds settings for the export command.
type ExportConfig struct {
	HTTPConfig `yaml:",inline"`

	// Dir is the directory exported collection files are written to.
	Dir string `json:"dir" yaml:"dir"`

	// Manifest controls whether an export-manifest.yaml is written next to
	// the exported files.
	Manifest bool `json:"manifest" yaml:"manifest"`
}

// ArchiveConfig holds settings for the archive command.
type ArchiveConfig struct {
	// Format selects the archive format: zip, tar, or gztar.
	Format string `json:"format" yaml:"format"`
}

// LoggingConfig holds settings for the command log file.
type LoggingConfig struct {
	// Level is the minimum level written to the log ("debug", "info",
	// "warn", "error").
	Level string `json:"level" yaml:"level"`

	// Path is the log file location. Empty disables file logging.
	Path string `json:"path" yaml:"path"`
}

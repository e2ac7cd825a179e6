package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBatchSize of 8 concurrent scans balances throughput with
	// memory usage: every in-flight scan holds its whole buffer plus
	// decoded pixel planes.
	DefaultBatchSize = 8

	// DefaultMaxScanSize caps how many bytes are read from one target.
	// 64MB covers essentially every image and document while keeping a
	// misconfigured scan of a disk image from exhausting memory.
	DefaultMaxScanSize = 64 * 1024 * 1024

	// DefaultEntropyBlockSize is the block size for the entropy profile.
	DefaultEntropyBlockSize = 256

	// DefaultChiSquareThreshold is the chi-square detection p-value.
	DefaultChiSquareThreshold = 0.95

	// DefaultRSThreshold is the RS payload-estimate threshold in percent.
	DefaultRSThreshold = 5.0

	// DefaultSamplePairsThreshold is the sample-pairs payload-estimate
	// threshold in percent.
	DefaultSamplePairsThreshold = 3.0

	// AppName is the application name used for XDG directory paths.
	AppName = "stegoscan"
)

// Thresholds holds the overridable detection thresholds of the statistical
// passes. The defaults are the conventional working values; they can be
// tightened or loosened per deployment through the config file or flags.
type Thresholds struct {
	// ChiSquarePValue is the p-value above which the chi-square LSB
	// attack reports detection.
	ChiSquarePValue float64 `yaml:"chi_square_p_value"`

	// RSPayloadPercent is the absolute RS payload estimate (percent)
	// above which RS analysis reports detection.
	RSPayloadPercent float64 `yaml:"rs_payload_percent"`

	// SamplePairsPayloadPercent is the absolute sample-pairs payload
	// estimate (percent) above which sample-pairs analysis reports
	// detection.
	SamplePairsPayloadPercent float64 `yaml:"sample_pairs_payload_percent"`
}

// DefaultThresholds returns the default detection thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ChiSquarePValue:           DefaultChiSquareThreshold,
		RSPayloadPercent:          DefaultRSThreshold,
		SamplePairsPayloadPercent: DefaultSamplePairsThreshold,
	}
}

// Config holds all configuration options for a scan run.
// It is populated from CLI flags and the optional config file, then passed
// through the application by dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Targets is the list of file paths to scan.
	// Must contain at least one path.
	Targets []string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of concurrent scans when processing
	// multiple targets.
	BatchSize int

	// MaxScanSize is the maximum number of bytes read from one target.
	// Larger files are truncated to this prefix. Set to 0 for the default.
	MaxScanSize int64

	// EntropyBlockSize is the block size for the entropy profile.
	// Set to 0 for the default.
	EntropyBlockSize int

	// Thresholds holds the detection thresholds for the LSB analyzers.
	Thresholds Thresholds

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .stegoscan in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// JSONReport enables JSON report output instead of the human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output with tables and
	// charts. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// DBDir is the directory path for the scan-history SQLite database.
	// When set, scan results are saved for later comparison.
	// Defaults to the XDG data directory when SaveToDB is enabled.
	DBDir string

	// SaveToDB indicates whether to save scan results to the database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (batch size, thresholds).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BatchSize:        DefaultBatchSize,
		MaxScanSize:      DefaultMaxScanSize,
		EntropyBlockSize: DefaultEntropyBlockSize,
		Thresholds:       DefaultThresholds(),
	}
}

// XDGDataDir returns the XDG data directory for the scanner.
// On Linux: ~/.local/share/stegoscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the scanner.
// On Linux: ~/.config/stegoscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for the scanner.
// On Linux: ~/.cache/stegoscan
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast with clear messages, once, after CLI parsing.
// The first error found is returned; fixing one error often makes the
// others irrelevant.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.MaxScanSize < 0 {
		return ErrInvalidMaxScanSize
	}
	if c.EntropyBlockSize < 0 {
		return ErrInvalidBlockSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if t := c.Thresholds; t.ChiSquarePValue < 0 || t.ChiSquarePValue > 1 ||
		t.RSPayloadPercent < 0 || t.SamplePairsPayloadPercent < 0 {
		return ErrInvalidThreshold
	}
	return nil
}

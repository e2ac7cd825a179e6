package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no file path is specified.
	ErrNoTarget = errors.New("no target specified: provide at least one file path")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent scans at all.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidMaxScanSize is returned when the max scan size is negative.
	// Use 0 to select the default limit.
	ErrInvalidMaxScanSize = errors.New("invalid max scan size: must be non-negative")

	// ErrInvalidBlockSize is returned when the entropy block size is
	// negative. Use 0 to select the default.
	ErrInvalidBlockSize = errors.New("invalid entropy block size: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidThreshold is returned when a detection threshold is
	// outside its valid range (p-values in [0,1], payload percents >= 0).
	ErrInvalidThreshold = errors.New("invalid detection threshold")
)

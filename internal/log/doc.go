// Package log provides scan-friendly logging built on top of the standard
// slog package.
//
// This package extends slog to provide:
//   - Compaction of byte-slice attributes into length + digest previews
//   - Truncation of oversized string attributes
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// Forensic scans move large binary buffers around; logging them verbatim
// would make the output unreadable and can spray control bytes onto a
// terminal. The ScanHandler keeps log lines short while staying
// correlatable with report digests.
//
// # Usage
//
//	// Create a scan logger
//	logger := log.NewScanLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("target loaded",
//	    "path", "holiday.png",
//	    "data", buf, // Compacted to "[524288 bytes, blake2b:9f3a01cc4e12]"
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log

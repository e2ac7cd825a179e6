package log

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/crypto/blake2b"
)

// Attribute compaction limits.
const (
	// MaxStringAttrLength is the longest string attribute emitted as-is.
	// Longer values are truncated with an ellipsis and their full length.
	MaxStringAttrLength = 256

	// digestPreviewBytes is how many digest bytes appear in a compacted
	// binary attribute. Six bytes is enough to correlate log lines with
	// report digests without flooding the output.
	digestPreviewBytes = 6
)

// ScanHandler wraps an slog.Handler to keep scan logs readable. Scanned
// buffers and carved regions routinely reach megabytes; logging them raw
// would make the output useless and could spray binary onto a terminal.
// Byte-slice attributes are replaced by their length and a BLAKE2b digest
// preview, and oversized strings are truncated.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites can log buffers naturally without pre-formatting them
type ScanHandler struct {
	// handler is the underlying slog handler that receives compacted records.
	handler slog.Handler
}

// NewScanHandler creates a new ScanHandler wrapping the given handler.
// If handler is nil, the returned ScanHandler uses slog.Default().Handler().
func NewScanHandler(handler slog.Handler) *ScanHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &ScanHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *ScanHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle compacts the record's attributes and passes it on.
func (h *ScanHandler) Handle(ctx context.Context, r slog.Record) error {
	compacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		compacted.AddAttrs(h.compactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, compacted)
}

// WithAttrs returns a new handler with the given attributes added,
// compacted first.
func (h *ScanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	compacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		compacted[i] = h.compactAttr(a)
	}
	return &ScanHandler{handler: h.handler.WithAttrs(compacted)}
}

// WithGroup returns a new handler with the given group name.
func (h *ScanHandler) WithGroup(name string) slog.Handler {
	return &ScanHandler{handler: h.handler.WithGroup(name)}
}

// compactAttr compacts a single attribute, recursively handling groups.
func (h *ScanHandler) compactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		compacted := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			compacted[i] = h.compactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(compacted...)}
	}

	if a.Value.Kind() == slog.KindAny {
		if data, ok := a.Value.Any().([]byte); ok {
			return slog.String(a.Key, DescribeBuffer(data))
		}
	}

	if a.Value.Kind() == slog.KindString {
		if s := a.Value.String(); len(s) > MaxStringAttrLength {
			return slog.String(a.Key, fmt.Sprintf("%s... (%d chars)", s[:MaxStringAttrLength], len(s)))
		}
	}

	return a
}

// DescribeBuffer renders a byte buffer as a short "length + digest preview"
// string for logging.
func DescribeBuffer(data []byte) string {
	sum := blake2b.Sum256(data)
	return fmt.Sprintf("[%d bytes, blake2b:%s]", len(data), hex.EncodeToString(sum[:digestPreviewBytes]))
}

// NewScanLogger creates a new slog.Logger with buffer-compacting handling.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewScanLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	return slog.New(NewScanHandler(slog.NewTextHandler(w, opts)))
}

// NewScanJSONLogger creates a new slog.Logger with buffer-compacting
// handling that outputs JSON. Useful for structured log aggregation.
func NewScanJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	return slog.New(NewScanHandler(slog.NewJSONHandler(w, opts)))
}

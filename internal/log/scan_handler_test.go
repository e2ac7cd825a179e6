package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestScanHandlerCompactsByteSlices tests that binary attributes are
// replaced by a length and digest preview.
func TestScanHandlerCompactsByteSlices(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewScanHandler(slog.NewTextHandler(&buf, nil)))

	payload := bytes.Repeat([]byte{0x00, 0xff}, 1024)
	logger.Info("target loaded", "data", payload)

	out := buf.String()
	if strings.Contains(out, "\x00") {
		t.Error("raw binary leaked into log output")
	}
	if !strings.Contains(out, "2048 bytes") {
		t.Errorf("output %q does not mention the buffer length", out)
	}
	if !strings.Contains(out, "blake2b:") {
		t.Errorf("output %q does not carry a digest preview", out)
	}
}

// TestScanHandlerTruncatesLongStrings tests string truncation.
func TestScanHandlerTruncatesLongStrings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewScanHandler(slog.NewTextHandler(&buf, nil)))

	long := strings.Repeat("x", 2*MaxStringAttrLength)
	logger.Info("note", "value", long)

	out := buf.String()
	if strings.Contains(out, long) {
		t.Error("oversized string was not truncated")
	}
	if !strings.Contains(out, "512 chars") {
		t.Errorf("output %q does not state the original length", out)
	}
}

// TestScanHandlerLeavesShortAttrsAlone tests that ordinary attributes
// pass through untouched, including inside groups.
func TestScanHandlerLeavesShortAttrsAlone(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewScanHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("scan finished",
		"target", "holiday.png",
		slog.Group("result", "risk", "LOW", "findings", 0),
	)

	out := buf.String()
	for _, want := range []string{"holiday.png", "risk=LOW", "findings=0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

// TestNewScanLoggerLevels tests the verbose switch.
func TestNewScanLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("quiet logger drops debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		NewScanLogger(&buf, false).Debug("hidden")
		if buf.Len() != 0 {
			t.Errorf("debug output %q, want none", buf.String())
		}
	})

	t.Run("verbose logger keeps debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		NewScanLogger(&buf, true).Debug("visible")
		if !strings.Contains(buf.String(), "visible") {
			t.Errorf("debug output %q missing message", buf.String())
		}
	})

	t.Run("json logger emits json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		NewScanJSONLogger(&buf, true).Info("hello")
		if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
			t.Errorf("output %q is not JSON", buf.String())
		}
	})
}

// TestDescribeBuffer tests the digest preview format.
func TestDescribeBuffer(t *testing.T) {
	t.Parallel()

	got := DescribeBuffer([]byte("abc"))
	if !strings.HasPrefix(got, "[3 bytes, blake2b:") || !strings.HasSuffix(got, "]") {
		t.Errorf("DescribeBuffer = %q, want \"[3 bytes, blake2b:...]\"", got)
	}

	// Same input, same digest; different input, different digest.
	if DescribeBuffer([]byte("abc")) != got {
		t.Error("digest preview is not deterministic")
	}
	if DescribeBuffer([]byte("abd")) == got {
		t.Error("different buffers produced the same preview")
	}
}

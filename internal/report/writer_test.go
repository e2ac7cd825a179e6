package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nao1215/stegoscan/internal/model"
)

// createTestReport creates an aggregated report with sample findings.
func createTestReport() *model.ForensicReport {
	report := model.NewForensicReport("/tmp/suspect.png")
	report.Size = 1048576
	report.Digest = "deadbeefcafe"

	report.Entropy = &model.EntropyReport{
		OverallEntropy: 7.94,
		BlockSize:      256,
		BlockVariance:  0.002,
	}
	report.Randomness = &model.RandomnessReport{
		Frequency: model.FrequencyTestResult{Passed: true, PValue: 0.42, Ones: 4000, Bits: 8000},
		Serial:    model.SerialCorrelationResult{Coefficient: 0.01, Interpretation: "uncorrelated"},
		Runs:      model.RunsTestResult{Applicable: true, Passed: true, ZScore: 0.5, Runs: 4001},
	}
	report.Structure = &model.StructureReport{
		EmbeddedFiles: []model.EmbeddedFileMatch{{Name: "ZIP", Offset: 4096}},
	}
	report.LSB = &model.LSBReport{
		Available: true,
		Width:     64,
		Height:    64,
		Channels: []model.ChannelLSBReport{
			{
				Channel:   "Gray",
				ChiSquare: model.ChiSquareResult{Statistic: 300, DegreesOfFreedom: 127, PValue: 0.999, Detected: true},
			},
		},
	}

	f := model.NewFinding(model.CategoryEmbeddedFile,
		"ZIP signature inside buffer",
		"A ZIP local file header was found inside the scanned buffer.", 70)
	f.Method = "signature-scan"
	f.Signature = "ZIP"
	f.Offset = 4096
	report.AddFinding(f)

	f = model.NewFinding(model.CategoryLsbDetected,
		"chi-square attack positive on channel Gray",
		"The pair-value distribution matches a high-density LSB embedding.", 80)
	f.Method = "chi-square"
	f.Channel = "Gray"
	f.PValue = 0.999
	report.AddFinding(f)

	report.Aggregate()
	return report
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "STEGOSCAN REPORT") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "/tmp/suspect.png") {
			t.Error("expected output to contain target path")
		}
		if !strings.Contains(output, "1,048,576 bytes") {
			t.Error("expected grouped byte count in output")
		}
	})

	t.Run("writes risk assessment", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "RISK ASSESSMENT") {
			t.Error("expected risk assessment section")
		}
		// Two distinct categories in the test report.
		if !strings.Contains(output, "HIGH") {
			t.Error("expected HIGH risk level in output")
		}
		if !strings.Contains(output, "Confidence: 80/100") {
			t.Error("expected confidence in output")
		}
	})

	t.Run("writes pass summaries", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "[entropy]") {
			t.Error("expected entropy pass summary")
		}
		if !strings.Contains(output, "[randomness]") {
			t.Error("expected randomness pass summary")
		}
		if !strings.Contains(output, "1 channel(s) analyzed (64x64)") {
			t.Error("expected LSB pass summary")
		}
	})

	t.Run("writes findings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "ZIP signature inside buffer") {
			t.Error("expected embedded-file finding in output")
		}
		if !strings.Contains(output, "chi-square attack positive") {
			t.Error("expected LSB finding in output")
		}
	})

	t.Run("verbose mode includes descriptions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "Description:") {
			t.Error("expected verbose output to contain descriptions")
		}
	})

	t.Run("shows error status", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)
		report := model.NewForensicReport("/tmp/broken.bin")
		report.ErrorMessage = "read failed"
		report.Aggregate()

		if _, err := w.Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "ERROR") {
			t.Error("expected ERROR in status")
		}
		if !strings.Contains(output, "read failed") {
			t.Error("expected error message in output")
		}
	})

	t.Run("skipped lsb pass is reported with reason", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)
		report := model.NewForensicReport("/tmp/data.bin")
		report.LSB = &model.LSBReport{Available: false, Reason: "target is not a decodable image"}
		report.Aggregate()

		if _, err := w.Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "skipped (target is not a decodable image)") {
			t.Error("expected skip reason in output")
		}
	})

	t.Run("showEmpty renders empty categories", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithShowEmpty(true))
		report := model.NewForensicReport("/tmp/clean.bin")
		report.Aggregate()

		if _, err := w.Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "[lsb_detected]") {
			t.Error("expected empty category header with showEmpty")
		}
		if !strings.Contains(output, "No findings") {
			t.Error("expected 'No findings' marker with showEmpty")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("outputs valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed model.ForensicReport
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if parsed.Target != "/tmp/suspect.png" {
			t.Errorf("Target = %q, want /tmp/suspect.png", parsed.Target)
		}
		if parsed.RiskLevelText != "HIGH" {
			t.Errorf("RiskLevelText = %q, want HIGH", parsed.RiskLevelText)
		}
	})

	t.Run("compact output by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) > 1 {
			t.Errorf("expected compact output (1 line), got %d lines", len(lines))
		}
	})

	t.Run("pretty print with indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) < 5 {
			t.Errorf("expected multi-line output, got %d lines", len(lines))
		}
	})

	t.Run("uses custom prefix and indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithIndent(">>", "\t"))

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, ">>") {
			t.Error("expected custom prefix '>>' in output")
		}
		if !strings.Contains(output, "\t") {
			t.Error("expected tab indentation in output")
		}
	})
}

// TestFullJSONWriter tests the full JSON writer with metadata.
func TestFullJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("includes version in output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewFullJSONWriter(&buf, "1.0.0", WithPrettyPrint())

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed JSONReport
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if parsed.Version != "1.0.0" {
			t.Errorf("Version = %q, want 1.0.0", parsed.Version)
		}
		if parsed.Report == nil || parsed.Report.Target != "/tmp/suspect.png" {
			t.Errorf("wrapped report missing or wrong: %+v", parsed.Report)
		}
	})
}

// TestMultiWriter tests writing to multiple outputs.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var buf1, buf2 bytes.Buffer
		multi := NewMultiWriter(NewSimpleWriter(&buf1), NewJSONWriter(&buf2))

		if _, err := multi.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if buf1.Len() == 0 {
			t.Error("expected buf1 to have content")
		}
		if buf2.Len() == 0 {
			t.Error("expected buf2 to have content")
		}
		if !strings.Contains(buf2.String(), "{") {
			t.Error("expected buf2 (JSON) to contain JSON")
		}
	})

	t.Run("handles empty writers list", func(t *testing.T) {
		t.Parallel()

		multi := NewMultiWriter()
		n, err := multi.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 0 {
			t.Errorf("expected 0 bytes written for empty writers, got %d", n)
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Stegoscan Report") {
			t.Error("expected output to contain H1 header")
		}
		if !strings.Contains(output, "/tmp/suspect.png") {
			t.Error("expected output to contain target path")
		}
	})

	t.Run("writes risk assessment with alert", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Risk Assessment") {
			t.Error("expected risk assessment section")
		}
		// Two distinct categories: HIGH risk, rendered as a warning alert.
		if !strings.Contains(output, "[!WARNING]") {
			t.Error("expected WARNING alert for HIGH risk")
		}
	})

	t.Run("includes pie chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "pie") {
			t.Error("expected output to contain mermaid pie chart")
		}
	})

	t.Run("writes channel results table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "LSB Channel Results") {
			t.Error("expected channel results section")
		}
		if !strings.Contains(output, "Chi-Square") {
			t.Error("expected chi-square column")
		}
	})

	t.Run("writes findings tables and details", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Findings") {
			t.Error("expected findings header")
		}
		if !strings.Contains(output, "ZIP signature inside buffer") {
			t.Error("expected embedded-file finding")
		}
		if !strings.Contains(output, "<details>") {
			t.Error("expected details tags for finding descriptions")
		}
	})

	t.Run("clean report gets a tip alert", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)
		report := model.NewForensicReport("/tmp/clean.bin")
		report.Aggregate()

		if _, err := w.Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "[!TIP]") {
			t.Error("expected TIP alert for clean report")
		}
		if !strings.Contains(output, "No evidence of hidden content detected") {
			t.Error("expected message about no findings")
		}
	})

	t.Run("critical report gets a caution alert", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)
		report := model.NewForensicReport("/tmp/loaded.bin")
		report.AddFinding(model.NewFinding(model.CategoryEntropyAnomaly, "a", "", 60))
		report.AddFinding(model.NewFinding(model.CategoryAppendedData, "b", "", 60))
		report.AddFinding(model.NewFinding(model.CategoryEmbeddedFile, "c", "", 60))
		report.Aggregate()

		if _, err := w.Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[!CAUTION]") {
			t.Error("expected CAUTION alert for critical report")
		}
	})

	t.Run("writes footer with link", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "https://github.com/nao1215/stegoscan") {
			t.Error("expected footer with repository link")
		}
	})
}

// TestTruncateString tests the string truncation helper.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a longer string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"ab", 5, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			result := truncateString(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncateString(%q, %d) = %q, want %q",
					tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}

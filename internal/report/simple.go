package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/stegoscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with color-coded risk
// levels and clear section formatting.
//
// Design decision: We use fatih/color for the risk level rather than raw
// ANSI escapes because:
// 1. It detects non-TTY output and degrades to plain text automatically
// 2. Piping to files or other tools stays clean without extra flags
// 3. Color behavior is centrally controllable via color.NoColor
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool

	// printer formats numbers with locale-aware grouping (1,048,576).
	printer *message.Printer
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
		printer:    message.NewPrinter(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *model.ForensicReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeRiskAssessment(&sb, report)
	w.writePasses(&sb, report)
	w.writeFindings(&sb, report)
	w.writeRecommendations(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.ForensicReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        STEGOSCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Target:     %s\n", report.Target))
	sb.WriteString(w.printer.Sprintf("Size:       %d bytes\n", report.Size))
	if report.Digest != "" {
		sb.WriteString(fmt.Sprintf("Digest:     blake2b:%s\n", report.Digest))
	}
	sb.WriteString(fmt.Sprintf("Scan Date:  %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST")))

	if report.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("Status:     ERROR - %s\n", report.ErrorMessage))
	} else {
		sb.WriteString("Status:     Complete\n")
	}

	sb.WriteString("\n")
}

// writeRiskAssessment writes the risk level and confidence.
func (w *SimpleWriter) writeRiskAssessment(sb *strings.Builder, report *model.ForensicReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RISK ASSESSMENT\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Risk Level: %s\n", w.riskText(report.RiskLevel)))
	sb.WriteString(fmt.Sprintf("  Confidence: %d/100\n", report.Confidence))
	sb.WriteString(fmt.Sprintf("  Findings:   %d\n", report.TotalFindings()))
	sb.WriteString("\n")
}

// riskText returns the risk level colored for terminal display.
func (w *SimpleWriter) riskText(level model.RiskLevel) string {
	switch level {
	case model.RiskLow:
		return color.GreenString(level.String())
	case model.RiskMedium:
		return color.YellowString(level.String())
	case model.RiskHigh:
		return color.RedString(level.String())
	case model.RiskCritical:
		return color.New(color.FgRed, color.Bold).Sprint(level.String())
	default:
		return level.String()
	}
}

// writePasses writes one-line summaries for each analysis pass.
func (w *SimpleWriter) writePasses(sb *strings.Builder, report *model.ForensicReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("ANALYSIS PASSES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if report.Entropy != nil {
		sb.WriteString(fmt.Sprintf("  [entropy]    %.3f bits/byte overall, block variance %.4f\n",
			report.Entropy.OverallEntropy, report.Entropy.BlockVariance))
		if report.Entropy.LikelyEncrypted {
			sb.WriteString("               profile consistent with encrypted content\n")
		} else if report.Entropy.LikelyCompressed {
			sb.WriteString("               profile consistent with compressed content\n")
		}
	}

	if report.Randomness != nil {
		sb.WriteString(fmt.Sprintf("  [randomness] frequency %s (p=%.4f), runs %s, serial correlation %.4f\n",
			passFail(report.Randomness.Frequency.Passed),
			report.Randomness.Frequency.PValue,
			passFail(report.Randomness.Runs.Passed),
			report.Randomness.Serial.Coefficient))
	}

	if report.Structure != nil {
		sb.WriteString(fmt.Sprintf("  [structure]  %d embedded signature(s), appended data: %s\n",
			len(report.Structure.EmbeddedFiles),
			yesNo(report.Structure.Appended.HasAppended)))
	}

	if report.LSB != nil {
		if report.LSB.Available {
			sb.WriteString(fmt.Sprintf("  [lsb]        %d channel(s) analyzed (%dx%d)\n",
				len(report.LSB.Channels), report.LSB.Width, report.LSB.Height))
			if w.verbose {
				for _, ch := range report.LSB.Channels {
					sb.WriteString(fmt.Sprintf("               %s: chi-square p=%.4f, rs=%.2f%%, sample-pairs=%.2f%%\n",
						ch.Channel, ch.ChiSquare.PValue, ch.RS.EstimatedPayload, ch.SamplePairs.EstimatedPayload))
				}
			}
		} else {
			sb.WriteString(fmt.Sprintf("  [lsb]        skipped (%s)\n", report.LSB.Reason))
		}
	}

	if report.Metadata != nil {
		if report.Metadata.Available {
			sb.WriteString(fmt.Sprintf("  [metadata]   %d tag(s), %d suspicious entries\n",
				len(report.Metadata.Tags), len(report.Metadata.Suspicious)))
		} else {
			sb.WriteString(fmt.Sprintf("  [metadata]   skipped (%s)\n", report.Metadata.Reason))
		}
	}

	sb.WriteString("\n")
}

// passFail renders a boolean test result.
func passFail(passed bool) string {
	if passed {
		return "pass"
	}
	return "FAIL"
}

// yesNo renders a boolean presence flag.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// findingCategories is the fixed display order for finding sections.
var findingCategories = []model.Category{
	model.CategoryLsbDetected,
	model.CategoryEmbeddedFile,
	model.CategoryAppendedData,
	model.CategoryEntropyAnomaly,
	model.CategoryRandomnessResult,
}

// writeFindings writes all findings grouped by category.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, report *model.ForensicReport) {
	if !report.HasFindings() && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, category := range findingCategories {
		findings := report.FindingsByCategory(category)
		if len(findings) == 0 && !w.showEmpty {
			continue
		}
		w.writeFindingsForCategory(sb, category, findings)
	}
}

// writeFindingsForCategory writes findings of a specific category.
func (w *SimpleWriter) writeFindingsForCategory(sb *strings.Builder, category model.Category, findings []model.Finding) {
	sb.WriteString(fmt.Sprintf("[%s]\n", category.String()))

	if len(findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, finding := range findings {
		sb.WriteString(fmt.Sprintf("  * %s (confidence %d)\n", finding.Title, finding.Confidence))
		if finding.Method != "" {
			sb.WriteString(fmt.Sprintf("    Method: %s\n", finding.Method))
		}
		if finding.Channel != "" {
			sb.WriteString(fmt.Sprintf("    Channel: %s\n", finding.Channel))
		}
		if finding.Signature != "" {
			sb.WriteString(w.printer.Sprintf("    Signature: %s at offset %d\n", finding.Signature, finding.Offset))
		} else if finding.Category == model.CategoryAppendedData {
			sb.WriteString(w.printer.Sprintf("    Offset: %d, Size: %d bytes\n", finding.Offset, finding.Size))
		}
		if w.verbose && finding.Description != "" {
			sb.WriteString(fmt.Sprintf("    Description: %s\n", finding.Description))
		}
	}
	sb.WriteString("\n")
}

// writeRecommendations writes the follow-up guidance section.
func (w *SimpleWriter) writeRecommendations(sb *strings.Builder, report *model.ForensicReport) {
	if len(report.Recommendations) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RECOMMENDATIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, rec := range report.Recommendations {
		sb.WriteString(fmt.Sprintf("  - %s\n", rec))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by stegoscan\n")
	sb.WriteString("https://github.com/nao1215/stegoscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

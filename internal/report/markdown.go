package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/stegoscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ForensicReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeRiskAssessment(md, report)
	w.writePasses(md, report)
	w.writeFindings(md, report)
	w.writeRecommendations(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ForensicReport) {
	md.H1("Stegoscan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + report.Target + "`"},
			{"Size", strconv.FormatInt(report.Size, 10) + " bytes"},
			{"Digest", "`" + report.Digest + "`"},
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.ForensicReport) string {
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	return "✅ Complete"
}

// riskEmoji maps each risk level to its visual indicator.
func riskEmoji(level model.RiskLevel) string {
	switch level {
	case model.RiskLow:
		return "🟢"
	case model.RiskMedium:
		return "🟡"
	case model.RiskHigh:
		return "🟠"
	case model.RiskCritical:
		return "🔴"
	default:
		return "⚪"
	}
}

// writeRiskAssessment writes the risk summary with an alert and a category
// distribution pie chart.
func (w *MarkdownWriter) writeRiskAssessment(md *markdown.Markdown, report *model.ForensicReport) {
	md.H2("Risk Assessment")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Risk Level", riskEmoji(report.RiskLevel) + " " + report.RiskLevelText},
			{"Confidence", strconv.Itoa(report.Confidence) + "/100"},
			{"Findings", strconv.Itoa(report.TotalFindings())},
		},
	})
	md.PlainText("")

	if report.HasFindings() {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart of finding categories.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.ForensicReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Category Distribution"),
		piechart.WithShowData(true),
	)

	for _, category := range findingCategories {
		if n := len(report.FindingsByCategory(category)); n > 0 {
			chart.LabelAndIntValue(category.String(), uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the risk level.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.ForensicReport) {
	n := model.DistinctCategories(report.Findings)
	switch report.RiskLevel {
	case model.RiskCritical:
		md.Cautionf(
			"%d independent detection methods agree: the target almost certainly carries hidden or encrypted content.",
			n,
		)
	case model.RiskHigh:
		md.Warningf(
			"%d independent detection methods agree: the target likely carries hidden content.",
			n,
		)
	case model.RiskMedium:
		md.Important(
			"One detection method triggered. A single signal is often a false positive; manual review is suggested.",
		)
	default:
		md.Tip("No evidence of hidden or encrypted content was found.")
	}
	md.PlainText("")
}

// writePasses writes per-pass result tables.
func (w *MarkdownWriter) writePasses(md *markdown.Markdown, report *model.ForensicReport) {
	md.H2("Analysis Passes")
	md.PlainText("")

	var rows [][]string
	if report.Entropy != nil {
		rows = append(rows, []string{
			"Entropy",
			fmt.Sprintf("%.3f bits/byte overall, block variance %.4f, %d high-entropy region(s)",
				report.Entropy.OverallEntropy, report.Entropy.BlockVariance, len(report.Entropy.HighEntropyRegions)),
		})
	}
	if report.Randomness != nil {
		rows = append(rows, []string{
			"Randomness",
			fmt.Sprintf("frequency %s (p=%.4f), runs %s, serial correlation %.4f",
				passFail(report.Randomness.Frequency.Passed),
				report.Randomness.Frequency.PValue,
				passFail(report.Randomness.Runs.Passed),
				report.Randomness.Serial.Coefficient),
		})
	}
	if report.Structure != nil {
		rows = append(rows, []string{
			"Structure",
			fmt.Sprintf("%d embedded signature(s), appended data: %s",
				len(report.Structure.EmbeddedFiles), yesNo(report.Structure.Appended.HasAppended)),
		})
	}
	if report.LSB != nil {
		if report.LSB.Available {
			rows = append(rows, []string{
				"LSB steganalysis",
				fmt.Sprintf("%d channel(s) analyzed (%dx%d)",
					len(report.LSB.Channels), report.LSB.Width, report.LSB.Height),
			})
		} else {
			rows = append(rows, []string{"LSB steganalysis", "skipped: " + report.LSB.Reason})
		}
	}
	if report.Metadata != nil {
		if report.Metadata.Available {
			rows = append(rows, []string{
				"Metadata",
				fmt.Sprintf("%d tag(s), %d suspicious entries",
					len(report.Metadata.Tags), len(report.Metadata.Suspicious)),
			})
		} else {
			rows = append(rows, []string{"Metadata", "skipped: " + report.Metadata.Reason})
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Pass", "Result"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.LSB != nil && report.LSB.Available {
		w.writeChannelTable(md, report.LSB)
	}
}

// writeChannelTable writes per-channel LSB analyzer results.
func (w *MarkdownWriter) writeChannelTable(md *markdown.Markdown, lsb *model.LSBReport) {
	rows := make([][]string, len(lsb.Channels))
	for i, ch := range lsb.Channels {
		rows[i] = []string{
			ch.Channel,
			fmt.Sprintf("p=%.4f (%s)", ch.ChiSquare.PValue, detectedText(ch.ChiSquare.Detected)),
			fmt.Sprintf("%.2f%% (%s)", ch.RS.EstimatedPayload, detectedText(ch.RS.Detected)),
			fmt.Sprintf("%.2f%% (%s)", ch.SamplePairs.EstimatedPayload, detectedText(ch.SamplePairs.Detected)),
		}
	}

	md.H3("LSB Channel Results")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Channel", "Chi-Square", "RS Analysis", "Sample Pairs"},
		Rows:   rows,
	})
	md.PlainText("")
}

// detectedText renders a detection flag.
func detectedText(detected bool) string {
	if detected {
		return "detected"
	}
	return "clean"
}

// writeFindings writes all findings grouped by category.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.ForensicReport) {
	md.H2("Findings")
	md.PlainText("")

	if !report.HasFindings() {
		md.PlainText("No evidence of hidden content detected.")
		md.PlainText("")
		return
	}

	for _, category := range findingCategories {
		findings := report.FindingsByCategory(category)
		if len(findings) == 0 {
			continue
		}

		md.PlainText("### `" + category.String() + "`")
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	headers := []string{"Title", "Method", "Confidence", "Detail"}

	rows := make([][]string, len(findings))
	for i, f := range findings {
		method := f.Method
		if method == "" {
			method = "-"
		}

		var detail string
		switch {
		case f.Signature != "":
			detail = fmt.Sprintf("%s at offset %d", f.Signature, f.Offset)
		case f.Category == model.CategoryAppendedData:
			detail = fmt.Sprintf("offset %d, %d bytes", f.Offset, f.Size)
		case f.Channel != "":
			detail = "channel " + f.Channel
		default:
			detail = "-"
		}

		rows[i] = []string{
			truncateString(f.Title, 60),
			method,
			strconv.Itoa(f.Confidence),
			truncateString(detail, 50),
		}
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")

	// Add detailed descriptions for all findings
	for _, f := range findings {
		if f.Description != "" {
			md.Details(f.Title, f.Description)
		}
	}
	md.PlainText("")
}

// writeRecommendations writes the follow-up guidance section.
func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, report *model.ForensicReport) {
	if len(report.Recommendations) == 0 {
		return
	}

	md.H2("Recommendations")
	md.PlainText("")
	md.BulletList(report.Recommendations...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [stegoscan](https://github.com/nao1215/stegoscan)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

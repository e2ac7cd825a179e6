package model

import "time"

// EntropyBlock pairs a byte-offset range with its computed Shannon entropy.
// Entropy is measured in bits per byte and always lies in [0,8].
type EntropyBlock struct {
	// Offset is the block's byte offset in the scanned buffer.
	Offset int64 `json:"offset"`

	// Length is the block length in bytes.
	Length int `json:"length"`

	// Entropy is the block's Shannon entropy in bits/byte.
	Entropy float64 `json:"entropy"`
}

// EntropyReport is the entropy pass sub-report.
type EntropyReport struct {
	// OverallEntropy is the Shannon entropy of the whole buffer.
	OverallEntropy float64 `json:"overall_entropy"`

	// BlockSize is the block size used for the block-level statistics.
	BlockSize int `json:"block_size"`

	// Blocks contains the per-block entropies in offset order. Blocks
	// shorter than the minimum sample size are excluded here but still
	// contribute to OverallEntropy.
	Blocks []EntropyBlock `json:"blocks,omitempty"`

	// HighEntropyRegions lists blocks whose entropy exceeds the
	// high-entropy threshold.
	HighEntropyRegions []EntropyBlock `json:"high_entropy_regions,omitempty"`

	// BlockVariance is the variance of the per-block entropies.
	BlockVariance float64 `json:"block_variance"`

	// Anomalies contains human-readable anomaly messages.
	Anomalies []string `json:"anomalies,omitempty"`

	// LikelyEncrypted is true for uniformly high entropy with low
	// inter-block variance, the signature of ciphertext.
	LikelyEncrypted bool `json:"likely_encrypted"`

	// LikelyCompressed is true for high but not ciphertext-level entropy.
	LikelyCompressed bool `json:"likely_compressed"`
}

// FrequencyTestResult is the outcome of the monobit frequency test.
type FrequencyTestResult struct {
	// Passed is true when the p-value meets the significance threshold.
	Passed bool `json:"passed"`

	// PValue is the two-sided p-value in [0,1].
	PValue float64 `json:"p_value"`

	// Ones is the number of set bits counted.
	Ones int64 `json:"ones"`

	// Bits is the total number of bits examined.
	Bits int64 `json:"bits"`
}

// SerialCorrelationResult is the outcome of the lag-1 correlation test.
type SerialCorrelationResult struct {
	// Coefficient is the lag-1 Pearson correlation of consecutive byte
	// values. Constant data yields exactly 0 (guarded degenerate case).
	Coefficient float64 `json:"coefficient"`

	// Interpretation is a bucketed reading of the coefficient.
	Interpretation string `json:"interpretation"`
}

// RunsTestResult is the outcome of the runs test.
type RunsTestResult struct {
	// Applicable is false when the bit proportion deviates too far from
	// 0.5 for the null-hypothesis statistics to be meaningful. In that
	// case Passed is false and ZScore is the 0 sentinel.
	Applicable bool `json:"applicable"`

	// Passed is true when |ZScore| is below the critical value.
	Passed bool `json:"passed"`

	// ZScore is the normalized deviation of the observed run count.
	ZScore float64 `json:"z_score"`

	// Runs is the number of bit-value runs observed.
	Runs int64 `json:"runs"`
}

// RandomnessReport is the randomness pass sub-report.
type RandomnessReport struct {
	Frequency FrequencyTestResult     `json:"frequency"`
	Serial    SerialCorrelationResult `json:"serial_correlation"`
	Runs      RunsTestResult          `json:"runs"`
}

// ChiSquareResult is the outcome of the chi-square LSB attack on one channel.
type ChiSquareResult struct {
	// Statistic is the chi-square statistic over the pairs of values.
	Statistic float64 `json:"statistic"`

	// DegreesOfFreedom is the degrees of freedom used (127 for 128 pairs).
	DegreesOfFreedom int `json:"degrees_of_freedom"`

	// PValue is the chi-square CDF value in [0,1].
	PValue float64 `json:"p_value"`

	// Detected is true when PValue exceeds the detection threshold.
	Detected bool `json:"detected"`
}

// RSResult is the outcome of RS analysis on one channel.
type RSResult struct {
	// EstimatedPayload is the estimated embedding rate in percent. It is
	// deliberately not clamped to [0,100]; pathological inputs can push
	// the estimator outside that range and the raw value is preserved.
	EstimatedPayload float64 `json:"estimated_payload"`

	// Detected is true when |EstimatedPayload| exceeds the threshold.
	Detected bool `json:"detected"`
}

// SamplePairsResult is the outcome of sample-pairs analysis on one channel.
type SamplePairsResult struct {
	// EstimatedPayload is the estimated embedding rate in percent,
	// unclamped for the same reason as RSResult.
	EstimatedPayload float64 `json:"estimated_payload"`

	// Detected is true when |EstimatedPayload| exceeds the threshold.
	Detected bool `json:"detected"`
}

// ChannelLSBReport aggregates the three LSB analyzers for one channel.
type ChannelLSBReport struct {
	// Channel is the channel label ("R", "G", "B", "Gray", ...).
	Channel string `json:"channel"`

	ChiSquare   ChiSquareResult   `json:"chi_square"`
	RS          RSResult          `json:"rs"`
	SamplePairs SamplePairsResult `json:"sample_pairs"`
}

// LSBReport is the LSB pass sub-report. When the image-decoding collaborator
// is unavailable or fails, Available is false and Reason explains why; the
// sub-report is never omitted so callers can distinguish "checked, clean"
// from "not checked".
type LSBReport struct {
	// Available is true when pixel samples were decoded and analyzed.
	Available bool `json:"available"`

	// Reason explains why the pass did not run, when Available is false.
	Reason string `json:"reason,omitempty"`

	// Width and Height are the decoded image dimensions.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Channels holds the per-channel analyzer results.
	Channels []ChannelLSBReport `json:"channels,omitempty"`
}

// EmbeddedFileMatch is one signature match inside the buffer.
type EmbeddedFileMatch struct {
	// Name is the matched format name (e.g. "ZIP", "PNG").
	Name string `json:"name"`

	// Offset is the byte offset where the signature begins. Always
	// non-zero: a match at offset 0 is the buffer's own header.
	Offset int64 `json:"offset"`
}

// AppendedDataResult describes trailing bytes past a container terminator.
type AppendedDataResult struct {
	// HasAppended is true when trailing bytes follow the terminator.
	HasAppended bool `json:"has_appended"`

	// Format is the container format whose terminator was located.
	Format string `json:"format,omitempty"`

	// Offset is the byte offset where the appended data begins.
	Offset int64 `json:"offset,omitempty"`

	// Size is the appended data length in bytes.
	Size int64 `json:"size,omitempty"`
}

// StructureReport is the structural pass sub-report.
type StructureReport struct {
	EmbeddedFiles []EmbeddedFileMatch `json:"embedded_files,omitempty"`
	Appended      AppendedDataResult  `json:"appended"`
}

// MetadataReport is the optional metadata pass sub-report.
type MetadataReport struct {
	// Available is true when metadata extraction ran.
	Available bool `json:"available"`

	// Reason explains why the pass did not run, when Available is false.
	Reason string `json:"reason,omitempty"`

	// Tags is the extracted tag map.
	Tags map[string]string `json:"tags,omitempty"`

	// Suspicious lists human-readable notes about suspicious entries
	// (oversized comments, maker notes, XMP blocks).
	Suspicious []string `json:"suspicious,omitempty"`
}

// ForensicReport is the terminal value of one scan. It aggregates the
// per-pass sub-reports, the ordered findings, the derived risk level and
// confidence, and human-readable recommendations.
//
// Design decision: We keep one report struct with explicit sub-report
// pointers rather than a generic pass->result map. The set of passes is
// fixed by the pipeline, and typed fields make report rendering and JSON
// output straightforward.
type ForensicReport struct {
	// === Input identity ===

	// Target is the scanned path or label supplied by the caller.
	Target string `json:"target"`

	// Size is the scanned buffer length in bytes.
	Size int64 `json:"size"`

	// Digest is the BLAKE2b-256 digest of the buffer, hex encoded.
	Digest string `json:"digest,omitempty"`

	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// === Per-pass sub-reports ===

	Entropy    *EntropyReport    `json:"entropy,omitempty"`
	Randomness *RandomnessReport `json:"randomness,omitempty"`
	Structure  *StructureReport  `json:"structure,omitempty"`
	LSB        *LSBReport        `json:"lsb,omitempty"`
	Metadata   *MetadataReport   `json:"metadata,omitempty"`

	// === Aggregated outcome ===

	// Findings contains all evidence in the order it was produced.
	Findings []Finding `json:"findings,omitempty"`

	// RiskLevel is derived from the count of distinct finding categories.
	RiskLevel RiskLevel `json:"risk_level"`

	// RiskLevelText is the human-readable risk level.
	RiskLevelText string `json:"risk_level_text"`

	// Confidence is the overall confidence in [0,100].
	Confidence int `json:"confidence"`

	// Recommendations contains human-readable follow-up guidance.
	Recommendations []string `json:"recommendations,omitempty"`

	// PerformedPasses lists the pipeline stages that actually ran.
	PerformedPasses []string `json:"performed_passes,omitempty"`

	// Error contains any error that aborted the scan.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string form of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewForensicReport creates a report for the given target.
func NewForensicReport(target string) *ForensicReport {
	return &ForensicReport{
		Target:      target,
		DateScanned: time.Now(),
	}
}

// AddFinding appends a finding. Duplicate findings (same category, title and
// offset) are dropped so repeated signature matches do not inflate output.
func (r *ForensicReport) AddFinding(f Finding) {
	for _, existing := range r.Findings {
		if existing.Category == f.Category && existing.Title == f.Title && existing.Offset == f.Offset {
			return
		}
	}
	r.Findings = append(r.Findings, f)
}

// Aggregate derives the risk level, confidence, and recommendations from
// the accumulated findings. Call once, after all passes complete.
func (r *ForensicReport) Aggregate() {
	n := DistinctCategories(r.Findings)
	r.RiskLevel = RiskFromCategoryCount(n)
	r.RiskLevelText = r.RiskLevel.String()
	r.Confidence = ConfidenceFromCategoryCount(n)
	r.Recommendations = r.buildRecommendations()
}

// buildRecommendations maps triggered categories to follow-up guidance.
// The switch is exhaustive over Category so new categories cannot be added
// without deciding their recommendation.
func (r *ForensicReport) buildRecommendations() []string {
	seen := make(map[Category]bool)
	var recs []string

	for _, f := range r.Findings {
		if seen[f.Category] {
			continue
		}
		seen[f.Category] = true

		switch f.Category {
		case CategoryEntropyAnomaly:
			recs = append(recs, "Entropy profile is abnormal: compare against a known-clean copy of the file and inspect the flagged regions with a hex viewer.")
		case CategoryLsbDetected:
			recs = append(recs, "LSB steganalysis triggered: attempt payload extraction with common stego tools and compare against the original image if available.")
		case CategoryEmbeddedFile:
			recs = append(recs, "Foreign file signature found inside the buffer: carve the region at the reported offset and analyze it as an independent file.")
		case CategoryAppendedData:
			recs = append(recs, "Data appended after the container terminator: extract the trailing bytes and identify them separately.")
		case CategoryRandomnessResult:
			recs = append(recs, "Content is statistically random: treat as possible ciphertext and review how the file was produced.")
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "No evidence of hidden or encrypted content was found.")
	}
	if r.LSB != nil && !r.LSB.Available {
		recs = append(recs, "LSB steganalysis did not run ("+r.LSB.Reason+"); re-scan with a decodable image to cover pixel-domain embedding.")
	}
	return recs
}

// TotalFindings returns the number of findings.
func (r *ForensicReport) TotalFindings() int { return len(r.Findings) }

// HasFindings returns true if any finding was recorded.
func (r *ForensicReport) HasFindings() bool { return len(r.Findings) > 0 }

// FindingsByCategory returns the findings for one category, in order.
func (r *ForensicReport) FindingsByCategory(c Category) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return out
}

package model

// Category identifies the kind of evidence a Finding carries.
//
// Design decision: findings are an exhaustive tagged variant rather than a
// loosely-typed record with optional fields. The aggregator switches over
// Category exhaustively, so adding a new category forces every consumer to
// be revisited instead of silently falling through field-presence checks.
type Category int

const (
	// CategoryEntropyAnomaly marks entropy-based evidence: near-maximum
	// entropy, an encryption-like uniform distribution, or localized
	// high-entropy regions inside otherwise ordinary data.
	CategoryEntropyAnomaly Category = iota

	// CategoryLsbDetected marks a positive result from one of the LSB
	// steganalysis methods (chi-square, RS, sample pairs).
	CategoryLsbDetected

	// CategoryEmbeddedFile marks a known file signature found at a
	// non-zero offset inside the buffer.
	CategoryEmbeddedFile

	// CategoryAppendedData marks trailing bytes found after a container
	// format's end-of-stream marker.
	CategoryAppendedData

	// CategoryRandomnessResult marks byte content that passes statistical
	// randomness tests, which is consistent with an encrypted payload.
	CategoryRandomnessResult
)

// String returns the category identifier used in reports and storage.
func (c Category) String() string {
	switch c {
	case CategoryEntropyAnomaly:
		return "entropy_anomaly"
	case CategoryLsbDetected:
		return "lsb_detected"
	case CategoryEmbeddedFile:
		return "embedded_file"
	case CategoryAppendedData:
		return "appended_data"
	case CategoryRandomnessResult:
		return "randomness_result"
	default:
		return "unknown"
	}
}

// Finding is a single piece of evidence produced by one analysis pass.
// Findings are immutable once created.
type Finding struct {
	// Category is the evidence kind. It drives risk aggregation.
	Category Category `json:"category"`

	// CategoryText is the human-readable category identifier.
	CategoryText string `json:"category_text"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Description provides more detail about the finding.
	Description string `json:"description,omitempty"`

	// Confidence is the per-finding confidence in [0,100].
	Confidence int `json:"confidence"`

	// Method names the analysis method that produced the finding
	// (e.g. "chi-square", "rs-analysis"). Keys into the DetectionRange
	// catalog where applicable.
	Method string `json:"method,omitempty"`

	// === Category-specific fields ===

	// Offset is the byte offset of structural evidence
	// (CategoryEmbeddedFile, CategoryAppendedData).
	Offset int64 `json:"offset,omitempty"`

	// Size is the byte length of appended data (CategoryAppendedData).
	Size int64 `json:"size,omitempty"`

	// Signature is the matched format name (CategoryEmbeddedFile).
	Signature string `json:"signature,omitempty"`

	// Channel names the pixel channel analyzed (CategoryLsbDetected).
	Channel string `json:"channel,omitempty"`

	// PValue is the statistical p-value behind the finding, in [0,1]
	// (CategoryLsbDetected chi-square, CategoryRandomnessResult).
	PValue float64 `json:"p_value,omitempty"`

	// EstimatedPayload is the estimated embedding rate in percent
	// (CategoryLsbDetected RS and sample pairs). The raw estimate is kept
	// as-is: the underlying estimators can legitimately overshoot 100 or
	// go negative on pathological inputs, and clamping would hide that.
	EstimatedPayload float64 `json:"estimated_payload,omitempty"`
}

// NewFinding creates a finding with the category text filled in.
func NewFinding(category Category, title, description string, confidence int) Finding {
	return Finding{
		Category:     category,
		CategoryText: category.String(),
		Title:        title,
		Description:  description,
		Confidence:   confidence,
	}
}

// DistinctCategories returns the number of distinct categories present in
// the given findings. This is the input to the risk-level derivation.
func DistinctCategories(findings []Finding) int {
	seen := make(map[Category]bool, len(findings))
	for _, f := range findings {
		seen[f.Category] = true
	}
	return len(seen)
}

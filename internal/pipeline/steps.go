package pipeline

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/nao1215/stegoscan/internal/config"
	"github.com/nao1215/stegoscan/internal/entropy"
	"github.com/nao1215/stegoscan/internal/imaging"
	"github.com/nao1215/stegoscan/internal/lsb"
	"github.com/nao1215/stegoscan/internal/metadata"
	"github.com/nao1215/stegoscan/internal/model"
	"github.com/nao1215/stegoscan/internal/randomness"
	"github.com/nao1215/stegoscan/internal/structure"
)

// methodConfidence returns the per-finding confidence for a detection
// method: the midpoint of the method's catalogued hit-rate range, or a
// neutral 50 for methods outside the catalog.
func methodConfidence(method string) int {
	dr, ok := model.LookupDetectionRange(method)
	if !ok {
		return 50
	}
	return (dr.HitRateLow + dr.HitRateHigh) / 2
}

// LoadStep reads the target file into the scan buffer and records its
// identity (size and BLAKE2b digest) in the report.
//
// Design decision: loading is a pipeline step rather than caller-side setup
// so that batch processing, size capping, and digest computation follow the
// same code path for every entry point.
type LoadStep struct {
	// maxSize caps how many bytes are read; larger files are truncated.
	maxSize int64

	// logger for structured logging.
	logger *slog.Logger
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithLoadMaxSize sets the per-target read limit in bytes.
func WithLoadMaxSize(size int64) LoadStepOption {
	return func(s *LoadStep) {
		if size > 0 {
			s.maxSize = size
		}
	}
}

// WithLoadLogger sets a custom logger for the load step.
func WithLoadLogger(logger *slog.Logger) LoadStepOption {
	return func(s *LoadStep) {
		s.logger = logger
	}
}

// NewLoadStep creates a new load step.
func NewLoadStep(opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{
		maxSize: config.DefaultMaxScanSize,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string { return "load" }

// Do reads the target into memory. A read failure is critical: no later
// pass can run without the buffer.
func (s *LoadStep) Do(_ context.Context, scan *Scan) error {
	f, err := os.Open(scan.Report.Target) //nolint:gosec // Scanning user-supplied paths is the point
	if err != nil {
		return fmt.Errorf("open target: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}
	if info.Size() > s.maxSize {
		s.logger.Warn("target exceeds scan size limit, truncating",
			"target", scan.Report.Target,
			"size", info.Size(),
			"limit", s.maxSize,
		)
	}

	data, err := io.ReadAll(io.LimitReader(f, s.maxSize))
	if err != nil {
		return fmt.Errorf("read target: %w", err)
	}

	digest := blake2b.Sum256(data)
	scan.Data = data
	scan.Report.Size = int64(len(data))
	scan.Report.Digest = hex.EncodeToString(digest[:])

	s.logger.Debug("target loaded",
		"target", scan.Report.Target,
		"size", scan.Report.Size,
		"digest", scan.Report.Digest,
	)
	return nil
}

// EntropyStep computes the entropy profile and converts its anomaly
// messages into findings.
type EntropyStep struct {
	// blockSize for the block-level profile; 0 selects the default.
	blockSize int

	// logger for structured logging.
	logger *slog.Logger
}

// EntropyStepOption configures an EntropyStep.
type EntropyStepOption func(*EntropyStep)

// WithEntropyBlockSize sets the profile block size.
func WithEntropyBlockSize(size int) EntropyStepOption {
	return func(s *EntropyStep) {
		s.blockSize = size
	}
}

// WithEntropyLogger sets a custom logger for the entropy step.
func WithEntropyLogger(logger *slog.Logger) EntropyStepOption {
	return func(s *EntropyStep) {
		s.logger = logger
	}
}

// NewEntropyStep creates a new entropy step.
func NewEntropyStep(opts ...EntropyStepOption) *EntropyStep {
	s := &EntropyStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *EntropyStep) Name() string { return "entropy" }

// Do executes the entropy pass.
func (s *EntropyStep) Do(_ context.Context, scan *Scan) error {
	report := entropy.AnalyzeBlocks(scan.Data, s.blockSize)
	scan.Report.Entropy = report

	for _, anomaly := range report.Anomalies {
		f := model.NewFinding(model.CategoryEntropyAnomaly, anomaly, "", methodConfidence("entropy"))
		f.Method = "entropy"
		scan.Report.AddFinding(f)
	}

	s.logger.Debug("entropy pass completed",
		"target", scan.Report.Target,
		"overall_entropy", report.OverallEntropy,
		"anomalies", len(report.Anomalies),
	)
	return nil
}

// RandomnessStep runs the statistical randomness suite. Content that looks
// random is itself evidence: legitimate documents and images are not
// indistinguishable from ciphertext.
type RandomnessStep struct {
	logger *slog.Logger
}

// RandomnessStepOption configures a RandomnessStep.
type RandomnessStepOption func(*RandomnessStep)

// WithRandomnessLogger sets a custom logger for the randomness step.
func WithRandomnessLogger(logger *slog.Logger) RandomnessStepOption {
	return func(s *RandomnessStep) {
		s.logger = logger
	}
}

// NewRandomnessStep creates a new randomness step.
func NewRandomnessStep(opts ...RandomnessStepOption) *RandomnessStep {
	s := &RandomnessStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *RandomnessStep) Name() string { return "randomness" }

// Do executes the randomness pass.
func (s *RandomnessStep) Do(_ context.Context, scan *Scan) error {
	report := randomness.Analyze(scan.Data)
	scan.Report.Randomness = &report

	if randomness.LooksRandom(report) {
		f := model.NewFinding(model.CategoryRandomnessResult,
			"Content is statistically indistinguishable from random data",
			"The buffer passes the monobit frequency test and the runs test, which is characteristic of encrypted or compressed payloads.",
			methodConfidence("randomness"))
		f.Method = "randomness"
		f.PValue = report.Frequency.PValue
		scan.Report.AddFinding(f)
	}

	s.logger.Debug("randomness pass completed",
		"target", scan.Report.Target,
		"frequency_passed", report.Frequency.Passed,
		"runs_applicable", report.Runs.Applicable,
	)
	return nil
}

// StructureStep scans for embedded file signatures and data appended past
// container terminators.
type StructureStep struct {
	logger *slog.Logger
}

// StructureStepOption configures a StructureStep.
type StructureStepOption func(*StructureStep)

// WithStructureLogger sets a custom logger for the structure step.
func WithStructureLogger(logger *slog.Logger) StructureStepOption {
	return func(s *StructureStep) {
		s.logger = logger
	}
}

// NewStructureStep creates a new structure step.
func NewStructureStep(opts ...StructureStepOption) *StructureStep {
	s := &StructureStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *StructureStep) Name() string { return "structure" }

// Do executes the structural pass.
func (s *StructureStep) Do(_ context.Context, scan *Scan) error {
	report := &model.StructureReport{
		EmbeddedFiles: structure.DetectEmbeddedFiles(scan.Data),
		Appended:      structure.DetectAppendedData(scan.Data),
	}
	scan.Report.Structure = report

	for _, match := range report.EmbeddedFiles {
		f := model.NewFinding(model.CategoryEmbeddedFile,
			fmt.Sprintf("Embedded %s signature at offset %d", match.Name, match.Offset),
			"A foreign file header begins inside the buffer, past its own leading header.",
			methodConfidence("signature-scan"))
		f.Method = "signature-scan"
		f.Offset = match.Offset
		f.Signature = match.Name
		scan.Report.AddFinding(f)
	}

	if report.Appended.HasAppended {
		f := model.NewFinding(model.CategoryAppendedData,
			fmt.Sprintf("%d bytes appended after the %s terminator", report.Appended.Size, report.Appended.Format),
			"Image viewers stop at the container terminator, so trailing bytes are invisible in normal use.",
			methodConfidence("signature-scan"))
		f.Method = "signature-scan"
		f.Offset = report.Appended.Offset
		f.Size = report.Appended.Size
		scan.Report.AddFinding(f)
	}

	s.logger.Debug("structure pass completed",
		"target", scan.Report.Target,
		"embedded_files", len(report.EmbeddedFiles),
		"appended", report.Appended.HasAppended,
	)
	return nil
}

// LSBStep decodes the target as an image and runs the steganalysis suite
// per channel. Decode failure is a normal outcome for non-image targets:
// the pass is marked unavailable and the scan continues.
type LSBStep struct {
	// analyzer carries the configured detection thresholds.
	analyzer *lsb.Analyzer

	// logger for structured logging.
	logger *slog.Logger
}

// LSBStepOption configures an LSBStep.
type LSBStepOption func(*LSBStep)

// WithLSBAnalyzer sets a custom analyzer (and with it, thresholds).
func WithLSBAnalyzer(analyzer *lsb.Analyzer) LSBStepOption {
	return func(s *LSBStep) {
		s.analyzer = analyzer
	}
}

// WithLSBLogger sets a custom logger for the LSB step.
func WithLSBLogger(logger *slog.Logger) LSBStepOption {
	return func(s *LSBStep) {
		s.logger = logger
	}
}

// NewLSBStep creates a new LSB steganalysis step.
func NewLSBStep(opts ...LSBStepOption) *LSBStep {
	s := &LSBStep{
		analyzer: lsb.NewAnalyzer(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *LSBStep) Name() string { return "lsb" }

// Do executes the LSB pass.
func (s *LSBStep) Do(_ context.Context, scan *Scan) error {
	sample, format, err := imaging.Decode(scan.Data)
	if err != nil {
		s.logger.Debug("target is not a decodable image, skipping LSB pass",
			"target", scan.Report.Target,
			"error", err,
		)
		scan.Report.LSB = &model.LSBReport{
			Available: false,
			Reason:    "target is not a decodable image",
		}
		return nil
	}

	scan.Sample = sample
	report := s.analyzer.AnalyzeSample(sample)
	scan.Report.LSB = report

	for _, ch := range report.Channels {
		if ch.ChiSquare.Detected {
			f := model.NewFinding(model.CategoryLsbDetected,
				fmt.Sprintf("Chi-square attack positive on channel %s", ch.Channel),
				"The paired value histogram matches the LSB-replacement signature.",
				methodConfidence("chi-square"))
			f.Method = "chi-square"
			f.Channel = ch.Channel
			f.PValue = ch.ChiSquare.PValue
			scan.Report.AddFinding(f)
		}
		if ch.RS.Detected {
			f := model.NewFinding(model.CategoryLsbDetected,
				fmt.Sprintf("RS analysis positive on channel %s", ch.Channel),
				"Block discrimination under bit flips estimates a non-trivial embedded payload.",
				methodConfidence("rs-analysis"))
			f.Method = "rs-analysis"
			f.Channel = ch.Channel
			f.EstimatedPayload = ch.RS.EstimatedPayload
			scan.Report.AddFinding(f)
		}
		if ch.SamplePairs.Detected {
			f := model.NewFinding(model.CategoryLsbDetected,
				fmt.Sprintf("Sample-pairs analysis positive on channel %s", ch.Channel),
				"Adjacent-sample parity statistics estimate a non-trivial embedded payload.",
				methodConfidence("sample-pairs"))
			f.Method = "sample-pairs"
			f.Channel = ch.Channel
			f.EstimatedPayload = ch.SamplePairs.EstimatedPayload
			scan.Report.AddFinding(f)
		}
	}

	s.logger.Debug("lsb pass completed",
		"target", scan.Report.Target,
		"format", format,
		"channels", len(report.Channels),
		"detected", lsb.Detected(report),
	)
	return nil
}

// MetadataStep extracts EXIF-style tags and flags suspicious entries.
// Metadata notes annotate the report but are not findings on their own;
// oversized comments and maker notes are common in legitimate images.
type MetadataStep struct {
	logger *slog.Logger
}

// MetadataStepOption configures a MetadataStep.
type MetadataStepOption func(*MetadataStep)

// WithMetadataLogger sets a custom logger for the metadata step.
func WithMetadataLogger(logger *slog.Logger) MetadataStepOption {
	return func(s *MetadataStep) {
		s.logger = logger
	}
}

// NewMetadataStep creates a new metadata step.
func NewMetadataStep(opts ...MetadataStepOption) *MetadataStep {
	s := &MetadataStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *MetadataStep) Name() string { return "metadata" }

// Do executes the metadata pass.
func (s *MetadataStep) Do(_ context.Context, scan *Scan) error {
	report := metadata.Extract(scan.Data)
	scan.Report.Metadata = report

	s.logger.Debug("metadata pass completed",
		"target", scan.Report.Target,
		"available", report.Available,
		"suspicious", len(report.Suspicious),
	)
	return nil
}

// AggregateStep derives the risk level, confidence, and recommendations
// from the accumulated findings. It must run last.
type AggregateStep struct{}

// NewAggregateStep creates a new aggregate step.
func NewAggregateStep() *AggregateStep { return &AggregateStep{} }

// Name returns the step name.
func (s *AggregateStep) Name() string { return "aggregate" }

// Do executes the aggregation.
func (s *AggregateStep) Do(_ context.Context, scan *Scan) error {
	scan.Report.Aggregate()
	return nil
}

// DefaultPipeline creates a pipeline with all passes in their fixed order:
// load, entropy, randomness, structure, LSB, metadata, aggregate.
//
// Design decision: We provide a default pipeline because most callers want
// every check, it reduces boilerplate in the CLI, and it guarantees the
// aggregate step runs last.
func DefaultPipeline(cfg *config.Config, pipelineOpts ...Option) *Pipeline {
	p := New(pipelineOpts...)

	analyzer := lsb.NewAnalyzer(
		lsb.WithChiSquareThreshold(cfg.Thresholds.ChiSquarePValue),
		lsb.WithRSThreshold(cfg.Thresholds.RSPayloadPercent),
		lsb.WithSamplePairsThreshold(cfg.Thresholds.SamplePairsPayloadPercent),
	)

	p.AddSteps(
		NewLoadStep(
			WithLoadMaxSize(cfg.MaxScanSize),
			WithLoadLogger(p.logger),
		),
		NewEntropyStep(
			WithEntropyBlockSize(cfg.EntropyBlockSize),
			WithEntropyLogger(p.logger),
		),
		NewRandomnessStep(WithRandomnessLogger(p.logger)),
		NewStructureStep(WithStructureLogger(p.logger)),
		NewLSBStep(
			WithLSBAnalyzer(analyzer),
			WithLSBLogger(p.logger),
		),
		NewMetadataStep(WithMetadataLogger(p.logger)),
		NewAggregateStep(),
	)

	return p
}

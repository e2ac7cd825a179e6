package lsb

import (
	"fmt"

	"github.com/nao1215/stegoscan/internal/model"
)

// Detection thresholds. These are the conventional working values for the
// three attacks; they are deliberately overridable through options rather
// than re-derived, since their statistical justification is empirical.
const (
	// DefaultChiSquareThreshold is the p-value above which the chi-square
	// attack reports detection.
	DefaultChiSquareThreshold = 0.95

	// DefaultRSThreshold is the absolute payload estimate (percent) above
	// which RS analysis reports detection.
	DefaultRSThreshold = 5.0

	// DefaultSamplePairsThreshold is the absolute payload estimate
	// (percent) above which sample-pairs analysis reports detection.
	DefaultSamplePairsThreshold = 3.0
)

// Analyzer runs the steganalysis suite with a fixed set of thresholds.
// The zero value is not usable; construct with NewAnalyzer.
type Analyzer struct {
	chiSquareThreshold   float64
	rsThreshold          float64
	samplePairsThreshold float64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithChiSquareThreshold overrides the chi-square detection p-value.
func WithChiSquareThreshold(p float64) Option {
	return func(a *Analyzer) {
		a.chiSquareThreshold = p
	}
}

// WithRSThreshold overrides the RS payload-estimate threshold (percent).
func WithRSThreshold(percent float64) Option {
	return func(a *Analyzer) {
		a.rsThreshold = percent
	}
}

// WithSamplePairsThreshold overrides the sample-pairs payload-estimate
// threshold (percent).
func WithSamplePairsThreshold(percent float64) Option {
	return func(a *Analyzer) {
		a.samplePairsThreshold = percent
	}
}

// NewAnalyzer creates an Analyzer with default thresholds, then applies
// the given options.
func NewAnalyzer(opts ...Option) *Analyzer {
	analyzer := &Analyzer{
		chiSquareThreshold:   DefaultChiSquareThreshold,
		rsThreshold:          DefaultRSThreshold,
		samplePairsThreshold: DefaultSamplePairsThreshold,
	}
	for _, opt := range opts {
		opt(analyzer)
	}
	return analyzer
}

// AnalyzeSample runs all three attacks over every channel of a decoded
// pixel sample. A nil or channel-less sample yields an unavailable report;
// callers use this when the image-decoding collaborator failed, so the scan
// continues and the report states explicitly that the pass did not run.
func (a *Analyzer) AnalyzeSample(sample *model.PixelSample) *model.LSBReport {
	if sample == nil || sample.ChannelCount() == 0 {
		return &model.LSBReport{
			Available: false,
			Reason:    "no decoded pixel samples",
		}
	}

	report := &model.LSBReport{
		Available: true,
		Width:     sample.Width,
		Height:    sample.Height,
	}
	for i := 0; i < sample.ChannelCount(); i++ {
		name := fmt.Sprintf("ch%d", i)
		if i < len(sample.ChannelNames) {
			name = sample.ChannelNames[i]
		}
		plane := sample.Channel(i)
		report.Channels = append(report.Channels, model.ChannelLSBReport{
			Channel:     name,
			ChiSquare:   a.ChiSquare(plane),
			RS:          a.RS(plane, sample.Width, sample.Height),
			SamplePairs: a.SamplePairs(plane, sample.Width, sample.Height),
		})
	}
	return report
}

// Detected reports whether any analyzer on any channel triggered.
func Detected(report *model.LSBReport) bool {
	if report == nil || !report.Available {
		return false
	}
	for _, ch := range report.Channels {
		if ch.ChiSquare.Detected || ch.RS.Detected || ch.SamplePairs.Detected {
			return true
		}
	}
	return false
}

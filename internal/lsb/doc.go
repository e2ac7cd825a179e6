// Package lsb implements the least-significant-bit steganalysis suite:
// the chi-square pairs-of-values attack, RS (regular/singular) analysis,
// and sample-pairs analysis. All three operate on per-channel pixel
// intensity planes decoded elsewhere and never touch the original file.
//
// The analyzers are side-effect-free and safe to run concurrently against
// the same read-only plane. Degenerate inputs (empty channels, constant
// intensities, zero-variance histograms) return neutral results with a
// zero estimate and detected=false rather than errors or NaN.
package lsb
